package profile

import (
	"github.com/matzehuels/octoview/pkg/github"
)

// Defaults.
const (
	DefaultPageSize = 10
	RepoSkeletons   = 6
	PersonSkeletons = 12
)

// Messages shown in place of a panel's content.
const (
	MsgNoAccount   = "There is no account with this username yet."
	MsgNoRepos     = "Doesn't have any public repositories yet."
	MsgNoForks     = "Doesn't have any forked repositories yet."
	MsgNoFollowers = "Doesn't have any follower yet."
	MsgNoFollowing = "Doesn't have any following yet."
	MsgLoadFailed  = "Couldn't load this list. Try again later."
)

// Status is the lifecycle of one panel.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Lane identifies an independently loaded panel.
type Lane int

const (
	LaneProfile Lane = iota
	LaneRepos
	LaneFollowers
	LaneFollowing
	laneCount
)

func (l Lane) String() string {
	switch l {
	case LaneProfile:
		return "profile"
	case LaneRepos:
		return "repos"
	case LaneFollowers:
		return "followers"
	case LaneFollowing:
		return "following"
	default:
		return "unknown"
	}
}

// State is everything a renderer needs to draw a profile page.
type State struct {
	Profile      *github.Profile
	ProfileURL   string
	ReposURL     string
	FollowersURL string
	FollowingURL string // template segment already stripped

	TotalRepos int
	PageSize   int
	Page       int

	Repos     []github.Repository
	Forks     []github.Repository // fork-flagged subset of Repos
	Followers []github.Person
	Following []github.Person

	ProfileStatus   Status
	ReposStatus     Status
	FollowersStatus Status
	FollowingStatus Status

	ProfileErr   error
	ReposErr     error
	FollowersErr error
	FollowingErr error

	// ScrollLocked is set while the profile error panel covers the page.
	ScrollLocked bool
}

// Initial returns the state before any profile is requested.
func Initial() State {
	return State{PageSize: DefaultPageSize, Page: 1}
}

// TotalPages is the number of repository pages for the current profile.
func (s State) TotalPages() int {
	return TotalPages(s.TotalRepos, s.PageSize)
}

// PageLinks returns the pagination strip for the current page.
func (s State) PageLinks() []PageLink {
	return Links(s.TotalRepos, s.PageSize, s.Page)
}

// ForksStatus derives the fork panel status from the repository panel.
func (s State) ForksStatus() Status {
	switch s.ReposStatus {
	case StatusReady, StatusEmpty:
		if len(s.Forks) == 0 {
			return StatusEmpty
		}
		return StatusReady
	default:
		return s.ReposStatus
	}
}

// PeopleStatus returns the status of the followers or following panel.
func (s State) PeopleStatus(l Lane) Status {
	if l == LaneFollowing {
		return s.FollowingStatus
	}
	return s.FollowersStatus
}

// People returns the followers or following list.
func (s State) People(l Lane) []github.Person {
	if l == LaneFollowing {
		return s.Following
	}
	return s.Followers
}

// HasProfile reports whether a profile is loaded and its lists can be fetched.
func (s State) HasProfile() bool {
	return s.ProfileStatus == StatusReady && s.Profile != nil
}
