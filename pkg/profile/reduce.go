package profile

import (
	"github.com/matzehuels/octoview/pkg/github"
)

// Event is a state transition input for [Reduce].
type Event interface{ event() }

// ProfileRequested starts loading the profile at URL. It clears every
// panel and releases the scroll lock.
type ProfileRequested struct{ URL string }

// ProfileLoaded carries a fetched profile.
type ProfileLoaded struct{ Profile *github.Profile }

// ProfileFailed marks the profile as unavailable and locks scrolling.
type ProfileFailed struct{ Err error }

// ReposRequested starts loading a repository page.
type ReposRequested struct{ Page int }

// ReposLoaded carries one page of repositories.
type ReposLoaded struct {
	Page  int
	Repos []github.Repository
}

// ReposFailed marks the repository panel as failed.
type ReposFailed struct{ Err error }

// PageSizeChanged sets the repository page size and resets to page 1.
type PageSizeChanged struct{ Size int }

// PeopleRequested starts loading followers or following.
type PeopleRequested struct{ Lane Lane }

// PeopleLoaded carries a followers or following list.
type PeopleLoaded struct {
	Lane   Lane
	People []github.Person
}

// PeopleFailed marks a followers or following panel as failed.
type PeopleFailed struct {
	Lane Lane
	Err  error
}

func (ProfileRequested) event() {}
func (ProfileLoaded) event()    {}
func (ProfileFailed) event()    {}
func (ReposRequested) event()   {}
func (ReposLoaded) event()      {}
func (ReposFailed) event()      {}
func (PageSizeChanged) event()  {}
func (PeopleRequested) event()  {}
func (PeopleLoaded) event()     {}
func (PeopleFailed) event()     {}

// Reduce returns the state that results from applying ev to s.
// s is not modified.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case ProfileRequested:
		return State{
			ProfileURL:    ev.URL,
			PageSize:      s.PageSize,
			Page:          1,
			ProfileStatus: StatusLoading,
			ReposStatus:   StatusLoading,
		}

	case ProfileLoaded:
		p := *ev.Profile
		s.Profile = &p
		s.ReposURL = p.ReposURL
		s.FollowersURL = p.FollowersURL
		s.FollowingURL = github.StripURLTemplate(p.FollowingURL)
		s.TotalRepos = p.PublicRepos
		s.ProfileStatus = StatusReady
		s.ProfileErr = nil
		s.ScrollLocked = false

	case ProfileFailed:
		s.Profile = nil
		s.ProfileStatus = StatusFailed
		s.ProfileErr = ev.Err
		s.ReposStatus = StatusIdle
		s.Repos, s.Forks = nil, nil
		s.ScrollLocked = true

	case ReposRequested:
		s.Page = ev.Page
		s.ReposStatus = StatusLoading
		s.ReposErr = nil

	case ReposLoaded:
		s.Page = ev.Page
		s.Repos = append([]github.Repository(nil), ev.Repos...)
		s.Forks = github.Forked(s.Repos)
		s.ReposErr = nil
		if len(s.Repos) == 0 {
			s.ReposStatus = StatusEmpty
		} else {
			s.ReposStatus = StatusReady
		}

	case ReposFailed:
		s.Repos, s.Forks = nil, nil
		s.ReposStatus = StatusFailed
		s.ReposErr = ev.Err

	case PageSizeChanged:
		s.PageSize = ev.Size
		s.Page = 1

	case PeopleRequested:
		s = setPeople(s, ev.Lane, nil, StatusLoading, nil)

	case PeopleLoaded:
		people := append([]github.Person(nil), ev.People...)
		status := StatusReady
		if len(people) == 0 {
			status = StatusEmpty
		}
		s = setPeople(s, ev.Lane, people, status, nil)

	case PeopleFailed:
		s = setPeople(s, ev.Lane, nil, StatusFailed, ev.Err)
	}
	return s
}

func setPeople(s State, l Lane, people []github.Person, status Status, err error) State {
	if l == LaneFollowing {
		s.Following, s.FollowingStatus, s.FollowingErr = people, status, err
	} else {
		s.Followers, s.FollowersStatus, s.FollowersErr = people, status, err
	}
	return s
}
