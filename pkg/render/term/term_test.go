package term

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/matzehuels/octoview/pkg/github"
	"github.com/matzehuels/octoview/pkg/profile"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func loaded() profile.State {
	st := profile.Reduce(profile.Initial(), profile.ProfileRequested{URL: "u"})
	st = profile.Reduce(st, profile.ProfileLoaded{Profile: &github.Profile{
		Login: "google", Name: "Google", Type: "Organization", PublicRepos: 25,
		Blog: "https://opensource.google", Twitter: "GoogleOSS",
	}})
	return profile.Reduce(st, profile.ReposLoaded{Page: 2, Repos: []github.Repository{
		{Name: "go-cloud", Stars: 9000},
		{Name: "forked", Fork: true, Private: true},
	}})
}

func TestPage(t *testing.T) {
	out := New("dark").Page(loaded())
	for _, want := range []string{"Google", "@google", "(organization)", "@GoogleOSS", "go-cloud", "9000", "Private", "page "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPage_Failed(t *testing.T) {
	st := profile.Reduce(profile.Initial(), profile.ProfileFailed{Err: errors.New("x")})
	out := New("light").Page(st)
	if strings.TrimSpace(out) != profile.MsgNoAccount {
		t.Errorf("got %q", out)
	}
}

func TestForks(t *testing.T) {
	r := New("dark")
	out := r.Forks(loaded())
	if !strings.Contains(out, "forked") || strings.Contains(out, "go-cloud") {
		t.Errorf("forks output:\n%s", out)
	}
	empty := profile.Reduce(loaded(), profile.ReposLoaded{Page: 1, Repos: []github.Repository{{Name: "a"}}})
	if !strings.Contains(r.Forks(empty), profile.MsgNoForks) {
		t.Error("expected empty forks message")
	}
}

func TestPagination(t *testing.T) {
	out := New("dark").Pagination(loaded())
	if !strings.Contains(out, "1") || !strings.Contains(out, "3") || !strings.Contains(out, "(10 per page)") {
		t.Errorf("pagination = %q", out)
	}
	single := profile.Reduce(loaded(), profile.ProfileLoaded{Profile: &github.Profile{Login: "x", PublicRepos: 3}})
	if New("dark").Pagination(single) != "" {
		t.Error("a single page needs no pagination line")
	}
}

func TestPeople(t *testing.T) {
	r := New("dark")
	st := loaded()
	if n := strings.Count(r.People(st, profile.LaneFollowers), "\n"); n != profile.PersonSkeletons {
		t.Errorf("idle panel should show %d skeleton lines, got %d", profile.PersonSkeletons, n)
	}
	st = profile.Reduce(st, profile.PeopleLoaded{Lane: profile.LaneFollowing})
	if !strings.Contains(r.People(st, profile.LaneFollowing), profile.MsgNoFollowing) {
		t.Error("expected empty following message")
	}
	st = profile.Reduce(st, profile.PeopleLoaded{Lane: profile.LaneFollowers, People: []github.Person{{Login: "alice"}}})
	if !strings.Contains(r.People(st, profile.LaneFollowers), "@alice") {
		t.Error("expected follower login")
	}
}

func TestReposLoading(t *testing.T) {
	st := profile.Reduce(loaded(), profile.ReposRequested{Page: 3})
	if n := strings.Count(New("dark").Repos(st), "\n"); n != profile.RepoSkeletons {
		t.Errorf("got %d skeleton lines, want %d", n, profile.RepoSkeletons)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("a  b\nc", 10); got != "a b c" {
		t.Errorf("whitespace not collapsed: %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("got %q", got)
	}
}
