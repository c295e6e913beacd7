package profile

import (
	"context"
	"strconv"
	"strings"
	"sync"

	apperr "github.com/matzehuels/octoview/pkg/errors"
	"github.com/matzehuels/octoview/pkg/github"
)

const fakeBase = "https://api.test"

// fakeGitHub serves canned profiles. Requests for URLs in gate block until
// the channel is closed.
type fakeGitHub struct {
	mu       sync.Mutex
	profiles map[string]*github.Profile
	repos    map[string][]github.Repository // keyed by login
	people   map[string][]github.Person     // keyed by URL
	fail     map[string]error               // keyed by URL prefix
	gate     map[string]chan struct{}
	calls    []string
}

func newFake() *fakeGitHub {
	return &fakeGitHub{
		profiles: map[string]*github.Profile{},
		repos:    map[string][]github.Repository{},
		people:   map[string][]github.Person{},
		fail:     map[string]error{},
		gate:     map[string]chan struct{}{},
	}
}

func (f *fakeGitHub) addUser(login string, repos []github.Repository) *github.Profile {
	p := &github.Profile{
		Login:        login,
		Type:         "User",
		PublicRepos:  len(repos),
		ReposURL:     fakeBase + "/users/" + login + "/repos",
		FollowersURL: fakeBase + "/users/" + login + "/followers",
		FollowingURL: fakeBase + "/users/" + login + "/following{/other_user}",
	}
	f.profiles[fakeBase+"/users/"+login] = p
	f.repos[login] = repos
	return p
}

func (f *fakeGitHub) record(url string) error {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	gate := f.gate[url]
	var err error
	for prefix, e := range f.fail {
		if strings.HasPrefix(url, prefix) {
			err = e
		}
	}
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeGitHub) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeGitHub) UserURL(login string) string { return fakeBase + "/users/" + login }

func (f *fakeGitHub) User(ctx context.Context, url string) (*github.Profile, error) {
	if err := f.record(url); err != nil {
		return nil, err
	}
	p, ok := f.profiles[url]
	if !ok {
		return nil, apperr.Wrap(apperr.ErrCodeNotFound, github.ErrNotFound, "GET %s", url)
	}
	return p, nil
}

func (f *fakeGitHub) Repositories(ctx context.Context, reposURL string, q github.PageQuery) ([]github.Repository, error) {
	url := github.ReposPageURL(reposURL, q)
	if err := f.record(url); err != nil {
		return nil, err
	}
	login := strings.TrimSuffix(strings.TrimPrefix(reposURL, fakeBase+"/users/"), "/repos")
	all := f.repos[login]
	lo := (q.Page - 1) * q.PerPage
	if lo >= len(all) {
		return []github.Repository{}, nil
	}
	hi := min(lo+q.PerPage, len(all))
	return all[lo:hi], nil
}

func (f *fakeGitHub) People(ctx context.Context, url string) ([]github.Person, error) {
	if err := f.record(url); err != nil {
		return nil, err
	}
	return f.people[url], nil
}

func makeRepos(n int, forkEvery int) []github.Repository {
	repos := make([]github.Repository, n)
	for i := range repos {
		repos[i] = github.Repository{
			Name:    "repo-" + strconv.Itoa(i+1),
			HTMLURL: "https://github.com/x/repo-" + strconv.Itoa(i+1),
			Fork:    forkEvery > 0 && (i+1)%forkEvery == 0,
		}
	}
	return repos
}
