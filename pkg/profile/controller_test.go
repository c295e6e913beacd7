package profile

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"

	apperr "github.com/matzehuels/octoview/pkg/errors"
	"github.com/matzehuels/octoview/pkg/github"
)

func TestLoadProfile(t *testing.T) {
	f := newFake()
	f.addUser("google", makeRepos(25, 3))
	ctl := New(f)

	if err := ctl.LoadProfile(context.Background(), f.UserURL("google")); err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	st := ctl.State()
	if st.ProfileStatus != StatusReady || st.Profile.Login != "google" {
		t.Fatalf("profile not ready: %v", st.ProfileStatus)
	}
	if st.FollowingURL != fakeBase+"/users/google/following" {
		t.Errorf("following URL template not stripped: %s", st.FollowingURL)
	}
	if st.ReposStatus != StatusReady || len(st.Repos) != DefaultPageSize {
		t.Errorf("repos = %d (%v), want %d", len(st.Repos), st.ReposStatus, DefaultPageSize)
	}
	if st.Page != 1 || st.TotalPages() != 3 {
		t.Errorf("page=%d total=%d", st.Page, st.TotalPages())
	}
	if st.ScrollLocked {
		t.Error("scroll should not be locked")
	}
}

func TestLoadProfile_NotFound(t *testing.T) {
	f := newFake()
	ctl := New(f)

	err := ctl.LoadProfile(context.Background(), f.UserURL("nobody"))
	if !errors.Is(err, github.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	st := ctl.State()
	if st.ProfileStatus != StatusFailed || !st.ScrollLocked {
		t.Errorf("status=%v locked=%v", st.ProfileStatus, st.ScrollLocked)
	}
	if st.Profile != nil || len(st.Repos) != 0 {
		t.Error("failed profile should not carry data")
	}
	if apperr.GetCode(st.ProfileErr) != apperr.ErrCodeNotFound {
		t.Errorf("ProfileErr code = %s", apperr.GetCode(st.ProfileErr))
	}
}

func TestLoadProfile_NetworkFailureSamePanel(t *testing.T) {
	f := newFake()
	f.addUser("google", nil)
	f.fail[fakeBase+"/users/google"] = apperr.New(apperr.ErrCodeNetwork, "boom")
	ctl := New(f)

	_ = ctl.LoadProfile(context.Background(), f.UserURL("google"))
	st := ctl.State()
	if st.ProfileStatus != StatusFailed || !st.ScrollLocked {
		t.Errorf("network failure should use the same failed panel: %v", st.ProfileStatus)
	}
}

func TestLoadProfile_ClearsScrollLock(t *testing.T) {
	f := newFake()
	f.addUser("google", makeRepos(1, 0))
	ctl := New(f)
	ctx := context.Background()

	_ = ctl.LoadProfile(ctx, f.UserURL("nobody"))
	if !ctl.State().ScrollLocked {
		t.Fatal("expected lock after failure")
	}
	if err := ctl.LoadProfile(ctx, f.UserURL("google")); err != nil {
		t.Fatal(err)
	}
	if ctl.State().ScrollLocked {
		t.Error("successful load should release the scroll lock")
	}
}

func TestSearch(t *testing.T) {
	f := newFake()
	f.addUser("octocat", makeRepos(2, 0))
	ctl := New(f)
	ctx := context.Background()

	if err := ctl.Search(ctx, "   "); err != nil {
		t.Errorf("blank search should be a no-op, got %v", err)
	}
	if f.callCount() != 0 || ctl.State().ProfileStatus != StatusIdle {
		t.Error("blank search should not fetch or change state")
	}

	if err := ctl.Search(ctx, " octocat "); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if ctl.State().Profile.Login != "octocat" {
		t.Error("search should load the trimmed username")
	}
}

func TestSearch_InvalidUsernameSkipsNetwork(t *testing.T) {
	f := newFake()
	ctl := New(f)

	err := ctl.Search(context.Background(), "../admin")
	if !apperr.Is(err, apperr.ErrCodeInvalidUsername) {
		t.Fatalf("expected INVALID_USERNAME, got %v", err)
	}
	if f.callCount() != 0 {
		t.Errorf("expected no fetch, got %d", f.callCount())
	}
	st := ctl.State()
	if st.ProfileStatus != StatusFailed || !st.ScrollLocked {
		t.Error("invalid username should show the failed profile panel")
	}
}

func TestLoadRepositories_Pages(t *testing.T) {
	f := newFake()
	f.addUser("google", makeRepos(25, 0))
	ctl := New(f)
	ctx := context.Background()
	_ = ctl.LoadProfile(ctx, f.UserURL("google"))

	if err := ctl.LoadRepositories(ctx, 3); err != nil {
		t.Fatal(err)
	}
	st := ctl.State()
	if len(st.Repos) != 5 || st.Repos[0].Name != "repo-21" {
		t.Errorf("page 3 = %d repos starting %q", len(st.Repos), st.Repos[0].Name)
	}
	links := st.PageLinks()
	if len(links) != 3 || !links[2].Active || links[0].Active {
		t.Errorf("links = %+v", links)
	}
	want := fakeBase + "/users/google/repos?sort=created&per_page=10&page=3"
	if last := f.calls[len(f.calls)-1]; last != want {
		t.Errorf("last request = %s, want %s", last, want)
	}

	if err := ctl.LoadRepositories(ctx, 0); !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("page 0 error = %v", err)
	}
}

func TestLoadRepositories_ForksArePageScoped(t *testing.T) {
	f := newFake()
	// forks at positions 3, 6, 9, 12
	f.addUser("google", makeRepos(12, 3))
	ctl := New(f, WithPageSize(5))
	ctx := context.Background()
	_ = ctl.LoadProfile(ctx, f.UserURL("google"))

	st := ctl.State()
	if len(st.Forks) != 1 || st.Forks[0].Name != "repo-3" {
		t.Errorf("page 1 forks = %+v", st.Forks)
	}
	for _, fk := range st.Forks {
		found := false
		for _, r := range st.Repos {
			if r.Name == fk.Name {
				found = true
			}
		}
		if !found || !fk.Fork {
			t.Errorf("fork %s must be a fork-flagged repo of the current page", fk.Name)
		}
	}

	_ = ctl.LoadRepositories(ctx, 3)
	st = ctl.State()
	if len(st.Forks) != 1 || st.Forks[0].Name != "repo-12" {
		t.Errorf("page 3 forks = %+v", st.Forks)
	}
}

func TestLoadRepositories_Empty(t *testing.T) {
	f := newFake()
	f.addUser("empty", nil)
	ctl := New(f)
	_ = ctl.LoadProfile(context.Background(), f.UserURL("empty"))

	st := ctl.State()
	if st.ReposStatus != StatusEmpty || st.ForksStatus() != StatusEmpty {
		t.Errorf("repos=%v forks=%v", st.ReposStatus, st.ForksStatus())
	}
	if st.TotalPages() != 0 || len(st.PageLinks()) != 0 {
		t.Error("no pagination for empty profiles")
	}
}

func TestLoadRepositories_FailureIsInline(t *testing.T) {
	f := newFake()
	f.addUser("google", makeRepos(3, 0))
	f.fail[fakeBase+"/users/google/repos"] = apperr.New(apperr.ErrCodeNetwork, "boom")
	ctl := New(f)

	if err := ctl.LoadProfile(context.Background(), f.UserURL("google")); err != nil {
		t.Fatalf("repo failure should not fail the profile load: %v", err)
	}
	st := ctl.State()
	if st.ProfileStatus != StatusReady || st.ReposStatus != StatusFailed {
		t.Errorf("profile=%v repos=%v", st.ProfileStatus, st.ReposStatus)
	}
	if st.ScrollLocked {
		t.Error("repo failure must not lock scrolling")
	}
}

func TestLoadRepositories_WithoutProfile(t *testing.T) {
	ctl := New(newFake())
	if err := ctl.LoadRepositories(context.Background(), 1); err == nil {
		t.Error("expected error without a profile")
	}
}

func TestSetPageSize(t *testing.T) {
	f := newFake()
	f.addUser("google", makeRepos(25, 0))
	ctl := New(f)
	ctx := context.Background()
	_ = ctl.LoadProfile(ctx, f.UserURL("google"))
	_ = ctl.LoadRepositories(ctx, 2)

	if err := ctl.SetPageSize(ctx, 20); err != nil {
		t.Fatal(err)
	}
	st := ctl.State()
	if st.Page != 1 || st.PageSize != 20 || len(st.Repos) != 20 || st.TotalPages() != 2 {
		t.Errorf("page=%d size=%d repos=%d pages=%d", st.Page, st.PageSize, len(st.Repos), st.TotalPages())
	}

	for _, bad := range []int{0, -1, 101} {
		before := ctl.State()
		err := ctl.SetPageSize(ctx, bad)
		if !apperr.Is(err, apperr.ErrCodeInvalidPageSize) {
			t.Errorf("SetPageSize(%d) error = %v", bad, err)
		}
		if after := ctl.State(); after.PageSize != before.PageSize || after.Page != before.Page {
			t.Errorf("SetPageSize(%d) changed state", bad)
		}
	}
}

func TestLoadPeople(t *testing.T) {
	f := newFake()
	f.addUser("google", nil)
	f.people[fakeBase+"/users/google/followers"] = []github.Person{{Login: "a"}, {Login: "b"}}
	ctl := New(f)
	ctx := context.Background()
	_ = ctl.LoadProfile(ctx, f.UserURL("google"))

	if err := ctl.LoadFollowers(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctl.LoadFollowing(ctx); err != nil {
		t.Fatal(err)
	}
	st := ctl.State()
	if st.FollowersStatus != StatusReady || len(st.Followers) != 2 {
		t.Errorf("followers = %v %d", st.FollowersStatus, len(st.Followers))
	}
	if st.FollowingStatus != StatusEmpty || len(st.Following) != 0 {
		t.Errorf("following = %v %d", st.FollowingStatus, len(st.Following))
	}
	for _, c := range f.calls {
		if strings.Contains(c, "{") {
			t.Errorf("template segment leaked into request %s", c)
		}
	}
}

func TestStaleResponseDiscarded(t *testing.T) {
	f := newFake()
	f.addUser("slow", makeRepos(3, 0))
	f.addUser("fast", makeRepos(1, 0))
	gate := make(chan struct{})
	f.gate[fakeBase+"/users/slow"] = gate
	ctl := New(f)
	ctx := context.Background()

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		slowErr = ctl.LoadProfile(ctx, f.UserURL("slow"))
	}()

	// Wait until the slow request is in flight.
	for f.callCount() == 0 {
		runtime.Gosched()
	}
	if err := ctl.LoadProfile(ctx, f.UserURL("fast")); err != nil {
		t.Fatal(err)
	}
	close(gate)
	wg.Wait()

	if !errors.Is(slowErr, ErrStale) {
		t.Errorf("slow load error = %v, want ErrStale", slowErr)
	}
	if st := ctl.State(); st.Profile == nil || st.Profile.Login != "fast" {
		t.Errorf("stale response overwrote state: %+v", st.Profile)
	}
}

func TestStaleRepositoryPageDiscarded(t *testing.T) {
	f := newFake()
	f.addUser("first", makeRepos(25, 0))
	f.addUser("second", makeRepos(3, 0))
	ctl := New(f)
	ctx := context.Background()
	if err := ctl.LoadProfile(ctx, f.UserURL("first")); err != nil {
		t.Fatal(err)
	}

	pageURL := fakeBase + "/users/first/repos?sort=created&per_page=10&page=2"
	gate := make(chan struct{})
	f.gate[pageURL] = gate
	before := f.callCount()

	var wg sync.WaitGroup
	var pageErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		pageErr = ctl.LoadRepositories(ctx, 2)
	}()

	for f.callCount() == before {
		runtime.Gosched()
	}
	if err := ctl.LoadProfile(ctx, f.UserURL("second")); err != nil {
		t.Fatal(err)
	}
	close(gate)
	wg.Wait()

	if !errors.Is(pageErr, ErrStale) {
		t.Errorf("page load error = %v, want ErrStale", pageErr)
	}
	st := ctl.State()
	if st.Profile.Login != "second" || st.Page != 1 || len(st.Repos) != 3 {
		t.Fatalf("state = %s page %d with %d repos", st.Profile.Login, st.Page, len(st.Repos))
	}
	for _, r := range st.Repos {
		if r.Name == "repo-11" {
			t.Errorf("repositories of the previous profile leaked into the page")
		}
	}
}

func TestLoadRepositories_DuringProfileSwitch(t *testing.T) {
	f := newFake()
	f.addUser("first", makeRepos(25, 0))
	f.addUser("second", makeRepos(3, 0))
	ctl := New(f)
	ctx := context.Background()
	_ = ctl.LoadProfile(ctx, f.UserURL("first"))

	gate := make(chan struct{})
	f.gate[f.UserURL("second")] = gate
	before := f.callCount()
	done := make(chan error)
	go func() { done <- ctl.LoadProfile(ctx, f.UserURL("second")) }()
	for f.callCount() == before {
		runtime.Gosched()
	}

	// The switch is in flight, so there is no profile to page through.
	if err := ctl.LoadRepositories(ctx, 2); !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("LoadRepositories during switch = %v", err)
	}
	if err := ctl.LoadFollowers(ctx); !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("LoadFollowers during switch = %v", err)
	}
	close(gate)
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	for _, c := range f.calls[before:] {
		if strings.Contains(c, "/users/first/") {
			t.Errorf("request for the previous profile after the switch: %s", c)
		}
	}
}

func TestLoadProfileAt_ProfileOnly(t *testing.T) {
	f := newFake()
	f.addUser("google", makeRepos(25, 0))
	ctl := New(f)

	if err := ctl.LoadProfileAt(context.Background(), f.UserURL("google"), 0); err != nil {
		t.Fatal(err)
	}
	if f.callCount() != 1 {
		t.Errorf("requests = %v, want the profile only", f.calls)
	}
	if st := ctl.State(); !st.HasProfile() || st.FollowersURL == "" {
		t.Error("profile should be loaded")
	}
}

func TestLoadProfileAt_PastLastPage(t *testing.T) {
	f := newFake()
	f.addUser("google", makeRepos(25, 0))
	ctl := New(f)

	if err := ctl.LoadProfileAt(context.Background(), f.UserURL("google"), 9); err != nil {
		t.Fatal(err)
	}
	st := ctl.State()
	if st.Page != 3 || len(st.Repos) != 5 || st.ReposStatus != StatusReady {
		t.Errorf("page=%d repos=%d status=%v, want the last page", st.Page, len(st.Repos), st.ReposStatus)
	}
}

func TestSearchAt_BlankIsRejected(t *testing.T) {
	f := newFake()
	ctl := New(f)

	err := ctl.SearchAt(context.Background(), "  ", 1)
	if !apperr.Is(err, apperr.ErrCodeInvalidUsername) {
		t.Fatalf("expected INVALID_USERNAME, got %v", err)
	}
	st := ctl.State()
	if f.callCount() != 0 || st.ProfileStatus != StatusFailed || !st.ScrollLocked {
		t.Errorf("calls=%d status=%v locked=%v", f.callCount(), st.ProfileStatus, st.ScrollLocked)
	}
}

func TestOnChange(t *testing.T) {
	f := newFake()
	f.addUser("google", makeRepos(1, 0))
	var seen []Status
	ctl := New(f, WithOnChange(func(s State) { seen = append(seen, s.ProfileStatus) }))
	_ = ctl.LoadProfile(context.Background(), f.UserURL("google"))

	if len(seen) < 2 || seen[0] != StatusLoading || seen[len(seen)-1] != StatusReady {
		t.Errorf("transitions = %v", seen)
	}
}
