package profile

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	apperr "github.com/matzehuels/octoview/pkg/errors"
	"github.com/matzehuels/octoview/pkg/github"
	"github.com/matzehuels/octoview/pkg/observability"
)

// ErrStale is returned when a response arrives after a newer load on the
// same lane started. The response is discarded and state is unchanged.
var ErrStale = errors.New("stale response discarded")

// Fetcher is the subset of the GitHub client the controller needs.
type Fetcher interface {
	UserURL(login string) string
	User(ctx context.Context, url string) (*github.Profile, error)
	Repositories(ctx context.Context, reposURL string, q github.PageQuery) ([]github.Repository, error)
	People(ctx context.Context, url string) ([]github.Person, error)
}

// Controller applies user intents to a [State], fetching what they need.
// It is safe for concurrent use.
type Controller struct {
	client   Fetcher
	logger   *log.Logger
	onChange func(State)

	mu    sync.Mutex
	state State
	gens  [laneCount]uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for load failures and stale drops.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPageSize sets the initial repository page size.
// Values outside 1..100 are ignored.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if apperr.ValidatePageSize(n) == nil {
			c.state.PageSize = n
		}
	}
}

// WithOnChange registers fn to be called with every new state.
// fn runs outside the controller lock.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// New creates a controller in the [Initial] state.
func New(client Fetcher, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		logger: log.New(io.Discard),
		state:  Initial(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// begin runs prepare on the current state and, unless it refuses, bumps
// the generation of each lane and applies the event it returned. All of it
// happens under one lock, so the returned state is the one the new
// generation belongs to.
func (c *Controller) begin(ctx context.Context, prepare func(State) (Event, error), lanes ...Lane) (uint64, State, error) {
	c.mu.Lock()
	ev, err := prepare(c.state)
	if err != nil {
		c.mu.Unlock()
		return 0, State{}, err
	}
	for _, l := range lanes {
		c.gens[l]++
	}
	gen := c.gens[lanes[0]]
	c.state = Reduce(c.state, ev)
	st := c.state
	c.mu.Unlock()

	observability.Controller().OnLoadStart(ctx, lanes[0].String(), gen)
	c.notify(st)
	return gen, st, nil
}

// beginProfile starts a profile load, which supersedes every lane.
func (c *Controller) beginProfile(ctx context.Context, url string) uint64 {
	gen, _, _ := c.begin(ctx, func(State) (Event, error) {
		return ProfileRequested{URL: url}, nil
	}, LaneProfile, LaneRepos, LaneFollowers, LaneFollowing)
	return gen
}

func errNoProfile() error {
	return apperr.New(apperr.ErrCodeInvalidInput, "no profile loaded")
}

// commit applies ev if gen is still the current generation of lane.
func (c *Controller) commit(ctx context.Context, lane Lane, gen uint64, start time.Time, ev Event, loadErr error) error {
	c.mu.Lock()
	if c.gens[lane] != gen {
		c.mu.Unlock()
		c.logger.Debug("discarding stale response", "lane", lane, "generation", gen)
		observability.Controller().OnStale(ctx, lane.String(), gen)
		return ErrStale
	}
	c.state = Reduce(c.state, ev)
	st := c.state
	c.mu.Unlock()

	observability.Controller().OnLoadComplete(ctx, lane.String(), time.Since(start), loadErr)
	c.notify(st)
	return nil
}

func (c *Controller) notify(st State) {
	if c.onChange != nil {
		c.onChange(st)
	}
}

// Search loads the profile of username and its first repository page. A
// blank query does nothing.
func (c *Controller) Search(ctx context.Context, username string) error {
	if strings.TrimSpace(username) == "" {
		return nil
	}
	return c.SearchAt(ctx, username, 1)
}

// SearchAt loads the profile of username followed by repository page page.
// A page below 1 loads the profile alone. A username GitHub would never
// accept, blank included, fails without a network call.
func (c *Controller) SearchAt(ctx context.Context, username string, page int) error {
	username = strings.TrimSpace(username)
	if err := github.ValidateLogin(username); err != nil {
		gen := c.beginProfile(ctx, username)
		c.logger.Warn("rejected username", "username", username, "err", err)
		if cerr := c.commit(ctx, LaneProfile, gen, time.Now(), ProfileFailed{Err: err}, err); cerr != nil {
			return cerr
		}
		return err
	}
	return c.LoadProfileAt(ctx, c.client.UserURL(username), page)
}

// LoadProfile fetches the profile at url and then its first repository
// page. A failed fetch leaves the page showing [MsgNoAccount] with
// scrolling locked, and the fetch error is returned.
func (c *Controller) LoadProfile(ctx context.Context, url string) error {
	return c.LoadProfileAt(ctx, url, 1)
}

// LoadProfileAt is LoadProfile followed by repository page page instead
// of page 1. A page past the last one loads the last page. A page below 1
// stops after the profile, for callers that only need its URLs.
func (c *Controller) LoadProfileAt(ctx context.Context, url string, page int) error {
	start := time.Now()
	gen := c.beginProfile(ctx, url)

	p, err := c.client.User(ctx, url)
	if err != nil {
		c.logger.Warn("profile load failed", "url", url, "code", apperr.GetCode(err), "err", err)
		if cerr := c.commit(ctx, LaneProfile, gen, start, ProfileFailed{Err: err}, err); cerr != nil {
			return cerr
		}
		return err
	}
	if err := c.commit(ctx, LaneProfile, gen, start, ProfileLoaded{Profile: p}, nil); err != nil {
		return err
	}
	c.logger.Debug("profile loaded", "login", p.Login, "repos", p.PublicRepos, "took", time.Since(start))

	if page < 1 {
		return nil
	}
	if err := c.LoadRepositories(ctx, page); errors.Is(err, ErrStale) {
		return err
	}
	return nil
}

// LoadRepositories fetches repository page page of the loaded profile,
// clamped to the last page. The fork panel is recomputed from that page
// alone. A failed fetch is logged and shown inline; the error is returned
// for the caller's logs.
func (c *Controller) LoadRepositories(ctx context.Context, page int) error {
	if page < 1 {
		return apperr.New(apperr.ErrCodeInvalidInput, "page must be at least 1, got %d", page)
	}

	start := time.Now()
	gen, st, err := c.begin(ctx, func(s State) (Event, error) {
		if !s.HasProfile() {
			return nil, errNoProfile()
		}
		if last := s.TotalPages(); last > 0 && page > last {
			page = last
		}
		return ReposRequested{Page: page}, nil
	}, LaneRepos)
	if err != nil {
		return err
	}

	repos, err := c.client.Repositories(ctx, st.ReposURL, github.PageQuery{Page: page, PerPage: st.PageSize})
	if err != nil {
		c.logger.Error("repository load failed", "login", st.Profile.Login, "page", page, "err", err)
		if cerr := c.commit(ctx, LaneRepos, gen, start, ReposFailed{Err: err}, err); cerr != nil {
			return cerr
		}
		return err
	}
	return c.commit(ctx, LaneRepos, gen, start, ReposLoaded{Page: page, Repos: repos}, nil)
}

// SetPageSize changes the repository page size and reloads page 1.
// Sizes outside 1..100 are rejected and leave state unchanged.
func (c *Controller) SetPageSize(ctx context.Context, n int) error {
	if err := apperr.ValidatePageSize(n); err != nil {
		return err
	}
	c.mu.Lock()
	c.state = Reduce(c.state, PageSizeChanged{Size: n})
	st := c.state
	c.mu.Unlock()
	c.notify(st)

	if !st.HasProfile() {
		return nil
	}
	return c.LoadRepositories(ctx, 1)
}

// LoadFollowers fetches the followers list of the loaded profile.
func (c *Controller) LoadFollowers(ctx context.Context) error {
	return c.loadPeople(ctx, LaneFollowers)
}

// LoadFollowing fetches the list of accounts the loaded profile follows.
func (c *Controller) LoadFollowing(ctx context.Context) error {
	return c.loadPeople(ctx, LaneFollowing)
}

func (c *Controller) loadPeople(ctx context.Context, lane Lane) error {
	start := time.Now()
	gen, st, err := c.begin(ctx, func(s State) (Event, error) {
		if !s.HasProfile() {
			return nil, errNoProfile()
		}
		return PeopleRequested{Lane: lane}, nil
	}, lane)
	if err != nil {
		return err
	}
	url := st.FollowersURL
	if lane == LaneFollowing {
		url = st.FollowingURL
	}

	people, err := c.client.People(ctx, url)
	if err != nil {
		c.logger.Error("people load failed", "lane", lane, "login", st.Profile.Login, "err", err)
		if cerr := c.commit(ctx, lane, gen, start, PeopleFailed{Lane: lane, Err: err}, err); cerr != nil {
			return cerr
		}
		return err
	}
	return c.commit(ctx, lane, gen, start, PeopleLoaded{Lane: lane, People: people}, nil)
}
