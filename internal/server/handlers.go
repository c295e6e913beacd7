package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	apperr "github.com/matzehuels/octoview/pkg/errors"
	"github.com/matzehuels/octoview/pkg/profile"
	"github.com/matzehuels/octoview/pkg/render/html"
	"github.com/matzehuels/octoview/pkg/render/network"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/u/"+url.PathEscape(s.opts.DefaultUser), http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/u/"+url.PathEscape(q), http.StatusFound)
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.toggleTheme(w, r)
	if err != nil {
		s.logger.Error("theme toggle failed", "err", err)
		http.Error(w, "could not save theme", http.StatusInternalServerError)
		return
	}
	if r.Header.Get("X-Requested-With") == "fetch" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(theme))
		return
	}
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo returns the same-origin path the request came from, or "/".
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || !strings.HasPrefix(ref.Path, "/") {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

// loadProfile drives a fresh controller through the profile and the
// requested repository page. A login that cannot exist, blank included, is
// recorded as a failed profile without a request.
func (s *Server) loadProfile(r *http.Request) (*profile.Controller, error) {
	q := r.URL.Query()
	ctl := s.newController(r, s.pageSize(q.Get("per_page")))
	return ctl, ctl.SearchAt(r.Context(), chi.URLParam(r, "login"), atoiDefault(q.Get("page"), 1))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	ctl, err := s.loadProfile(r)
	tab := r.URL.Query().Get("tab")

	if err == nil {
		switch tab {
		case html.TabFollowers:
			_ = ctl.LoadFollowers(r.Context())
		case html.TabFollowing:
			_ = ctl.LoadFollowing(r.Context())
		case html.TabForks:
		default:
			tab = html.TabOverview
		}
	}

	st := ctl.State()
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		tab = html.TabOverview
	}

	view := html.PageView{
		Theme:     string(s.theme(r)),
		Query:     chi.URLParam(r, "login"),
		Login:     chi.URLParam(r, "login"),
		Tab:       tab,
		PageSizes: html.PageSizes,
		State:     st,
	}
	s.render(w, status, func(buf *bytes.Buffer) error { return s.views.Page(buf, view) })
}

func (s *Server) handlePeople(lane profile.Lane) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctl, err := s.loadProfileOnly(r)
		if err != nil {
			http.Error(w, apperr.UserMessage(err), statusFor(err))
			return
		}
		if lane == profile.LaneFollowing {
			_ = ctl.LoadFollowing(r.Context())
		} else {
			_ = ctl.LoadFollowers(r.Context())
		}
		view := html.PeopleView{Lane: lane, State: ctl.State()}
		s.render(w, http.StatusOK, func(buf *bytes.Buffer) error { return s.views.People(buf, view) })
	}
}

// loadProfileOnly fetches the profile without any repository page, for
// endpoints that only need the followers and following URLs.
func (s *Server) loadProfileOnly(r *http.Request) (*profile.Controller, error) {
	ctl := s.newController(r, s.opts.PerPage)
	if err := ctl.SearchAt(r.Context(), chi.URLParam(r, "login"), 0); err != nil {
		return nil, err
	}
	return ctl, nil
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	ctl, err := s.loadProfileOnly(r)
	if err != nil {
		http.Error(w, apperr.UserMessage(err), statusFor(err))
		return
	}

	// The two lanes are independent, so fetch them side by side.
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error { return ctl.LoadFollowers(ctx) })
	g.Go(func() error { return ctl.LoadFollowing(ctx) })
	if err := g.Wait(); err != nil {
		http.Error(w, apperr.UserMessage(err), statusFor(err))
		return
	}

	st := ctl.State()
	dot := network.ToDOT(st.Profile, st.Followers, st.Following, network.Options{Limit: s.opts.NetworkLimit})
	svg, err := renderSVG(r.Context(), dot)
	if err != nil {
		s.logger.Error("network render failed", "login", st.Profile.Login, "err", err)
		http.Error(w, "could not render network", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(svg)
}

// renderSVG is swapped out in tests.
var renderSVG = network.RenderSVG

// render buffers the output so a template error never yields a half-written
// page with a 200 status.
func (s *Server) render(w http.ResponseWriter, status int, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.logger.Error("render failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// statusFor maps a profile failure to its response status. Every failed
// profile renders the same panel; only the status differs.
func statusFor(err error) int {
	if errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	return apperr.HTTPStatus(apperr.GetCode(err))
}

// pageSize parses per_page, falling back to the configured default when it
// is missing or outside 1..MaxPageSize.
func (s *Server) pageSize(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || apperr.ValidatePageSize(n) != nil {
		return s.opts.PerPage
	}
	return n
}

func atoiDefault(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}
