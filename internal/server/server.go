// Package server implements the octoview web front end.
//
// Each profile request builds a fresh [profile.Controller], drives it to a
// settled state and renders that state with pkg/render/html. The only
// per-visitor state kept between requests is the theme, stored in a
// [session.Store] under an ID carried in a browser-session cookie.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/octoview/pkg/github"
	"github.com/matzehuels/octoview/pkg/profile"
	"github.com/matzehuels/octoview/pkg/render/html"
	"github.com/matzehuels/octoview/pkg/session"
)

// Client is what the server needs from the GitHub client.
type Client interface {
	profile.Fetcher
}

// Options configures a Server.
type Options struct {
	DefaultUser  string
	PerPage      int
	SessionTTL   time.Duration
	SecureCookie bool // set the Secure attribute on the session cookie
	NetworkLimit int  // max followers/followees drawn in network.svg
}

// Server serves profile pages.
type Server struct {
	client   Client
	sessions session.Store
	views    *html.Renderer
	logger   *log.Logger
	opts     Options
	router   chi.Router
}

// New creates a Server and registers its routes.
func New(client Client, sessions session.Store, logger *log.Logger, opts Options) (*Server, error) {
	views, err := html.New()
	if err != nil {
		return nil, err
	}
	if opts.DefaultUser == "" {
		opts.DefaultUser = "google"
	}
	if opts.PerPage == 0 {
		opts.PerPage = profile.DefaultPageSize
	}
	if opts.SessionTTL == 0 {
		opts.SessionTTL = session.DefaultTTL
	}
	if opts.NetworkLimit == 0 {
		opts.NetworkLimit = 30
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		client:   client,
		sessions: sessions,
		views:    views,
		logger:   logger,
		opts:     opts,
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("Accept-CH", "Sec-CH-Prefers-Color-Scheme"))
	r.Use(middleware.SetHeader("Vary", "Sec-CH-Prefers-Color-Scheme"))

	r.Get("/", s.handleHome)
	r.Get("/healthz", s.handleHealth)
	r.Get("/search", s.handleSearch)
	r.Post("/theme", s.handleTheme)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(html.Static()))))

	r.Route("/u/{login}", func(r chi.Router) {
		r.Get("/", s.handleProfile)
		r.Get("/followers", s.handlePeople(profile.LaneFollowers))
		r.Get("/following", s.handlePeople(profile.LaneFollowing))
		r.Get("/network.svg", s.handleNetwork)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newController builds a per-request controller.
func (s *Server) newController(r *http.Request, pageSize int) *profile.Controller {
	return profile.New(s.client,
		profile.WithLogger(s.logger.With("request_id", middleware.GetReqID(r.Context()))),
		profile.WithPageSize(pageSize),
	)
}

var _ Client = (*github.Client)(nil)
