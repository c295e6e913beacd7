package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/octoview/internal/server"
	"github.com/matzehuels/octoview/pkg/session"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web front end",
		Long: `Serve profile pages over HTTP.

GET / redirects to the default user (server.default_user). Theme choices
are kept in the configured session backend for session.ttl.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()
			if addr != "" {
				cfg.Server.Addr = addr
			}
			logger := loggerFromContext(ctx)

			client, closeCache, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			sessions, err := session.Open(ctx, cfg.SessionOptions())
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}
			defer sessions.Close()
			go sweepSessions(cmd, sessions, cfg.Session.TTL)

			srv, err := server.New(client, sessions, logger, server.Options{
				DefaultUser: cfg.Server.DefaultUser,
				PerPage:     cfg.Server.PerPage,
				SessionTTL:  cfg.Session.TTL,
			})
			if err != nil {
				return err
			}
			logger.Info("starting", "addr", cfg.Server.Addr, "cache", cfg.Cache.Backend, "sessions", cfg.Session.Backend)
			return srv.ListenAndServe(ctx, cfg.Server.Addr, cfg.Server.ShutdownTimeout)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// sweepSessions drops expired sessions once per TTL until the command's
// context ends. Backends with native expiry treat Cleanup as a no-op.
func sweepSessions(cmd *cobra.Command, store session.Store, ttl time.Duration) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	if ttl <= 0 {
		ttl = session.DefaultTTL
	}
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.Cleanup(ctx); err != nil {
				logger.Warn("session cleanup failed", "err", err)
			}
		}
	}
}
