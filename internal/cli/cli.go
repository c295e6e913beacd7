// Package cli implements the octoview command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/octoview/internal/config"
	"github.com/matzehuels/octoview/pkg/buildinfo"
	"github.com/matzehuels/octoview/pkg/cache"
	"github.com/matzehuels/octoview/pkg/github"
	"github.com/matzehuels/octoview/pkg/httputil"
	"github.com/matzehuels/octoview/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "octoview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	envFile    string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Octoview browses GitHub profiles",
		Long: `Octoview shows a GitHub account's profile, its public repositories page by
page, the forks on the current page, and who it follows and is followed by.

Run it as a web server (serve), print a profile once (show), or browse
interactively in the terminal (browse).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath, c.envFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			c.Logger.Debug("config loaded", "config", cfg.String())
			registerHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", "", "dotenv file read before the environment (default .env)")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.networkCommand())
	root.AddCommand(c.authCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config returns the loaded configuration, or the defaults when a command
// runs without the root pre-run (as in tests).
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient builds the GitHub client from configuration. The returned
// cleanup closes the cache backend.
func (c *CLI) newClient(ctx context.Context) (*github.Client, func(), error) {
	cfg := c.config()

	store, err := cache.Open(ctx, cfg.CacheOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("open cache: %w", err)
	}

	token, source := github.ResolveToken(cfg.GitHub.Token, cfg.GitHub.BaseURL, cfg.GitHub.UseGHAuth)
	if source != "" {
		c.Logger.Debug("authenticated requests", "source", source)
	}

	client := github.NewClient(github.Options{
		BaseURL:  cfg.GitHub.BaseURL,
		Token:    token,
		Timeout:  cfg.GitHub.Timeout,
		Retry:    httputil.Policy{Attempts: cfg.GitHub.RetryAttempts, Delay: cfg.GitHub.RetryDelay},
		Cache:    store,
		CacheTTL: cfg.Cache.TTL,
	})
	cleanup := func() {
		if err := store.Close(); err != nil {
			c.Logger.Warn("close cache", "err", err)
		}
	}
	return client, cleanup, nil
}

// registerHooks routes observability events to the logger at debug level.
func registerHooks(l *log.Logger) {
	h := logHooks{l: l.WithPrefix("obs")}
	observability.SetControllerHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}
