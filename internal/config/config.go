// Package config loads octoview settings.
//
// Values are layered, later sources winning:
//  1. built-in defaults ([Default])
//  2. a TOML file ($XDG_CONFIG_HOME/octoview/config.toml or --config)
//  3. a .env file in the working directory
//  4. process environment (OCTOVIEW_*)
//
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/octoview/pkg/cache"
	apperr "github.com/matzehuels/octoview/pkg/errors"
	"github.com/matzehuels/octoview/pkg/github"
	"github.com/matzehuels/octoview/pkg/session"
)

const appName = "octoview"

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	GitHub  GitHubConfig  `toml:"github"`
	Cache   CacheConfig   `toml:"cache"`
	Session SessionConfig `toml:"session"`
	Redis   RedisConfig   `toml:"redis"`
	Mongo   MongoConfig   `toml:"mongo"`

	// Theme is the terminal theme for show and browse.
	Theme string `toml:"theme"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	DefaultUser     string        `toml:"default_user"`
	PerPage         int           `toml:"per_page"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// GitHubConfig configures the API client.
type GitHubConfig struct {
	BaseURL       string        `toml:"base_url"`
	Token         string        `toml:"token"`
	UseGHAuth     bool          `toml:"use_gh_auth"`
	RetryAttempts int           `toml:"retry_attempts"`
	RetryDelay    time.Duration `toml:"retry_delay"`
	Timeout       time.Duration `toml:"timeout"`
}

// CacheConfig selects the response cache backend.
type CacheConfig struct {
	Backend string        `toml:"backend"` // none, file, redis
	Dir     string        `toml:"dir"`
	TTL     time.Duration `toml:"ttl"`
}

// SessionConfig selects where theme sessions are kept.
type SessionConfig struct {
	Backend string        `toml:"backend"` // memory, file, redis, mongo
	Dir     string        `toml:"dir"`
	TTL     time.Duration `toml:"ttl"`
}

// RedisConfig is shared by the redis cache and session backends.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the mongo session backend.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// Default returns the built-in configuration: one attempt, no timeout,
// no cache, in-memory sessions.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			DefaultUser:     "google",
			PerPage:         10,
			ShutdownTimeout: 10 * time.Second,
		},
		GitHub: GitHubConfig{
			BaseURL:       github.DefaultBaseURL,
			RetryAttempts: 1,
			RetryDelay:    500 * time.Millisecond,
		},
		Cache: CacheConfig{
			Backend: cache.BackendNone,
			TTL:     10 * time.Minute,
		},
		Session: SessionConfig{
			Backend: session.BackendMemory,
			TTL:     session.DefaultTTL,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Mongo: MongoConfig{Database: appName},
		Theme: string(session.ThemeDark),
	}
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// Load builds the configuration from path (empty for the default
// location), envFile (empty for ".env") and the process environment.
// A missing default file or .env is not an error; a missing explicit
// path is.
func Load(path, envFile string) (*Config, error) {
	return load(path, envFile, os.LookupEnv)
}

func load(path, envFile string, lookup LookupFunc) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}

	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "read %s", envFile)
	}
	layered := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := cfg.applyEnv(layered); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return apperr.New(apperr.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// applyEnv overrides fields from OCTOVIEW_* variables.
func (c *Config) applyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "%s", key)
		}
		*dst = n
		return nil
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "%s", key)
		}
		*dst = d
		return nil
	}
	flag := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return apperr.Wrap(apperr.ErrCodeInvalidConfig, err, "%s", key)
		}
		*dst = b
		return nil
	}

	str("OCTOVIEW_ADDR", &c.Server.Addr)
	str("OCTOVIEW_DEFAULT_USER", &c.Server.DefaultUser)
	str("OCTOVIEW_GITHUB_API", &c.GitHub.BaseURL)
	str("OCTOVIEW_GITHUB_TOKEN", &c.GitHub.Token)
	str("OCTOVIEW_CACHE_BACKEND", &c.Cache.Backend)
	str("OCTOVIEW_CACHE_DIR", &c.Cache.Dir)
	str("OCTOVIEW_SESSION_BACKEND", &c.Session.Backend)
	str("OCTOVIEW_SESSION_DIR", &c.Session.Dir)
	str("OCTOVIEW_REDIS_ADDR", &c.Redis.Addr)
	str("OCTOVIEW_REDIS_PASSWORD", &c.Redis.Password)
	str("OCTOVIEW_MONGO_URI", &c.Mongo.URI)
	str("OCTOVIEW_MONGO_DATABASE", &c.Mongo.Database)
	str("OCTOVIEW_THEME", &c.Theme)

	return errors.Join(
		num("OCTOVIEW_PER_PAGE", &c.Server.PerPage),
		num("OCTOVIEW_RETRY_ATTEMPTS", &c.GitHub.RetryAttempts),
		num("OCTOVIEW_REDIS_DB", &c.Redis.DB),
		dur("OCTOVIEW_RETRY_DELAY", &c.GitHub.RetryDelay),
		dur("OCTOVIEW_TIMEOUT", &c.GitHub.Timeout),
		dur("OCTOVIEW_CACHE_TTL", &c.Cache.TTL),
		dur("OCTOVIEW_SESSION_TTL", &c.Session.TTL),
		flag("OCTOVIEW_USE_GH_AUTH", &c.GitHub.UseGHAuth),
	)
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return apperr.New(apperr.ErrCodeInvalidConfig, format, args...)
	}

	if c.Server.Addr == "" {
		return invalid("server.addr must not be empty")
	}
	if err := github.ValidateLogin(c.Server.DefaultUser); err != nil {
		return invalid("server.default_user: %s", apperr.UserMessage(err))
	}
	if err := apperr.ValidatePageSize(c.Server.PerPage); err != nil {
		return invalid("server.per_page: %s", apperr.UserMessage(err))
	}
	if c.GitHub.BaseURL == "" {
		return invalid("github.base_url must not be empty")
	}
	if c.GitHub.RetryAttempts < 1 {
		return invalid("github.retry_attempts must be at least 1, got %d", c.GitHub.RetryAttempts)
	}
	if c.GitHub.Timeout < 0 || c.GitHub.RetryDelay < 0 {
		return invalid("github durations must not be negative")
	}

	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile:
	case cache.BackendRedis:
		if c.Redis.Addr == "" {
			return invalid("cache.backend = redis requires redis.addr")
		}
	default:
		return invalid("cache.backend %q: want none, file or redis", c.Cache.Backend)
	}

	switch c.Session.Backend {
	case session.BackendMemory, session.BackendFile:
	case session.BackendRedis:
		if c.Redis.Addr == "" {
			return invalid("session.backend = redis requires redis.addr")
		}
	case session.BackendMongo:
		if c.Mongo.URI == "" {
			return invalid("session.backend = mongo requires mongo.uri")
		}
	default:
		return invalid("session.backend %q: want memory, file, redis or mongo", c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return invalid("session.ttl must be positive")
	}

	if _, err := session.ParseTheme(c.Theme); err != nil {
		return invalid("theme: %s", apperr.UserMessage(err))
	}
	return nil
}

// Encode writes c as TOML with secrets redacted.
func (c *Config) Encode(w io.Writer) error {
	out := *c
	if out.GitHub.Token != "" {
		out.GitHub.Token = "********"
	}
	if out.Redis.Password != "" {
		out.Redis.Password = "********"
	}
	if out.Mongo.URI != "" {
		out.Mongo.URI = redactURI(out.Mongo.URI)
	}
	return toml.NewEncoder(w).Encode(out)
}

// CacheOptions returns the options for [cache.Open].
func (c *Config) CacheOptions() cache.Options {
	dir := c.Cache.Dir
	if dir == "" {
		dir = CacheDir()
	}
	return cache.Options{
		Backend: c.Cache.Backend,
		Dir:     dir,
		Redis:   cache.RedisConfig{Addr: c.Redis.Addr, Password: c.Redis.Password, DB: c.Redis.DB},
	}
}

// SessionOptions returns the options for [session.Open].
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Backend: c.Session.Backend,
		Dir:     c.Session.Dir,
		Redis:   session.RedisConfig{Addr: c.Redis.Addr, Password: c.Redis.Password, DB: c.Redis.DB},
		Mongo:   session.MongoConfig{URI: c.Mongo.URI, Database: c.Mongo.Database},
	}
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns $XDG_CONFIG_HOME/octoview/config.toml, or "" when
// no home directory is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// CacheDir returns the cache directory using XDG standard (~/.cache/octoview/).
func CacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

func redactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.User == nil {
		return uri
	}
	u.User = url.User("****")
	return u.String()
}

// String is a short human-readable summary for logs.
func (c *Config) String() string {
	return fmt.Sprintf("addr=%s default_user=%s per_page=%d cache=%s session=%s",
		c.Server.Addr, c.Server.DefaultUser, c.Server.PerPage, c.Cache.Backend, c.Session.Backend)
}
