// Package session provides browser-session storage for UI preferences.
//
// The only value octoview persists is the color theme. It lives in a
// [Session] keyed by an opaque ID that the server hands out in a session
// cookie. The Store interface has implementations for different backends:
//   - memory: In-memory storage for a single server instance (the default)
//   - file: JSON files, surviving a server restart
//   - redis: Redis-backed storage for multi-instance deployments
//   - mongo: MongoDB-backed storage for multi-instance deployments
//
// # Usage
//
//	store, err := session.Open(ctx, session.Options{Backend: session.BackendMemory})
//	if err != nil {
//	    return err
//	}
//
//	sess, err := session.New(session.ThemeLight, session.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	store.Set(ctx, sess)
//
//	sess, err = store.Get(ctx, sessionID)
//	if sess == nil {
//	    // Session not found or expired
//	}
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperr "github.com/matzehuels/octoview/pkg/errors"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// Theme is the UI color scheme.
type Theme string

// Supported themes.
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", apperr.New(apperr.ErrCodeInvalidTheme, "unknown theme %q", s)
	}
}

// ThemeFromHint maps a Sec-CH-Prefers-Color-Scheme value to a theme.
// Anything other than "dark" yields light.
func ThemeFromHint(hint string) Theme {
	if hint == "dark" || hint == `"dark"` {
		return ThemeDark
	}
	return ThemeLight
}

// Session stores per-browser preferences.
type Session struct {
	ID        string    `json:"id" bson:"_id"`
	Theme     Theme     `json:"theme" bson:"theme"`
	ExpiresAt time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (optional, may be no-op for Redis).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL bounds how long an idle session is kept server-side. The
// cookie itself carries no Max-Age and ends with the browser session.
const DefaultTTL = 24 * time.Hour

// GenerateID creates a random session ID.
func GenerateID() string {
	return uuid.NewString()
}

// New creates a new session with the given theme.
func New(theme Theme, ttl time.Duration) (*Session, error) {
	if _, err := ParseTheme(string(theme)); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:        GenerateID(),
		Theme:     theme,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

// Touch extends the session's expiry by ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	s.ExpiresAt = time.Now().Add(ttl)
}
