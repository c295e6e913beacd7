package server

import (
	"net/http"

	"github.com/matzehuels/octoview/pkg/session"
)

const sessionCookie = "octoview_session"

// theme returns the visitor's theme. Without a session the
// Sec-CH-Prefers-Color-Scheme hint decides, falling back to light.
func (s *Server) theme(r *http.Request) session.Theme {
	if sess := s.loadSession(r); sess != nil {
		return sess.Theme
	}
	return session.ThemeFromHint(r.Header.Get("Sec-CH-Prefers-Color-Scheme"))
}

func (s *Server) loadSession(r *http.Request) *session.Session {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	sess, err := s.sessions.Get(r.Context(), c.Value)
	if err != nil {
		s.logger.Warn("session lookup failed", "err", err)
		return nil
	}
	return sess
}

// toggleTheme flips the stored theme, creating a session on first use.
func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) (session.Theme, error) {
	sess := s.loadSession(r)
	if sess == nil {
		current := session.ThemeFromHint(r.Header.Get("Sec-CH-Prefers-Color-Scheme"))
		var err error
		if sess, err = session.New(current, s.opts.SessionTTL); err != nil {
			return "", err
		}
	}
	sess.Theme = sess.Theme.Toggle()
	sess.Touch(s.opts.SessionTTL)
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		return "", err
	}

	// No MaxAge or Expires: the cookie lives as long as the browser session.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return sess.Theme, nil
}
