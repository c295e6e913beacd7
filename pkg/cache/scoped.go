package cache

// Keyer builds cache keys for GitHub resources.
type Keyer interface {
	// URLKey returns the key for a GET of url within namespace
	// (e.g. "user", "repos", "people").
	URLKey(namespace, url string) string
}

// DefaultKeyer produces keys of the form "http:<namespace>:<sha256(url)>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// URLKey implements Keyer.
func (DefaultKeyer) URLKey(namespace, url string) string {
	return hashKey("http:"+namespace, url)
}

// ScopedKeyer wraps a Keyer with a prefix for isolation.
// octoview scopes authenticated responses by a hash of the token so that
// data fetched with one credential is never served to another.
//
// Example usage:
//
//	// Token-specific keys
//	authKeyer := NewScopedKeyer(NewDefaultKeyer(), "token:"+Hash([]byte(token))[:12]+":")
//
//	// Anonymous keys
//	anonKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// URLKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) URLKey(namespace, url string) string {
	return k.prefix + k.inner.URLKey(namespace, url)
}
