package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/octoview/pkg/buildinfo"
	"github.com/matzehuels/octoview/pkg/cache"
	apperr "github.com/matzehuels/octoview/pkg/errors"
	"github.com/matzehuels/octoview/pkg/httputil"
	"github.com/matzehuels/octoview/pkg/observability"
)

// DefaultBaseURL is the public GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

var (
	// ErrNotFound is returned when GitHub answers 404 for a resource.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures and unexpected statuses.
	ErrNetwork = errors.New("network error")

	// ErrRateLimited is returned when the API rate limit is exhausted.
	ErrRateLimited = errors.New("rate limited")
)

// Options configures a [Client]. The zero value talks to api.github.com
// anonymously with a single attempt, no cache and no timeout.
type Options struct {
	BaseURL    string          // API root, defaults to DefaultBaseURL
	Token      string          // Optional bearer token
	Timeout    time.Duration   // Per-request timeout, 0 disables it
	Retry      httputil.Policy // Zero value makes one attempt
	Cache      cache.Cache     // nil disables caching
	CacheTTL   time.Duration   // TTL for cached responses
	HTTPClient *http.Client    // Overrides the default transport
}

// Client fetches GitHub REST resources and decodes them into Go values.
// It handles optional caching, retries, and authentication headers.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	retry   httputil.Policy
	headers map[string]string
	baseURL string
}

// NewClient creates a Client from opts.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	c := opts.Cache
	if c == nil {
		c = cache.NewNullCache()
	}

	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
		"User-Agent":           "octoview/" + buildinfo.Version,
	}
	keyer := cache.NewDefaultKeyer()
	if opts.Token != "" {
		headers["Authorization"] = "Bearer " + opts.Token
		keyer = cache.NewScopedKeyer(keyer, "token:"+cache.Hash([]byte(opts.Token))[:12]+":")
	}

	return &Client{
		http:    hc,
		cache:   c,
		keyer:   keyer,
		ttl:     opts.CacheTTL,
		retry:   opts.Retry,
		headers: headers,
		baseURL: base,
	}
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// Fetch issues a GET for an absolute url and JSON-decodes the 2xx body
// into v. Any non-2xx status or transport failure is returned as an error.
func (c *Client) Fetch(ctx context.Context, url string, v any) error {
	return c.cached(ctx, "raw", url, v)
}

// cached serves url from the cache when possible. On a miss the request is
// run under the retry policy and the raw body is stored for the next caller.
func (c *Client) cached(ctx context.Context, namespace, url string, v any) error {
	key := c.keyer.URLKey(namespace, url)
	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		if json.Unmarshal(data, v) == nil {
			observability.Cache().OnCacheHit(ctx, namespace)
			return nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, namespace)

	var body []byte
	err := c.retry.Do(ctx, func() error {
		var err error
		body, err = c.get(ctx, url)
		return err
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return apperr.Wrap(apperr.ErrCodeDecode, err, "decode %s", url)
	}
	if err := c.cache.Set(ctx, key, body, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, namespace, len(body))
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, host, path, err)
		return nil, transportError(rawURL, err)
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp, time.Now()); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(rawURL, err)
	}
	return data, nil
}

func transportError(rawURL string, err error) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return httputil.Retryable(apperr.Wrap(apperr.ErrCodeTimeout, fmt.Errorf("%w: %v", ErrNetwork, err), "GET %s", redact(rawURL)))
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return httputil.Retryable(apperr.Wrap(apperr.ErrCodeNetwork, fmt.Errorf("%w: %v", ErrNetwork, err), "GET %s", redact(rawURL)))
}

// checkStatus classifies a response. 404 is not found; 403 or 429 with an
// exhausted quota is rate limited; 5xx is retryable.
func checkStatus(resp *http.Response, now time.Time) error {
	code := resp.StatusCode
	var path string
	if resp.Request != nil {
		path = resp.Request.URL.Path
	}
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return apperr.Wrap(apperr.ErrCodeNotFound, ErrNotFound, "GET %s", path)
	case code == http.StatusTooManyRequests,
		code == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		rl := &apperr.RateLimitedError{RetryAfter: retryAfter(resp.Header, now)}
		return fmt.Errorf("%w: %w", ErrRateLimited, rl)
	case code >= 500:
		return httputil.Retryable(apperr.Wrap(apperr.ErrCodeNetwork, fmt.Errorf("%w: status %d", ErrNetwork, code), "GET %s", path))
	default:
		return apperr.Wrap(apperr.ErrCodeNetwork, fmt.Errorf("%w: status %d", ErrNetwork, code), "GET %s", path)
	}
}

// retryAfter reads Retry-After (seconds) or X-RateLimit-Reset (unix time).
func retryAfter(h http.Header, now time.Time) time.Duration {
	if s := h.Get("Retry-After"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	if s := h.Get("X-RateLimit-Reset"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			if d := time.Unix(n, 0).Sub(now); d > 0 {
				return d
			}
		}
	}
	return 0
}

func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.User = nil
	return u.String()
}
