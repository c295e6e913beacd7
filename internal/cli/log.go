package cli

// Logging for octoview commands. Every command logs through a charm logger
// carried on the command context; --verbose lowers the level to debug,
// which also surfaces the observability events below.

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Loaded @google (412ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks writes controller, cache and HTTP events as debug lines.
type logHooks struct {
	l *log.Logger
}

func (h logHooks) OnLoadStart(_ context.Context, lane string, gen uint64) {
	h.l.Debug("load start", "lane", lane, "gen", gen)
}

func (h logHooks) OnLoadComplete(_ context.Context, lane string, d time.Duration, err error) {
	if err != nil {
		h.l.Debug("load failed", "lane", lane, "took", d.Round(time.Millisecond), "err", err)
		return
	}
	h.l.Debug("load done", "lane", lane, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnStale(_ context.Context, lane string, gen uint64) {
	h.l.Debug("stale response dropped", "lane", lane, "gen", gen)
}

func (h logHooks) OnCacheHit(_ context.Context, ns string)  { h.l.Debug("cache hit", "ns", ns) }
func (h logHooks) OnCacheMiss(_ context.Context, ns string) { h.l.Debug("cache miss", "ns", ns) }

func (h logHooks) OnCacheSet(_ context.Context, ns string, size int) {
	h.l.Debug("cache set", "ns", ns, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.l.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.l.Debug("http response", "method", method, "path", path, "status", status, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.l.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}
