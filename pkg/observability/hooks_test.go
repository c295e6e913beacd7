package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Controller hooks
	p := NoopControllerHooks{}
	p.OnLoadStart(ctx, "profile", 1)
	p.OnLoadComplete(ctx, "profile", time.Second, nil)
	p.OnLoadComplete(ctx, "repos", time.Second, errors.New("boom"))
	p.OnStale(ctx, "followers", 3)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "user")
	c.OnCacheMiss(ctx, "repos")
	c.OnCacheSet(ctx, "people", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "api.github.com", "/users/google")
	h.OnResponse(ctx, "GET", "api.github.com", "/users/google", 200, time.Second)
	h.OnError(ctx, "GET", "api.github.com", "/users/google", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Controller().(NoopControllerHooks); !ok {
		t.Error("Controller() should return NoopControllerHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customController := &testControllerHooks{}
	SetControllerHooks(customController)
	if Controller() != customController {
		t.Error("SetControllerHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Controller().(NoopControllerHooks); !ok {
		t.Error("Reset() should restore NoopControllerHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testControllerHooks{}
	SetControllerHooks(custom)

	// Setting nil should be ignored
	SetControllerHooks(nil)

	if Controller() != custom {
		t.Error("SetControllerHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testControllerHooks struct{ NoopControllerHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
