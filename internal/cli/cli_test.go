package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/matzehuels/octoview/internal/config"
	"github.com/matzehuels/octoview/pkg/cache"
	apperr "github.com/matzehuels/octoview/pkg/errors"
	"github.com/matzehuels/octoview/pkg/profile"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// captureOutput points the status printers at a buffer for one test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := out
	out = &buf
	t.Cleanup(func() { out = prev })
	return &buf
}

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "")
	c := New(io.Discard, LogInfo)
	c.cfg = config.Default()
	return c
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// fakeGitHub serves a user "octo" with 12 repositories.
func fakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users/octo":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"login":         "octo",
				"name":          "Octo Cat",
				"public_repos":  12,
				"repos_url":     srv.URL + "/users/octo/repos",
				"followers_url": srv.URL + "/users/octo/followers",
				"following_url": srv.URL + "/users/octo/following{/other_user}",
			})
		case "/users/octo/repos":
			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			size, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
			var repos []map[string]any
			for i := (page - 1) * size; i < page*size && i < 12; i++ {
				repos = append(repos, map[string]any{"name": fmt.Sprintf("repo-%02d", i), "fork": i == 3})
			}
			_ = json.NewEncoder(w).Encode(repos)
		case "/users/octo/followers":
			_, _ = io.WriteString(w, `[{"login":"alice"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"serve", "show", "browse", "network", "auth", "cache", "config", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing %q", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("root command should take --config")
	}
}

func TestShow(t *testing.T) {
	c := newTestCLI(t)
	c.cfg.GitHub.BaseURL = fakeGitHub(t).URL

	got, err := execute(t, c.showCommand(), "octo", "--per-page", "5", "--page", "2")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"Octo Cat", "@octo", "repo-05", "repo-09"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "repo-04") || strings.Contains(got, "repo-10") {
		t.Errorf("page 2 should only list repo-05..repo-09:\n%s", got)
	}
}

func TestShow_Forks(t *testing.T) {
	c := newTestCLI(t)
	c.cfg.GitHub.BaseURL = fakeGitHub(t).URL

	got, err := execute(t, c.showCommand(), "octo", "--tab", "forks")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(got, "repo-03") || strings.Contains(got, "repo-02") {
		t.Errorf("forks tab should list only the fork on page 1:\n%s", got)
	}
}

func TestShow_Followers(t *testing.T) {
	c := newTestCLI(t)
	c.cfg.GitHub.BaseURL = fakeGitHub(t).URL

	got, err := execute(t, c.showCommand(), "octo", "--tab", "followers")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(got, "alice") {
		t.Errorf("followers tab should list alice:\n%s", got)
	}
}

func TestShow_NotFound(t *testing.T) {
	c := newTestCLI(t)
	c.cfg.GitHub.BaseURL = fakeGitHub(t).URL

	got, err := execute(t, c.showCommand(), "ghost")
	if !apperr.Is(err, apperr.ErrCodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
	if !strings.Contains(got, profile.MsgNoAccount) {
		t.Errorf("output should show the no-account message:\n%s", got)
	}
}

func TestShow_BadFlags(t *testing.T) {
	c := newTestCLI(t)
	if _, err := execute(t, c.showCommand(), "octo", "--tab", "stars"); !apperr.Is(err, apperr.ErrCodeInvalidInput) {
		t.Errorf("unknown tab: err = %v", err)
	}
	c = newTestCLI(t)
	if _, err := execute(t, c.showCommand(), "octo", "--per-page", "500"); !apperr.Is(err, apperr.ErrCodeInvalidPageSize) {
		t.Errorf("oversized page: err = %v", err)
	}
}

func TestNetwork_DOT(t *testing.T) {
	c := newTestCLI(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/users/octo":
			_, _ = io.WriteString(w, `{"login":"octo","followers_url":"`+"http://"+r.Host+`/f","following_url":"`+"http://"+r.Host+`/g{/other_user}"}`)
		case "/f":
			_, _ = io.WriteString(w, `[{"login":"alice"},{"login":"bob"}]`)
		case "/g":
			_, _ = io.WriteString(w, `[{"login":"alice"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	c.cfg.GitHub.BaseURL = srv.URL

	got, err := execute(t, c.networkCommand(), "octo", "--dot")
	if err != nil {
		t.Fatalf("network: %v", err)
	}
	if !strings.HasPrefix(got, "digraph") {
		t.Errorf("expected DOT output, got:\n%s", got)
	}
	for _, want := range []string{"octo", "alice", "bob"} {
		if !strings.Contains(got, want) {
			t.Errorf("DOT missing %q", want)
		}
	}
}

func TestCacheCommands(t *testing.T) {
	status := captureOutput(t)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := newTestCLI(t)
	dir := config.CacheDir()

	got, err := execute(t, c.cacheCommand(), "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(got) != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}

	if _, err := execute(t, c.cacheCommand(), "clear"); err != nil {
		t.Fatalf("clear on missing dir: %v", err)
	}
	if !strings.Contains(status.String(), "Cache is empty") {
		t.Errorf("missing dir should report an empty cache: %q", status.String())
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	ctx := context.Background()
	_ = fc.Set(ctx, "http:user:a", []byte("{}"), 0)
	_ = fc.Set(ctx, "http:repos:b", []byte("[]"), 0)

	status.Reset()
	if _, err := execute(t, c.cacheCommand(), "clear"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !strings.Contains(status.String(), "Cleared 2 cached entries") {
		t.Errorf("unexpected clear output: %q", status.String())
	}
}

func TestConfigCommand(t *testing.T) {
	c := newTestCLI(t)
	c.cfg.GitHub.Token = "ghp_secret"

	got, err := execute(t, c.configCommand())
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(got, `default_user = "google"`) {
		t.Errorf("config output missing default user:\n%s", got)
	}
	if strings.Contains(got, "ghp_secret") {
		t.Error("config output must mask the token")
	}
}
