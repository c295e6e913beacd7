// Package pkg provides the core libraries for octoview, a GitHub profile
// viewer.
//
// # Overview
//
// Octoview shows a GitHub account's profile, its public repositories one
// page at a time, the forks on the current page, and who the account
// follows and is followed by. The same state drives a web front end and a
// terminal UI.
//
// # Architecture
//
// The typical data flow:
//
//	GitHub REST API
//	       ↓
//	  [github] package (fetch, classify errors, cache raw responses)
//	       ↓
//	  [profile] package (controller: events → Reduce → State)
//	       ↓
//	  [render/html] or [render/term] (present the State)
//
// # Quick Start
//
// Load a profile and print its first repository page:
//
//	client := github.NewClient(github.Options{})
//	ctl := profile.New(client)
//	if err := ctl.Search(ctx, "google"); err != nil {
//	    // The state now shows profile.MsgNoAccount.
//	}
//	fmt.Print(term.New("dark").Page(ctl.State()))
//
// # Main Packages
//
// [github] - REST client for users, repositories and followers. Maps 404,
// rate limiting and transport failures to [errors] codes, retries
// retryable failures per [httputil.Policy], and stores raw bodies in a
// [cache.Cache].
//
// [profile] - The profile controller. All mutations go through the pure
// [profile.Reduce]; each lane (profile, repos, followers, following) has a
// generation counter so a slow response never overwrites a newer one.
//
// [render/html] - Server-rendered pages and fragments with embedded
// templates, CSS and JS.
//
// [render/term] - lipgloss rendering for the CLI and TUI.
//
// [render/network] - Follow graph as DOT and SVG via Graphviz.
//
// [session] - Per-browser theme sessions with memory, file, Redis and
// MongoDB stores.
//
// [cache] - Byte caches (null, file, Redis) with namespaced keys.
//
// [errors] - Error codes shared by every layer, with HTTP status mapping.
//
// [observability] - Hooks for controller, cache and HTTP events.
//
// # Testing
//
//	go test ./...
//
// [github]: https://pkg.go.dev/github.com/matzehuels/octoview/pkg/github
// [profile]: https://pkg.go.dev/github.com/matzehuels/octoview/pkg/profile
// [profile.Reduce]: https://pkg.go.dev/github.com/matzehuels/octoview/pkg/profile#Reduce
// [render/html]: https://pkg.go.dev/github.com/matzehuels/octoview/pkg/render/html
// [render/term]: https://pkg.go.dev/github.com/matzehuels/octoview/pkg/render/term
// [render/network]: https://pkg.go.dev/github.com/matzehuels/octoview/pkg/render/network
// [session]: https://pkg.go.dev/github.com/matzehuels/octoview/pkg/session
// [cache]: https://pkg.go.dev/github.com/matzehuels/octoview/pkg/cache
// [cache.Cache]: https://pkg.go.dev/github.com/matzehuels/octoview/pkg/cache#Cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/octoview/pkg/errors
// [httputil.Policy]: https://pkg.go.dev/github.com/matzehuels/octoview/pkg/httputil#Policy
// [observability]: https://pkg.go.dev/github.com/matzehuels/octoview/pkg/observability
package pkg
