// Package render groups the presenters for profile state.
//
// # Overview
//
// Every presenter takes a [profile.State] and never fetches anything
// itself, so the web server, the CLI and the TUI show the same thing for
// the same state:
//
//   - [html]: full pages and followers/following fragments
//   - [term]: lipgloss output for show and browse
//   - [network]: the follow graph as DOT, rendered to SVG with Graphviz
//
// # Network Diagrams
//
// The [network] subpackage draws the account in the middle with its
// followers and followees around it. Mutual follows get one two-headed
// edge.
//
//	dot := network.ToDOT(st.Profile, st.Followers, st.Following, network.Options{Limit: 30})
//	svg, err := network.RenderSVG(ctx, dot)
//
// [profile.State]: github.com/matzehuels/octoview/pkg/profile#State
// [html]: github.com/matzehuels/octoview/pkg/render/html
// [term]: github.com/matzehuels/octoview/pkg/render/term
// [network]: github.com/matzehuels/octoview/pkg/render/network
package render
