package network

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/octoview/pkg/github"
)

// Options configures the follow-network diagram.
type Options struct {
	// Limit caps how many followers and how many followees are drawn.
	// Zero draws everything the lists contain.
	Limit int
}

// ToDOT builds a Graphviz DOT graph centered on p. Followers point at p,
// p points at the accounts it follows, and mutual follows get a single
// two-headed edge.
func ToDOT(p *github.Profile, followers, following []github.Person, opts Options) string {
	followers = limit(followers, opts.Limit)
	following = limit(following, opts.Limit)

	in := loginSet(followers)
	out := loginSet(following)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.2;\n")
	buf.WriteString("\n")

	shape := "box"
	if !p.IsOrganization() {
		shape = "ellipse"
	}
	fmt.Fprintf(&buf, "  %q [label=%q, shape=%s, fillcolor=\"#ddf4ff\", penwidth=2, URL=%q];\n",
		p.Login, p.DisplayName(), shape, p.HTMLURL)

	for _, login := range sortedUnion(in, out) {
		fmt.Fprintf(&buf, "  %q [URL=%q];\n", login, "https://github.com/"+login)
	}

	buf.WriteString("\n")
	for _, login := range sortedUnion(in, out) {
		switch {
		case in[login] && out[login]:
			fmt.Fprintf(&buf, "  %q -> %q [dir=both, color=\"#1f883d\"];\n", login, p.Login)
		case in[login]:
			fmt.Fprintf(&buf, "  %q -> %q;\n", login, p.Login)
		default:
			fmt.Fprintf(&buf, "  %q -> %q;\n", p.Login, login)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func limit(people []github.Person, n int) []github.Person {
	if n > 0 && len(people) > n {
		return people[:n]
	}
	return people
}

func loginSet(people []github.Person) map[string]bool {
	m := make(map[string]bool, len(people))
	for _, p := range people {
		m[p.Login] = true
	}
	return m
}

func sortedUnion(a, b map[string]bool) []string {
	out := make([]string, 0, len(a)+len(b))
	for k := range a {
		out = append(out, k)
	}
	for k := range b {
		if !a[k] {
			out = append(out, k)
		}
	}
	slices.SortFunc(out, func(x, y string) int {
		return strings.Compare(strings.ToLower(x), strings.ToLower(y))
	})
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one
// that scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
