package network

import (
	"strings"
	"testing"

	"github.com/matzehuels/octoview/pkg/github"
)

func TestToDOT(t *testing.T) {
	p := &github.Profile{Login: "octocat", Name: "The Octocat", Type: "User", HTMLURL: "https://github.com/octocat"}
	followers := []github.Person{{Login: "alice"}, {Login: "bob"}}
	following := []github.Person{{Login: "bob"}, {Login: "carol"}}

	dot := ToDOT(p, followers, following, Options{})

	for _, want := range []string{
		`"octocat" [label="The Octocat", shape=ellipse`,
		`"alice" -> "octocat";`,
		`"bob" -> "octocat" [dir=both`,
		`"octocat" -> "carol";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Count(dot, `"bob" [URL=`) != 1 {
		t.Error("mutual follow should produce a single node")
	}
	if !strings.HasPrefix(dot, "digraph G {") || !strings.HasSuffix(dot, "}\n") {
		t.Error("malformed graph wrapper")
	}
}

func TestToDOT_Organization(t *testing.T) {
	p := &github.Profile{Login: "google", Type: "Organization"}
	dot := ToDOT(p, nil, nil, Options{})
	if !strings.Contains(dot, `"google" [label="google", shape=box`) {
		t.Errorf("organization should be a box labelled by login:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Error("no edges expected without people")
	}
}

func TestToDOT_Limit(t *testing.T) {
	p := &github.Profile{Login: "x"}
	var followers []github.Person
	for _, l := range []string{"a", "b", "c", "d"} {
		followers = append(followers, github.Person{Login: l})
	}
	dot := ToDOT(p, followers, nil, Options{Limit: 2})
	if strings.Count(dot, "->") != 2 {
		t.Errorf("expected 2 edges:\n%s", dot)
	}
}

func TestToDOT_QuotesLogins(t *testing.T) {
	p := &github.Profile{Login: "x", Name: `evil"name`}
	dot := ToDOT(p, nil, nil, Options{})
	if !strings.Contains(dot, `label="evil\"name"`) {
		t.Errorf("label not escaped:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("unexpected root element: %s", out)
	}
	if !strings.Contains(out, "<g/>") {
		t.Error("body should be preserved")
	}

	untouched := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(untouched)) != string(untouched) {
		t.Error("SVG without viewBox should be unchanged")
	}
}
