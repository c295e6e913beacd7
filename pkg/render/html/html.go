package html

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strings"

	"github.com/matzehuels/octoview/pkg/github"
	"github.com/matzehuels/octoview/pkg/profile"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Tabs in display order.
const (
	TabOverview  = "overview"
	TabForks     = "forks"
	TabFollowers = "followers"
	TabFollowing = "following"
)

// PageSizes offered by the per-page selector.
var PageSizes = []int{5, 10, 20, 30, 50, 100}

// PageView is the data behind a full profile page.
type PageView struct {
	Theme     string
	Query     string // search box contents
	Login     string // login in the URL, kept when the profile failed
	Tab       string
	PageSizes []int
	State     profile.State
}

// PeopleView is the data behind a followers or following fragment.
type PeopleView struct {
	Lane  profile.Lane
	State profile.State
}

// Renderer executes the embedded templates.
type Renderer struct {
	t *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	t, err := template.New("octoview").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{t: t}, nil
}

// Static returns the embedded stylesheet and script.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page renders a complete HTML document.
func (r *Renderer) Page(w io.Writer, v PageView) error {
	if v.Tab == "" {
		v.Tab = TabOverview
	}
	if v.PageSizes == nil {
		v.PageSizes = PageSizes
	}
	return r.t.ExecuteTemplate(w, "page", v)
}

// People renders the followers or following panel body.
func (r *Renderer) People(w io.Writer, v PeopleView) error {
	return r.t.ExecuteTemplate(w, "people-panel", v)
}

var funcs = template.FuncMap{
	"seq": func(n int) []int {
		s := make([]int, n)
		for i := range s {
			s[i] = i + 1
		}
		return s
	},
	"website": website,
	"twitter": func(handle string) string {
		return "https://twitter.com/" + url.PathEscape(strings.TrimPrefix(handle, "@"))
	},
	"profilePath": func(login string) string {
		return "/u/" + url.PathEscape(login)
	},
	"pagePath": func(login string, page, size int) string {
		return fmt.Sprintf("/u/%s?page=%d&per_page=%d", url.PathEscape(login), page, size)
	},
	"tabPath": func(login, tab string) string {
		return "/u/" + url.PathEscape(login) + "?tab=" + url.QueryEscape(tab)
	},
	"fragmentPath": func(login string, lane profile.Lane) string {
		return "/u/" + url.PathEscape(login) + "/" + lane.String()
	},
	"peopleView": func(l profile.Lane, s profile.State) PeopleView {
		return PeopleView{Lane: l, State: s}
	},
	"laneFollowers": func() profile.Lane { return profile.LaneFollowers },
	"laneFollowing": func() profile.Lane { return profile.LaneFollowing },
	"peopleEmpty": func(l profile.Lane) string {
		if l == profile.LaneFollowing {
			return profile.MsgNoFollowing
		}
		return profile.MsgNoFollowers
	},
	"msg": func(name string) string {
		switch name {
		case "account":
			return profile.MsgNoAccount
		case "repos":
			return profile.MsgNoRepos
		case "forks":
			return profile.MsgNoForks
		default:
			return profile.MsgLoadFailed
		}
	},
	"avatarShape":    func(p *github.Profile) string { return p.AvatarShape() },
	"skeletonRepos":  func() int { return profile.RepoSkeletons },
	"skeletonPeople": func() int { return profile.PersonSkeletons },
}

// website returns a navigable URL for a profile's blog field, which GitHub
// stores without a scheme as often as with one.
func website(blog string) string {
	blog = strings.TrimSpace(blog)
	if blog == "" {
		return ""
	}
	if u, err := url.Parse(blog); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return blog
	}
	return "https://" + blog
}
