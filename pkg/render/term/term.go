package term

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/octoview/pkg/github"
	"github.com/matzehuels/octoview/pkg/profile"
)

// Styles holds the lipgloss styles for one theme.
type Styles struct {
	Title   lipgloss.Style
	Login   lipgloss.Style
	Link    lipgloss.Style
	Dim     lipgloss.Style
	Value   lipgloss.Style
	Number  lipgloss.Style
	Error   lipgloss.Style
	Active  lipgloss.Style
	Header  lipgloss.Style
	Border  lipgloss.Style
	Fork    lipgloss.Style
	Private lipgloss.Style
}

// NewStyles returns the palette for theme ("light" or "dark").
func NewStyles(theme string) Styles {
	fg, dim, accent, link := lipgloss.Color("255"), lipgloss.Color("240"), lipgloss.Color("36"), lipgloss.Color("75")
	if theme == "light" {
		fg, dim, accent, link = lipgloss.Color("235"), lipgloss.Color("245"), lipgloss.Color("30"), lipgloss.Color("25")
	}
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		Login:   lipgloss.NewStyle().Foreground(dim),
		Link:    lipgloss.NewStyle().Foreground(link).Underline(true),
		Dim:     lipgloss.NewStyle().Foreground(dim),
		Value:   lipgloss.NewStyle().Foreground(fg),
		Number:  lipgloss.NewStyle().Foreground(accent),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("167")).Bold(true),
		Active:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(accent).Padding(0, 1),
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
		Border:  lipgloss.NewStyle().Foreground(dim),
		Fork:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Private: lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
	}
}

// Renderer draws profile state as styled terminal text.
type Renderer struct {
	s Styles
}

// New creates a renderer for theme.
func New(theme string) *Renderer {
	return &Renderer{s: NewStyles(theme)}
}

// Page renders the profile block, the repository table and pagination.
// A failed profile renders only the error message.
func (r *Renderer) Page(st profile.State) string {
	if st.ProfileStatus == profile.StatusFailed {
		return r.s.Error.Render(profile.MsgNoAccount) + "\n"
	}
	var b strings.Builder
	b.WriteString(r.Profile(st))
	b.WriteString("\n")
	b.WriteString(r.s.Title.Render("Repositories"))
	b.WriteString("\n")
	b.WriteString(r.Repos(st))
	if p := r.Pagination(st); p != "" {
		b.WriteString(p)
		b.WriteString("\n")
	}
	return b.String()
}

// Profile renders the profile card or a skeleton while loading.
func (r *Renderer) Profile(st profile.State) string {
	p := st.Profile
	if p == nil {
		return r.skeleton(3)
	}

	var b strings.Builder
	kind := "user"
	if p.IsOrganization() {
		kind = "organization"
	}
	fmt.Fprintf(&b, "%s %s %s\n", r.s.Title.Render(p.DisplayName()), r.s.Login.Render("@"+p.Login), r.s.Dim.Render("("+kind+")"))
	if p.Bio != "" {
		b.WriteString(r.s.Value.Render(p.Bio) + "\n")
	}
	for _, kv := range [][2]string{
		{"location", p.Location},
		{"company", p.Company},
		{"website", p.Blog},
		{"twitter", twitterHandle(p.Twitter)},
		{"profile", p.HTMLURL},
	} {
		if kv[1] == "" {
			continue
		}
		b.WriteString(r.s.Dim.Width(10).Render(kv[0]) + " " + r.s.Link.Render(kv[1]) + "\n")
	}
	fmt.Fprintf(&b, "%s repos  %s followers  %s following\n",
		r.s.Number.Render(strconv.Itoa(p.PublicRepos)),
		r.s.Number.Render(strconv.Itoa(p.Followers)),
		r.s.Number.Render(strconv.Itoa(p.Following)))
	return b.String()
}

// Repos renders the current repository page.
func (r *Renderer) Repos(st profile.State) string {
	switch st.ReposStatus {
	case profile.StatusLoading:
		return r.skeleton(profile.RepoSkeletons)
	case profile.StatusFailed:
		return r.s.Error.Render(profile.MsgLoadFailed) + "\n"
	case profile.StatusEmpty:
		return r.s.Dim.Render(profile.MsgNoRepos) + "\n"
	case profile.StatusReady:
		return r.repoTable(st.Repos, -1) + "\n"
	}
	return ""
}

// Forks renders the fork subset of the current page.
func (r *Renderer) Forks(st profile.State) string {
	switch st.ForksStatus() {
	case profile.StatusLoading:
		return r.skeleton(profile.RepoSkeletons)
	case profile.StatusFailed:
		return r.s.Error.Render(profile.MsgLoadFailed) + "\n"
	case profile.StatusReady:
		return r.repoTable(st.Forks, -1) + "\n"
	default:
		return r.s.Dim.Render(profile.MsgNoForks) + "\n"
	}
}

// RepoTable renders repos with the row at cursor highlighted (-1 for none).
func (r *Renderer) RepoTable(repos []github.Repository, cursor int) string {
	return r.repoTable(repos, cursor)
}

func (r *Renderer) repoTable(repos []github.Repository, cursor int) string {
	rows := make([][]string, 0, len(repos))
	for _, repo := range repos {
		name := repo.Name
		if repo.Fork {
			name += " ⑂"
		}
		lang := repo.LanguageText()
		if lang == "" {
			lang = "—"
		}
		rows = append(rows, []string{
			name,
			repo.Visibility(),
			lang,
			strconv.Itoa(repo.Stars),
			strconv.Itoa(repo.Forks),
			truncate(repo.DescriptionText(), 48),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.s.Border).
		Headers("Name", "Visibility", "Lang", "★", "Forks", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return r.s.Header
			}
			if row >= len(repos) {
				return lipgloss.NewStyle()
			}
			style := r.s.Value
			switch col {
			case 1:
				style = r.s.Dim
				if repos[row].Private {
					style = r.s.Private
				}
			case 3, 4:
				style = r.s.Number
			case 5:
				style = r.s.Dim
			default:
				if repos[row].Fork {
					style = r.s.Fork
				}
			}
			if row == cursor {
				style = style.Bold(true).Reverse(true)
			}
			return style
		})
	return t.Render()
}

// Pagination renders "‹ 1 2 [3] 4 ›" for the current page.
func (r *Renderer) Pagination(st profile.State) string {
	links := st.PageLinks()
	if len(links) <= 1 {
		return ""
	}
	parts := make([]string, len(links))
	for i, l := range links {
		if l.Active {
			parts[i] = r.s.Active.Render(strconv.Itoa(l.Number))
		} else {
			parts[i] = r.s.Dim.Render(strconv.Itoa(l.Number))
		}
	}
	return r.s.Dim.Render("page ") + strings.Join(parts, " ") + r.s.Dim.Render(fmt.Sprintf("  (%d per page)", st.PageSize))
}

// People renders the followers or following list.
func (r *Renderer) People(st profile.State, lane profile.Lane) string {
	switch st.PeopleStatus(lane) {
	case profile.StatusIdle, profile.StatusLoading:
		return r.skeleton(profile.PersonSkeletons)
	case profile.StatusFailed:
		return r.s.Error.Render(profile.MsgLoadFailed) + "\n"
	case profile.StatusEmpty:
		if lane == profile.LaneFollowing {
			return r.s.Dim.Render(profile.MsgNoFollowing) + "\n"
		}
		return r.s.Dim.Render(profile.MsgNoFollowers) + "\n"
	}

	var b strings.Builder
	for _, p := range st.People(lane) {
		b.WriteString(r.s.Value.Render("@"+p.Login) + "  " + r.s.Dim.Render(p.HTMLURL) + "\n")
	}
	return b.String()
}

func (r *Renderer) skeleton(lines int) string {
	var b strings.Builder
	widths := []int{28, 40, 18}
	for i := range lines {
		b.WriteString(r.s.Dim.Render(strings.Repeat("░", widths[i%len(widths)])))
		b.WriteString("\n")
	}
	return b.String()
}

func twitterHandle(h string) string {
	if h == "" {
		return ""
	}
	return "@" + strings.TrimPrefix(h, "@")
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}
