package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/octoview/pkg/errors"
	"github.com/matzehuels/octoview/pkg/profile"
	"github.com/matzehuels/octoview/pkg/render/html"
	"github.com/matzehuels/octoview/pkg/render/term"
)

func (c *CLI) browseCommand() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "browse [username]",
		Short: "Browse profiles interactively in the terminal",
		Long: `Open a terminal UI on a profile (default server.default_user).

Keys: / search, tab switch section, ←/→ page, +/- page size,
↑/↓ move, r reload, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()
			username := cfg.Server.DefaultUser
			if len(args) == 1 {
				username = args[0]
			}
			if theme == "" {
				theme = cfg.Theme
			}

			client, closeCache, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			// The TUI owns the terminal; errors show in its footer instead.
			logger := loggerFromContext(ctx)
			logger.SetOutput(io.Discard)
			registerHooks(logger)

			var prog *tea.Program
			ctl := profile.New(client,
				profile.WithLogger(logger),
				profile.WithPageSize(cfg.Server.PerPage),
				profile.WithOnChange(func(st profile.State) {
					if prog != nil {
						prog.Send(stateMsg(st))
					}
				}),
			)
			prog = tea.NewProgram(newBrowseModel(ctx, ctl, term.New(theme), username), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = prog.Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return ctx.Err()
			}
			return err
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "light or dark (default from config)")
	return cmd
}

// =============================================================================
// browseModel
// =============================================================================

type browseTab int

const (
	browseRepos browseTab = iota
	browseForks
	browseFollowers
	browseFollowing
	browseTabCount
)

var browseTabNames = [...]string{"Repositories", "Forked repos", "Followers", "Following"}

// stateMsg carries a controller snapshot into the program.
type stateMsg profile.State

// loadDoneMsg reports the outcome of a controller operation.
type loadDoneMsg struct{ err error }

type browseModel struct {
	ctx      context.Context
	ctl      *profile.Controller
	r        *term.Renderer
	initial  string
	st       profile.State
	tab      browseTab
	cursor   int
	search   bool
	input    string
	lastErr  error
	height   int
	quitting bool
}

func newBrowseModel(ctx context.Context, ctl *profile.Controller, r *term.Renderer, username string) browseModel {
	return browseModel{
		ctx:     ctx,
		ctl:     ctl,
		r:       r,
		initial: username,
		st:      ctl.State(),
		height:  15,
	}
}

func (m browseModel) Init() tea.Cmd {
	if m.initial == "" {
		return nil
	}
	return m.run(func(ctx context.Context) error { return m.ctl.Search(ctx, m.initial) })
}

// run turns a controller call into a command. Stale results are not
// errors worth showing.
func (m browseModel) run(fn func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		err := fn(m.ctx)
		if errors.Is(err, profile.ErrStale) {
			err = nil
		}
		return loadDoneMsg{err: err}
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.st = profile.State(msg)
		if m.cursor >= len(m.list()) {
			m.cursor = max(0, len(m.list())-1)
		}
		return m, nil
	case loadDoneMsg:
		m.lastErr = msg.err
		m.st = m.ctl.State()
		return m, nil
	case tea.WindowSizeMsg:
		m.height = max(5, msg.Height-12)
		return m, nil
	case tea.KeyMsg:
		if m.search {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.search, m.input = false, ""
	case tea.KeyEnter:
		q := strings.TrimSpace(m.input)
		m.search, m.input = false, ""
		if q == "" {
			return m, nil
		}
		m.tab, m.cursor = browseRepos, 0
		return m, m.run(func(ctx context.Context) error { return m.ctl.Search(ctx, q) })
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m browseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "/":
		m.search = true
	case "tab":
		return m.selectTab((m.tab + 1) % browseTabCount)
	case "shift+tab":
		return m.selectTab((m.tab + browseTabCount - 1) % browseTabCount)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.list())-1 {
			m.cursor++
		}
	case "right", "l", "n":
		if m.st.HasProfile() && m.st.Page < m.st.TotalPages() {
			return m.gotoPage(m.st.Page + 1)
		}
	case "left", "h", "p":
		if m.st.HasProfile() && m.st.Page > 1 {
			return m.gotoPage(m.st.Page - 1)
		}
	case "+", "=":
		return m.stepPageSize(1)
	case "-":
		return m.stepPageSize(-1)
	case "r":
		return m.reload()
	}
	return m, nil
}

func (m browseModel) selectTab(t browseTab) (tea.Model, tea.Cmd) {
	m.tab, m.cursor = t, 0
	if !m.st.HasProfile() {
		return m, nil
	}
	switch t {
	case browseFollowers:
		if m.st.FollowersStatus == profile.StatusIdle {
			return m, m.run(m.ctl.LoadFollowers)
		}
	case browseFollowing:
		if m.st.FollowingStatus == profile.StatusIdle {
			return m, m.run(m.ctl.LoadFollowing)
		}
	}
	return m, nil
}

func (m browseModel) gotoPage(page int) (tea.Model, tea.Cmd) {
	m.cursor = 0
	return m, m.run(func(ctx context.Context) error { return m.ctl.LoadRepositories(ctx, page) })
}

// stepPageSize moves through the sizes the web selector offers.
func (m browseModel) stepPageSize(dir int) (tea.Model, tea.Cmd) {
	sizes := html.PageSizes
	i, found := slices.BinarySearch(sizes, m.st.PageSize)
	switch {
	case dir > 0 && found:
		i++
	case dir < 0:
		i--
	}
	if i < 0 || i >= len(sizes) {
		return m, nil
	}
	n := sizes[i]
	m.cursor = 0
	return m, m.run(func(ctx context.Context) error { return m.ctl.SetPageSize(ctx, n) })
}

func (m browseModel) reload() (tea.Model, tea.Cmd) {
	st := m.st
	if st.ProfileURL == "" {
		return m, nil
	}
	switch m.tab {
	case browseFollowers:
		return m, m.run(m.ctl.LoadFollowers)
	case browseFollowing:
		return m, m.run(m.ctl.LoadFollowing)
	}
	page := max(st.Page, 1)
	return m, m.run(func(ctx context.Context) error { return m.ctl.LoadProfileAt(ctx, st.ProfileURL, page) })
}

// list returns the rows the cursor moves over on the current tab.
func (m browseModel) list() []string {
	var out []string
	switch m.tab {
	case browseRepos:
		for _, r := range m.st.Repos {
			out = append(out, r.Name)
		}
	case browseForks:
		for _, r := range m.st.Forks {
			out = append(out, r.Name)
		}
	case browseFollowers:
		for _, p := range m.st.Followers {
			out = append(out, p.Login)
		}
	case browseFollowing:
		for _, p := range m.st.Following {
			out = append(out, p.Login)
		}
	}
	return out
}

var (
	browseTabStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(colorGray)
	browseActiveStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(colorCyan).Underline(true)
	browseHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

func (m browseModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	b.WriteString(StyleTitle.Render("octoview"))
	b.WriteString("  ")
	if m.search {
		b.WriteString(StyleValue.Render("search: " + m.input + "█"))
	} else {
		b.WriteString(browseHelpStyle.Render("/ to search"))
	}
	b.WriteString("\n\n")

	if m.st.ProfileStatus == profile.StatusFailed {
		b.WriteString(m.r.Page(m.st))
		b.WriteString("\n")
		b.WriteString(m.footer())
		return b.String()
	}

	b.WriteString(m.r.Profile(m.st))
	b.WriteString("\n")
	b.WriteString(m.tabs())
	b.WriteString("\n\n")
	b.WriteString(m.body())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m browseModel) tabs() string {
	parts := make([]string, browseTabCount)
	for i, name := range browseTabNames {
		if browseTab(i) == m.tab {
			parts[i] = browseActiveStyle.Render(name)
		} else {
			parts[i] = browseTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m browseModel) body() string {
	switch m.tab {
	case browseForks:
		return m.r.Forks(m.st)
	case browseFollowers:
		return m.r.People(m.st, profile.LaneFollowers)
	case browseFollowing:
		return m.r.People(m.st, profile.LaneFollowing)
	}
	if m.st.ReposStatus != profile.StatusReady {
		return m.r.Repos(m.st)
	}
	repos := m.st.Repos
	offset := 0
	if m.cursor >= m.height {
		offset = m.cursor - m.height + 1
	}
	end := min(offset+m.height, len(repos))
	return m.r.RepoTable(repos[offset:end], m.cursor-offset) + "\n" + m.r.Pagination(m.st)
}

func (m browseModel) footer() string {
	help := "tab section  ←/→ page  +/- per page  ↑/↓ move  r reload  q quit"
	line := browseHelpStyle.Render(help)
	if m.st.HasProfile() {
		line += browseHelpStyle.Render(fmt.Sprintf("  [page %d/%d · %d per page]", m.st.Page, max(m.st.TotalPages(), 1), m.st.PageSize))
	}
	if m.lastErr != nil && !apperr.Is(m.lastErr, apperr.ErrCodeNotFound) {
		line += "\n" + styleIconError.Render(iconError) + " " + StyleDim.Render(apperr.UserMessage(m.lastErr))
	}
	return line
}
