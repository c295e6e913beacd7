package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	apperr "github.com/matzehuels/octoview/pkg/errors"
	"github.com/matzehuels/octoview/pkg/profile"
	"github.com/matzehuels/octoview/pkg/render/term"
)

const (
	tabRepos     = "repos"
	tabForks     = "forks"
	tabFollowers = "followers"
	tabFollowing = "following"
)

func (c *CLI) showCommand() *cobra.Command {
	var (
		page    int
		perPage int
		tab     string
		theme   string
	)

	cmd := &cobra.Command{
		Use:   "show <username>",
		Short: "Print a profile and one page of repositories",
		Example: `  octoview show google
  octoview show torvalds --page 2 --per-page 20
  octoview show golang --tab followers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()
			if perPage == 0 {
				perPage = cfg.Server.PerPage
			}
			if err := apperr.ValidatePageSize(perPage); err != nil {
				return err
			}
			switch tab {
			case tabRepos, tabForks, tabFollowers, tabFollowing:
			default:
				return apperr.New(apperr.ErrCodeInvalidInput, "unknown tab %q", tab)
			}
			if theme == "" {
				theme = cfg.Theme
			}

			client, closeCache, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			ctl := profile.New(client,
				profile.WithLogger(loggerFromContext(ctx)),
				profile.WithPageSize(perPage),
			)

			spinner := newSpinnerWithContext(ctx, "Loading @"+args[0]+"...")
			spinner.Start()
			prog := newProgress(loggerFromContext(ctx))
			err = showLoad(cmd, ctl, args[0], page, tab)
			spinner.Stop()

			st := ctl.State()
			r := term.New(theme)
			w := cmd.OutOrStdout()
			if err != nil {
				// Page renders the no-account message for a failed profile.
				fmt.Fprint(w, r.Page(st))
				return err
			}
			fmt.Fprintln(w, r.Profile(st))
			prog.done("Loaded @" + st.Profile.Login)

			switch tab {
			case tabForks:
				fmt.Fprintln(w, r.Forks(st))
			case tabFollowers:
				fmt.Fprintln(w, r.People(st, profile.LaneFollowers))
			case tabFollowing:
				fmt.Fprintln(w, r.People(st, profile.LaneFollowing))
			default:
				fmt.Fprintln(w, r.Repos(st))
				fmt.Fprintln(w, r.Pagination(st))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "repository page")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "repositories per page (default server.per_page)")
	cmd.Flags().StringVar(&tab, "tab", tabRepos, "section to print: repos, forks, followers, following")
	cmd.Flags().StringVar(&theme, "theme", "", "light or dark (default from config)")
	return cmd
}

// showLoad drives ctl to the state show prints. List failures are already
// recorded in state and rendered inline, so only profile failures are
// returned.
func showLoad(cmd *cobra.Command, ctl *profile.Controller, username string, page int, tab string) error {
	ctx := cmd.Context()
	if err := ctl.Search(ctx, username); err != nil {
		return err
	}
	if !ctl.State().HasProfile() {
		return apperr.New(apperr.ErrCodeInvalidUsername, "username is required")
	}

	var err error
	switch {
	case tab == tabFollowers:
		err = ctl.LoadFollowers(ctx)
	case tab == tabFollowing:
		err = ctl.LoadFollowing(ctx)
	case page > 1:
		err = ctl.LoadRepositories(ctx, page)
	}
	if errors.Is(err, profile.ErrStale) {
		return err
	}
	return nil
}
