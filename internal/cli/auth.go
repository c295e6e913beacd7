package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/octoview/pkg/github"
)

// authCommand reports which credential octoview will send to GitHub.
func (c *CLI) authCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Inspect GitHub authentication",
		Long: `Octoview works anonymously. A token raises the API rate limit and is
picked up from github.token in the config, GITHUB_TOKEN, or (with
github.use_gh_auth) the credential stored by the gh CLI.`,
	}
	cmd.AddCommand(c.authStatusCommand())
	return cmd
}

func (c *CLI) authStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the token source and the account it belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()
			token, source := github.ResolveToken(cfg.GitHub.Token, cfg.GitHub.BaseURL, cfg.GitHub.UseGHAuth)
			if token == "" {
				printInfo("Anonymous requests")
				printDetail("Set GITHUB_TOKEN or github.use_gh_auth = true to raise the rate limit")
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			spinner := newSpinnerWithContext(ctx, "Verifying token...")
			spinner.Start()
			client := github.NewClient(github.Options{BaseURL: cfg.GitHub.BaseURL, Token: token})
			user, err := client.User(ctx, client.BaseURL()+"/user")
			if err != nil {
				spinner.StopWithError("Token rejected")
				return fmt.Errorf("verify token: %w", err)
			}
			spinner.Stop()

			printSuccess("Authenticated")
			printKeyValue("Username", "@"+user.Login)
			if user.Name != "" {
				printKeyValue("Name", user.Name)
			}
			printKeyValue("Source", source)
			printKeyValue("API", client.BaseURL())
			return nil
		},
	}
}
