package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/octoview/pkg/profile"
	"github.com/matzehuels/octoview/pkg/render/network"
)

func (c *CLI) networkCommand() *cobra.Command {
	var (
		output string
		limit  int
		dot    bool
	)

	cmd := &cobra.Command{
		Use:   "network <username>",
		Short: "Draw who an account follows and is followed by",
		Long: `Render the follow network of an account as SVG (or DOT with --dot).

Mutual follows are drawn as a single two-headed edge.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, closeCache, err := c.newClient(ctx)
			if err != nil {
				return err
			}
			defer closeCache()

			ctl := profile.New(client, profile.WithLogger(loggerFromContext(ctx)))
			spinner := newSpinnerWithContext(ctx, "Loading @"+args[0]+"...")
			spinner.Start()
			if err := ctl.SearchAt(ctx, args[0], 0); err != nil {
				spinner.StopWithError(profile.MsgNoAccount)
				return err
			}
			spinner.Update("Loading followers and following...")
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return ctl.LoadFollowers(gctx) })
			g.Go(func() error { return ctl.LoadFollowing(gctx) })
			if err := g.Wait(); err != nil {
				spinner.StopWithError(profile.MsgLoadFailed)
				return err
			}
			spinner.Stop()

			st := ctl.State()
			data := []byte(network.ToDOT(st.Profile, st.Followers, st.Following, network.Options{Limit: limit}))
			if !dot {
				if data, err = network.RenderSVG(ctx, string(data)); err != nil {
					return fmt.Errorf("render svg: %w", err)
				}
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered network of @%s", st.Profile.Login)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&limit, "limit", 30, "max people drawn per direction")
	cmd.Flags().BoolVar(&dot, "dot", false, "write Graphviz DOT instead of SVG")
	return cmd
}
