package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/grove/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the node store and snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snapshots, _ := cmd.Flags().GetBool("snapshots")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{}
			switch {
			case all:
				opts.Store = true
				opts.Snapshots = true
			case snapshots:
				opts.Snapshots = true
			default:
				opts.Store = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("snapshots", "s", false, "Remove written snapshots")
	cmd.Flags().BoolP("all", "a", false, "Remove the node store and snapshots")

	return cmd
}
