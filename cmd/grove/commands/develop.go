package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/grove/internal/app"
)

func (c *CLI) newDevelopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "develop",
		Short: "Serve the node graph and re-source on changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noWatch, _ := cmd.Flags().GetBool("no-watch")
			return c.app.Develop(cmd.Context(), app.DevelopOptions{NoWatch: noWatch})
		},
	}
	cmd.Flags().Bool("no-watch", false, "Do not re-source when files change")
	return cmd
}
