package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/grove/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Source nodes and write a snapshot of the node graph",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plugin, _ := cmd.Flags().GetString("plugin")
			deferMutation, _ := cmd.Flags().GetBool("defer-node-mutation")
			noSnapshot, _ := cmd.Flags().GetBool("no-snapshot")

			return c.app.Build(cmd.Context(), app.BuildOptions{
				PluginName:        plugin,
				DeferNodeMutation: deferMutation,
				NoSnapshot:        noSnapshot,
			})
		},
	}
	cmd.Flags().StringP("plugin", "p", "", "Only source nodes from this plugin")
	cmd.Flags().Bool("defer-node-mutation", false, "Apply node actions after each plugin finishes")
	cmd.Flags().Bool("no-snapshot", false, "Skip writing the node graph snapshot")
	return cmd
}
