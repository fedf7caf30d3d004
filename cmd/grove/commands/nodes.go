package commands

import "github.com/spf13/cobra"

func (c *CLI) newNodesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List the stored nodes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			typeName, _ := cmd.Flags().GetString("type")
			return c.app.Nodes(cmd.Context(), typeName)
		},
	}
	cmd.Flags().StringP("type", "t", "", "Only list nodes of this type")
	return cmd
}
