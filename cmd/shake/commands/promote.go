package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shake/internal/app"
)

func (c *CLI) newPromoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promote <staging-root>",
		Short: "Promote the markers of a successful run into the test cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cacheRoot, _ := cmd.Flags().GetString("cache-root")

			return c.app.Promote(cmd.Context(), app.PromoteOptions{
				ConfigPath:  configPath,
				CacheRoot:   cacheRoot,
				StagingRoot: args[0],
			})
		},
	}
	cmd.Flags().String("cache-root", "", "Directory holding the markers of successful runs")
	return cmd
}
