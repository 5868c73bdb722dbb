package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shake/internal/app"
)

func (c *CLI) newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Prune cached test targets and stage the markers of this run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := mapOptions(cmd)
			opts.DryRun, _ = cmd.Flags().GetBool("dry-run")

			result, err := c.app.Map(cmd.Context(), opts)
			if err != nil {
				return err
			}
			renderPlan(cmd.OutOrStdout(), result, opts.DryRun)
			return nil
		},
	}
	addMapFlags(cmd)
	cmd.Flags().BoolP("dry-run", "n", false, "Show the plan without staging markers")
	return cmd
}

func addMapFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("manifest", "m", "", "Path to the workspace manifest (default \"workspace.yaml\")")
	cmd.Flags().String("cache-root", "", "Directory holding the markers of successful runs")
	cmd.Flags().String("staging-root", "", "Directory receiving the markers of this run")
}

func mapOptions(cmd *cobra.Command) app.MapOptions {
	configPath, _ := cmd.Flags().GetString("config")
	manifest, _ := cmd.Flags().GetString("manifest")
	cacheRoot, _ := cmd.Flags().GetString("cache-root")
	stagingRoot, _ := cmd.Flags().GetString("staging-root")

	return app.MapOptions{
		ConfigPath:   configPath,
		ManifestPath: manifest,
		CacheRoot:    cacheRoot,
		StagingRoot:  stagingRoot,
	}
}
