package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shake/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the test cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			staging, _ := cmd.Flags().GetBool("staging")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{ConfigPath: configPath}
			switch {
			case all:
				opts.Cache = true
				opts.Staging = true
			case staging:
				opts.Staging = true
			default:
				opts.Cache = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("staging", "s", false, "Remove staged markers of unfinished runs")
	cmd.Flags().BoolP("all", "a", false, "Remove the test cache and staged markers")

	return cmd
}
