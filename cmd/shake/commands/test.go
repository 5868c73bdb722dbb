package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/shake/internal/app"
)

func (c *CLI) newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test -- <command> [args...]",
		Short: "Run the test command for the targets that changed",
		Long: `Prunes cached test targets, runs the test command with the remaining targets
in SHAKE_TEST_TARGETS (comma separated "project:name") and promotes the staged
markers once the command succeeded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Test(cmd.Context(), app.TestOptions{
				MapOptions: mapOptions(cmd),
				Command:    args,
			})
			if result != nil {
				renderPlan(cmd.OutOrStdout(), result, false)
			}
			return err
		},
	}
	addMapFlags(cmd)
	return cmd
}
