package commands

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"go.trai.ch/shake/internal/app"
	"go.trai.ch/shake/internal/core/domain"
	"go.trai.ch/shake/internal/ui/output"
	"go.trai.ch/shake/internal/ui/style"
)

// renderPlan prints the test targets left in every scheme followed by a summary.
func renderPlan(w io.Writer, result *app.MapResult, dryRun bool) {
	out := output.New(w)
	paint := func(s string, c string) termenv.Style {
		return out.String(s).Foreground(termenv.RGBColor(c))
	}

	for _, scheme := range result.Graph.Workspace().Schemes {
		if scheme.TestAction == nil {
			continue
		}
		_, _ = fmt.Fprintln(out, paint(scheme.Name, string(style.Iris)).Bold())
		if len(scheme.TestAction.Targets) == 0 {
			_, _ = fmt.Fprintf(out, "  %s\n", paint("nothing to test", string(style.Slate)))
			continue
		}
		for _, tt := range scheme.TestAction.Targets {
			icon := style.Circle
			if tt.Skipped {
				icon = style.Dot
			}
			_, _ = fmt.Fprintf(out, "  %s %s\n", paint(icon, string(style.Slate)), tt.Target)
		}
	}

	status := func(s domain.TargetStatus) termenv.Style {
		icon, color := style.Status(s)
		return paint(icon, string(color))
	}

	_, _ = fmt.Fprintf(out, "%s %d cached  %s %d to run",
		status(domain.TargetStatusCached), len(result.Skipped),
		status(domain.TargetStatusScheduled), len(result.Remaining),
	)
	if n := len(result.Unresolved); n > 0 {
		_, _ = fmt.Fprintf(out, "  %s %d unresolved", status(domain.TargetStatusUnresolved), n)
	}
	_, _ = fmt.Fprintln(out)

	if !dryRun && len(result.SideEffects) > 0 {
		_, _ = fmt.Fprintf(out, "%s\n", paint(
			fmt.Sprintf("%d markers staged in %s", len(result.SideEffects), result.Config.StagingRoot),
			string(style.Slate),
		))
	}
}
