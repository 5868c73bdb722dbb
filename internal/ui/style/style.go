// Package style provides the colors and icons shared by terminal output.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/shake/internal/core/domain"
)

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)

// Status returns the icon and color a test target status is shown with.
// Targets that still run share the neutral circle.
func Status(status domain.TargetStatus) (string, lipgloss.Color) {
	switch status {
	case domain.TargetStatusCached:
		return Check, Green
	case domain.TargetStatusUnresolved:
		return Warning, Yellow
	default:
		return Circle, Slate
	}
}
