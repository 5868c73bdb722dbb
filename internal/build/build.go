// Package build holds build-time information.
package build

// These default to development values and are overwritten by linker flags, e.g.
// -ldflags "-X go.trai.ch/shake/internal/build.Version=v1.2.3".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info renders the build information on one line.
func Info() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
