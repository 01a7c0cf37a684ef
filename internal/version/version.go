// Package version holds build information for sbp.
package version

import "fmt"

// Set at build time with -ldflags "-X .../internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Template is the cobra version template for the sbp root command.
func Template() string {
	return fmt.Sprintf("sbp version {{.Version}} (commit: %s, built: %s)\n", Commit, Date)
}
