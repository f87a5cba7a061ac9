// Package version carries build metadata injected through -ldflags.
package version

import "fmt"

var (
	// Version is the current application version.
	// It should be populated by the build system (ldflags).
	Version = "v0.1.0"

	// Commit is the git short hash of the build.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)

// String renders the line printed by `halve -version`.
func String() string {
	return fmt.Sprintf("halve %s (commit %s, built %s)", Version, Commit, Date)
}
