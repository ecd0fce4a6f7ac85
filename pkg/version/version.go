// Package version carries build-time version metadata injected via
// -ldflags.
package version

import "fmt"

// Build metadata, overridden at link time.
var (
	// Version is the semantic version of the binary.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// String formats the full version line.
func String() string {
	return fmt.Sprintf("heapwalk %s (commit: %s, built: %s)", Version, Commit, Date)
}
