// Package build exposes build-time metadata injected via ldflags.
package build

import "fmt"

// Version, Commit, and Branch are set at build time by:
//
//	-ldflags "-X github.com/joestump/prompt-library/internal/build.Version=... ..."
var (
	Version = "dev"
	Commit  = "unknown"
	Branch  = "unknown"
)

// String formats the build metadata for `prompt-library version`.
func String() string {
	return fmt.Sprintf("prompt-library %s (commit %s, branch %s)", Version, Commit, Branch)
}
