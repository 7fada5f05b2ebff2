// Package version carries build information stamped in at link time.
package version

import "fmt"

// Build information set by ldflags:
//
//	-X github.com/arthur-debert/pkgbasify/internal/version.Version={{.Version}}
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info renders the build information for the version command
func Info() string {
	return fmt.Sprintf("pkgbasify version %s\n  commit: %s\n  built:  %s\n", Version, Commit, Date)
}
