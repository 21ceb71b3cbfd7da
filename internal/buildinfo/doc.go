// Package buildinfo exposes the steplens version, commit and build date.
//
// Release builds set the variables below with -ldflags -X. Binaries built
// with "go install" fall back to the module version and VCS stamp recorded
// by the Go toolchain.
package buildinfo

// These variables are set at build time via -ldflags -X.
var (
	// Version is the semantic version or git describe output.
	Version = "dev"

	// Commit is the short git commit SHA.
	Commit = "unknown"

	// Date is the UTC build timestamp in RFC3339 format.
	Date = "unknown"
)
