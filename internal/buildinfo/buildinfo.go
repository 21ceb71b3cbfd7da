package buildinfo

import (
	"fmt"
	"runtime/debug"
	"strings"
)

const shortCommitLen = 7

// Info holds structured build information suitable for JSON serialization.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// GetInfo returns the build information. Values left at their defaults are
// filled from the toolchain's build metadata when it is available.
func GetInfo() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.withBuildInfo(bi)
	}
	return info
}

func (i Info) withBuildInfo(bi *debug.BuildInfo) Info {
	if i.Version == "dev" {
		if v := bi.Main.Version; v != "" && v != "(devel)" {
			i.Version = strings.TrimPrefix(v, "v")
		}
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == "unknown" && s.Value != "" {
				i.Commit = s.Value
				if len(i.Commit) > shortCommitLen {
					i.Commit = i.Commit[:shortCommitLen]
				}
			}
		case "vcs.time":
			if i.Date == "unknown" && s.Value != "" {
				i.Date = s.Value
			}
		}
	}
	return i
}

// String returns a human-readable version string.
// Example: "steplens v0.3.0 (commit: a1b2c3d, built: 2024-05-01T10:00:00Z)"
func (i Info) String() string {
	return fmt.Sprintf("steplens v%s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}
