// Package version exposes build and version metadata. The variables are
// overridden at link time with -ldflags "-X".
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
)

// Info is the build metadata in the shape `oreore-lsp version --json` prints
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

// GetInfo snapshots the build metadata
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
	}
}

// GetVersion returns the release version, also reported as serverInfo.version
func GetVersion() string {
	return Version
}

// GetFullVersionInfo is the one-line form of `oreore-lsp version --verbose`
func GetFullVersionInfo() string {
	info := GetInfo()
	return fmt.Sprintf("oreore-lsp %s (commit: %s, built: %s, go: %s)",
		info.Version, info.Commit, info.BuildDate, info.GoVersion)
}
