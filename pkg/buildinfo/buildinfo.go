// Package buildinfo exposes version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/columnview/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/columnview/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/columnview/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build information reported by the server's health endpoint.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}
}

// String returns the multi-line form printed by `columnview --version`.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", Version, shortCommit(), Date, runtime.Version())
}

// Template returns the version template for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", Version, shortCommit(), Date)
}

func shortCommit() string {
	if len(Commit) > 12 {
		return Commit[:12]
	}
	return Commit
}
