// Package vars holds build-time variables populated via the linker (ldflags).
package vars

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// License of the project
const License = "AGPL-3.0"

var (
	// Name of the project
	Name = "MCWho"

	// Version of application (git tag) semver/tag, e.g. v1.2.3
	Version = "dev"

	// Commit is the current git commit, full or short git SHA
	Commit = "unknown"

	// Revision build, count of commits
	Revision = 0

	// BuildTime is the time of start build app, RFC3339 UTC
	BuildTime = time.Unix(0, 0)

	// URL to repository (https)
	URL = "https://github.com/woozymasta/mcwho"

	_revision  string
	_buildTime string
)

// BuildInfo is the build metadata exposed by the HTTP API.
type BuildInfo struct {
	// betteralign:ignore

	Name      string    `json:"name" example:"MCWho"`
	Version   string    `json:"version" example:"v1.2.3"`
	Commit    string    `json:"commit" example:"da15c17"`
	Revision  int       `json:"revision,omitempty" example:"42"`
	BuildTime time.Time `json:"build_time,omitempty" example:"1970-01-01T00:00:00Z"`
	URL       string    `json:"url,omitempty" example:"https://github.com/woozymasta/mcwho"`
	License   string    `json:"license,omitempty" example:"AGPL-3.0"`
}

func init() {
	if n, err := strconv.Atoi(_revision); err == nil {
		Revision = n
	}

	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

// Print writes the build information to the standard output.
func Print() {
	fmt.Printf(`name:     %s
url:      %s
file:     %s
version:  %s
commit:   %s
revision: %d
built:    %s
license:  %s
`, Name, URL, os.Args[0], Version, Commit, Revision, BuildTime, License)
}

// Info returns the build metadata with a shortened commit hash.
func Info() BuildInfo {
	commit := Commit
	if len(commit) > 7 {
		commit = commit[:7]
	}

	return BuildInfo{
		Name:      Name,
		Version:   Version,
		Commit:    commit,
		Revision:  Revision,
		BuildTime: BuildTime,
		URL:       URL,
		License:   License,
	}
}

// UserAgent returns the "Name/Version" string sent to third-party services.
func UserAgent() string {
	return Name + "/" + Version
}
