// Package version provides build-time metadata for the onlyalpha binary.
// Version, GitCommit, and BuildDate are injected at compile time via -ldflags.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// DevVersion is the version of binaries built without -ldflags.
const DevVersion = "dev"

// Build-time values injected via -ldflags.
var (
	version   = DevVersion
	gitCommit = "none"
	buildDate = "unknown"
)

// Info holds the build metadata for the binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetInfo returns the current build information.
func GetInfo() Info {
	return Info{
		Version:   version,
		GitCommit: shortCommit(gitCommit),
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable single-line version string.
func (i Info) String() string {
	return fmt.Sprintf("onlyalpha %s (commit: %s, built: %s, %s %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}

// Satisfies reports an error when the version does not meet constraint.
// An empty constraint and development builds always satisfy.
func (i Info) Satisfies(constraint string) error {
	if constraint == "" || i.Version == DevVersion {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing version constraint %q: %w", constraint, err)
	}

	v, err := semver.NewVersion(i.Version)
	if err != nil {
		return fmt.Errorf("parsing running version %q: %w", i.Version, err)
	}

	if !c.Check(v) {
		return fmt.Errorf("onlyalpha %s does not satisfy required version %q", i.Version, constraint)
	}

	return nil
}

// shortCommit truncates a commit SHA to 7 characters.
func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}

	return commit
}
