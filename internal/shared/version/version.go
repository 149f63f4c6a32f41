// Package version reports the build version of the binary.
package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Set at link time with -ldflags "-X .../version.Version=1.4.0".
var (
	Version = "dev"
	Commit  = "unknown"
)

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// Canonical returns the semver form of v ("1.2" -> "v1.2.0"), or "" when v
// is not a release version.
func Canonical(v string) string {
	v = Normalize(v)
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// IsRelease reports whether the running binary carries a stable version.
func IsRelease() bool {
	v := Canonical(Version)
	return v != "" && semver.Prerelease(v) == ""
}

// String renders the version for logs and the version command.
func String() string {
	v := Canonical(Version)
	if v == "" {
		v = Version
	}
	return fmt.Sprintf("%s (commit %s)", v, Commit)
}
