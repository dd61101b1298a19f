// Package version describes the running build. The variables are set
// at link time with -ldflags "-X".
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

var (
	BuildDate    = "unknown"
	BuildVersion = "0.0.0"
	Commit       = "unknown"
)

// BaseVersion returns "v<major>.<minor>" of BuildVersion, or "unknown"
// when it is not a semantic version.
func BaseVersion() string {
	v, err := semver.NewVersion(BuildVersion)
	if err != nil {
		return "unknown"
	}
	return fmt.Sprintf("v%d.%d", v.Major(), v.Minor())
}

// String formats the build for "emailbuilder --version".
func String() string {
	v := BuildVersion
	if parsed, err := semver.NewVersion(BuildVersion); err == nil {
		v = parsed.String()
	}
	return fmt.Sprintf("%s (%s) on %s", v, Commit, BuildDate)
}
