// Package version parses Git tags as semantic versions.
package version

import (
	"log/slog"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Parse interprets a Git tag as a semantic version, stripping an optional
// leading "v". Partial versions such as "v4" or "v4.2" parse with the
// missing parts as zero, so "v4" and "v4.0.0" compare equal. Tags that are
// not semantic versions (branch names, "latest", wildcards) report false.
func Parse(tag string) (*semver.Version, bool) {
	v, err := semver.NewVersion(strings.TrimPrefix(tag, "v"))
	if err != nil {
		slog.Debug("could not parse tag as semver", "tag", tag)
		return nil, false
	}
	return v, true
}
