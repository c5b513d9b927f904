package actions

import (
	"regexp"
	"strings"
)

var (
	// pinnedPattern matches "owner/repo@<40-hex-sha> # vX[.Y[.Z]]".
	pinnedPattern = regexp.MustCompile(`([\w-]+/[\w-]+)@([0-9a-f]{40})\s*#\s*(v\d+(?:\.\d+)*)`)
	// unpinnedPattern matches "owner/repo@vX[.Y[.Z]]".
	unpinnedPattern = regexp.MustCompile(`([\w-]+/[\w-]+)@(v\d+(?:\.\d+)*)`)
)

// PinnedRef is an action reference already pinned to a commit hash and
// annotated with a version comment.
type PinnedRef struct {
	Repo    string // owner/repo
	SHA     string
	Version string // version from the trailing comment

	start, end int
}

// MatchPinned returns the first pinned action reference in the line.
func MatchPinned(line string) (PinnedRef, bool) {
	m := pinnedPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return PinnedRef{}, false
	}
	return PinnedRef{
		Repo:    line[m[2]:m[3]],
		SHA:     line[m[4]:m[5]],
		Version: line[m[6]:m[7]],
		start:   m[0],
		end:     m[1],
	}, true
}

// Replace substitutes the matched span with a reference pinned to sha
// and annotated with version.
func (p PinnedRef) Replace(line, sha, version string) string {
	return line[:p.start] + p.Repo + "@" + sha + " # " + version + line[p.end:]
}

// UnpinnedRef is an action reference using a mutable version tag.
type UnpinnedRef struct {
	Repo string // owner/repo
	Tag  string
}

// MatchUnpinned returns the first unpinned action reference in the line.
func MatchUnpinned(line string) (UnpinnedRef, bool) {
	m := unpinnedPattern.FindStringSubmatch(line)
	if m == nil {
		return UnpinnedRef{}, false
	}
	return UnpinnedRef{Repo: m[1], Tag: m[2]}, true
}

// Replace substitutes the first occurrence of the tag reference with one
// pinned to sha and annotated with version.
func (u UnpinnedRef) Replace(line, sha, version string) string {
	old := u.Repo + "@" + u.Tag
	return strings.Replace(line, old, u.Repo+"@"+sha+" # "+version, 1)
}
