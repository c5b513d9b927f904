package actions

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/jjshanks/pin-actions/internal/version"
)

// Resolution is the outcome of resolving a repository tag: the commit
// hash to pin and the version string for the trailing comment.
type Resolution struct {
	SHA     string
	Version string
}

// Resolver turns a repository tag into a pinned resolution.
type Resolver interface {
	// Resolve determines the commit hash and display version for a tag.
	// When checkUpdates is true, a newer release in the same major series
	// replaces the input tag. A false result means the reference cannot
	// be resolved and the caller leaves the line alone.
	Resolve(repo, tag string, checkUpdates bool) (Resolution, bool)
}

// TagResolver resolves tags against the hosting API, caching results
// under the resolved tag.
type TagResolver struct {
	api   API
	cache Store
}

// Ensure TagResolver implements Resolver
var _ Resolver = (*TagResolver)(nil)

// NewTagResolver creates a TagResolver backed by the given API and cache.
func NewTagResolver(api API, cache Store) *TagResolver {
	return &TagResolver{api: api, cache: cache}
}

// Resolve implements the Resolver interface.
func (r *TagResolver) Resolve(repo, tag string, checkUpdates bool) (Resolution, bool) {
	// A cached resolution for the input tag cannot be trusted when
	// updates are requested: a newer release may exist by now.
	if entry, ok := r.cache.Get(repo, tag, !checkUpdates); ok {
		return Resolution{SHA: entry.SHA, Version: entry.FullVersion}, true
	}

	target := tag
	if checkUpdates {
		target = r.latestInSeries(repo, tag)
		if target != tag {
			slog.Info("found newer version", "repo", repo, "current", tag, "latest", target)
			// The target tag is itself an already resolved concrete
			// version, so a cache hit for it is honored.
			if entry, ok := r.cache.Get(repo, target, true); ok {
				return Resolution{SHA: entry.SHA, Version: entry.FullVersion}, true
			}
		}
	}

	sha, ok := r.api.TagSHA(repo, target)
	if !ok {
		return Resolution{}, false
	}

	display := r.displayVersion(repo, target)
	r.cache.Put(repo, target, Entry{SHA: sha, FullVersion: display})
	return Resolution{SHA: sha, Version: display}, true
}

// latestInSeries returns the release tag with the highest precedence in
// the major series of current, or current itself when it does not parse
// as a semantic version or no release qualifies.
func (r *TagResolver) latestInSeries(repo, current string) string {
	parsed, ok := version.Parse(current)
	if !ok {
		return current
	}

	releases, ok := r.api.Releases(repo)
	if !ok || len(releases) == 0 {
		return current
	}

	latestTag := current
	var latest *semver.Version
	for _, tag := range releases {
		v, ok := version.Parse(tag)
		if !ok || v.Major() != parsed.Major() {
			continue
		}
		if latest == nil || v.GreaterThan(latest) {
			latest = v
			latestTag = tag
		}
	}
	return latestTag
}

// displayVersion picks the version string for the pin comment. An exact
// entry in the tag list wins. A short alias such as "v1" or "v2" falls
// back to the latest release tag when that tag extends the alias. Any
// other tag is used as is.
func (r *TagResolver) displayVersion(repo, target string) string {
	if tags, ok := r.api.Tags(repo); ok && slices.Contains(tags, target) {
		slog.Debug("found exact tag match", "repo", repo, "tag", target)
		return target
	}

	if !strings.HasPrefix(target, "v") || len(target) > 3 {
		return target
	}

	latest, ok := r.api.LatestReleaseTag(repo)
	if !ok || !strings.HasPrefix(latest, target) {
		return target
	}

	slog.Debug("using latest release tag", "repo", repo, "tag", latest)
	return latest
}
