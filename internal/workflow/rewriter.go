package workflow

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jjshanks/pin-actions/internal/actions"
	"github.com/jjshanks/pin-actions/internal/osutil"
)

// Rewriter pins and upgrades action references in workflow files.
type Rewriter struct {
	resolver     actions.Resolver
	checkUpdates bool
}

// NewRewriter returns a Rewriter backed by the given resolver. When
// checkUpdates is true, already pinned references are also checked for
// newer releases in the same major series.
func NewRewriter(resolver actions.Resolver, checkUpdates bool) *Rewriter {
	return &Rewriter{resolver: resolver, checkUpdates: checkUpdates}
}

// RewriteLine returns the line with its first action reference pinned or
// upgraded, or the line unchanged when nothing applies.
func (r *Rewriter) RewriteLine(line string) string {
	if ref, ok := actions.MatchPinned(line); ok {
		return r.rewritePinned(line, ref)
	}
	if ref, ok := actions.MatchUnpinned(line); ok {
		return r.rewriteUnpinned(line, ref)
	}
	return line
}

// rewritePinned upgrades a pinned reference. Outside update mode pinned
// references are left alone.
func (r *Rewriter) rewritePinned(line string, ref actions.PinnedRef) string {
	if !r.checkUpdates {
		return line
	}
	res, ok := r.resolver.Resolve(ref.Repo, ref.Version, true)
	if !ok || res.Version == ref.Version {
		return line
	}
	slog.Info("upgraded action", "repo", ref.Repo, "from", ref.Version, "to", res.Version)
	return ref.Replace(line, res.SHA, res.Version)
}

func (r *Rewriter) rewriteUnpinned(line string, ref actions.UnpinnedRef) string {
	res, ok := r.resolver.Resolve(ref.Repo, ref.Tag, r.checkUpdates)
	if !ok {
		return line
	}
	slog.Info("pinned action", "repo", ref.Repo, "tag", ref.Tag, "sha", res.SHA, "version", res.Version)
	return ref.Replace(line, res.SHA, res.Version)
}

// ProcessFile rewrites the action references in the file at path and
// writes it back only when something changed. It reports whether the
// file was modified.
func (r *Rewriter) ProcessFile(path string) (bool, error) {
	slog.Info("processing workflow file", "file", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read workflow file: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	changed := false
	for i, line := range lines {
		if updated := r.RewriteLine(line); updated != line {
			lines[i] = updated
			changed = true
		}
	}

	if !changed {
		slog.Info("no changes needed", "file", path)
		return false, nil
	}

	if err := osutil.WriteFilePreservePerms(path, []byte(strings.Join(lines, "\n"))); err != nil {
		return false, fmt.Errorf("failed to write workflow file: %w", err)
	}
	slog.Info("updated workflow file", "file", path)
	return true, nil
}
