// Package workflow locates GitHub Actions workflow files and rewrites
// the action references inside them.
package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// FindWorkflowFiles returns the YAML files under dir, recursively, minus
// those matching an exclude pattern. Patterns are matched against paths
// relative to dir, with forward slashes.
func FindWorkflowFiles(dir string, excludes []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("directory not found: %s", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	files, err := doublestar.FilepathGlob(filepath.Join(dir, "**", "*.{yml,yaml}"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	files = slices.DeleteFunc(files, func(path string) bool {
		return matchesAny(excludes, dir, path)
	})
	slices.Sort(files)
	return files, nil
}

// matchesAny reports whether path, made relative to dir, matches one of
// the patterns.
func matchesAny(patterns []string, dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
