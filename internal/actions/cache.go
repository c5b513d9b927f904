package actions

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// DefaultCacheFileName is the name of the cache file created in the
// user home directory.
const DefaultCacheFileName = ".github_action_sha_cache.json"

// Entry holds the resolved details for one repository tag.
type Entry struct {
	SHA         string `json:"sha"`
	FullVersion string `json:"full_version"`
}

// Store is the resolution cache used to avoid redundant API calls
// across runs. The whole cache expires at once: entries older than the
// freshness window are discarded on load, never individually.
type Store interface {
	Load()
	Get(repo, tag string, allowCached bool) (Entry, bool)
	Put(repo, tag string, entry Entry)
	Save()
	Clear()
}

// cacheFile is the on-disk representation of the cache.
type cacheFile struct {
	Timestamp string           `json:"timestamp"`
	Entries   map[string]Entry `json:"entries"`
}

// FileCache is a Store persisted as a single JSON file.
type FileCache struct {
	path    string
	ttl     time.Duration
	entries map[string]Entry
}

// Ensure FileCache implements Store
var _ Store = (*FileCache)(nil)

// NewFileCache creates a FileCache at path with the given freshness window.
func NewFileCache(path string, ttl time.Duration) *FileCache {
	return &FileCache{
		path:    path,
		ttl:     ttl,
		entries: make(map[string]Entry),
	}
}

// DefaultCachePath returns the cache location in the user home directory.
func DefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultCacheFileName
	}
	return filepath.Join(home, DefaultCacheFileName)
}

// cacheKey builds the lookup key for a repository and resolved tag.
func cacheKey(repo, tag string) string {
	return fmt.Sprintf("%s@%s", repo, tag)
}

// Load reads the persisted cache. The cache is discarded entirely when
// the stored timestamp is missing, unparseable, or older than the
// freshness window. Read and parse errors are logged and leave the cache
// empty, never failing the run.
func (c *FileCache) Load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("error loading cache", "path", c.path, "error", err)
		}
		return
	}

	var persisted cacheFile
	if err := json.Unmarshal(data, &persisted); err != nil {
		slog.Error("error loading cache", "path", c.path, "error", err)
		return
	}

	timestamp, err := time.Parse(time.RFC3339, persisted.Timestamp)
	if err != nil {
		slog.Debug("discarding cache without valid timestamp", "path", c.path)
		return
	}
	if time.Since(timestamp) >= c.ttl {
		slog.Debug("discarding stale cache", "path", c.path, "age", time.Since(timestamp))
		return
	}

	if persisted.Entries != nil {
		c.entries = persisted.Entries
	}
	slog.Info("loaded cache entries", "count", len(c.entries))
}

// Get returns the entry for a repository tag. A cached value is served
// only when allowCached is true: an update check must re-resolve its
// input tag, while a lookup for an already resolved target tag passes
// allowCached true and is honored.
func (c *FileCache) Get(repo, tag string, allowCached bool) (Entry, bool) {
	if !allowCached {
		return Entry{}, false
	}
	entry, ok := c.entries[cacheKey(repo, tag)]
	if ok {
		slog.Debug("using cached data", "key", cacheKey(repo, tag))
	}
	return entry, ok
}

// Put records the resolved details for a tag, overwriting any prior entry.
func (c *FileCache) Put(repo, tag string, entry Entry) {
	key := cacheKey(repo, tag)
	c.entries[key] = entry
	slog.Debug("cached resolution", "key", key, "sha", entry.SHA, "version", entry.FullVersion)
}

// Save persists all entries with a fresh timestamp. Failures are logged,
// not fatal.
func (c *FileCache) Save() {
	data, err := json.Marshal(cacheFile{
		Timestamp: time.Now().Format(time.RFC3339),
		Entries:   c.entries,
	})
	if err != nil {
		slog.Error("error saving cache", "path", c.path, "error", err)
		return
	}

	if err := os.WriteFile(c.path, data, 0600); err != nil {
		slog.Error("error saving cache", "path", c.path, "error", err)
		return
	}
	slog.Info("saved cache entries", "count", len(c.entries))
}

// Clear deletes the persisted cache file if present.
func (c *FileCache) Clear() {
	if err := os.Remove(c.path); err != nil {
		if !os.IsNotExist(err) {
			slog.Error("error clearing cache", "path", c.path, "error", err)
		}
		return
	}
	slog.Info("cache cleared", "path", c.path)
}
