package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/jjshanks/pin-actions/internal/osutil"
)

// DefaultConfigFileName is the default name of the configuration file.
const DefaultConfigFileName = ".pin-actions.yaml"

const (
	// DefaultCacheTTL is the default freshness window for the resolution cache.
	DefaultCacheTTL = 24 * time.Hour
	// DefaultTokenEnv is the environment variable consulted for the API token.
	DefaultTokenEnv = "GITHUB_TOKEN" //nolint:gosec // Not a credential, just env var name
)

// Config represents the pin-actions configuration file structure.
type Config struct {
	Cache  *CacheConfig  `yaml:"cache,omitempty"`
	GitHub *GitHubConfig `yaml:"github,omitempty"`
	Files  *FilesConfig  `yaml:"files,omitempty"`
}

// CacheConfig controls the on-disk resolution cache.
type CacheConfig struct {
	Path string `yaml:"path"` // Cache file location
	TTL  string `yaml:"ttl"`  // Duration string (e.g., "24h", "90m")
}

// Validate checks CacheConfig for invalid values.
func (c *CacheConfig) Validate() error {
	if c == nil {
		return nil
	}
	if c.TTL != "" {
		if _, err := time.ParseDuration(c.TTL); err != nil {
			return fmt.Errorf("invalid cache ttl %q: %w", c.TTL, err)
		}
	}
	return nil
}

// GitHubConfig controls how the GitHub API is reached.
type GitHubConfig struct {
	BaseURL  string `yaml:"base-url"`  // API base URL for GitHub Enterprise deployments
	TokenEnv string `yaml:"token-env"` // Environment variable holding the API token
}

// Validate checks GitHubConfig for invalid values.
func (g *GitHubConfig) Validate() error {
	if g == nil {
		return nil
	}
	if g.BaseURL != "" {
		u, err := url.Parse(g.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base-url %q: %w", g.BaseURL, err)
		}
		if !u.IsAbs() {
			return fmt.Errorf("base-url %q must be an absolute URL", g.BaseURL)
		}
	}
	return nil
}

// FilesConfig controls workflow file discovery.
type FilesConfig struct {
	Exclude []string `yaml:"exclude"` // Glob patterns skipped during discovery
}

// Validate checks FilesConfig for invalid values.
func (f *FilesConfig) Validate() error {
	if f == nil {
		return nil
	}
	for _, pattern := range f.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}

// Validate checks all configuration values for validity.
func (c *Config) Validate() error {
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.GitHub.Validate(); err != nil {
		return err
	}
	return c.Files.Validate()
}

// GetCachePath returns the configured cache file location, or empty when
// the default per-user location should be used.
func (c *Config) GetCachePath() string {
	if c == nil || c.Cache == nil {
		return ""
	}
	return c.Cache.Path
}

// GetCacheTTL returns the configured cache freshness window.
// Returns DefaultCacheTTL if not configured or invalid.
func (c *Config) GetCacheTTL() time.Duration {
	if c == nil || c.Cache == nil || c.Cache.TTL == "" {
		return DefaultCacheTTL
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return DefaultCacheTTL
	}
	return d
}

// GetBaseURL returns the configured API base URL, or empty for the
// public GitHub API.
func (c *Config) GetBaseURL() string {
	if c == nil || c.GitHub == nil {
		return ""
	}
	return c.GitHub.BaseURL
}

// GetTokenEnv returns the name of the environment variable consulted for
// the API token. Returns DefaultTokenEnv if not configured.
func (c *Config) GetTokenEnv() string {
	if c == nil || c.GitHub == nil || c.GitHub.TokenEnv == "" {
		return DefaultTokenEnv
	}
	return c.GitHub.TokenEnv
}

// GetExcludePatterns returns the glob patterns excluded from discovery.
// Patterns are matched against paths relative to the scanned directory.
func (c *Config) GetExcludePatterns() []string {
	if c == nil || c.Files == nil {
		return nil
	}
	return c.Files.Exclude
}

// LoadConfig loads configuration from the specified file.
// Returns defaults if file doesn't exist.
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		filename = DefaultConfigFileName
	}

	if !osutil.FileExists(filename) {
		return &Config{}, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
