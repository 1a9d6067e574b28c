package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is used when no API URL is configured anywhere.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// Config holds the CLI configuration loaded from ~/.adgen/config.yaml.
type Config struct {
	APIURL   string `yaml:"api_url"`
	CacheDir string `yaml:"cache_dir"`
}

// DefaultPath returns the default config file location (~/.adgen/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".adgen", "config.yaml"), nil
}

// Load reads the config file at path. If path is empty the default location
// is used. A missing file is not an error and yields a zero config; a file
// that exists but does not parse is an error, since it is a user artifact.
func Load(path string) (*Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	log.Debug().Str("path", path).Str("apiURL", cfg.APIURL).Msg("loaded config")

	return &cfg, nil
}

// ResolveBaseURL picks the API base URL with flag/env taking precedence over
// the config file, falling back to the documented localhost default.
func (c *Config) ResolveBaseURL(override string) string {
	if override != "" {
		return override
	}
	if c.APIURL != "" {
		return c.APIURL
	}
	return DefaultBaseURL
}
