package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields zero config", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
		require.NoError(t, err)
		assert.Empty(t, cfg.APIURL)
	})

	t.Run("reads api_url from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		err := os.WriteFile(path, []byte("api_url: https://api.example.com/api/v1\n"), 0600)
		require.NoError(t, err)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com/api/v1", cfg.APIURL)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		err := os.WriteFile(path, []byte("api_url: [unclosed"), 0600)
		require.NoError(t, err)

		_, err = Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config")
	})
}

func TestResolveBaseURL(t *testing.T) {
	t.Run("override wins over file", func(t *testing.T) {
		cfg := &Config{APIURL: "https://file.example.com"}
		assert.Equal(t, "https://flag.example.com", cfg.ResolveBaseURL("https://flag.example.com"))
	})

	t.Run("file wins over default", func(t *testing.T) {
		cfg := &Config{APIURL: "https://file.example.com"}
		assert.Equal(t, "https://file.example.com", cfg.ResolveBaseURL(""))
	})

	t.Run("falls back to localhost default", func(t *testing.T) {
		cfg := &Config{}
		assert.Equal(t, "http://localhost:8000/api/v1", cfg.ResolveBaseURL(""))
	})
}
