package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentGenerateCmd_LoadConfigFile(t *testing.T) {
	t.Run("yaml config takes precedence over flags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "job.yaml")
		err := os.WriteFile(path, []byte(`
adDescription: summer beer promotion
imagePrompt: a cold beer on a beach
seed: 12345
steps: 20
samplerName: euler_ancestral
`), 0600)
		require.NoError(t, err)

		cmd := &ContentGenerateCmd{
			AdDescription: "from-flag",
			SamplerName:   "euler",
			Config:        path,
		}
		require.NoError(t, cmd.loadConfigFile())

		assert.Equal(t, "summer beer promotion", cmd.AdDescription)
		assert.Equal(t, "a cold beer on a beach", cmd.ImagePrompt)
		assert.Equal(t, "euler_ancestral", cmd.SamplerName)
		require.NotNil(t, cmd.Seed)
		assert.Equal(t, int64(12345), *cmd.Seed)
		require.NotNil(t, cmd.Steps)
		assert.Equal(t, 20, *cmd.Steps)
	})

	t.Run("json config by extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "job.json")
		err := os.WriteFile(path, []byte(`{"adDescription":"launch","imagePrompt":"storefront","cfg":2.5}`), 0600)
		require.NoError(t, err)

		cmd := &ContentGenerateCmd{Config: path}
		require.NoError(t, cmd.loadConfigFile())

		assert.Equal(t, "launch", cmd.AdDescription)
		require.NotNil(t, cmd.CFG)
		assert.InDelta(t, 2.5, *cmd.CFG, 0.0001)
	})

	t.Run("flags survive when the file omits them", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "job.yaml")
		err := os.WriteFile(path, []byte("imagePrompt: storefront\n"), 0600)
		require.NoError(t, err)

		cmd := &ContentGenerateCmd{AdDescription: "from-flag", Config: path}
		require.NoError(t, cmd.loadConfigFile())

		assert.Equal(t, "from-flag", cmd.AdDescription)
		assert.Equal(t, "storefront", cmd.ImagePrompt)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "job.yaml")
		err := os.WriteFile(path, []byte("imagePrompt: [unclosed"), 0600)
		require.NoError(t, err)

		cmd := &ContentGenerateCmd{Config: path}
		require.Error(t, cmd.loadConfigFile())
	})
}
