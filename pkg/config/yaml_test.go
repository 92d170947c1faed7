package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syntree/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies file patterns", func(t *testing.T) {
		original := config.NewConfig()
		original.Files.Include = []string{"docs/**"}
		original.Files.Exclude = []string{"vendor/**"}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Files.Exclude[0] = "changed"
		clone.Output.MaxDepth = 9
		assert.Equal(t, "vendor/**", original.Files.Exclude[0])
		assert.Zero(t, original.Output.MaxDepth)
	})
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	original := config.NewConfig()
	original.Language = "calc"
	original.Jobs = 4
	original.Cache.Shared = true
	original.Markdown.GFM = false
	original.Files.Exclude = []string{"vendor/**"}

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "language: calc\n")
	assert.Contains(t, string(data), "markdown:\n  gfm: false\n")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestToYAMLWithHeader(t *testing.T) {
	data, err := config.NewConfig().ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Regexp(t, `^# header\n\nformat: text\n`, string(data))

	var c *config.Config
	data, err = c.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestFromYAML(t *testing.T) {
	t.Run("missing keys keep defaults", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("jobs: 2\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Jobs)
		assert.True(t, cfg.Markdown.GFM)
		assert.Equal(t, config.FormatText, cfg.Format)
	})

	t.Run("explicit false overrides a true default", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("markdown:\n  gfm: false\n"))
		require.NoError(t, err)
		assert.False(t, cfg.Markdown.GFM)
	})

	t.Run("empty document", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("  \n"))
		require.NoError(t, err)
		assert.Equal(t, config.NewConfig(), cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := config.FromYAML([]byte("flavor: gfm\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "flavor")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := config.FromYAML([]byte("jobs: [1\n"))
		require.Error(t, err)
	})
}

func TestDecodeYAMLLayers(t *testing.T) {
	cfg := config.NewConfig()
	require.NoError(t, cfg.DecodeYAML([]byte("jobs: 3\noutput:\n  max_depth: 2\n")))
	require.NoError(t, cfg.DecodeYAML([]byte("output:\n  offsets: false\n")))

	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, 2, cfg.Output.MaxDepth, "nested keys absent from a later layer survive")
	assert.False(t, cfg.Output.Offsets)
}
