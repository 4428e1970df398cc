package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"wallpick/internal/config"
	"wallpick/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	err = tmpFile.Close()
	require.NoError(t, err)
	return tmpFile.Name()
}

const (
	validYAML = `
directories:
  wallpapers: "/home/test/walls"
preview:
  cache_capacity: 4
  protocol: ascii
ui:
  tick_ms: 33
  theme: ocean
wallpaper:
  backend: command
  command: ["swaybg", "-o", "{monitor}", "-i", "{path}"]
  monitors: ["DP-1", "HDMI-A-1"]
log:
  level: debug
`
	invalidSyntaxYAML = `
preview:
  cache_capacity: [8
ui: # unterminated flow sequence
  tick_ms: 16
`
	invalidValueYAML = `
preview:
  protocol: sixel
`
	zeroCapacityYAML = `
preview:
  cache_capacity: 0
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		configFile := createTestYAML(t, validYAML)
		cfg, err := config.LoadConfigFile(configFile)

		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "/home/test/walls", cfg.Directories.Wallpapers)
		assert.Equal(t, 4, cfg.Capacity())
		assert.Equal(t, "ascii", cfg.Preview.Protocol)
		assert.Equal(t, 33, cfg.UI.TickMS)
		assert.Equal(t, "ocean", cfg.UI.Theme)
		assert.Equal(t, "command", cfg.Wallpaper.Backend)
		assert.Equal(t, []string{"DP-1", "HDMI-A-1"}, cfg.Wallpaper.Monitors)
		assert.Equal(t, "debug", cfg.Log.Level)

		// Unset fields keep their defaults
		assert.Equal(t, config.DefaultPattern, cfg.Library.Pattern)
		assert.Equal(t, 1920, cfg.Preview.MaxWidth)
	})

	t.Run("load non-existent file returns defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.DefaultCacheCapacity, cfg.Capacity())
		assert.Equal(t, "hyprpaper", cfg.Wallpaper.Backend)
		assert.Equal(t, config.DefaultTickMS, cfg.UI.TickMS)
	})

	t.Run("load invalid syntax", func(t *testing.T) {
		configFile := createTestYAML(t, invalidSyntaxYAML)
		_, err := config.LoadConfigFile(configFile)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("load invalid value", func(t *testing.T) {
		configFile := createTestYAML(t, invalidValueYAML)
		_, err := config.LoadConfigFile(configFile)
		require.Error(t, err)

		var configErr *errors.ConfigError
		require.True(t, errors.As(err, &configErr))
		assert.Equal(t, "preview.protocol", configErr.Param())
	})

	t.Run("explicit zero capacity is kept", func(t *testing.T) {
		configFile := createTestYAML(t, zeroCapacityYAML)
		cfg, err := config.LoadConfigFile(configFile)
		require.NoError(t, err)
		assert.Equal(t, 0, cfg.Capacity())
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		param  string
	}{
		{"negative capacity", func(c *config.Config) { c.SetCapacity(-1) }, "preview.cache_capacity"},
		{"zero tick", func(c *config.Config) { c.UI.TickMS = 0 }, "ui.tick_ms"},
		{"empty pattern", func(c *config.Config) { c.Library.Pattern = "  " }, "library.pattern"},
		{"unknown backend", func(c *config.Config) { c.Wallpaper.Backend = "feh" }, "wallpaper.backend"},
		{"command backend without command", func(c *config.Config) { c.Wallpaper.Backend = "command" }, "wallpaper.command"},
		{"command without path placeholder", func(c *config.Config) {
			c.Wallpaper.Backend = "command"
			c.Wallpaper.Command = []string{"swaybg", "-o", "{monitor}"}
		}, "wallpaper.command"},
		{"bad log level", func(c *config.Config) { c.Log.Level = "loud" }, "log.level"},
		{"unknown theme", func(c *config.Config) { c.UI.Theme = "neon" }, "ui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)

			var configErr *errors.ConfigError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tt.param, configErr.Param())
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, config.New().Validate())
	})

	t.Run("nil config", func(t *testing.T) {
		var cfg *config.Config
		assert.ErrorIs(t, cfg.Validate(), errors.ErrInvalidConfig)
	})
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := config.NewTestConfig(dir)
	cfg.SetCapacity(3)
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Capacity())
	assert.Equal(t, dir, loaded.Directories.Wallpapers)
	assert.Equal(t, []string{"true", "{monitor}", "{path}"}, loaded.Wallpaper.Command)
}

func TestThemes(t *testing.T) {
	for _, name := range config.ListThemes() {
		theme := config.GetTheme(name)
		assert.Contains(t, theme, "primary", name)
		assert.Contains(t, theme, "border", name)
	}
	assert.Equal(t, config.GetTheme("default"), config.GetTheme("missing"))
}
