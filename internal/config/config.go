package config

import (
	"os"
	"path/filepath"
	"strings"

	"wallpick/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
type Config struct {
	Directories struct {
		Wallpapers string `yaml:"wallpapers"` // Directory listed by the browser
	} `yaml:"directories"`
	Library struct {
		Pattern string `yaml:"pattern"` // Glob matched against lower-cased file names
	} `yaml:"library"`
	Preview struct {
		CacheCapacity *int   `yaml:"cache_capacity"` // Decoded previews kept in memory (0 disables caching)
		Protocol      string `yaml:"protocol"`       // auto, halfblocks or ascii
		MaxWidth      int    `yaml:"max_width"`      // Decoded images are downscaled to fit this box
		MaxHeight     int    `yaml:"max_height"`
	} `yaml:"preview"`
	UI struct {
		TickMS int    `yaml:"tick_ms"` // Frame interval; results are drained once per frame
		Theme  string `yaml:"theme"`
	} `yaml:"ui"`
	Wallpaper struct {
		Backend  string   `yaml:"backend"`  // hyprpaper or command
		Command  []string `yaml:"command"`  // argv with {path} and {monitor} placeholders
		Monitors []string `yaml:"monitors"` // Monitor names for the command backend
	} `yaml:"wallpaper"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

const (
	DefaultCacheCapacity = 8
	DefaultTickMS        = 16
	DefaultPattern       = "*.{jpg,jpeg,png,webp,gif,bmp}"
)

// Path returns the default configuration location
// (~/.config/wallpick/config.yaml).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wallpick", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	cfg.merge(&tempCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.Directories.Wallpapers != "" {
		c.Directories.Wallpapers = o.Directories.Wallpapers
	}
	if o.Library.Pattern != "" {
		c.Library.Pattern = o.Library.Pattern
	}
	if o.Preview.CacheCapacity != nil {
		capacity := *o.Preview.CacheCapacity
		c.Preview.CacheCapacity = &capacity
	}
	if o.Preview.Protocol != "" {
		c.Preview.Protocol = o.Preview.Protocol
	}
	if o.Preview.MaxWidth > 0 {
		c.Preview.MaxWidth = o.Preview.MaxWidth
	}
	if o.Preview.MaxHeight > 0 {
		c.Preview.MaxHeight = o.Preview.MaxHeight
	}
	if o.UI.TickMS != 0 {
		c.UI.TickMS = o.UI.TickMS
	}
	if o.UI.Theme != "" {
		c.UI.Theme = o.UI.Theme
	}
	if o.Wallpaper.Backend != "" {
		c.Wallpaper.Backend = o.Wallpaper.Backend
	}
	if len(o.Wallpaper.Command) > 0 {
		c.Wallpaper.Command = o.Wallpaper.Command
	}
	if len(o.Wallpaper.Monitors) > 0 {
		c.Wallpaper.Monitors = o.Wallpaper.Monitors
	}
	if o.Log.Level != "" {
		c.Log.Level = o.Log.Level
	}
	if o.Log.File != "" {
		c.Log.File = o.Log.File
	}
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	cfg.Directories.Wallpapers = filepath.Join(home, "pictures", "wallpapers")
	cfg.Library.Pattern = DefaultPattern

	capacity := DefaultCacheCapacity
	cfg.Preview.CacheCapacity = &capacity
	cfg.Preview.Protocol = "auto"
	cfg.Preview.MaxWidth = 1920
	cfg.Preview.MaxHeight = 1080

	cfg.UI.TickMS = DefaultTickMS
	cfg.UI.Theme = "default"

	cfg.Wallpaper.Backend = "hyprpaper"

	cfg.Log.Level = "info"
	cfg.Log.File = filepath.Join(home, ".cache", "wallpick", "wallpick.log")

	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// Capacity returns the preview cache capacity.
func (c *Config) Capacity() int {
	if c.Preview.CacheCapacity == nil {
		return DefaultCacheCapacity
	}
	return *c.Preview.CacheCapacity
}

// SetCapacity sets the preview cache capacity.
func (c *Config) SetCapacity(n int) {
	c.Preview.CacheCapacity = &n
}

// SaveConfig writes cfg as YAML to path, creating missing directories.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewFileError("cannot create config directory", filepath.Dir(path), errors.IOError, err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewFileError("cannot write config", path, errors.IOError, err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrInvalidConfig
	}

	if c.Capacity() < 0 {
		return errors.NewConfigError("cache capacity must be >= 0", "preview.cache_capacity", errors.InvalidConfig, nil)
	}

	validProtocols := map[string]bool{"auto": true, "halfblocks": true, "ascii": true}
	if !validProtocols[c.Preview.Protocol] {
		return errors.NewConfigError("invalid preview protocol "+c.Preview.Protocol, "preview.protocol", errors.InvalidConfig, nil)
	}

	if c.Preview.MaxWidth < 1 || c.Preview.MaxHeight < 1 {
		return errors.NewConfigError("preview bounds must be positive", "preview.max_width", errors.InvalidConfig, nil)
	}

	if c.UI.TickMS < 1 {
		return errors.NewConfigError("tick interval must be >= 1ms", "ui.tick_ms", errors.InvalidConfig, nil)
	}

	if strings.TrimSpace(c.Library.Pattern) == "" {
		return errors.NewConfigError("pattern is required", "library.pattern", errors.InvalidConfig, nil)
	}

	switch c.Wallpaper.Backend {
	case "hyprpaper":
	case "command":
		if len(c.Wallpaper.Command) == 0 {
			return errors.NewConfigError("command backend requires wallpaper.command", "wallpaper.command", errors.InvalidConfig, nil)
		}
		if !containsPlaceholder(c.Wallpaper.Command, "{path}") {
			return errors.NewConfigError("wallpaper.command must reference {path}", "wallpaper.command", errors.InvalidConfig, nil)
		}
	default:
		return errors.NewConfigError("invalid backend "+c.Wallpaper.Backend, "wallpaper.backend", errors.InvalidConfig, nil)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		return errors.NewConfigError("invalid log level "+c.Log.Level, "log.level", errors.InvalidConfig, nil)
	}

	if _, ok := themes[c.UI.Theme]; !ok {
		return errors.NewConfigError("unknown theme "+c.UI.Theme, "ui.theme", errors.InvalidConfig, nil)
	}

	return nil
}

func containsPlaceholder(argv []string, placeholder string) bool {
	for _, arg := range argv {
		if strings.Contains(arg, placeholder) {
			return true
		}
	}
	return false
}

// NewTestConfig creates a configuration instance for testing purposes.
func NewTestConfig(dir string) *Config {
	cfg := defaultConfig()
	cfg.Directories.Wallpapers = dir
	cfg.Log.File = filepath.Join(dir, "wallpick.log")
	cfg.Wallpaper.Backend = "command"
	cfg.Wallpaper.Command = []string{"true", "{monitor}", "{path}"}
	cfg.Wallpaper.Monitors = []string{"TEST-1"}
	return cfg
}

var themes = map[string]map[string]string{
	"default": {
		"primary": "213", // Purple
		"muted":   "245",
		"error":   "196",
		"border":  "213",
	},
	"dark": {
		"primary": "105",
		"muted":   "240",
		"error":   "160",
		"border":  "105",
	},
	"ocean": {
		"primary": "31",
		"muted":   "248",
		"error":   "196",
		"border":  "31",
	},
	"monochrome": {
		"primary": "255",
		"muted":   "245",
		"error":   "252",
		"border":  "245",
	},
}

// GetTheme returns a predefined theme by name.
// If the theme doesn't exist, returns the default theme.
func GetTheme(name string) map[string]string {
	if theme, exists := themes[name]; exists {
		return theme
	}
	return themes["default"]
}

// ListThemes returns a list of available theme names.
func ListThemes() []string {
	return []string{"default", "dark", "ocean", "monochrome"}
}
