// Package config loads editor settings from a TOML file and supports
// live reload while the editor is running.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the user-tunable editor settings.
type Config struct {
	// TabWidth is the number of columns a tab character expands to.
	TabWidth int `toml:"tab_width"`

	// ScrollGap is the number of rows and columns kept visible around
	// the cursor when the viewport follows it.
	ScrollGap int `toml:"scroll_gap"`

	// ShowDebugLine toggles the diagnostics line at the bottom of the
	// window.
	ShowDebugLine bool `toml:"show_debug_line"`

	// Theme overrides named colors with "#rrggbb" values.
	Theme map[string]string `toml:"theme"`

	// LogFile is the path log output is appended to. Empty disables
	// logging.
	LogFile string `toml:"log_file"`

	// LogLevel is the minimum level written to the log file.
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		TabWidth:      4,
		ScrollGap:     2,
		ShowDebugLine: true,
		Theme:         map[string]string{},
		LogLevel:      "info",
	}
}

// DefaultPath returns the conventional config file location for the
// current user.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "config.toml")
}

// Load reads settings from path, applied over the defaults. A missing
// file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.TabWidth < 1 {
		c.TabWidth = 1
	}
	if c.ScrollGap < 0 {
		c.ScrollGap = 0
	}
	if c.Theme == nil {
		c.Theme = map[string]string{}
	}
}
