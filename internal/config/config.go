package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWalksPerMinute = 30.0
	DefaultPixelsPerPoint = 20
	DefaultDotRadius      = 2
	DefaultBgColor        = 0xFF1A1A1A
	DefaultFgColor        = 0xFF606060
	DefaultActiveColor    = 0xFFFF0000
)

// Config holds the daemon settings. Colors are packed 32-bit ARGB.
type Config struct {
	WalksPerMinute  float64 `yaml:"walks_per_minute"`
	PixelsPerPoint  int     `yaml:"pixels_per_point"`
	DotRadius       int     `yaml:"dot_radius"`
	BgColor         uint32  `yaml:"bg_color"`
	FgColor         uint32  `yaml:"fg_color"`
	ActiveColor     uint32  `yaml:"active_color"`
	DrawEdges       bool    `yaml:"draw_edges"`
	HighlightActive bool    `yaml:"highlight_active"`
	Theme           string  `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		WalksPerMinute:  DefaultWalksPerMinute,
		PixelsPerPoint:  DefaultPixelsPerPoint,
		DotRadius:       DefaultDotRadius,
		BgColor:         DefaultBgColor,
		FgColor:         DefaultFgColor,
		ActiveColor:     DefaultActiveColor,
		HighlightActive: true,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/walk-bg/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "walk-bg", "config.yaml"), nil
}

// Load reads a YAML config file. Values unmarshal over the defaults, so
// absent fields keep their built-in values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Theme != "" {
		theme, ok := LookupTheme(cfg.Theme)
		if !ok {
			return nil, fmt.Errorf("unknown theme: %s", cfg.Theme)
		}
		cfg.applyTheme(theme)
	}
	cfg.sanitize()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyTheme fills in the colors the file left at their defaults. Colors
// set explicitly in the file win over the theme.
func (c *Config) applyTheme(t Theme) {
	if c.BgColor == DefaultBgColor {
		c.BgColor = t.Bg
	}
	if c.FgColor == DefaultFgColor {
		c.FgColor = t.Fg
	}
	if c.ActiveColor == DefaultActiveColor {
		c.ActiveColor = t.Active
	}
}

// sanitize clamps out-of-range numeric fields back to their defaults so a
// bad file cannot stall the walk timer or collapse the grid.
func (c *Config) sanitize() {
	if c.WalksPerMinute <= 0 {
		c.WalksPerMinute = DefaultWalksPerMinute
	}
	if c.PixelsPerPoint <= 0 {
		c.PixelsPerPoint = DefaultPixelsPerPoint
	}
	if c.DotRadius < 0 {
		c.DotRadius = DefaultDotRadius
	}
}

// WalkInterval converts the walk cadence into the tick period between steps.
func (c *Config) WalkInterval() time.Duration {
	return time.Duration(60.0 / c.WalksPerMinute * float64(time.Second))
}
