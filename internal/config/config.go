// Package config loads the application settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"imagecraft/internal/algorithms"
)

// Config is the application configuration.
type Config struct {
	Debug  bool         `toml:"debug"`
	Window WindowConfig `toml:"window"`
	Text   TextConfig   `toml:"text"`
	Export ExportConfig `toml:"export"`
}

// WindowConfig sets the initial window size.
type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// TextConfig holds the defaults of the Add Text dialog.
type TextConfig struct {
	Thickness   int    `toml:"thickness"`
	Margin      int    `toml:"margin"`
	DefaultSize int    `toml:"default_size"`
	Family      string `toml:"family"`
	Color       string `toml:"color"`
}

// ExportConfig holds the defaults of the export dialog.
type ExportConfig struct {
	DefaultName string `toml:"default_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{Width: 1280, Height: 800},
		Text: TextConfig{
			Thickness:   4,
			Margin:      10,
			DefaultSize: 24,
			Family:      "simplex",
			Color:       "#ffffff",
		},
		Export: ExportConfig{DefaultName: "edited_image.png"},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the editor cannot use.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %vx%v must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Text.Thickness <= 0 {
		errs = append(errs, fmt.Errorf("text thickness %d must be positive", c.Text.Thickness))
	}
	if c.Text.Margin < 0 {
		errs = append(errs, fmt.Errorf("text margin %d must not be negative", c.Text.Margin))
	}
	if c.Text.DefaultSize <= 0 {
		errs = append(errs, fmt.Errorf("text size %d must be positive", c.Text.DefaultSize))
	}
	if _, err := ParseHexColor(c.Text.Color); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TextOptions converts the text defaults into overlay options.
func (c Config) TextOptions() algorithms.TextOptions {
	opts := algorithms.DefaultTextOptions()
	opts.Thickness = c.Text.Thickness
	opts.Margin = c.Text.Margin
	opts.Font = algorithms.Font{Family: c.Text.Family, Size: c.Text.DefaultSize}
	if col, err := ParseHexColor(c.Text.Color); err == nil {
		opts.Color = col
	}
	return opts
}

// ParseHexColor parses "#rrggbb" into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
