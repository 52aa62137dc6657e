// Package config provides script loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/user/vszip/pkg/orchestrator"
	"github.com/user/vszip/pkg/pipeline"
	"github.com/user/vszip/pkg/rfs"
)

// Config represents a vszip script.
type Config struct {
	// Sources
	ClipA ClipConfig `yaml:"clipa" toml:"clipa"`
	ClipB ClipConfig `yaml:"clipb" toml:"clipb"`

	// RFS arguments
	Frames    []int  `yaml:"frames" toml:"frames"`
	Mismatch  bool   `yaml:"mismatch" toml:"mismatch"`
	Direction string `yaml:"direction" toml:"direction"`

	// Render
	Workers        int   `yaml:"workers" toml:"workers"`
	Pull           []int `yaml:"pull" toml:"pull"`
	ThumbnailWidth int   `yaml:"thumbnail_width" toml:"thumbnail_width"`

	// Timeline
	Timeline TimelineConfig `yaml:"timeline" toml:"timeline"`

	// Outputs
	Outputs OutputsConfig `yaml:"outputs" toml:"outputs"`

	LogLevel string `yaml:"log_level" toml:"log_level"`
}

// ClipConfig describes one source clip: an MP4 path or blank clip options.
type ClipConfig struct {
	Source string       `yaml:"source" toml:"source"`
	Blank  *BlankConfig `yaml:"blank" toml:"blank"`
}

// BlankConfig holds blank clip options. Zero values take the blank clip
// defaults.
type BlankConfig struct {
	Format string    `yaml:"format" toml:"format"`
	Width  int       `yaml:"width" toml:"width"`
	Height int       `yaml:"height" toml:"height"`
	FPSNum int64     `yaml:"fpsnum" toml:"fpsnum"`
	FPSDen int64     `yaml:"fpsden" toml:"fpsden"`
	Length int       `yaml:"length" toml:"length"`
	Color  []float64 `yaml:"color" toml:"color"`
}

// TimelineConfig represents timeline sheet options.
type TimelineConfig struct {
	Columns    int         `yaml:"columns" toml:"columns"`
	CellWidth  int         `yaml:"cell_width" toml:"cell_width"`
	CellHeight int         `yaml:"cell_height" toml:"cell_height"`
	Padding    int         `yaml:"padding" toml:"padding"`
	Theme      ThemeConfig `yaml:"theme" toml:"theme"`
}

// ThemeConfig represents timeline colours as hex strings.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color" toml:"background_color"`
	SourceAColor    string `yaml:"source_a_color" toml:"source_a_color"`
	SourceBColor    string `yaml:"source_b_color" toml:"source_b_color"`
	ErrorColor      string `yaml:"error_color" toml:"error_color"`
	BorderColor     string `yaml:"border_color" toml:"border_color"`
	TextColor       string `yaml:"text_color" toml:"text_color"`
}

// OutputsConfig lists the files a run writes. Empty paths are skipped.
type OutputsConfig struct {
	Summary  string `yaml:"summary" toml:"summary"`
	Timeline string `yaml:"timeline" toml:"timeline"`
	Metrics  string `yaml:"metrics" toml:"metrics"`
	DebugDir string `yaml:"debug_dir" toml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Direction:      rfs.ReplaceFromB.String(),
		Workers:        4,
		ThumbnailWidth: 160,
		Timeline: TimelineConfig{
			Columns:    20,
			CellWidth:  56,
			CellHeight: 40,
			Padding:    8,
			Theme: ThemeConfig{
				BackgroundColor: "#f5f5f5",
				SourceAColor:    "#4285f4",
				SourceBColor:    "#fb8c00",
				ErrorColor:      "#d32f2f",
				BorderColor:     "#ffffff",
				TextColor:       "#ffffff",
			},
		},
		LogLevel: "info",
	}
}

// ErrInvalidScript wraps script files that cannot be decoded.
var ErrInvalidScript = errors.New("invalid script")

// LoadFromFile decodes a script from a YAML (.yaml, .yml) or TOML (.toml)
// file over the defaults. It does not validate: CLI overrides are applied
// first and Validate runs once on the result.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: unsupported script format %q", ErrInvalidScript, ext)
	}
	if err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %w", ErrInvalidScript, path, err)
	}
	return cfg, nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config. Call
// Validate first; unparsable values fall back to their defaults.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	cfg := orchestrator.DefaultConfig()

	cfg.ClipA = c.ClipA.spec()
	cfg.ClipB = c.ClipB.spec()

	cfg.Frames = c.Frames
	cfg.Mode = rfs.ModeFromMismatch(c.Mismatch)
	if d, err := rfs.ParseDirection(c.Direction); err == nil {
		cfg.Direction = d
	}

	cfg.Pull = c.Pull
	if c.ThumbnailWidth > 0 {
		cfg.ThumbnailWidth = c.ThumbnailWidth
	}

	cfg.TimelinePath = c.Outputs.Timeline
	t := c.Timeline
	cfg.Timeline.Columns = t.Columns
	cfg.Timeline.CellWidth = t.CellWidth
	cfg.Timeline.CellHeight = t.CellHeight
	cfg.Timeline.Padding = t.Padding
	cfg.Timeline.Theme = t.Theme.toTheme(cfg.Timeline.Theme)

	return cfg
}

func (c ClipConfig) spec() pipeline.ClipSpec {
	if c.Blank == nil {
		return pipeline.ClipSpec{Path: c.Source}
	}
	b := c.Blank
	return pipeline.ClipSpec{Blank: pipeline.BlankSpec{
		Format: b.Format,
		Width:  b.Width,
		Height: b.Height,
		FPSNum: b.FPSNum,
		FPSDen: b.FPSDen,
		Length: b.Length,
		Color:  b.Color,
	}}
}

// toTheme overlays the configured colours on base. Empty strings keep the
// base colour.
func (t ThemeConfig) toTheme(base pipeline.TimelineTheme) pipeline.TimelineTheme {
	set := func(dst *color.Color, hex string) {
		if hex != "" {
			*dst = ParseColor(hex)
		}
	}
	set(&base.BackgroundColor, t.BackgroundColor)
	set(&base.SourceAColor, t.SourceAColor)
	set(&base.SourceBColor, t.SourceBColor)
	set(&base.ErrorColor, t.ErrorColor)
	set(&base.BorderColor, t.BorderColor)
	set(&base.TextColor, t.TextColor)
	return base
}

// ParseColor parses a hex color string ("#rrggbb" or "rrggbb") to
// color.Color. Malformed input yields black.
func ParseColor(hex string) color.Color {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return color.Black
	}

	var rgb [3]uint8
	for i := range rgb {
		rgb[i] = hexValue(hex[2*i])<<4 | hexValue(hex[2*i+1])
	}

	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
