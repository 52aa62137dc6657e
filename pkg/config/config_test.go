package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/user/vszip/pkg/rfs"
)

const yamlScript = `
clipa:
  blank:
    format: YUV420P8
    width: 1280
    height: 720
    fpsnum: 24000
    fpsden: 1001
    length: 10
clipb:
  blank:
    format: YUV420P8
    width: 1280
    height: 720
    fpsnum: 24000
    fpsden: 1001
    length: 10
    color: [16.0, 128.0, 128.0]
frames: [0, 3, 5]
mismatch: true
direction: keep
workers: 2
timeline:
  columns: 5
  theme:
    source_a_color: "#000000"
outputs:
  summary: out/summary.md
  timeline: out/timeline.png
  metrics: out/metrics.prom
log_level: debug
`

const tomlScript = `
frames = [0, 3, 5]
mismatch = true
direction = "keep"
workers = 2
log_level = "debug"

[clipa.blank]
format = "YUV420P8"
width = 1280
height = 720
fpsnum = 24000
fpsden = 1001
length = 10

[clipb.blank]
format = "YUV420P8"
width = 1280
height = 720
fpsnum = 24000
fpsden = 1001
length = 10
color = [16.0, 128.0, 128.0]

[timeline]
columns = 5

[timeline.theme]
source_a_color = "#000000"

[outputs]
summary = "out/summary.md"
timeline = "out/timeline.png"
metrics = "out/metrics.prom"
`

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Direction != "replace" {
		t.Errorf("expected direction replace, got %q", cfg.Direction)
	}
	if cfg.Workers != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.Workers)
	}
	if cfg.ThumbnailWidth != 160 {
		t.Errorf("expected thumbnail width 160, got %d", cfg.ThumbnailWidth)
	}
	if cfg.Timeline.Columns != 20 || cfg.Timeline.Padding != 8 {
		t.Errorf("unexpected timeline defaults: %+v", cfg.Timeline)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadFromFile_YAML(t *testing.T) {
	cfg, err := LoadFromFile(writeScript(t, "run.yaml", yamlScript))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ClipA.Blank == nil || cfg.ClipA.Blank.Width != 1280 {
		t.Errorf("unexpected clipa: %+v", cfg.ClipA)
	}
	if !reflect.DeepEqual(cfg.ClipB.Blank.Color, []float64{16, 128, 128}) {
		t.Errorf("unexpected clipb color: %v", cfg.ClipB.Blank.Color)
	}
	if !reflect.DeepEqual(cfg.Frames, []int{0, 3, 5}) {
		t.Errorf("unexpected frames: %v", cfg.Frames)
	}
	if !cfg.Mismatch || cfg.Direction != "keep" || cfg.Workers != 2 {
		t.Errorf("unexpected settings: %+v", cfg)
	}
	// Unset fields keep their defaults.
	if cfg.ThumbnailWidth != 160 || cfg.Timeline.CellWidth != 56 {
		t.Errorf("expected defaults to survive, got %+v", cfg)
	}
	if cfg.Outputs.Summary != "out/summary.md" {
		t.Errorf("unexpected outputs: %+v", cfg.Outputs)
	}
}

func TestLoadFromFile_TOMLMatchesYAML(t *testing.T) {
	fromYAML, err := LoadFromFile(writeScript(t, "run.yml", yamlScript))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	fromTOML, err := LoadFromFile(writeScript(t, "run.toml", tomlScript))
	if err != nil {
		t.Fatalf("toml: %v", err)
	}

	if !reflect.DeepEqual(fromYAML, fromTOML) {
		t.Errorf("scripts differ:\nyaml: %+v\ntoml: %+v", fromYAML, fromTOML)
	}
	if !reflect.DeepEqual(fromYAML.ToOrchestratorConfig(), fromTOML.ToOrchestratorConfig()) {
		t.Error("orchestrator configs differ")
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unsupported extension", "run.json", "{}", "unsupported script format"},
		{"bad yaml", "run.yaml", "frames: [0, 3", "parse"},
		{"bad toml", "run.toml", "frames = [", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeScript(t, tt.file, tt.content))
			if !errors.Is(err, ErrInvalidScript) {
				t.Fatalf("expected ErrInvalidScript, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || errors.Is(err, ErrInvalidScript) {
		t.Errorf("expected a read error for a missing file, got %v", err)
	}
}

func TestLoadFromFile_DoesNotValidate(t *testing.T) {
	cfg, err := LoadFromFile(writeScript(t, "run.yaml", "clipa:\n  source: a.mp4\nclipb:\n  source: b.mp4\n"))
	if err != nil {
		t.Fatalf("expected a script without frames to load, got %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected Validate to reject the missing frames")
	}

	cfg.Frames = []int{1, 2}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected frames supplied later to validate, got %v", err)
	}
}

func validConfig() Config {
	cfg := Defaults()
	cfg.ClipA = ClipConfig{Source: "a.mp4"}
	cfg.ClipB = ClipConfig{Blank: &BlankConfig{}}
	cfg.Frames = []int{1}
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		want   string
	}{
		{"valid", func(c *Config) {}, ""},
		{"both sources", func(c *Config) { c.ClipA.Blank = &BlankConfig{} }, "mutually exclusive"},
		{"no source", func(c *Config) { c.ClipB = ClipConfig{} }, "clipb: source or blank is required"},
		{"unknown format", func(c *Config) { c.ClipB.Blank.Format = "YUV411P8" }, "clipb.blank.format"},
		{"empty frames", func(c *Config) { c.Frames = nil }, "frames must not be empty"},
		{"negative frame", func(c *Config) { c.Frames = []int{2, -1} }, "frames: -1"},
		{"negative pull", func(c *Config) { c.Pull = []int{-3} }, "pull: -3"},
		{"bad direction", func(c *Config) { c.Direction = "sideways" }, "direction"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg := validConfig()
	cfg.ClipB.Blank = &BlankConfig{Format: "Gray8", Width: 64, Height: 32, Length: 5}
	cfg.Mismatch = true
	cfg.Direction = "keep"
	cfg.Outputs.Timeline = "timeline.png"
	cfg.Timeline.Theme.ErrorColor = "#000000"

	oc := cfg.ToOrchestratorConfig()

	if oc.ClipA.Path != "a.mp4" || oc.ClipA.IsBlank() {
		t.Errorf("unexpected clipa: %+v", oc.ClipA)
	}
	if !oc.ClipB.IsBlank() || oc.ClipB.Blank.Format != "Gray8" || oc.ClipB.Blank.Length != 5 {
		t.Errorf("unexpected clipb: %+v", oc.ClipB)
	}
	if oc.Mode != rfs.Mismatch || oc.Direction != rfs.KeepFromA {
		t.Errorf("unexpected mode/direction: %s/%s", oc.Mode, oc.Direction)
	}
	if oc.TimelinePath != "timeline.png" {
		t.Errorf("unexpected timeline path: %q", oc.TimelinePath)
	}
	if oc.Timeline.Columns != 20 || oc.ThumbnailWidth != 160 {
		t.Errorf("unexpected timeline settings: %+v", oc.Timeline)
	}
	if oc.Timeline.Theme.ErrorColor != (color.RGBA{A: 255}) {
		t.Errorf("expected black error color, got %v", oc.Timeline.Theme.ErrorColor)
	}
}

func TestParseFrameList(t *testing.T) {
	tests := []struct {
		input   string
		want    []int
		wantErr bool
	}{
		{"0,3,5", []int{0, 3, 5}, false},
		{"0, 3, 5-7", []int{0, 3, 5, 6, 7}, false},
		{"4-4", []int{4}, false},
		{"2,,3,", []int{2, 3}, false},
		{"", nil, true},
		{"a", nil, true},
		{"-3", nil, true},
		{"7-5", nil, true},
		{"1-x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFrameList(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseFrameList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.Color
	}{
		{"#ff8000", color.RGBA{R: 255, G: 128, B: 0, A: 255}},
		{"4285F4", color.RGBA{R: 66, G: 133, B: 244, A: 255}},
		{"#fff", color.Black},
		{"", color.Black},
	}

	for _, tt := range tests {
		if got := ParseColor(tt.input); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
