package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
)

const blankScript = `
clipa:
  blank:
    format: Gray8
    width: 64
    height: 32
    length: 10
clipb:
  blank:
    format: Gray8
    width: 64
    height: 32
    length: 10
    color: [200]
frames: [3]
workers: 2
log_level: quiet
`

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"vszip"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return -1
}

func TestApp_RFS(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "run.yaml", blankScript)
	summary := filepath.Join(dir, "summary.md")
	metrics := filepath.Join(dir, "metrics.prom")
	timeline := filepath.Join(dir, "timeline.png")

	out, err := runApp(t, "rfs",
		"--summary", summary,
		"--metrics", metrics,
		"--timeline", timeline,
		script)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}

	for _, want := range []string{"VideoNode", "Format: Gray8", "Width: 64", "Num Frames: 10", "FPS: 24/1"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "Frame") || !strings.Contains(out, "64x32") {
		t.Errorf("expected pull table, got:\n%s", out)
	}

	data, err := os.ReadFile(summary)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !strings.Contains(string(data), "RFS Run Summary") {
		t.Errorf("unexpected summary:\n%s", data)
	}

	data, err = os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), `vszip_rfs_pulls_total{source="b"} 1`) {
		t.Errorf("expected one pull from b, got:\n%s", data)
	}
	if !strings.Contains(string(data), `vszip_rfs_pulls_total{source="a"} 9`) {
		t.Errorf("expected nine pulls from a, got:\n%s", data)
	}

	data, err = os.ReadFile(timeline)
	if err != nil {
		t.Fatalf("read timeline: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("expected timeline PNG")
	}
}

func TestApp_RFS_TOML(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "run.toml", `
frames = [0]
mismatch = true
log_level = "quiet"

[clipa.blank]
format = "Gray8"
width = 64
height = 32
length = 4

[clipb.blank]
format = "RGB24"
length = 6
`)

	out, err := runApp(t, "rfs", script)
	if err != nil {
		t.Fatalf("unexpected error: %v\n%s", err, out)
	}
	for _, want := range []string{"Format: dynamic", "Width: dynamic", "Num Frames: 4"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestApp_RFS_FailedPulls(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "run.yaml", blankScript+"pull: [2, 12]\n")

	out, err := runApp(t, "rfs", "--frames", "3,12", script)
	if exitCode(err) != 3 {
		t.Fatalf("expected exit code 3, got %v\n%s", err, out)
	}
	if !strings.Contains(err.Error(), "1 of 2 pulls failed") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "out of range") {
		t.Errorf("expected failed pull in table, got:\n%s", out)
	}
}

func TestApp_RFS_Mismatch(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "run.yaml", `
clipa:
  blank: {format: Gray8}
clipb:
  blank: {format: RGB24}
frames: [1]
log_level: quiet
`)

	_, err := runApp(t, "rfs", script)
	if exitCode(err) != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	if !strings.Contains(err.Error(), "mismatch=true") {
		t.Errorf("expected mismatch hint, got %v", err)
	}

	if _, err := runApp(t, "rfs", "--mismatch", script); err != nil {
		t.Errorf("expected --mismatch to allow the run, got %v", err)
	}
}

func TestApp_Usage(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "run.yaml", blankScript)
	noFrames := writeFile(t, dir, "noframes.yaml", strings.Replace(blankScript, "frames: [3]\n", "", 1))
	negative := writeFile(t, dir, "negative.yaml", strings.Replace(blankScript, "frames: [3]", "frames: [-1]", 1))
	broken := writeFile(t, dir, "broken.yaml", "frames: [0, 3")

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"frames from flag", []string{"rfs", "--frames", "1,2", noFrames}, 0},
		{"no frames anywhere", []string{"rfs", noFrames}, 2},
		{"flag fixes invalid script", []string{"rfs", "--frames", "4", negative}, 0},
		{"invalid script", []string{"rfs", negative}, 2},
		{"unparsable script", []string{"rfs", broken}, 2},
		{"unsupported script", []string{"rfs", writeFile(t, dir, "run.ini", "x")}, 2},
		{"rfs without script", []string{"rfs"}, 2},
		{"bad frames flag", []string{"rfs", "--frames", "x", script}, 2},
		{"bad direction", []string{"rfs", "--direction", "sideways", script}, 2},
		{"missing script", []string{"rfs", filepath.Join(dir, "missing.yaml")}, 1},
		{"probe without paths", []string{"probe", "--frames", "1"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.args...)
			if got := exitCode(err); got != tt.code {
				t.Errorf("expected exit code %d, got %d (%v)", tt.code, got, err)
			}
		})
	}
}

func TestApp_ProbeRequiresFrames(t *testing.T) {
	if _, err := runApp(t, "probe", "a.mp4", "b.mp4"); err == nil {
		t.Error("expected error without --frames")
	}
}

func TestApp_Formats(t *testing.T) {
	out, err := runApp(t, "formats")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"YUV420P8", "YUV420P16", "RGBS", "Gray8"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in format table, got:\n%s", want, out)
		}
	}
}
