package summarizer

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/vszip/pkg/mocks"
	"github.com/user/vszip/pkg/video"
)

func testSummary() *Summary {
	return &Summary{
		RunID:       "5f0c8a4e-0000-4000-8000-000000000000",
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Clips: ClipsInfo{
			A: ClipInfo{Origin: "blank", Descriptor: video.Descriptor{
				Geometry:  video.Geometry{Width: 1280, Height: 720, FPSNum: 24000, FPSDen: 1001, Format: video.YUV420P8},
				NumFrames: 10,
			}},
			B: ClipInfo{Origin: "blank", Descriptor: video.Descriptor{
				Geometry:  video.Geometry{Width: 640, Height: 480, FPSNum: 30, FPSDen: 1, Format: video.RGB24},
				NumFrames: 10,
			}},
			Output: ClipInfo{Origin: "rfs", Descriptor: video.Variable(10)},
		},
		Settings: Settings{Mode: "mismatch", Direction: "replace", Frames: []int{0, 3, 5, 6, 7}, Workers: 4},
		Pulls: PullsInfo{
			Total: 10, FromA: 5, FromB: 5, Failed: 1,
			TotalBytes: 1024 * 1024,
			Failures:   []Failure{{Index: 12, Error: "rfs: frame 12 out of range, output clip has 10 frames"}},
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter()

	result := formatter.Format(testSummary())

	checks := []string{
		"# RFS Run Summary",
		"5f0c8a4e-0000-4000-8000-000000000000",
		"2024-01-15 10:30:00 UTC",
		"1280x720",
		"24000/1001",
		"YUV420P8",
		"dynamic",
		"0, 3, 5-7",
		"1.00 MB",
		"## Failed Pulls",
		"frame 12 out of range",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Format_MarkdownTables(t *testing.T) {
	result := NewMarkdownFormatter().Format(testSummary())

	if !strings.Contains(result, "| Clip | Origin | Size | Format | FPS | Frames |") {
		t.Errorf("expected clips table header, got:\n%s", result)
	}
	if !strings.Contains(result, "| output | rfs | dynamic | dynamic | dynamic |") {
		t.Errorf("expected output clip row, got:\n%s", result)
	}
}

func TestMarkdownFormatter_Format_NoFailures(t *testing.T) {
	s := testSummary()
	s.Pulls.Failed = 0
	s.Pulls.Failures = nil

	result := NewMarkdownFormatter().Format(s)
	if strings.Contains(result, "Failed Pulls") {
		t.Error("output should NOT contain the failures section")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"RFS Run Summary": "RFS 実行サマリー",
			"Clips":           "クリップ",
			"Failed Pulls":    "失敗した取得",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	formatter := NewMarkdownFormatter(WithTranslator(translator))
	result := formatter.Format(testSummary())

	for _, want := range []string{"RFS 実行サマリー", "クリップ", "失敗した取得"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	formatter := NewMarkdownFormatter(WithVersion("v1.2.0"))

	result := formatter.Format(testSummary())

	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatFrames(t *testing.T) {
	tests := []struct {
		frames []int
		want   string
	}{
		{nil, "-"},
		{[]int{4}, "4"},
		{[]int{0, 3, 5, 6, 7}, "0, 3, 5-7"},
		{[]int{1, 2, 3, 10, 11}, "1-3, 10-11"},
	}

	for _, tt := range tests {
		if got := FormatFrames(tt.frames); got != tt.want {
			t.Errorf("FormatFrames(%v) = %q, want %q", tt.frames, got, tt.want)
		}
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "run " + s.RunID }), fs)

	path := filepath.Join("out", "summary.md")
	if err := w.Write(path, &Summary{RunID: "x"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, ok := fs.GetFile(path)
	if !ok || string(data) != "run x\n" {
		t.Errorf("expected 'run x' at %s, got %q", path, data)
	}
	if !fs.HasDir("out") {
		t.Error("expected parent directory to be created")
	}
}

func TestWriter_Write_NilSummary(t *testing.T) {
	fs := mocks.NewFileSystem()
	if err := NewWriter(NewMarkdownFormatter(), fs).Write("summary.md", nil); err == nil {
		t.Error("expected error for nil summary")
	}
	if len(fs.Writes()) != 0 {
		t.Errorf("expected no writes, got %v", fs.Writes())
	}
}

func TestWriter_Write_Error(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error { return errors.New("disk full") }

	err := NewWriter(NewMarkdownFormatter(), fs).Write("summary.md", testSummary())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected wrapped write error, got %v", err)
	}
}
