package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/vszip/pkg/mocks"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{}
	sink := New(testBaseDir, fs, renderer)

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SavePullsJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{}
	sink := New(testBaseDir, fs, renderer)

	data := []byte(`[{"index":0,"source":"b"}]`)
	err := sink.SavePullsJSON(data)
	if err != nil {
		t.Fatalf("SavePullsJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "pulls.json")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Errorf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SaveThumbnail(t *testing.T) {
	fs := mocks.NewFileSystem()
	var encoded image.Image
	renderer := &mocks.Renderer{
		EncodePNGFunc: func(img image.Image) ([]byte, error) {
			encoded = img
			return []byte("png"), nil
		},
	}
	sink := New(testBaseDir, fs, renderer)

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	if err := sink.SaveThumbnail(12, img); err != nil {
		t.Fatalf("SaveThumbnail failed: %v", err)
	}

	if encoded != image.Image(img) {
		t.Error("expected the thumbnail to be encoded")
	}
	expectedPath := filepath.Join(testBaseDir, "frames", "frame-000012.png")
	if _, ok := fs.GetFile(expectedPath); !ok {
		t.Errorf("expected file to be saved at %s", expectedPath)
	}
}

func TestSink_SaveTimeline_EncodeError(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodePNGFunc: func(img image.Image) ([]byte, error) {
			return nil, errors.New("encode failed")
		},
	}
	sink := New(testBaseDir, fs, renderer)

	err := sink.SaveTimeline(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("expected no file to be written")
	}
}

func TestSink_MultipleThumbnails(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{}
	sink := New(testBaseDir, fs, renderer)

	img := image.NewGray(image.Rect(0, 0, 1, 1))
	for i := 0; i < 10; i++ {
		if err := sink.SaveThumbnail(i, img); err != nil {
			t.Fatalf("SaveThumbnail %d failed: %v", i, err)
		}
	}

	if count := len(fs.GetAllFiles()); count != 10 {
		t.Errorf("expected 10 files, got %d", count)
	}
}

func TestSink_CreatesDirectories(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs, &mocks.Renderer{})

	if err := sink.SaveThumbnail(0, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("SaveThumbnail failed: %v", err)
	}
	if !fs.HasDir(filepath.Join(testBaseDir, "frames")) {
		t.Error("expected frames directory to be created")
	}
}
