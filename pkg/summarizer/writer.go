package summarizer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/vszip/pkg/ports"
)

// Writer renders a run summary with a Formatter and stores it through the
// filesystem port.
type Writer struct {
	formatter Formatter
	fs        ports.FileSystem
}

// NewWriter creates a Writer. FormatterFor picks the formatter from the
// output path.
func NewWriter(formatter Formatter, fs ports.FileSystem) *Writer {
	return &Writer{formatter: formatter, fs: fs}
}

// Write formats summary and replaces path with the result. The parent
// directory is created first and the content always ends with a newline.
func (w *Writer) Write(path string, summary *Summary) error {
	if summary == nil {
		return fmt.Errorf("write summary %s: no summary", path)
	}

	content := w.formatter.Format(summary)
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create summary dir %s: %w", dir, err)
		}
	}
	if err := w.fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write summary %s: %w", path, err)
	}
	return nil
}
