package summarizer

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// Formatter converts a Summary to its file representation.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc adapts a function to Formatter.
type FormatFunc func(summary *Summary) string

// Format implements Formatter.
func (f FormatFunc) Format(summary *Summary) string {
	return f(summary)
}

// JSONFormatter renders a Summary as indented JSON for tooling.
var JSONFormatter = FormatFunc(func(s *Summary) string {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "{}\n"
	}
	return string(data) + "\n"
})

// FormatterFor picks the formatter for a summary path: JSON for ".json",
// markdown otherwise.
func FormatterFor(path string, opts ...MarkdownOption) Formatter {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSONFormatter
	}
	return NewMarkdownFormatter(opts...)
}
