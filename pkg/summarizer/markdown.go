package summarizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/user/vszip/pkg/video"
)

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion sets the version printed in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// MarkdownFormatter renders a Summary as Markdown tables.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("RFS Run Summary"))
	if s.RunID != "" {
		fmt.Fprintf(&b, "- %s: `%s`\n", t("Run ID"), s.RunID)
	}
	fmt.Fprintf(&b, "- %s: %s\n\n", t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	fmt.Fprintf(&b, "## %s\n\n", t("Clips"))
	b.WriteString(f.clipsTable(s.Clips))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	b.WriteString(keyValueTable(t, [][2]string{
		{"Mode", s.Settings.Mode},
		{"Direction", s.Settings.Direction},
		{"Frames", FormatFrames(s.Settings.Frames)},
		{"Workers", strconv.Itoa(s.Settings.Workers)},
	}))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Pulls"))
	b.WriteString(keyValueTable(t, [][2]string{
		{"Pulled", strconv.Itoa(s.Pulls.Total)},
		{"From clip a", strconv.Itoa(s.Pulls.FromA)},
		{"From clip b", strconv.Itoa(s.Pulls.FromB)},
		{"Failed", strconv.Itoa(s.Pulls.Failed)},
		{"Data", formatBytes(s.Pulls.TotalBytes)},
	}))
	b.WriteString("\n")

	if len(s.Pulls.Failures) > 0 {
		fmt.Fprintf(&b, "\n## %s\n\n", t("Failed Pulls"))
		tw := newTable()
		tw.AppendHeader(table.Row{t("Frame"), t("Error")})
		for _, fl := range s.Pulls.Failures {
			tw.AppendRow(table.Row{fl.Index, fl.Error})
		}
		tw.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
		b.WriteString(tw.RenderMarkdown())
		b.WriteString("\n")
	}

	if f.version != "" {
		fmt.Fprintf(&b, "\n---\n\n%s vszip %s\n", t("Generated by"), f.version)
	}

	return b.String()
}

func (f *MarkdownFormatter) clipsTable(c ClipsInfo) string {
	t := f.translate
	tw := newTable()
	tw.AppendHeader(table.Row{t("Clip"), t("Origin"), t("Size"), t("Format"), t("FPS"), t("Frames")})
	for _, row := range []struct {
		label string
		info  ClipInfo
	}{
		{"a", c.A},
		{"b", c.B},
		{t("output"), c.Output},
	} {
		d := row.info.Descriptor
		tw.AppendRow(table.Row{row.label, row.info.Origin, d.Size(), d.Format.String(), d.FPS(), frameCount(d)})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Number: 6, Align: text.AlignRight}})
	return tw.RenderMarkdown()
}

func keyValueTable(t func(string) string, rows [][2]string) string {
	tw := newTable()
	tw.AppendHeader(table.Row{t("Item"), t("Value")})
	for _, r := range rows {
		tw.AppendRow(table.Row{t(r[0]), r[1]})
	}
	return tw.RenderMarkdown()
}

// newTable returns a writer that keeps header text as given.
func newTable() table.Writer {
	tw := table.NewWriter()
	tw.Style().Format.Header = text.FormatDefault
	return tw
}

func frameCount(d video.Descriptor) string {
	if !d.KnownLength() {
		return "unknown"
	}
	return strconv.Itoa(d.NumFrames)
}

// FormatFrames renders a sorted frame list with runs collapsed, such as
// "0, 3, 5-7".
func FormatFrames(frames []int) string {
	if len(frames) == 0 {
		return "-"
	}
	var parts []string
	start, prev := frames[0], frames[0]
	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
		}
	}
	for _, n := range frames[1:] {
		if n == prev+1 {
			prev = n
			continue
		}
		flush()
		start, prev = n, n
	}
	flush()
	return strings.Join(parts, ", ")
}

// formatBytes formats byte count as human-readable string.
func formatBytes(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
