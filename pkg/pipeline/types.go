package pipeline

import (
	"image"
	"image/color"
	"time"

	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/rfs"
	"github.com/user/vszip/pkg/video"
)

// =============================================================================
// Source Stage Types
// =============================================================================

// ClipSpec describes where a clip comes from. A non-empty Path opens an
// MP4 file; otherwise a blank clip is built from Blank.
type ClipSpec struct {
	Path  string
	Blank BlankSpec
}

// IsBlank reports whether the spec describes a blank clip.
func (c ClipSpec) IsBlank() bool {
	return c.Path == ""
}

// BlankSpec holds blank clip properties. Zero fields take the blank clip
// defaults.
type BlankSpec struct {
	Format string
	Width  int
	Height int
	FPSNum int64
	FPSDen int64
	Length int
	Color  []float64
}

// SourceInput names the two clips of a run.
type SourceInput struct {
	A ClipSpec
	B ClipSpec
}

// SourceResult holds the opened clips.
type SourceResult struct {
	A ports.Clip
	B ports.Clip
}

// =============================================================================
// Splice Stage Types
// =============================================================================

// SpliceInput contains the RFS invocation arguments.
type SpliceInput struct {
	A         ports.Clip
	B         ports.Clip
	Frames    []int
	Mode      rfs.Mode
	Direction rfs.Direction
}

// SpliceResult holds the constructed node.
type SpliceResult struct {
	Node *rfs.Node
}

// =============================================================================
// Render Stage Types
// =============================================================================

// RenderInput selects which output frames to pull.
type RenderInput struct {
	Node *rfs.Node

	// Frames to pull, in report order. Empty pulls every output frame.
	Frames []int

	// ThumbnailWidth is the width of debug thumbnails (default: 160).
	ThumbnailWidth int
}

// Pull is the outcome of requesting one output frame.
type Pull struct {
	Index      int
	Source     rfs.Source
	Geometry   video.Geometry // as delivered; zero when Err is set
	Bytes      int
	Compressed bool
	Elapsed    time.Duration
	Err        error
}

// OK reports whether the pull delivered a frame.
func (p Pull) OK() bool {
	return p.Err == nil
}

// RenderResult holds every pull in request order.
type RenderResult struct {
	Pulls  []Pull
	Failed int
}

// =============================================================================
// Timeline Stage Types
// =============================================================================

// TimelineInput contains the pulls to draw.
type TimelineInput struct {
	Pulls      []Pull
	Columns    int // Cells per row (default: 20)
	CellWidth  int // Cell width (default: 56)
	CellHeight int // Cell height (default: 40)
	Padding    int // Padding around the grid (default: 8)
	Theme      TimelineTheme
}

// DefaultTimelineInput returns TimelineInput with default values.
func DefaultTimelineInput() TimelineInput {
	return TimelineInput{
		Columns:    20,
		CellWidth:  56,
		CellHeight: 40,
		Padding:    8,
		Theme:      DefaultTimelineTheme(),
	}
}

// TimelineTheme defines timeline colors.
type TimelineTheme struct {
	BackgroundColor color.Color
	SourceAColor    color.Color
	SourceBColor    color.Color
	ErrorColor      color.Color
	BorderColor     color.Color
	TextColor       color.Color
}

// DefaultTimelineTheme returns the default timeline theme.
func DefaultTimelineTheme() TimelineTheme {
	return TimelineTheme{
		BackgroundColor: color.RGBA{R: 245, G: 245, B: 245, A: 255},
		SourceAColor:    color.RGBA{R: 66, G: 133, B: 244, A: 255},
		SourceBColor:    color.RGBA{R: 251, G: 140, B: 0, A: 255},
		ErrorColor:      color.RGBA{R: 211, G: 47, B: 47, A: 255},
		BorderColor:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
		TextColor:       color.White,
	}
}

// TimelineResult contains the rendered strip.
type TimelineResult struct {
	Image image.Image
	PNG   []byte
}
