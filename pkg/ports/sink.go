package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SavePullsJSON saves the pull list of a render as JSON.
	SavePullsJSON(data []byte) error

	// SaveThumbnail saves the luma thumbnail of an output frame.
	SaveThumbnail(index int, img image.Image) error

	// SaveTimeline saves the rendered timeline sheet.
	SaveTimeline(img image.Image) error
}
