// Package ports defines interfaces for external collaborators: source clips,
// logging, the filesystem, rendering, debug output and metrics.
package ports

import (
	"context"

	"github.com/user/vszip/pkg/video"
)

// Clip is an ordered, possibly lazy sequence of frames.
//
// Implementations must allow concurrent GetFrame calls once constructed.
type Clip interface {
	// Descriptor returns the clip-level metadata. Hosts may cache it.
	Descriptor() video.Descriptor

	// Len returns the number of frames, or video.UnknownLength.
	Len() int

	// GetFrame returns frame n. It blocks until the frame is available.
	// The returned frame's Geometry is the true shape of that frame.
	GetFrame(ctx context.Context, n int) (*video.Frame, error)
}

// ClipOpener opens clips from files.
type ClipOpener interface {
	// Open returns a clip reading from path.
	Open(path string) (Clip, error)
}
