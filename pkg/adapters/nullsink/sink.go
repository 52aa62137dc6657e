// Package nullsink provides the debug sink used when --debug is off.
package nullsink

import (
	"image"

	"github.com/user/vszip/pkg/ports"
)

// Sink drops pull dumps, thumbnails and timelines.
type Sink struct{}

func New() *Sink {
	return &Sink{}
}

// Enabled reports false so the render stage skips thumbnail work.
func (*Sink) Enabled() bool { return false }

func (*Sink) SavePullsJSON([]byte) error { return nil }

func (*Sink) SaveThumbnail(int, image.Image) error { return nil }

func (*Sink) SaveTimeline(image.Image) error { return nil }

var _ ports.DebugSink = (*Sink)(nil)
