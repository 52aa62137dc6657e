package mocks

import (
	"image"
	"sync"

	"github.com/user/vszip/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	PullsJSON  []byte
	Thumbnails map[int]image.Image
	Timeline   image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:    enabled,
		Thumbnails: make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SavePullsJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PullsJSON = data
	return nil
}

func (m *DebugSink) SaveThumbnail(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Thumbnails[index] = img
	return nil
}

func (m *DebugSink) SaveTimeline(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Timeline = img
	return nil
}

// ThumbnailCount returns the number of saved thumbnails.
func (m *DebugSink) ThumbnailCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Thumbnails)
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                                  { return false }
func (m *NullSink) SavePullsJSON(data []byte) error                { return nil }
func (m *NullSink) SaveThumbnail(index int, img image.Image) error { return nil }
func (m *NullSink) SaveTimeline(img image.Image) error             { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
