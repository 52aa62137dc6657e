package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/video"
)

// Clip is a mock implementation of ports.Clip. Frames carry the clip's own
// geometry and a one-byte plane holding the frame index.
type Clip struct {
	Desc         video.Descriptor
	GetFrameFunc func(ctx context.Context, n int) (*video.Frame, error)
	LenFunc      func() int

	mu    sync.Mutex
	pulls []int
}

// NewClip creates a mock clip with the given geometry and length.
func NewClip(geom video.Geometry, length int) *Clip {
	return &Clip{Desc: video.Descriptor{Geometry: geom, NumFrames: length}}
}

func (m *Clip) Descriptor() video.Descriptor {
	return m.Desc
}

func (m *Clip) Len() int {
	if m.LenFunc != nil {
		return m.LenFunc()
	}
	return m.Desc.NumFrames
}

func (m *Clip) GetFrame(ctx context.Context, n int) (*video.Frame, error) {
	m.mu.Lock()
	m.pulls = append(m.pulls, n)
	m.mu.Unlock()

	if m.GetFrameFunc != nil {
		return m.GetFrameFunc(ctx, n)
	}
	if m.Desc.KnownLength() && (n < 0 || n >= m.Desc.NumFrames) {
		return nil, fmt.Errorf("mock clip: frame %d out of range", n)
	}
	return &video.Frame{
		Geometry: m.Desc.Geometry,
		Planes:   [][]byte{{byte(n)}},
		Strides:  []int{1},
	}, nil
}

// Pulls returns the frame indices requested so far.
func (m *Clip) Pulls() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, len(m.pulls))
	copy(out, m.pulls)
	return out
}

var _ ports.Clip = (*Clip)(nil)

// ClipOpener is a mock implementation of ports.ClipOpener.
type ClipOpener struct {
	Clips    map[string]ports.Clip
	OpenFunc func(path string) (ports.Clip, error)

	Opened []string
}

func (m *ClipOpener) Open(path string) (ports.Clip, error) {
	m.Opened = append(m.Opened, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	if c, ok := m.Clips[path]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("mock opener: no clip for %s", path)
}

var _ ports.ClipOpener = (*ClipOpener)(nil)
