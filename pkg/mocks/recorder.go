package mocks

import (
	"sync"
	"time"

	"github.com/user/vszip/pkg/ports"
)

// PullCall records a call to RecordPull.
type PullCall struct {
	Source string
	Err    error
}

// PullRecorder is a mock implementation of ports.PullRecorder.
type PullRecorder struct {
	mu    sync.Mutex
	Calls []PullCall
}

func (m *PullRecorder) RecordPull(source string, err error, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, PullCall{Source: source, Err: err})
}

// Count returns the number of recorded pulls.
func (m *PullRecorder) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

var _ ports.PullRecorder = (*PullRecorder)(nil)
