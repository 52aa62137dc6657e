package ports

import "time"

// PullRecorder receives one observation per frame pull.
type PullRecorder interface {
	// RecordPull records a pull served by source ("a" or "b").
	// err is nil for delivered frames.
	RecordPull(source string, err error, elapsed time.Duration)
}
