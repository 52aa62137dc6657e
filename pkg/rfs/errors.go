package rfs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/user/vszip/pkg/video"
)

var (
	// ErrFormatMismatch is returned in Strict mode when the two clips
	// disagree on dimensions, frame rate or pixel format.
	ErrFormatMismatch = errors.New("rfs: format mismatch")

	// ErrIndexOutOfRange is returned by a pull whose frame index lies
	// outside the output clip or the selected source clip.
	ErrIndexOutOfRange = errors.New("rfs: index out of range")

	// ErrInvalidConfiguration is returned for malformed construction
	// parameters, before any descriptor work is done.
	ErrInvalidConfiguration = errors.New("rfs: invalid configuration")
)

// MismatchError describes which properties differ between clip a and clip b.
type MismatchError struct {
	Fields []string
	A, B   video.Descriptor
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("rfs: clip a and clip b differ in %s (%s vs %s); pass mismatch=true to allow it",
		strings.Join(e.Fields, ", "), e.A.Geometry, e.B.Geometry)
}

// Is reports whether target is ErrFormatMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrFormatMismatch
}

// RangeError reports a pull outside the valid frame range.
type RangeError struct {
	Index  int
	Source Source // source clip checked, or SourceNone for the output clip
	Len    int
}

func (e *RangeError) Error() string {
	if e.Source == SourceNone {
		return fmt.Sprintf("rfs: frame %d out of range, output clip has %d frames", e.Index, e.Len)
	}
	return fmt.Sprintf("rfs: frame %d out of range for clip %s with %d frames", e.Index, e.Source, e.Len)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
