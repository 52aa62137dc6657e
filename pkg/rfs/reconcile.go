package rfs

import (
	"fmt"

	"github.com/user/vszip/pkg/video"
)

// Mode is the consistency policy between clip a and clip b.
type Mode int

const (
	// Strict requires both clips to share dimensions, frame rate and
	// pixel format.
	Strict Mode = iota
	// Mismatch allows any pair of clips and advertises the output as
	// variable-format.
	Mismatch
)

// String returns the mode name used in scripts.
func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Mismatch:
		return "mismatch"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeFromMismatch maps the filter's mismatch argument to a Mode.
func ModeFromMismatch(mismatch bool) Mode {
	if mismatch {
		return Mismatch
	}
	return Strict
}

// ParseMode parses "strict" or "mismatch". The empty string is Strict.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "strict":
		return Strict, nil
	case "mismatch":
		return Mismatch, nil
	default:
		return 0, invalidf("unknown mode %q", s)
	}
}

// Reconciler derives the advertised output descriptor once and resolves
// the descriptor of every delivered frame.
type Reconciler struct {
	mode       Mode
	advertised video.Descriptor
}

// NewReconciler validates a and b under mode and caches the advertised
// descriptor.
func NewReconciler(a, b video.Descriptor, mode Mode) (*Reconciler, error) {
	length := outputLength(a, b)

	switch mode {
	case Strict:
		if fields := differingFields(a.Geometry, b.Geometry); len(fields) > 0 {
			return nil, &MismatchError{Fields: fields, A: a, B: b}
		}
		return &Reconciler{
			mode:       Strict,
			advertised: video.Descriptor{Geometry: a.Geometry, NumFrames: length},
		}, nil
	case Mismatch:
		// Always variable, even when the clips happen to agree.
		return &Reconciler{
			mode:       Mismatch,
			advertised: video.Variable(length),
		}, nil
	default:
		return nil, invalidf("unknown mode %d", int(mode))
	}
}

// Mode returns the consistency mode.
func (r *Reconciler) Mode() Mode {
	return r.mode
}

// Advertised returns the output clip descriptor.
func (r *Reconciler) Advertised() video.Descriptor {
	return r.advertised
}

// Resolve returns the geometry to report for a frame delivered by src.
// Strict nodes report the advertised geometry, which every source frame
// matches. Mismatch nodes, and Strict nodes over variable sources, report
// the frame's own geometry.
func (r *Reconciler) Resolve(_ Source, frame video.Geometry) video.Geometry {
	if r.mode == Strict && !r.advertised.IsVariable() {
		return r.advertised.Geometry
	}
	return frame
}

// outputLength never extends a clip: the shorter known length wins.
func outputLength(a, b video.Descriptor) int {
	switch {
	case a.KnownLength() && b.KnownLength():
		return min(a.NumFrames, b.NumFrames)
	case a.KnownLength():
		return a.NumFrames
	case b.KnownLength():
		return b.NumFrames
	default:
		return video.UnknownLength
	}
}

func differingFields(a, b video.Geometry) []string {
	var fields []string
	if a.Width != b.Width {
		fields = append(fields, "width")
	}
	if a.Height != b.Height {
		fields = append(fields, "height")
	}
	if a.FPSNum != b.FPSNum || a.FPSDen != b.FPSDen {
		fields = append(fields, "fps")
	}
	if a.Format != b.Format {
		fields = append(fields, "format")
	}
	return fields
}
