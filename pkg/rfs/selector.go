// Package rfs implements the RFS (replace frames) filter: a node that
// stitches two clips into one by choosing, per output frame, which clip
// supplies it.
package rfs

import (
	"fmt"
	"slices"
)

// Source tags the clip a frame is taken from.
type Source int

const (
	SourceNone Source = iota - 1
	SourceA
	SourceB
)

// String returns "a", "b" or "none".
func (s Source) String() string {
	switch s {
	case SourceA:
		return "a"
	case SourceB:
		return "b"
	default:
		return "none"
	}
}

// Direction fixes what the frame list names.
type Direction int

const (
	// ReplaceFromB takes the listed frames from clip b and every other
	// frame from clip a.
	ReplaceFromB Direction = iota
	// KeepFromA takes the listed frames from clip a and every other frame
	// from clip b.
	KeepFromA
)

// String returns the direction name used in scripts.
func (d Direction) String() string {
	switch d {
	case ReplaceFromB:
		return "replace"
	case KeepFromA:
		return "keep"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection parses "replace" or "keep". The empty string is ReplaceFromB.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "replace":
		return ReplaceFromB, nil
	case "keep":
		return KeepFromA, nil
	default:
		return 0, invalidf("unknown direction %q", s)
	}
}

// Selector maps an output frame index to its source clip. It is immutable
// after construction and safe for concurrent use.
type Selector struct {
	frames []int // sorted, unique
	listed Source
	other  Source
}

// NewSelector builds a selector over the given frame list. Order and
// duplicates in frames do not matter.
func NewSelector(frames []int, dir Direction) (*Selector, error) {
	if len(frames) == 0 {
		return nil, invalidf("frames must not be empty")
	}

	set := slices.Clone(frames)
	for _, n := range set {
		if n < 0 {
			return nil, invalidf("frame %d is negative", n)
		}
	}
	slices.Sort(set)
	set = slices.Compact(set)

	s := &Selector{frames: set}
	switch dir {
	case ReplaceFromB:
		s.listed, s.other = SourceB, SourceA
	case KeepFromA:
		s.listed, s.other = SourceA, SourceB
	default:
		return nil, invalidf("unknown direction %d", int(dir))
	}
	return s, nil
}

// Select returns the source of output frame n. It does not range-check n.
func (s *Selector) Select(n int) Source {
	if _, found := slices.BinarySearch(s.frames, n); found {
		return s.listed
	}
	return s.other
}

// Frames returns the distinct listed frames in ascending order.
func (s *Selector) Frames() []int {
	return slices.Clone(s.frames)
}

// Max returns the largest listed frame.
func (s *Selector) Max() int {
	return s.frames[len(s.frames)-1]
}

// Direction returns the configured direction.
func (s *Selector) Direction() Direction {
	if s.listed == SourceA {
		return KeepFromA
	}
	return ReplaceFromB
}
