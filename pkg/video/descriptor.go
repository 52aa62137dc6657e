package video

import (
	"fmt"
	"strings"
)

// UnknownLength is the NumFrames value of a clip whose length is not known.
// Zero is a real length: an empty clip.
const UnknownLength = -1

// Geometry is the per-frame shape: dimensions, frame rate and pixel format.
// Zero fields are sentinels meaning "consult each frame".
type Geometry struct {
	Width  int
	Height int
	FPSNum int64
	FPSDen int64
	Format Format
}

// VariableGeometry is the all-sentinel geometry advertised by
// variable-format clips.
var VariableGeometry = Geometry{}

// IsVariable reports whether any field of g holds its sentinel value.
// This is the only place sentinel values are interpreted.
func (g Geometry) IsVariable() bool {
	return g.Width == 0 || g.Height == 0 || g.FPSNum == 0 || g.FPSDen == 0 || g.Format.IsZero()
}

// Size returns "WxH", or "dynamic" when either dimension is unset.
func (g Geometry) Size() string {
	if g.Width == 0 || g.Height == 0 {
		return "dynamic"
	}
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// FPS returns "num/den", or "dynamic" when the rate is unset.
func (g Geometry) FPS() string {
	if g.FPSNum == 0 || g.FPSDen == 0 {
		return "dynamic"
	}
	return fmt.Sprintf("%d/%d", g.FPSNum, g.FPSDen)
}

// String returns a one-line summary such as "1280x720 YUV420P8 24000/1001".
func (g Geometry) String() string {
	return fmt.Sprintf("%s %s %s", g.Size(), g.Format, g.FPS())
}

// Descriptor is the clip-level metadata advertised before any frame is
// requested.
type Descriptor struct {
	Geometry
	NumFrames int
}

// Variable returns the variable-format descriptor for a clip of n frames.
func Variable(n int) Descriptor {
	return Descriptor{Geometry: VariableGeometry, NumFrames: n}
}

// KnownLength reports whether the clip length is known.
func (d Descriptor) KnownLength() bool {
	return d.NumFrames >= 0
}

// Repr renders the descriptor the way the host prints a video node.
func (d Descriptor) Repr() string {
	var b strings.Builder
	b.WriteString("VideoNode\n")
	fmt.Fprintf(&b, "\tFormat: %s\n", d.Format)
	if d.Width == 0 || d.Height == 0 {
		b.WriteString("\tWidth: dynamic\n")
		b.WriteString("\tHeight: dynamic\n")
	} else {
		fmt.Fprintf(&b, "\tWidth: %d\n", d.Width)
		fmt.Fprintf(&b, "\tHeight: %d\n", d.Height)
	}
	if d.KnownLength() {
		fmt.Fprintf(&b, "\tNum Frames: %d\n", d.NumFrames)
	} else {
		b.WriteString("\tNum Frames: unknown\n")
	}
	fmt.Fprintf(&b, "\tFPS: %s\n", d.FPS())
	return b.String()
}

// ReduceRational divides num and den by their greatest common divisor.
func ReduceRational(num, den int64) (int64, int64) {
	a, b := num, den
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return num, den
	}
	return num / a, den / a
}

// Frame is one element of a clip: plane buffers plus the frame's own
// geometry. Planes are owned by the clip that produced them.
type Frame struct {
	Geometry Geometry
	Planes   [][]byte
	Strides  []int

	// Compressed frames carry a single encoded access unit in Planes[0].
	Compressed bool
}

// WithGeometry returns a copy of f labelled with g. The copy shares the
// plane buffers of f.
func (f *Frame) WithGeometry(g Geometry) *Frame {
	out := *f
	out.Geometry = g
	return &out
}
