package rfs

import (
	"context"
	"fmt"

	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/video"
)

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	direction Direction
	logger    ports.Logger
}

// WithDirection sets what the frame list names. The default is ReplaceFromB.
func WithDirection(d Direction) Option {
	return func(o *buildOptions) {
		o.direction = d
	}
}

// WithLogger sets the logger used during construction.
func WithLogger(l ports.Logger) Option {
	return func(o *buildOptions) {
		o.logger = l
	}
}

// discard is the logger used when WithLogger is not given.
type discard struct{}

func (discard) Debug(string, ...interface{})        {}
func (discard) Info(string, ...interface{})         {}
func (discard) Warn(string, ...interface{})         {}
func (discard) Error(string, ...interface{})        {}
func (d discard) WithComponent(string) ports.Logger { return d }

// Node is the RFS output clip. A Node is immutable and safe for concurrent
// GetFrame calls.
type Node struct {
	a, b       ports.Clip
	selector   *Selector
	reconciler *Reconciler
}

// Build constructs an RFS node over clip a and clip b. Either a fully
// constructed node or an error is returned.
func Build(a, b ports.Clip, frames []int, mode Mode, opts ...Option) (*Node, error) {
	o := buildOptions{direction: ReplaceFromB, logger: discard{}}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.WithComponent("rfs")

	if a == nil || b == nil {
		return nil, invalidf("clipa and clipb are required")
	}
	if mode != Strict && mode != Mismatch {
		return nil, invalidf("unknown mode %d", int(mode))
	}
	selector, err := NewSelector(frames, o.direction)
	if err != nil {
		return nil, err
	}

	reconciler, err := NewReconciler(a.Descriptor(), b.Descriptor(), mode)
	if err != nil {
		return nil, err
	}

	n := &Node{a: a, b: b, selector: selector, reconciler: reconciler}

	desc := reconciler.Advertised()
	log.Debug("Built RFS node: %s mode, %d listed frames, %d output frames", mode, len(selector.frames), desc.NumFrames)
	if desc.KnownLength() && selector.Max() >= desc.NumFrames {
		log.Warn("Listed frame %d is beyond the output length %d", selector.Max(), desc.NumFrames)
	}

	return n, nil
}

// Descriptor returns the advertised output descriptor.
func (n *Node) Descriptor() video.Descriptor {
	return n.reconciler.Advertised()
}

// Len returns the output length.
func (n *Node) Len() int {
	return n.reconciler.Advertised().NumFrames
}

// Mode returns the consistency mode.
func (n *Node) Mode() Mode {
	return n.reconciler.Mode()
}

// Direction returns the selection direction.
func (n *Node) Direction() Direction {
	return n.selector.Direction()
}

// Frames returns the distinct listed frames in ascending order.
func (n *Node) Frames() []int {
	return n.selector.Frames()
}

// Source returns the clip that supplies output frame i.
func (n *Node) Source(i int) Source {
	return n.selector.Select(i)
}

// Clip returns the source clip for tag s, or nil.
func (n *Node) Clip(s Source) ports.Clip {
	switch s {
	case SourceA:
		return n.a
	case SourceB:
		return n.b
	default:
		return nil
	}
}

// GetFrame returns output frame i: the selected source's frame, relabelled
// with the resolved geometry.
func (n *Node) GetFrame(ctx context.Context, i int) (*video.Frame, error) {
	desc := n.reconciler.Advertised()
	if i < 0 || (desc.KnownLength() && i >= desc.NumFrames) {
		return nil, &RangeError{Index: i, Source: SourceNone, Len: desc.NumFrames}
	}

	// A source whose Len() is shorter than its advertised descriptor, such as
	// a clip truncated after construction, is caught here.
	src := n.selector.Select(i)
	clip := n.Clip(src)
	if l := clip.Len(); l != video.UnknownLength && i >= l {
		return nil, &RangeError{Index: i, Source: src, Len: l}
	}

	frame, err := clip.GetFrame(ctx, i)
	if err != nil {
		return nil, fmt.Errorf("get frame %d from clip %s: %w", i, src, err)
	}

	return frame.WithGeometry(n.reconciler.Resolve(src, frame.Geometry)), nil
}

// String renders the node the way the host prints it.
func (n *Node) String() string {
	return n.Descriptor().Repr()
}

var (
	_ ports.Clip   = (*Node)(nil)
	_ ports.Logger = discard{}
)
