// Package blankclip provides a constant-colour clip.
package blankclip

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/video"
)

// Default clip properties.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
	DefaultFPSNum = 24
	DefaultFPSDen = 1
	DefaultLength = 240
)

// Options configures a blank clip. Zero fields take the defaults.
type Options struct {
	Format video.Format
	Width  int
	Height int
	FPSNum int64
	FPSDen int64
	Length int

	// Color holds one value per plane. Empty means black.
	Color []float64
}

// Clip is a clip whose every frame is the same solid colour.
type Clip struct {
	desc  video.Descriptor
	color []float64

	once  sync.Once
	frame *video.Frame
}

// New creates a blank clip.
func New(opts Options) (*Clip, error) {
	if opts.Format.IsZero() {
		opts.Format = video.RGB24
	}
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	if opts.FPSNum == 0 && opts.FPSDen == 0 {
		opts.FPSNum, opts.FPSDen = DefaultFPSNum, DefaultFPSDen
	}
	if opts.Length == 0 {
		opts.Length = DefaultLength
	}

	f := opts.Format
	if f.Planes() == 0 {
		return nil, fmt.Errorf("blankclip: unsupported format %s", f)
	}
	if opts.Width < 0 || opts.Height < 0 || opts.Length < 0 {
		return nil, fmt.Errorf("blankclip: invalid dimensions %dx%d, length %d", opts.Width, opts.Height, opts.Length)
	}
	if opts.FPSNum <= 0 || opts.FPSDen <= 0 {
		return nil, fmt.Errorf("blankclip: invalid frame rate %d/%d", opts.FPSNum, opts.FPSDen)
	}
	if f.Family == video.FamilyYUV {
		if opts.Width%(1<<f.SubSamplingW) != 0 || opts.Height%(1<<f.SubSamplingH) != 0 {
			return nil, fmt.Errorf("blankclip: %dx%d is not a multiple of the %s subsampling", opts.Width, opts.Height, f)
		}
	}

	color := opts.Color
	if len(color) == 0 {
		color = black(f)
	} else if len(color) != f.Planes() {
		return nil, fmt.Errorf("blankclip: %s needs %d colour values, got %d", f, f.Planes(), len(color))
	}

	num, den := video.ReduceRational(opts.FPSNum, opts.FPSDen)
	return &Clip{
		desc: video.Descriptor{
			Geometry: video.Geometry{
				Width:  opts.Width,
				Height: opts.Height,
				FPSNum: num,
				FPSDen: den,
				Format: f,
			},
			NumFrames: opts.Length,
		},
		color: color,
	}, nil
}

// Descriptor returns the clip descriptor.
func (c *Clip) Descriptor() video.Descriptor {
	return c.desc
}

// Len returns the number of frames.
func (c *Clip) Len() int {
	return c.desc.NumFrames
}

// GetFrame returns the shared blank frame. Callers must not modify its planes.
func (c *Clip) GetFrame(ctx context.Context, n int) (*video.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n < 0 || n >= c.desc.NumFrames {
		return nil, fmt.Errorf("blankclip: frame %d out of range [0, %d)", n, c.desc.NumFrames)
	}
	c.once.Do(c.fill)
	return c.frame, nil
}

func (c *Clip) fill() {
	g := c.desc.Geometry
	f := g.Format
	bps := f.BytesPerSample()

	planes := make([][]byte, f.Planes())
	strides := make([]int, f.Planes())
	for i := range planes {
		w, _ := f.PlaneDimensions(g.Width, g.Height, i)
		planes[i] = make([]byte, f.PlaneSize(g.Width, g.Height, i))
		strides[i] = w * bps

		sample := encodeSample(f, c.color[i])
		for off := 0; off < len(planes[i]); off += bps {
			copy(planes[i][off:off+bps], sample)
		}
	}

	c.frame = &video.Frame{Geometry: g, Planes: planes, Strides: strides}
}

// black returns limited-range black for Gray and YUV integer formats and
// zero for RGB and float formats.
func black(f video.Format) []float64 {
	color := make([]float64, f.Planes())
	if f.SampleType == video.SampleFloat || f.Family == video.FamilyRGB {
		return color
	}
	shift := f.BitsPerSample - 8
	color[0] = float64(int(16) << shift)
	for i := 1; i < len(color); i++ {
		color[i] = float64(int(128) << shift)
	}
	return color
}

// encodeSample returns the little-endian storage of v in format f.
func encodeSample(f video.Format, v float64) []byte {
	if f.SampleType == video.SampleFloat {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
		return b
	}

	maxValue := float64(uint64(1)<<f.BitsPerSample - 1)
	v = math.Round(math.Max(0, math.Min(v, maxValue)))
	if f.BytesPerSample() == 1 {
		return []byte{byte(v)}
	}
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(v))
	return b
}

// Ensure Clip implements ports.Clip
var _ ports.Clip = (*Clip)(nil)
