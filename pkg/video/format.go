// Package video defines the clip and frame value types shared by every
// node in a graph: pixel formats, geometry, clip descriptors and frames.
package video

import (
	"fmt"
	"strings"
)

// ColorFamily identifies how the planes of a format are interpreted.
type ColorFamily int

const (
	FamilyUndefined ColorFamily = iota
	FamilyGray
	FamilyRGB
	FamilyYUV
)

// String returns the string representation of the color family.
func (c ColorFamily) String() string {
	switch c {
	case FamilyGray:
		return "Gray"
	case FamilyRGB:
		return "RGB"
	case FamilyYUV:
		return "YUV"
	default:
		return "Undefined"
	}
}

// SampleType is the numeric type of a single sample.
type SampleType int

const (
	SampleInteger SampleType = iota
	SampleFloat
)

// String returns the string representation of the sample type.
func (s SampleType) String() string {
	if s == SampleFloat {
		return "Float"
	}
	return "Integer"
}

// Format describes the pixel layout of a frame. Format is comparable;
// the zero value is the unset format reported by variable-format clips.
type Format struct {
	Name          string
	Family        ColorFamily
	SampleType    SampleType
	BitsPerSample int
	SubSamplingW  int // log2 horizontal chroma subsampling
	SubSamplingH  int // log2 vertical chroma subsampling
}

// IsZero reports whether f is the unset format.
func (f Format) IsZero() bool {
	return f == Format{}
}

// String returns the format name, or "dynamic" for the unset format.
func (f Format) String() string {
	if f.IsZero() {
		return "dynamic"
	}
	return f.Name
}

// Planes returns the number of planes for this format.
func (f Format) Planes() int {
	switch f.Family {
	case FamilyGray:
		return 1
	case FamilyRGB, FamilyYUV:
		return 3
	default:
		return 0
	}
}

// BytesPerSample returns the storage size of one sample.
func (f Format) BytesPerSample() int {
	return (f.BitsPerSample + 7) / 8
}

// PlaneDimensions returns the width and height of plane i for a frame of
// the given luma dimensions.
func (f Format) PlaneDimensions(width, height, plane int) (int, int) {
	if plane == 0 || f.Family != FamilyYUV {
		return width, height
	}
	return width >> f.SubSamplingW, height >> f.SubSamplingH
}

// PlaneSize returns the byte size of plane i with tightly packed rows.
func (f Format) PlaneSize(width, height, plane int) int {
	w, h := f.PlaneDimensions(width, height, plane)
	return w * h * f.BytesPerSample()
}

// Presets mirrored from the host's built-in format list.
var (
	Gray8  = Format{Name: "Gray8", Family: FamilyGray, SampleType: SampleInteger, BitsPerSample: 8}
	Gray16 = Format{Name: "Gray16", Family: FamilyGray, SampleType: SampleInteger, BitsPerSample: 16}
	GrayS  = Format{Name: "GrayS", Family: FamilyGray, SampleType: SampleFloat, BitsPerSample: 32}

	YUV420P8  = Format{Name: "YUV420P8", Family: FamilyYUV, SampleType: SampleInteger, BitsPerSample: 8, SubSamplingW: 1, SubSamplingH: 1}
	YUV420P10 = Format{Name: "YUV420P10", Family: FamilyYUV, SampleType: SampleInteger, BitsPerSample: 10, SubSamplingW: 1, SubSamplingH: 1}
	YUV420P16 = Format{Name: "YUV420P16", Family: FamilyYUV, SampleType: SampleInteger, BitsPerSample: 16, SubSamplingW: 1, SubSamplingH: 1}
	YUV422P8  = Format{Name: "YUV422P8", Family: FamilyYUV, SampleType: SampleInteger, BitsPerSample: 8, SubSamplingW: 1}
	YUV422P10 = Format{Name: "YUV422P10", Family: FamilyYUV, SampleType: SampleInteger, BitsPerSample: 10, SubSamplingW: 1}
	YUV444P8  = Format{Name: "YUV444P8", Family: FamilyYUV, SampleType: SampleInteger, BitsPerSample: 8}
	YUV444P16 = Format{Name: "YUV444P16", Family: FamilyYUV, SampleType: SampleInteger, BitsPerSample: 16}
	YUV444PS  = Format{Name: "YUV444PS", Family: FamilyYUV, SampleType: SampleFloat, BitsPerSample: 32}

	RGB24 = Format{Name: "RGB24", Family: FamilyRGB, SampleType: SampleInteger, BitsPerSample: 8}
	RGB48 = Format{Name: "RGB48", Family: FamilyRGB, SampleType: SampleInteger, BitsPerSample: 16}
	RGBS  = Format{Name: "RGBS", Family: FamilyRGB, SampleType: SampleFloat, BitsPerSample: 32}
)

var presets = []Format{
	Gray8, Gray16, GrayS,
	YUV420P8, YUV420P10, YUV420P16,
	YUV422P8, YUV422P10,
	YUV444P8, YUV444P16, YUV444PS,
	RGB24, RGB48, RGBS,
}

// Presets returns the known formats in display order.
func Presets() []Format {
	out := make([]Format, len(presets))
	copy(out, presets)
	return out
}

// FormatByName looks up a preset by name, ignoring case.
func FormatByName(name string) (Format, error) {
	for _, f := range presets {
		if strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("unknown format: %q", name)
}

// FormatFor returns the preset matching the given properties.
func FormatFor(family ColorFamily, sample SampleType, bits, ssw, ssh int) (Format, error) {
	for _, f := range presets {
		if f.Family == family && f.SampleType == sample && f.BitsPerSample == bits &&
			f.SubSamplingW == ssw && f.SubSamplingH == ssh {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("no preset for %s %s %d-bit subsampling %d/%d", family, sample, bits, ssw, ssh)
}
