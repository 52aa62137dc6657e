// Package mp4clip provides clips backed by the first video track of an MP4
// file. Frames are the track's samples, delivered still encoded.
package mp4clip

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/video"
)

// Clip is an MP4 video track held in memory. It is immutable after Decode
// and safe for concurrent use.
type Clip struct {
	desc    video.Descriptor
	codec   string
	samples [][]byte
}

// Decode parses an MP4 file, progressive or fragmented.
func Decode(data []byte) (*Clip, error) {
	f, err := mp4.DecodeFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode mp4: %w", err)
	}

	moov := f.Moov
	if f.Init != nil && f.Init.Moov != nil {
		moov = f.Init.Moov
	}
	if moov == nil {
		return nil, fmt.Errorf("no moov box found")
	}

	trak := videoTrack(moov)
	if trak == nil {
		return nil, fmt.Errorf("no video track found")
	}

	var timescale uint32 = 1000
	if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale != 0 {
		timescale = trak.Mdia.Mdhd.Timescale
	}

	var samples [][]byte
	var firstDur uint32
	if f.IsFragmented() {
		samples, firstDur, err = fragmentedSamples(f, moov, trak.Tkhd.TrackID)
	} else {
		samples, firstDur, err = progressiveSamples(trak, data)
	}
	if err != nil {
		return nil, err
	}

	c := &Clip{samples: samples}
	c.desc.NumFrames = len(samples)
	c.desc.Width = int(uint32(trak.Tkhd.Width) >> 16)
	c.desc.Height = int(uint32(trak.Tkhd.Height) >> 16)
	if firstDur > 0 {
		c.desc.FPSNum, c.desc.FPSDen = video.ReduceRational(int64(timescale), int64(firstDur))
	}

	if entry := sampleEntry(trak); entry != nil {
		c.codec = entry.Type()
		if c.desc.Width == 0 || c.desc.Height == 0 {
			c.desc.Width, c.desc.Height = int(entry.Width), int(entry.Height)
		}
		c.desc.Format = pixelFormat(entry)
	}

	return c, nil
}

// Descriptor returns the clip descriptor.
func (c *Clip) Descriptor() video.Descriptor {
	return c.desc
}

// Len returns the number of samples in the track.
func (c *Clip) Len() int {
	return c.desc.NumFrames
}

// Codec returns the sample entry type, such as "av01" or "avc1".
func (c *Clip) Codec() string {
	return c.codec
}

// GetFrame returns sample n as a compressed frame. The payload is shared
// with the clip.
func (c *Clip) GetFrame(ctx context.Context, n int) (*video.Frame, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n < 0 || n >= len(c.samples) {
		return nil, fmt.Errorf("mp4clip: sample %d out of range [0, %d)", n, len(c.samples))
	}
	data := c.samples[n]
	return &video.Frame{
		Geometry:   c.desc.Geometry,
		Planes:     [][]byte{data},
		Strides:    []int{len(data)},
		Compressed: true,
	}, nil
}

// Ensure Clip implements ports.Clip
var _ ports.Clip = (*Clip)(nil)

func videoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

func sampleEntry(trak *mp4.TrakBox) *mp4.VisualSampleEntryBox {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return nil
	}
	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			return vse
		}
	}
	return nil
}

// pixelFormat reads bit depth and subsampling from an av1C record. Other
// codecs are reported as 8-bit 4:2:0. Combinations without a preset give
// the unset format.
func pixelFormat(entry *mp4.VisualSampleEntryBox) video.Format {
	var av1C *mp4.Av1CBox
	for _, child := range entry.Children {
		if b, ok := child.(*mp4.Av1CBox); ok {
			av1C = b
			break
		}
	}
	if av1C == nil {
		return video.YUV420P8
	}

	rec := av1C.CodecConfRec
	bits := 8
	if rec.HighBitdepth != 0 {
		bits = 10
		if rec.TwelveBit != 0 {
			bits = 12
		}
	}

	family := video.FamilyYUV
	ssw, ssh := int(rec.ChromaSubsamplingX), int(rec.ChromaSubsamplingY)
	if rec.MonoChrome != 0 {
		family, ssw, ssh = video.FamilyGray, 0, 0
		if bits > 8 {
			bits = 16
		}
	}

	f, err := video.FormatFor(family, video.SampleInteger, bits, ssw, ssh)
	if err != nil {
		return video.Format{}
	}
	return f
}

func fragmentedSamples(f *mp4.File, moov *mp4.MoovBox, trackID uint32) ([][]byte, uint32, error) {
	var trex *mp4.TrexBox
	if moov.Mvex != nil {
		for _, t := range moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var samples [][]byte
	var firstDur uint32
	for _, seg := range f.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			found := false
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID == trackID {
					found = true
					break
				}
			}
			if !found {
				continue
			}

			full, err := frag.GetFullSamples(trex)
			if err != nil {
				return nil, 0, fmt.Errorf("get samples: %w", err)
			}
			for _, s := range full {
				if len(samples) == 0 {
					firstDur = s.Dur
				}
				samples = append(samples, s.Data)
			}
		}
	}
	return samples, firstDur, nil
}

func progressiveSamples(trak *mp4.TrakBox, data []byte) ([][]byte, uint32, error) {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return nil, 0, fmt.Errorf("no sample table found")
	}
	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsz == nil || stbl.Stsc == nil {
		return nil, 0, fmt.Errorf("missing stsz or stsc box")
	}

	var firstDur uint32
	if stbl.Stts != nil && stbl.Stsz.SampleNumber > 0 {
		_, firstDur = stbl.Stts.GetDecodeTime(1)
	}

	samples := make([][]byte, 0, stbl.Stsz.SampleNumber)
	for nr := uint32(1); nr <= stbl.Stsz.SampleNumber; nr++ {
		sample, err := sampleData(stbl, data, nr)
		if err != nil {
			return nil, 0, fmt.Errorf("sample %d: %w", nr, err)
		}
		samples = append(samples, sample)
	}
	return samples, firstDur, nil
}

func sampleData(stbl *mp4.StblBox, data []byte, sampleNr uint32) ([]byte, error) {
	chunkNr, firstSampleInChunk, err := stbl.Stsc.ChunkNrFromSampleNr(int(sampleNr))
	if err != nil {
		return nil, fmt.Errorf("get chunk nr: %w", err)
	}

	var offset uint64
	switch {
	case stbl.Stco != nil:
		offset, err = stbl.Stco.GetOffset(chunkNr)
		if err != nil {
			return nil, fmt.Errorf("get chunk offset: %w", err)
		}
	case stbl.Co64 != nil:
		if chunkNr < 1 || chunkNr > len(stbl.Co64.ChunkOffset) {
			return nil, fmt.Errorf("chunk nr out of range")
		}
		offset = stbl.Co64.ChunkOffset[chunkNr-1]
	default:
		return nil, fmt.Errorf("no stco or co64 box")
	}

	for s := uint32(firstSampleInChunk); s < sampleNr; s++ {
		offset += uint64(stbl.Stsz.GetSampleSize(int(s)))
	}
	end := offset + uint64(stbl.Stsz.GetSampleSize(int(sampleNr)))
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("sample extends past end of file")
	}
	return data[offset:end], nil
}
