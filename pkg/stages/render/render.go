// Package render implements the stage that pulls output frames from the
// RFS node with a pool of workers.
package render

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"image"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/user/vszip/pkg/pipeline"
	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/rfs"
	"github.com/user/vszip/pkg/video"
)

const defaultThumbnailWidth = 160

// Stage pulls frames concurrently. A failed pull is recorded and does not
// stop the others; cancelling the context stops the run.
type Stage struct {
	renderer   ports.Renderer
	sink       ports.DebugSink
	recorder   ports.PullRecorder
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new render stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, recorder ports.PullRecorder, logger ports.Logger, numWorkers int) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		renderer:   renderer,
		sink:       sink,
		recorder:   recorder,
		logger:     logger.WithComponent("render"),
		numWorkers: numWorkers,
	}
}

// Execute pulls the requested frames.
func (s *Stage) Execute(ctx context.Context, input pipeline.RenderInput) (pipeline.RenderResult, error) {
	if input.Node == nil {
		return pipeline.RenderResult{}, fmt.Errorf("no node to render")
	}

	indices := input.Frames
	if len(indices) == 0 {
		if !input.Node.Descriptor().KnownLength() {
			return pipeline.RenderResult{}, fmt.Errorf("output length is unknown, list the frames to pull")
		}
		indices = make([]int, input.Node.Len())
		for i := range indices {
			indices[i] = i
		}
	}

	s.logger.Debug("Pulling %d frames with %d workers", len(indices), s.numWorkers)

	pulls, err := s.executeParallel(ctx, input, indices)
	if err != nil {
		return pipeline.RenderResult{}, err
	}

	result := pipeline.RenderResult{Pulls: pulls}
	for _, p := range pulls {
		if !p.OK() {
			result.Failed++
			s.logger.Warn("Pull of frame %d failed: %s", p.Index, p.Err)
		}
	}

	if s.sink.Enabled() {
		s.savePulls(pulls)
	}

	s.logger.Debug("Pulled %d frames, %d failed", len(pulls), result.Failed)
	return result, nil
}

func (s *Stage) savePulls(pulls []pipeline.Pull) {
	data, err := marshalPulls(pulls)
	if err != nil {
		s.logger.Warn("Failed to encode pulls: %s", err)
		return
	}
	if err := s.sink.SavePullsJSON(data); err != nil {
		s.logger.Warn("Failed to save debug output: %s", err)
	}
}

// indexedPull holds a pull with its position in the request for sorting.
type indexedPull struct {
	pos  int
	pull pipeline.Pull
}

type job struct {
	pos   int
	index int
}

// executeParallel pulls frames using a worker pool.
func (s *Stage) executeParallel(ctx context.Context, input pipeline.RenderInput, indices []int) ([]pipeline.Pull, error) {
	jobs := make(chan job, len(indices))
	results := make(chan indexedPull, len(indices))

	var wg sync.WaitGroup
	for w := 0; w < s.numWorkers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, input, jobs, results)
	}

	for pos, idx := range indices {
		jobs <- job{pos: pos, index: idx}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]indexedPull, 0, len(indices))
	for r := range results {
		collected = append(collected, r)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(collected, func(i, j int) bool {
		return collected[i].pos < collected[j].pos
	})

	pulls := make([]pipeline.Pull, len(collected))
	for i, r := range collected {
		pulls[i] = r.pull
	}
	return pulls, nil
}

// worker pulls frames from the jobs channel.
func (s *Stage) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	input pipeline.RenderInput,
	jobs <-chan job,
	results chan<- indexedPull,
) {
	defer wg.Done()

	for j := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- indexedPull{pos: j.pos, pull: s.pull(ctx, input, j.index)}
	}
}

// pull requests one output frame and records the outcome.
func (s *Stage) pull(ctx context.Context, input pipeline.RenderInput, index int) pipeline.Pull {
	node := input.Node
	p := pipeline.Pull{Index: index, Source: rfs.SourceNone}
	desc := node.Descriptor()
	if index >= 0 && (!desc.KnownLength() || index < desc.NumFrames) {
		p.Source = node.Source(index)
	}

	start := time.Now()
	frame, err := node.GetFrame(ctx, index)
	p.Elapsed = time.Since(start)
	s.recorder.RecordPull(p.Source.String(), err, p.Elapsed)

	if err != nil {
		p.Err = err
		return p
	}

	p.Geometry = frame.Geometry
	p.Compressed = frame.Compressed
	for _, plane := range frame.Planes {
		p.Bytes += len(plane)
	}

	if s.sink.Enabled() {
		if img := LumaImage(frame); img != nil {
			if err := s.sink.SaveThumbnail(index, s.thumbnail(img, input.ThumbnailWidth)); err != nil {
				s.logger.Warn("Failed to save debug output: %s", err)
			}
		}
	}
	return p
}

func (s *Stage) thumbnail(img image.Image, width int) image.Image {
	if width <= 0 {
		width = defaultThumbnailWidth
	}
	b := img.Bounds()
	if b.Dx() <= width {
		return img
	}
	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}
	return s.renderer.ResizeImage(img, width, height)
}

// LumaImage returns the first plane of an uncompressed integer frame as a
// grayscale image, or nil when the frame cannot be viewed that way.
func LumaImage(f *video.Frame) image.Image {
	g := f.Geometry
	if f.Compressed || len(f.Planes) == 0 || g.Width <= 0 || g.Height <= 0 {
		return nil
	}
	format := g.Format
	if format.SampleType != video.SampleInteger {
		return nil
	}

	stride := g.Width * format.BytesPerSample()
	if len(f.Strides) > 0 && f.Strides[0] > 0 {
		stride = f.Strides[0]
	}
	plane := f.Planes[0]
	if len(plane) < stride*(g.Height-1)+g.Width*format.BytesPerSample() {
		return nil
	}

	switch format.BytesPerSample() {
	case 1:
		img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
		for y := 0; y < g.Height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+g.Width], plane[y*stride:])
		}
		return img
	case 2:
		// Samples are little-endian; image.Gray16 is big-endian and full-scale.
		shift := 16 - format.BitsPerSample
		img := image.NewGray16(image.Rect(0, 0, g.Width, g.Height))
		for y := 0; y < g.Height; y++ {
			row := plane[y*stride:]
			for x := 0; x < g.Width; x++ {
				v := binary.LittleEndian.Uint16(row[x*2:]) << shift
				binary.BigEndian.PutUint16(img.Pix[y*img.Stride+x*2:], v)
			}
		}
		return img
	default:
		return nil
	}
}

// pullJSON is the debug record of one pull.
type pullJSON struct {
	Index      int     `json:"index"`
	Source     string  `json:"source"`
	Width      int     `json:"width,omitempty"`
	Height     int     `json:"height,omitempty"`
	Format     string  `json:"format,omitempty"`
	FPS        string  `json:"fps,omitempty"`
	Bytes      int     `json:"bytes"`
	Compressed bool    `json:"compressed,omitempty"`
	ElapsedMs  float64 `json:"elapsed_ms"`
	Error      string  `json:"error,omitempty"`
}

// marshalPulls is swapped in tests.
var marshalPulls = MarshalPulls

// MarshalPulls encodes pulls as indented JSON.
func MarshalPulls(pulls []pipeline.Pull) ([]byte, error) {
	out := make([]pullJSON, len(pulls))
	for i, p := range pulls {
		out[i] = pullJSON{
			Index:      p.Index,
			Source:     p.Source.String(),
			Bytes:      p.Bytes,
			Compressed: p.Compressed,
			ElapsedMs:  float64(p.Elapsed.Microseconds()) / 1000,
		}
		if p.OK() {
			out[i].Width = p.Geometry.Width
			out[i].Height = p.Geometry.Height
			out[i].Format = p.Geometry.Format.String()
			out[i].FPS = p.Geometry.FPS()
		} else {
			out[i].Error = p.Err.Error()
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
