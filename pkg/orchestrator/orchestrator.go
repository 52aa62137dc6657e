// Package orchestrator coordinates all pipeline stages of a script run.
package orchestrator

import (
	"context"
	"fmt"
	"image"

	"github.com/google/uuid"

	"github.com/user/vszip/pkg/pipeline"
	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/rfs"
	"github.com/user/vszip/pkg/summarizer"
)

// Config contains all configuration for a run.
type Config struct {
	// Sources
	ClipA pipeline.ClipSpec
	ClipB pipeline.ClipSpec

	// RFS arguments
	Frames    []int
	Mode      rfs.Mode
	Direction rfs.Direction

	// Render
	Pull           []int // output frames to pull; empty pulls all
	ThumbnailWidth int

	// Outputs
	TimelinePath string // empty skips the timeline
	Timeline     pipeline.TimelineInput
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Mode:           rfs.Strict,
		Direction:      rfs.ReplaceFromB,
		ThumbnailWidth: 160,
		Timeline:       pipeline.DefaultTimelineInput(),
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	sourceStage   pipeline.Stage[pipeline.SourceInput, pipeline.SourceResult]
	spliceStage   pipeline.Stage[pipeline.SpliceInput, pipeline.SpliceResult]
	renderStage   pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult]
	timelineStage pipeline.Stage[pipeline.TimelineInput, pipeline.TimelineResult]
	fs            ports.FileSystem
	sink          ports.DebugSink
	logger        ports.Logger
}

// New creates a new Orchestrator.
func New(
	sourceStage pipeline.Stage[pipeline.SourceInput, pipeline.SourceResult],
	spliceStage pipeline.Stage[pipeline.SpliceInput, pipeline.SpliceResult],
	renderStage pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult],
	timelineStage pipeline.Stage[pipeline.TimelineInput, pipeline.TimelineResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		sourceStage:   sourceStage,
		spliceStage:   spliceStage,
		renderStage:   renderStage,
		timelineStage: timelineStage,
		fs:            fs,
		sink:          sink,
		logger:        logger,
	}
}

// Run executes the complete pipeline. Failed pulls are reported in the
// result, not as an error.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	runID := uuid.NewString()
	o.logger.Info("Starting run %s", runID)

	// 1. Open clips
	sources, err := o.sourceStage.Execute(ctx, pipeline.SourceInput{A: config.ClipA, B: config.ClipB})
	if err != nil {
		o.logger.Error("Failed to open clips: %s", err)
		return RunResult{}, fmt.Errorf("source stage: %w", err)
	}

	// 2. Build the RFS node
	spliced, err := o.spliceStage.Execute(ctx, pipeline.SpliceInput{
		A:         sources.A,
		B:         sources.B,
		Frames:    config.Frames,
		Mode:      config.Mode,
		Direction: config.Direction,
	})
	if err != nil {
		o.logger.Error("Failed to build RFS node: %s", err)
		return RunResult{}, fmt.Errorf("splice stage: %w", err)
	}
	node := spliced.Node
	o.logger.Info("RFS node ready: %s mode, %d output frames", node.Mode(), node.Len())

	// 3. Pull frames
	rendered, err := o.renderStage.Execute(ctx, pipeline.RenderInput{
		Node:           node,
		Frames:         config.Pull,
		ThumbnailWidth: config.ThumbnailWidth,
	})
	if err != nil {
		o.logger.Error("Failed to pull frames: %s", err)
		return RunResult{}, fmt.Errorf("render stage: %w", err)
	}
	o.logger.Info("Pulled %d frames, %d failed", len(rendered.Pulls), rendered.Failed)

	result := RunResult{
		RunID:  runID,
		A:      sources.A,
		B:      sources.B,
		Node:   node,
		Pulls:  rendered.Pulls,
		Failed: rendered.Failed,
	}

	// 4. Timeline (optional)
	if config.TimelinePath != "" || o.sink.Enabled() {
		input := config.Timeline
		input.Pulls = rendered.Pulls
		timeline, err := o.timelineStage.Execute(ctx, input)
		if err != nil {
			o.logger.Error("Failed to draw timeline: %s", err)
			return RunResult{}, fmt.Errorf("timeline stage: %w", err)
		}
		result.Timeline = timeline.Image

		if o.sink.Enabled() {
			if err := o.sink.SaveTimeline(timeline.Image); err != nil {
				o.logger.Warn("Failed to save debug output: %s", err)
			}
		}
		if config.TimelinePath != "" {
			if err := o.fs.WriteFile(config.TimelinePath, timeline.PNG); err != nil {
				o.logger.Error("Failed to write output: %s", err)
				return RunResult{}, fmt.Errorf("write timeline: %w", err)
			}
			o.logger.Info("Output saved to %s", config.TimelinePath)
		}
	}

	o.logger.Info("Run completed")
	return result, nil
}

// RunResult contains the results of a run for reporting.
type RunResult struct {
	RunID string

	A    ports.Clip
	B    ports.Clip
	Node *rfs.Node

	Pulls  []pipeline.Pull
	Failed int

	// Timeline is nil when no timeline was drawn.
	Timeline image.Image
}

// Summary builds the run summary. workers is reported as configured.
func (r RunResult) Summary(config Config, workers int) *summarizer.Summary {
	pulls := summarizer.PullsInfo{Total: len(r.Pulls), Failed: r.Failed}
	for _, p := range r.Pulls {
		if !p.OK() {
			pulls.Failures = append(pulls.Failures, summarizer.Failure{Index: p.Index, Error: p.Err.Error()})
			continue
		}
		switch p.Source {
		case rfs.SourceA:
			pulls.FromA++
		case rfs.SourceB:
			pulls.FromB++
		}
		pulls.TotalBytes += int64(p.Bytes)
	}

	return summarizer.NewBuilder().
		WithRunID(r.RunID).
		WithClips(
			summarizer.ClipInfo{Origin: origin(config.ClipA), Descriptor: r.A.Descriptor()},
			summarizer.ClipInfo{Origin: origin(config.ClipB), Descriptor: r.B.Descriptor()},
			summarizer.ClipInfo{Origin: "rfs", Descriptor: r.Node.Descriptor()},
		).
		WithSettings(summarizer.Settings{
			Mode:      r.Node.Mode().String(),
			Direction: r.Node.Direction().String(),
			Frames:    r.Node.Frames(),
			Workers:   workers,
		}).
		WithPulls(pulls).
		Build()
}

func origin(spec pipeline.ClipSpec) string {
	if spec.IsBlank() {
		return "blank"
	}
	return spec.Path
}
