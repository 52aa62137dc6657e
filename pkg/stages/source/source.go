// Package source implements the stage that opens clip a and clip b.
package source

import (
	"context"
	"fmt"

	"github.com/user/vszip/pkg/adapters/blankclip"
	"github.com/user/vszip/pkg/pipeline"
	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/video"
)

// Stage opens the two clips of a run.
type Stage struct {
	opener ports.ClipOpener
	logger ports.Logger
}

// NewStage creates a new source stage. opener handles MP4 paths.
func NewStage(opener ports.ClipOpener, logger ports.Logger) *Stage {
	return &Stage{
		opener: opener,
		logger: logger.WithComponent("source"),
	}
}

// Execute opens clip a, then clip b.
func (s *Stage) Execute(ctx context.Context, input pipeline.SourceInput) (pipeline.SourceResult, error) {
	a, err := s.open(input.A)
	if err != nil {
		return pipeline.SourceResult{}, fmt.Errorf("clipa: %w", err)
	}
	s.logger.Debug("Opened clip %s: %s, %d frames", "a", a.Descriptor().Geometry, a.Len())

	if err := ctx.Err(); err != nil {
		return pipeline.SourceResult{}, err
	}

	b, err := s.open(input.B)
	if err != nil {
		return pipeline.SourceResult{}, fmt.Errorf("clipb: %w", err)
	}
	s.logger.Debug("Opened clip %s: %s, %d frames", "b", b.Descriptor().Geometry, b.Len())

	return pipeline.SourceResult{A: a, B: b}, nil
}

func (s *Stage) open(spec pipeline.ClipSpec) (ports.Clip, error) {
	if !spec.IsBlank() {
		if s.opener == nil {
			return nil, fmt.Errorf("no opener for %s", spec.Path)
		}
		return s.opener.Open(spec.Path)
	}
	return Blank(spec.Blank)
}

// Blank builds a blank clip from spec.
func Blank(spec pipeline.BlankSpec) (*blankclip.Clip, error) {
	var format video.Format
	if spec.Format != "" {
		f, err := video.FormatByName(spec.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	return blankclip.New(blankclip.Options{
		Format: format,
		Width:  spec.Width,
		Height: spec.Height,
		FPSNum: spec.FPSNum,
		FPSDen: spec.FPSDen,
		Length: spec.Length,
		Color:  spec.Color,
	})
}
