// Package timeline implements the stage that draws a strip of pulled
// frames coloured by source clip.
package timeline

import (
	"context"
	"fmt"
	"image/color"

	"github.com/user/vszip/pkg/pipeline"
	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/rfs"
)

// Stage renders the timeline sheet.
type Stage struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new timeline stage.
func NewStage(renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		logger:   logger.WithComponent("timeline"),
	}
}

// Execute draws one cell per pull, left to right and top to bottom. Each
// cell shows the frame index and the delivered size.
func (s *Stage) Execute(ctx context.Context, input pipeline.TimelineInput) (pipeline.TimelineResult, error) {
	if len(input.Pulls) == 0 {
		return pipeline.TimelineResult{}, fmt.Errorf("no pulls to draw")
	}
	input = withDefaults(input)

	columns := min(input.Columns, len(input.Pulls))
	rows := (len(input.Pulls) + columns - 1) / columns
	width := input.Padding*2 + columns*input.CellWidth
	height := input.Padding*2 + rows*input.CellHeight

	s.logger.Debug("Drawing timeline: %d cells, %dx%d", len(input.Pulls), width, height)

	canvas := s.renderer.CreateCanvas(width, height, input.Theme.BackgroundColor)
	for i, p := range input.Pulls {
		if i%columns == 0 {
			if err := ctx.Err(); err != nil {
				return pipeline.TimelineResult{}, err
			}
		}

		x := input.Padding + (i%columns)*input.CellWidth
		y := input.Padding + (i/columns)*input.CellHeight

		canvas.DrawRect(x, y, input.CellWidth, input.CellHeight, cellColor(input.Theme, p))
		canvas.DrawRectStroke(x, y, input.CellWidth, input.CellHeight, input.Theme.BorderColor, 1)

		style := ports.TextStyle{
			FontSize: float64(input.CellHeight) * 0.3,
			Color:    input.Theme.TextColor,
			Align:    ports.AlignCenter,
		}
		cx := x + input.CellWidth/2
		canvas.DrawText(fmt.Sprintf("%d", p.Index), cx, y+input.CellHeight/3, style)
		canvas.DrawText(cellLabel(p), cx, y+input.CellHeight*2/3, style)
	}

	img := canvas.ToImage()
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return pipeline.TimelineResult{}, fmt.Errorf("encode timeline: %w", err)
	}
	return pipeline.TimelineResult{Image: img, PNG: data}, nil
}

func withDefaults(input pipeline.TimelineInput) pipeline.TimelineInput {
	d := pipeline.DefaultTimelineInput()
	if input.Columns <= 0 {
		input.Columns = d.Columns
	}
	if input.CellWidth <= 0 {
		input.CellWidth = d.CellWidth
	}
	if input.CellHeight <= 0 {
		input.CellHeight = d.CellHeight
	}
	if input.Padding <= 0 {
		input.Padding = d.Padding
	}
	if input.Theme.BackgroundColor == nil {
		input.Theme = d.Theme
	}
	return input
}

func cellColor(theme pipeline.TimelineTheme, p pipeline.Pull) color.Color {
	switch {
	case !p.OK():
		return theme.ErrorColor
	case p.Source == rfs.SourceB:
		return theme.SourceBColor
	default:
		return theme.SourceAColor
	}
}

func cellLabel(p pipeline.Pull) string {
	if !p.OK() {
		return "err"
	}
	return p.Geometry.Size()
}
