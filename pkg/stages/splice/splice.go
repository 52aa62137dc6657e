// Package splice implements the stage that builds the RFS node.
package splice

import (
	"context"

	"github.com/user/vszip/pkg/pipeline"
	"github.com/user/vszip/pkg/ports"
	"github.com/user/vszip/pkg/rfs"
)

// Stage builds the RFS node over the opened clips.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new splice stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{logger: logger}
}

// Execute calls rfs.Build. Errors are returned unwrapped so callers can
// match the rfs sentinels directly.
func (s *Stage) Execute(ctx context.Context, input pipeline.SpliceInput) (pipeline.SpliceResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.SpliceResult{}, err
	}

	node, err := rfs.Build(input.A, input.B, input.Frames, input.Mode,
		rfs.WithDirection(input.Direction),
		rfs.WithLogger(s.logger),
	)
	if err != nil {
		return pipeline.SpliceResult{}, err
	}
	return pipeline.SpliceResult{Node: node}, nil
}
