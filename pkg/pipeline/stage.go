// Package pipeline provides the stage infrastructure for script runs: the
// generic Stage contract and the input and result types passed between the
// source, splice, render and timeline stages.
package pipeline

import (
	"context"
)

// Stage turns one stage input into the next stage's input. The
// orchestrator runs source, splice, render and timeline in that order and
// stops at the first error.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc adapts a plain function to Stage.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
