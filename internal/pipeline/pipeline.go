// Package pipeline runs the row-reducing stages between scraping and
// scoring. Each stage reports how many rows it dropped; rows are only ever
// dropped here, never during scoring.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ezgiver/JobFinder/internal/jobs"
)

// Stage is a single pipeline step applied to the job table.
type Stage interface {
	Name() string
	Apply(ctx context.Context, j *jobs.Jobs) (*jobs.Jobs, Step, error)
}

// Step describes the result of executing one stage.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

type Pipeline struct {
	stages []Stage
	logger *zap.Logger
}

func New(stages []Stage, logger *zap.Logger) *Pipeline {
	return &Pipeline{stages: stages, logger: logger}
}

// Run executes the stages sequentially and returns the resulting job table.
func (p *Pipeline) Run(ctx context.Context, j *jobs.Jobs) (*jobs.Jobs, error) {
	for _, stage := range p.stages {
		next, info, err := stage.Apply(ctx, j)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}

		p.logger.Info("pipeline stage",
			zap.String("name", stage.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		j = next
	}

	return j, nil
}
