// Package scoring runs the AI scoring stage: one model call per job row,
// paced, with per-row failure recovery. Its core guarantee is alignment:
// ScoreAll always returns exactly one Result per input row, in input order,
// no matter which rows fail.
package scoring

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ezgiver/JobFinder/internal/ai"
	"github.com/ezgiver/JobFinder/internal/jobs"
)

// Status classifies the outcome of scoring one row.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is the scoring outcome for one job row. RowIndex refers to the
// position in the input table passed to ScoreAll.
type Result struct {
	RowIndex  int
	Status    Status
	Score     int
	Reasoning string
	// Err holds the row-scoped failure when Status is StatusFailed.
	Err error
}

// Engine scores a job table against a CV, sequentially.
type Engine struct {
	scorer ai.Scorer
	pacer  Pacer
	logger *zap.Logger
}

func NewEngine(scorer ai.Scorer, pacer Pacer, logger *zap.Logger) *Engine {
	return &Engine{
		scorer: scorer,
		pacer:  pacer,
		logger: logger,
	}
}

// ScoreAll evaluates every row and returns len(table.Items) results in row
// order. A row's failure is recorded in its Result and never aborts the
// batch; the only errors returned are context cancellation from the pacer,
// which aborts the whole run.
func (e *Engine) ScoreAll(ctx context.Context, table *jobs.Jobs, cvText string) ([]Result, error) {
	results := make([]Result, table.Len())

	for idx, job := range table.Items {
		results[idx] = e.scoreRow(ctx, idx, job, cvText)

		// Caller aborting the run is the only thing that stops the batch.
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
	}

	return results, nil
}

func (e *Engine) scoreRow(ctx context.Context, idx int, job *jobs.Job, cvText string) Result {
	result := Result{RowIndex: idx}

	if strings.TrimSpace(job.Description) == "" {
		result.Status = StatusSkipped
		result.Reasoning = "no job description available"
		e.logger.Debug("skipping row without description",
			zap.Int("row", idx),
			zap.String("company", job.Company),
		)
		return result
	}

	// Pacing applies to the attempt itself, regardless of how the previous
	// attempt ended. The completion stamp after the call keeps in-flight
	// request time from counting against the interval.
	if err := e.pacer.Wait(ctx); err != nil {
		result.Status = StatusFailed
		result.Err = err
		return result
	}

	score, err := e.scorer.Score(ctx, cvText, job)
	e.pacer.Done()
	if err != nil {
		result.Status = StatusFailed
		result.Err = err
		e.logger.Warn("scoring failed for row",
			zap.Int("row", idx),
			zap.String("company", job.Company),
			zap.String("title", job.Title),
			zap.Error(err),
		)
		return result
	}

	result.Status = StatusOK
	result.Score = score.Score
	result.Reasoning = score.Reasoning

	e.logger.Info("scored job",
		zap.Int("row", idx),
		zap.String("company", job.Company),
		zap.String("title", job.Title),
		zap.Int("match_score", score.Score),
	)

	return result
}

// Report aggregates row outcomes for the end-of-run summary.
type Report struct {
	Total   int
	Scored  int
	Failed  int
	Skipped int
}

func Summarize(results []Result) Report {
	report := Report{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusOK:
			report.Scored++
		case StatusFailed:
			report.Failed++
		case StatusSkipped:
			report.Skipped++
		}
	}
	return report
}
