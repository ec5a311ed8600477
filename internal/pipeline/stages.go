package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/ezgiver/JobFinder/internal/jobs"
	"github.com/ezgiver/JobFinder/internal/matching"
)

type dedupStage struct{}

// NewDedup creates a stage that removes rows with a duplicate job URL,
// keeping the first occurrence. Job boards frequently return the same
// posting from several sources.
func NewDedup() Stage {
	return &dedupStage{}
}

func (s *dedupStage) Name() string { return "dedup" }

func (s *dedupStage) Apply(_ context.Context, j *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := j.Len()
	removed := j.DedupByURL()

	return j, Step{Initial: initial, Dropped: len(removed), Left: j.Len()}, nil
}

type sponsorStage struct {
	verifier *matching.Verifier
	logger   *zap.Logger
}

// NewSponsorFilter creates the stage that drops rows whose company is not on
// the sponsor register. Kept rows are annotated with the match outcome.
func NewSponsorFilter(verifier *matching.Verifier, logger *zap.Logger) Stage {
	return &sponsorStage{verifier: verifier, logger: logger}
}

func (s *sponsorStage) Name() string { return "sponsor_verify" }

func (s *sponsorStage) Apply(_ context.Context, j *jobs.Jobs) (*jobs.Jobs, Step, error) {
	initial := j.Len()

	results := s.verifier.VerifyAll(j)
	for idx, job := range j.Items {
		job.Sponsor = &jobs.SponsorCheck{
			Verified:   results[idx].Matched,
			Canonical:  results[idx].Canonical,
			Confidence: results[idx].Confidence,
		}
	}

	dropped := j.Keep(func(_ int, job *jobs.Job) bool {
		return job.Sponsor.Verified
	})

	s.logger.Info("verified companies against sponsor register",
		zap.Int("distinct_companies", s.verifier.Lookups()),
		zap.Int("unverified_rows", dropped),
	)

	return j, Step{Initial: initial, Dropped: dropped, Left: j.Len()}, nil
}
