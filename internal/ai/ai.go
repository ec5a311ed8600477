package ai

import (
	"context"
	"fmt"

	"github.com/ezgiver/JobFinder/internal/jobs"
)

// JobScore is a model's verdict on how well the CV fits one job listing.
type JobScore struct {
	// Score is the match score on the 0-100 scale.
	Score int
	// Reasoning is a one-sentence explanation for the score.
	Reasoning string
	// Raw is the unparsed model response, kept for debugging.
	Raw string
}

// Scorer evaluates a CV against a single job listing.
type Scorer interface {
	Score(ctx context.Context, cvText string, job *jobs.Job) (*JobScore, error)
}

// Profiler extracts a structured candidate profile from raw CV text.
type Profiler interface {
	Extract(ctx context.Context, cvText string) (*Profile, error)
}

// Profile is a structured summary of the candidate extracted from the CV.
type Profile struct {
	Skills               []Skill   `json:"skills"`
	SeniorityLevel       string    `json:"seniority_level"`
	TotalYearsExperience int       `json:"total_years_experience"`
	Industries           []string  `json:"industries"`
	Education            Education `json:"education"`
	JobTitles            []string  `json:"job_titles"`
}

type Skill struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

type Education struct {
	DegreeLevel string `json:"degree_level"`
	Field       string `json:"field"`
}

// RequestError wraps a transport, timeout or provider error. It is transient
// for the row: the engine records the failure but does not retry.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("ai request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// SchemaError indicates the model response did not conform to the declared
// response schema. Permanent for the row.
type SchemaError struct {
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ai response schema violation: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("ai response schema violation: %s", e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ScoreRangeError indicates the model returned a score outside [0,100].
// Permanent for the row.
type ScoreRangeError struct {
	Score int
}

func (e *ScoreRangeError) Error() string {
	return fmt.Sprintf("ai match score %d is outside [0,100]", e.Score)
}
