package gemini

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const validProfileJSON = `{
	"skills": [{"name": "Go", "proficiency": "expert"}],
	"seniority_level": "senior",
	"total_years_experience": 8,
	"industries": ["fintech"],
	"education": {"degree_level": "BSc", "field": "Computer Science"},
	"job_titles": ["Staff Engineer", "Senior Engineer"]
}`

func TestProfilerExtract(t *testing.T) {
	stub := &stubGenerator{response: validProfileJSON}
	profiler := NewProfiler(stub, zap.NewNop())

	profile, err := profiler.Extract(context.Background(), "cv text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if profile.SeniorityLevel != "senior" {
		t.Fatalf("unexpected seniority: %q", profile.SeniorityLevel)
	}
	if len(profile.Skills) != 1 || profile.Skills[0].Name != "Go" {
		t.Fatalf("unexpected skills: %+v", profile.Skills)
	}
	if profile.Education.Field != "Computer Science" {
		t.Fatalf("unexpected education: %+v", profile.Education)
	}

	if !strings.Contains(stub.lastPrompt, "cv text") {
		t.Fatalf("prompt missing cv text")
	}
	if stub.lastSchema == nil {
		t.Fatalf("expected profile schema to be sent")
	}
}

func TestProfilerExtractMissingFields(t *testing.T) {
	stub := &stubGenerator{response: `{"skills": []}`}
	profiler := NewProfiler(stub, zap.NewNop())

	_, err := profiler.Extract(context.Background(), "cv text")
	if err == nil {
		t.Fatalf("expected error for incomplete profile")
	}

	if !strings.Contains(err.Error(), "seniority_level") {
		t.Fatalf("expected missing field name in error, got: %v", err)
	}
}

func TestProfilerExtractInvalidJSON(t *testing.T) {
	stub := &stubGenerator{response: "not json"}
	profiler := NewProfiler(stub, zap.NewNop())

	if _, err := profiler.Extract(context.Background(), "cv text"); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}
