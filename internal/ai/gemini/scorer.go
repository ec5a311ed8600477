package gemini

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ezgiver/JobFinder/internal/ai"
	"github.com/ezgiver/JobFinder/internal/jobs"
	"github.com/ezgiver/JobFinder/internal/logger"
)

//go:embed prompt.md
var scorePrompt string

var scoreSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"match_score": {Type: genai.TypeInteger},
		"reasoning":   {Type: genai.TypeString},
	},
	Required: []string{"match_score", "reasoning"},
}

type jsonGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	Model() string
}

// Scorer evaluates CV-to-job fit with a single schema-constrained Gemini
// call per job.
type Scorer struct {
	generator jsonGenerator
	logger    *zap.Logger
	maxLogLen int
}

const defaultMaxLogLength = 200

func NewScorer(generator jsonGenerator, maxLogLength int, log *zap.Logger) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Scorer{
		generator: generator,
		logger:    logger.WithAIFields(log, Provider, generator.Model()),
		maxLogLen: maxLogLength,
	}
}

func (s *Scorer) Score(ctx context.Context, cvText string, job *jobs.Job) (*ai.JobScore, error) {
	prompt := buildScorePrompt(cvText, job)

	s.logger.Debug("gemini score request",
		zap.String("job_url", job.URL),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateJSON(ctx, prompt, scoreSchema)
	if err != nil {
		return nil, &ai.RequestError{Err: err}
	}

	s.logger.Debug("gemini score response",
		zap.String("job_url", job.URL),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	score, err := parseScore(raw)
	if err != nil {
		return nil, err
	}

	score.Raw = raw
	return score, nil
}

// buildScorePrompt concatenates rather than interpolates: job descriptions
// are untrusted input and may contain anything, including braces and
// template-looking fragments.
func buildScorePrompt(cvText string, job *jobs.Job) string {
	var b strings.Builder
	b.WriteString(scorePrompt)
	b.WriteString("\n\nCV:\n")
	b.WriteString(cvText)
	b.WriteString("\n\nJob Title:\n")
	b.WriteString(job.Title)
	b.WriteString("\n\nJob Description:\n")
	b.WriteString(job.Description)
	return b.String()
}

func parseScore(raw string) (*ai.JobScore, error) {
	cleaned := extractJSON(raw)

	var payload struct {
		MatchScore *int    `json:"match_score"`
		Reasoning  *string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, &ai.SchemaError{Reason: "response is not valid JSON", Err: err}
	}

	if payload.MatchScore == nil {
		return nil, &ai.SchemaError{Reason: "missing match_score"}
	}
	if payload.Reasoning == nil {
		return nil, &ai.SchemaError{Reason: "missing reasoning"}
	}

	score := *payload.MatchScore
	if score < 0 || score > 100 {
		return nil, &ai.ScoreRangeError{Score: score}
	}

	return &ai.JobScore{
		Score:     score,
		Reasoning: strings.TrimSpace(*payload.Reasoning),
	}, nil
}

// extractJSON strips a markdown code fence if the model wrapped its JSON in
// one despite the response mime type.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
