package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ezgiver/JobFinder/internal/ai"
	"github.com/ezgiver/JobFinder/internal/logger"
)

const profilePrompt = `You are a senior technical recruiter. Analyse the following CV and extract a structured profile.

Instructions:
1. List ALL technical and professional skills mentioned or clearly implied. For each skill, assess proficiency as beginner/intermediate/advanced/expert based on years used, depth of work described, and context.
2. Determine the candidate's overall seniority level (junior/mid/senior/lead/principal) from their most recent roles, scope of responsibility, and total experience.
3. Calculate total years of professional experience from the earliest to most recent role.
4. Identify industries the candidate has worked in (e.g. fintech, healthcare, e-commerce).
5. Extract the highest level of education and its field.
6. List up to 5 most recent job titles, newest first.

CV:
`

var profileSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"skills": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {Type: genai.TypeString},
					"proficiency": {
						Type: genai.TypeString,
						Enum: []string{"beginner", "intermediate", "advanced", "expert"},
					},
				},
				Required: []string{"name", "proficiency"},
			},
		},
		"seniority_level": {
			Type: genai.TypeString,
			Enum: []string{"junior", "mid", "senior", "lead", "principal"},
		},
		"total_years_experience": {Type: genai.TypeInteger},
		"industries": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
		"education": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"degree_level": {Type: genai.TypeString},
				"field":        {Type: genai.TypeString},
			},
			Required: []string{"degree_level", "field"},
		},
		"job_titles": {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{
		"skills",
		"seniority_level",
		"total_years_experience",
		"industries",
		"education",
		"job_titles",
	},
}

// Profiler performs the one-shot structured CV profile extraction. Unlike
// scoring, its errors propagate: there is no row to scope them to.
type Profiler struct {
	generator jsonGenerator
	logger    *zap.Logger
}

func NewProfiler(generator jsonGenerator, log *zap.Logger) *Profiler {
	return &Profiler{
		generator: generator,
		logger:    logger.WithAIFields(log, Provider, generator.Model()),
	}
}

func (p *Profiler) Extract(ctx context.Context, cvText string) (*ai.Profile, error) {
	raw, err := p.generator.GenerateJSON(ctx, profilePrompt+cvText, profileSchema)
	if err != nil {
		return nil, fmt.Errorf("extract cv profile: %w", err)
	}

	cleaned := extractJSON(raw)

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		return nil, fmt.Errorf("extract cv profile: invalid JSON: %w", err)
	}

	var missing []string
	for _, field := range profileSchema.Required {
		if _, ok := probe[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("extract cv profile: missing required fields: %s", strings.Join(missing, ", "))
	}

	var profile ai.Profile
	if err := json.Unmarshal([]byte(cleaned), &profile); err != nil {
		return nil, fmt.Errorf("extract cv profile: decode: %w", err)
	}

	p.logger.Debug("extracted cv profile",
		zap.String("seniority", profile.SeniorityLevel),
		zap.Int("skills", len(profile.Skills)),
	)

	return &profile, nil
}
