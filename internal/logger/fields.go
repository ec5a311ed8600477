package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider tags log entries with the AI provider in use.
	FieldProvider = "ai_provider"
	// FieldModel tags log entries with the model identifier.
	FieldModel = "ai_model"
)

// WithAIFields returns a logger that stamps every entry with the provider
// and model, so scoring and profiling logs are attributable when several
// models are in play. Blank values are left off; a nil logger falls back to
// a no-op logger so AI components never have to nil-check.
func WithAIFields(log *zap.Logger, provider, model string) *zap.Logger {
	if log == nil {
		log = zap.NewNop()
	}

	fields := make([]zap.Field, 0, 2)
	if provider = strings.TrimSpace(provider); provider != "" {
		fields = append(fields, zap.String(FieldProvider, provider))
	}
	if model = strings.TrimSpace(model); model != "" {
		fields = append(fields, zap.String(FieldModel, model))
	}

	if len(fields) == 0 {
		return log
	}
	return log.With(fields...)
}
