package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCareerID is the structured log field key for a single occupation id.
	FieldCareerID = "career_id"
	// FieldSourceCareer is the structured log field key for a transition source.
	FieldSourceCareer = "source_career_id"
	// FieldTargetCareer is the structured log field key for a transition target.
	FieldTargetCareer = "target_career_id"
	// FieldModelVersion is the structured log field key for the model artifact version.
	FieldModelVersion = "model_version"
	// FieldRequestID is the structured log field key for the HTTP request id.
	FieldRequestID = "request_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a
// no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// TransitionFields returns the fields that identify a career switch.
func TransitionFields(sourceID, targetID string) []zap.Field {
	return StringFields(
		StringField{Key: FieldSourceCareer, Value: sourceID},
		StringField{Key: FieldTargetCareer, Value: targetID},
	)
}
