package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCandidate is the structured log field key for the candidate id.
	FieldCandidate = "candidate"
	// FieldStage is the structured log field key for the pipeline stage.
	FieldStage = "stage"
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

// WithFields attaches fields to logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CandidateFields describes a candidate in log entries. Empty values are
// dropped.
func CandidateFields(id, stage string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCandidate, Value: id},
		StringField{Key: FieldStage, Value: stage},
	)
}

// ForCandidate returns a logger annotated with the candidate fields.
func ForCandidate(logger *zap.Logger, id, stage string) *zap.Logger {
	return WithFields(logger, CandidateFields(id, stage)...)
}
