package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldBaseURL is the structured log field key for the analysis backend origin.
	FieldBaseURL = "base_url"
	// FieldMethod is the structured log field key for the HTTP method of a backend call.
	FieldMethod = "method"
	// FieldEndpoint is the structured log field key for the backend endpoint path.
	FieldEndpoint = "endpoint"
	// FieldSession is the structured log field key for a web form session id.
	FieldSession = "session"
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

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced by a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// EndpointFields describes a single backend call.
func EndpointFields(method, path string) []zap.Field {
	return StringFields(
		StringField{Key: FieldMethod, Value: method},
		StringField{Key: FieldEndpoint, Value: path},
	)
}
