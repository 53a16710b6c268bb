package backend

import (
	"errors"
	"fmt"
)

// ErrExtraction is returned when the feature extraction endpoint answers with a non-2xx status.
// The response body is never inspected.
var ErrExtraction = errors.New("failed to analyze resume")

// RetrievalError is returned when the analysis endpoint answers with a non-2xx status.
type RetrievalError struct {
	StatusCode int
	// Detail is the "detail" field of the JSON error body, empty when absent or unparsable.
	Detail string
}

func (e *RetrievalError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}

	return fmt.Sprintf("failed to process NLP analysis (status %d)", e.StatusCode)
}
