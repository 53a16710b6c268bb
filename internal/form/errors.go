package form

import (
	"errors"

	"github.com/spigell/resume-parser/internal/backend"
)

// User-visible messages.
const (
	MessageWrongFileType = "Please upload a PDF file"
	MessageValidation    = "Please upload a resume PDF and enter job requirements"

	messageExtraction = "Failed to analyze resume"
	messageRetrieval  = "Failed to process NLP analysis"
	errorPrefix       = "Error: "
)

var (
	// ErrValidation is returned by Submit when the file or the requirements are missing.
	ErrValidation = errors.New("resume pdf and job requirements are required")
	// ErrWrongFileType is returned by SelectFile for anything that is not a PDF.
	ErrWrongFileType = errors.New("selected file is not a pdf")
	// ErrBusy is returned while a submission is in flight.
	ErrBusy = errors.New("submission already in progress")
	// ErrResultShown is returned for form input while the result view is displayed.
	ErrResultShown = errors.New("result is displayed, reset the form first")
)

// describe turns a submission error into the text shown after the "Error: " prefix.
func describe(err error) string {
	if errors.Is(err, backend.ErrExtraction) {
		return messageExtraction
	}

	var retrievalErr *backend.RetrievalError
	if errors.As(err, &retrievalErr) {
		if retrievalErr.Detail != "" {
			return retrievalErr.Detail
		}
		return messageRetrieval
	}

	return err.Error()
}
