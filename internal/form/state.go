package form

import "github.com/spigell/resume-parser/internal/backend"

// Status is the submission state of a form. It is one of Idle, Submitting, Succeeded or Failed.
type Status interface {
	Name() string
	status()
}

// Idle is the initial state: the form is shown without an error.
type Idle struct{}

// Submitting means the backend calls are in flight.
type Submitting struct{}

// Succeeded holds the analysis returned by the backend. The result view replaces the form.
type Succeeded struct {
	Result *backend.AnalysisResult
}

// Failed keeps the form on screen together with an error message.
type Failed struct {
	Message string
	Err     error
}

func (Idle) Name() string       { return "idle" }
func (Submitting) Name() string { return "submitting" }
func (Succeeded) Name() string  { return "succeeded" }
func (Failed) Name() string     { return "failed" }

func (Idle) status()       {}
func (Submitting) status() {}
func (Succeeded) status()  {}
func (Failed) status()     {}

// Snapshot is a copy of the form state at one point in time.
type Snapshot struct {
	File         *File
	Requirements string
	Status       Status
}

// IsLoading reports whether a submission is in flight.
func (s Snapshot) IsLoading() bool {
	_, ok := s.Status.(Submitting)
	return ok
}

// Error returns the message to show next to the form, empty when there is none.
func (s Snapshot) Error() string {
	if failed, ok := s.Status.(Failed); ok {
		return failed.Message
	}
	return ""
}

// Results returns the analysis when the result view is displayed.
func (s Snapshot) Results() *backend.AnalysisResult {
	if succeeded, ok := s.Status.(Succeeded); ok {
		return succeeded.Result
	}
	return nil
}

// ShowsForm reports whether the input form is displayed. Otherwise the result view is.
func (s Snapshot) ShowsForm() bool {
	_, ok := s.Status.(Succeeded)
	return !ok
}
