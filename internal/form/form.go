package form

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/spigell/resume-parser/internal/backend"
	"go.uber.org/zap"
)

// Backend is the remote analysis service.
type Backend interface {
	ExtractFeatures(ctx context.Context, upload backend.Upload) error
	FetchAnalysis(ctx context.Context) (*backend.AnalysisResult, error)
}

// Controller holds the state of one resume upload form and runs its submissions.
// It is safe for concurrent use; at most one submission runs at a time.
type Controller struct {
	backend Backend
	settle  Settle
	wait    waitFunc
	logger  *zap.Logger

	mu           sync.Mutex
	file         *File
	requirements string
	status       Status
	// generation changes on every reset so an abandoned submission cannot overwrite the fresh form.
	generation uint64
	cancel     context.CancelFunc
}

// Option customizes a Controller.
type Option func(*Controller)

// WithSettle replaces DefaultSettle.
func WithSettle(s Settle) Option {
	return func(c *Controller) {
		c.settle = s
	}
}

// WithLogger sets the logger. A no-op logger is used otherwise.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a controller with an empty form.
func New(b Backend, opts ...Option) *Controller {
	c := &Controller{
		backend: b,
		settle:  DefaultSettle,
		wait:    waitFor,
		logger:  zap.NewNop(),
		status:  Idle{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshot()
}

func (c *Controller) snapshot() Snapshot {
	return Snapshot{
		File:         c.file,
		Requirements: c.requirements,
		Status:       c.status,
	}
}

// SelectFile stores a PDF candidate and clears the error.
// Any other candidate, nil included, clears the stored file and sets the wrong file type error.
func (c *Controller) SelectFile(candidate *File) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editable(); err != nil {
		return err
	}

	if !candidate.IsPDF() {
		c.file = nil
		c.status = Failed{Message: MessageWrongFileType, Err: ErrWrongFileType}

		mediaType := ""
		if candidate != nil {
			mediaType = candidate.MediaType
		}
		c.logger.Debug("rejected file", zap.String("media_type", mediaType))

		return ErrWrongFileType
	}

	c.file = candidate
	c.status = Idle{}

	c.logger.Debug("file selected", zap.String("name", candidate.Name), zap.Int("size", candidate.Size()))

	return nil
}

// UpdateRequirements stores the requirements text verbatim.
func (c *Controller) UpdateRequirements(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editable(); err != nil {
		return err
	}

	c.requirements = text
	return nil
}

// Reset restores the empty form. A submission in flight is cancelled and its outcome discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	c.generation++
	c.file = nil
	c.requirements = ""
	c.status = Idle{}
}

func (c *Controller) editable() error {
	switch c.status.(type) {
	case Submitting:
		return ErrBusy
	case Succeeded:
		return ErrResultShown
	default:
		return nil
	}
}

// Submit validates the form, uploads the resume, waits for the backend to settle
// and fetches the analysis. The outcome is stored in the controller state and
// the submission error, if any, is returned as well.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()

	if err := c.editable(); err != nil {
		c.mu.Unlock()
		return err
	}

	if c.file == nil || strings.TrimSpace(c.requirements) == "" {
		c.status = Failed{Message: MessageValidation, Err: ErrValidation}
		c.mu.Unlock()
		return ErrValidation
	}

	upload := backend.Upload{
		FileName:     c.file.Name,
		ContentType:  c.file.MediaType,
		Data:         c.file.Data,
		Requirements: c.requirements,
	}

	ctx, cancel := context.WithCancel(ctx)
	generation := c.generation
	c.cancel = cancel
	c.status = Submitting{}
	c.mu.Unlock()

	var next Status = Failed{Message: errorPrefix + "submission aborted"}
	defer func() {
		cancel()

		c.mu.Lock()
		defer c.mu.Unlock()

		if c.generation != generation {
			return
		}
		c.cancel = nil
		c.status = next
	}()

	result, err := c.run(ctx, upload)
	if err != nil {
		next = Failed{Message: errorPrefix + describe(err), Err: err}
		c.logger.Warn("analysis failed", zap.Error(err))
		return err
	}

	if result == nil {
		next = Idle{}
		c.logger.Warn("backend returned an empty analysis")
		return nil
	}

	next = Succeeded{Result: result}
	return nil
}

func (c *Controller) run(ctx context.Context, upload backend.Upload) (*backend.AnalysisResult, error) {
	if err := c.backend.ExtractFeatures(ctx, upload); err != nil {
		return nil, err
	}

	if err := c.wait(ctx, c.settle.Delay); err != nil {
		return nil, err
	}

	attempts := c.settle.attempts()
	for attempt := 1; ; attempt++ {
		result, err := c.backend.FetchAnalysis(ctx)

		var retrievalErr *backend.RetrievalError
		if err == nil || attempt >= attempts || !errors.As(err, &retrievalErr) || retrievalErr.StatusCode != http.StatusNotFound {
			return result, err
		}

		c.logger.Debug("analysis not ready",
			zap.Int("attempt", attempt),
			zap.Int("attempts", attempts),
			zap.Duration("interval", c.settle.PollInterval),
		)

		if err := c.wait(ctx, c.settle.PollInterval); err != nil {
			return nil, err
		}
	}
}
