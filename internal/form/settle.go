package form

import (
	"context"
	"time"
)

// Settle controls how the pipeline waits for the backend between
// the feature extraction and the analysis retrieval.
type Settle struct {
	// Delay is waited unconditionally after a successful extraction.
	Delay time.Duration
	// PollAttempts is the number of retrieval attempts while the backend answers 404.
	// Values below 1 mean a single attempt.
	PollAttempts int
	// PollInterval is waited between retrieval attempts.
	PollInterval time.Duration
}

// DefaultSettle waits one second and retrieves the analysis once.
var DefaultSettle = Settle{
	Delay:        time.Second,
	PollAttempts: 1,
	PollInterval: time.Second,
}

func (s Settle) attempts() int {
	if s.PollAttempts < 1 {
		return 1
	}
	return s.PollAttempts
}

type waitFunc func(ctx context.Context, d time.Duration) error

// waitFor blocks for d or until ctx is done.
func waitFor(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
