package slidegen

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyPrompt is returned when a submission is empty or whitespace only.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrBusy is returned when a submission arrives while another is in flight.
	ErrBusy = errors.New("a generation is already in progress")

	// ErrTimeout is returned when a generation exceeds the session timeout.
	ErrTimeout = errors.New("generation timed out")

	// ErrNoSlides is returned when a generation finished without any slide.
	ErrNoSlides = errors.New("no slides produced")

	// ErrStaleAttempt is returned by a slide sink whose generation has been
	// superseded by a timeout or a newer submission.
	ErrStaleAttempt = errors.New("generation attempt is no longer current")

	// ErrStorageNotConfigured is returned when storage operations are attempted
	// without a configured storage backend.
	ErrStorageNotConfigured = errors.New("storage not configured")
)

// RateLimitError is returned when a rate limit is hit.
type RateLimitError struct {
	RetryAfter time.Duration
	LimitType  string
	Model      string
	Err        error // Underlying error from the provider
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for %s: %s limit, retry after %v",
		e.Model, e.LimitType, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// IsRateLimitError checks if an error is a RateLimitError.
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	return errors.As(err, &rlErr)
}
