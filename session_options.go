package slidegen

import (
	"log/slog"
	"time"

	"github.com/mhpenta/slidegen/ratelimiter"
)

const (
	// DefaultTimeout is the wall-clock budget of one generation.
	DefaultTimeout = 60 * time.Second

	// DefaultScrollDelay lets the presentation layer settle before the first
	// slide is scrolled into view.
	DefaultScrollDelay = 500 * time.Millisecond
)

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets a structured logger for the session.
func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithRenderer sets the markdown renderer for captions and the question echo.
func WithRenderer(renderer Renderer) SessionOption {
	return func(s *Session) {
		s.renderer = renderer
	}
}

// WithMetrics records request outcomes and slide counts.
func WithMetrics(metrics *Metrics) SessionOption {
	return func(s *Session) {
		s.metrics = metrics
	}
}

// WithTimeout sets the wall-clock budget of one generation.
func WithTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithScrollDelay sets the delay before the first slide is scrolled into view.
func WithScrollDelay(d time.Duration) SessionOption {
	return func(s *Session) {
		s.scrollDelay = d
	}
}

// WithInstructions replaces the instruction suffix appended to every message.
func WithInstructions(instructions string) SessionOption {
	return func(s *Session) {
		s.instructions = instructions
	}
}

// WithRateLimiter overrides the limiter derived from the model's rate limits.
func WithRateLimiter(limiter ratelimiter.Limiter) SessionOption {
	return func(s *Session) {
		s.limiter = limiter
	}
}

// WithGenerateConfig sets the rate-limit waiting policy from config.
func WithGenerateConfig(config *GenerateConfig) SessionOption {
	return func(s *Session) {
		if config != nil {
			s.config = config
		}
	}
}

// WithCoordinatorOptions passes options through to the session's Coordinator.
func WithCoordinatorOptions(opts ...CoordinatorOption) SessionOption {
	return func(s *Session) {
		s.coordinatorOpts = append(s.coordinatorOpts, opts...)
	}
}
