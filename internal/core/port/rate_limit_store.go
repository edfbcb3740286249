package port

import (
	"context"
	"time"
)

// RateLimitStore tracks attempts per identifier over a sliding window.
type RateLimitStore interface {
	// RecordAttempt registers one attempt at the given time.
	RecordAttempt(ctx context.Context, identifier string, at time.Time) error
	// Tally evicts attempts older than the window and returns how many
	// remain plus the earliest remaining timestamp (zero when none).
	Tally(ctx context.Context, identifier string, window time.Duration, now time.Time) (int, time.Time, error)
}
