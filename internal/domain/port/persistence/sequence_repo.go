package persistence

import "context"

// SequenceRepository hands out gapless ids. Next must run inside a unit of work
// so an id that is rolled back is handed out again.
type SequenceRepository interface {
	// Next increments the named counter and returns the new value, starting at 1
	Next(ctx context.Context, name string) (uint64, error)

	// Current returns the last value handed out, 0 if none
	Current(ctx context.Context, name string) (uint64, error)
}
