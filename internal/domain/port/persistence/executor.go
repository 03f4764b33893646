package persistence

import "context"

// WriteFunc is one mutation. ctx carries the open unit of work.
type WriteFunc func(ctx context.Context) error

// WriteExecutor runs mutations one at a time, each in its own unit of work.
// A WriteFunc that returns an error leaves storage exactly as before.
type WriteExecutor interface {
	Execute(ctx context.Context, operation string, fn WriteFunc) error
}
