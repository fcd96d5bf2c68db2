package memory

import "context"

// Transactor runs the function directly. The map-backed stores mutate
// under their own locks, so there is nothing to roll back.
type Transactor struct{}

// WithinTransaction implements database.Transactor.
func (Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
