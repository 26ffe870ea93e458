package command

import (
	"context"
	"errors"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// maxConflictRetries bounds how often a command re-reads and re-applies
// after losing an optimistic-lock race before the conflict surfaces.
const maxConflictRetries = 3

// withConflictRetry runs the whole read-check-write cycle again on
// ErrConcurrencyConflict, up to the bound. Any other error, and caller
// cancellation, stop the loop immediately.
func withConflictRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = fn(ctx)
		if !errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return err
}
