package domain

import "errors"

// Error taxonomy for inventory operations. Handlers map these to
// transport responses; nothing in the core swallows or clamps them.
var (
	// ErrNotFound means no stock record exists for the product.
	ErrNotFound = errors.New("stock record not found")

	// ErrAlreadyExists means stock was already created for the product.
	ErrAlreadyExists = errors.New("stock record already exists")

	// ErrInsufficientStock is a normal business outcome, not a defect:
	// the requested quantity exceeds what is sellable right now.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidAdjustment means the correction would drive on-hand
	// negative or below the reserved quantity.
	ErrInvalidAdjustment = errors.New("adjustment would violate stock invariant")

	// ErrInvalidRelease means the caller tried to release more than is
	// currently reserved.
	ErrInvalidRelease = errors.New("release exceeds reserved quantity")

	// ErrInvalidQuantity rejects zero or negative operation quantities.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrEmptyReason rejects adjustments without a stated reason.
	ErrEmptyReason = errors.New("reason is required")

	// ErrConcurrencyConflict means the record changed under us; the
	// operation is retried a bounded number of times before this
	// surfaces to the caller.
	ErrConcurrencyConflict = errors.New("stock record was modified concurrently")

	// ErrStoreUnavailable wraps transient persistence failures.
	ErrStoreUnavailable = errors.New("inventory store unavailable")

	// ErrProductUnknown means the catalog does not know the product.
	ErrProductUnknown = errors.New("product does not exist in catalog")
)
