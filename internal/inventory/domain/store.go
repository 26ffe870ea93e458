package domain

import "context"

// InventoryStore defines the persistence contract for stock records and
// their movement ledger. Implementations must guarantee that the stock
// write and the ledger append of a single operation commit or fail as
// one atomic unit, and that concurrent writers lose with
// ErrConcurrencyConflict rather than overwriting each other.
type InventoryStore interface {
	// GetByProduct loads the current record, or ErrNotFound.
	GetByProduct(ctx context.Context, productID uint) (*StockRecord, error)

	// CreateWithMovement inserts a brand-new record together with its
	// initial ledger entry. Returns ErrAlreadyExists if a record for the
	// product is already present.
	CreateWithMovement(ctx context.Context, record *StockRecord, movement *StockMovement) error

	// SaveWithMovement persists a mutated record and appends its ledger
	// entry in the same transaction. The write is version-checked:
	// ErrConcurrencyConflict if the record changed since it was read.
	SaveWithMovement(ctx context.Context, record *StockRecord, movement *StockMovement) error

	// ListByMaxAvailable returns records whose available quantity
	// (on-hand minus reserved) is at or below the threshold.
	ListByMaxAvailable(ctx context.Context, maxAvailable, limit, offset int) ([]StockRecord, error)

	// ListAll pages through every stock record.
	ListAll(ctx context.Context, limit, offset int) ([]StockRecord, error)

	// ListMovements returns ledger entries matching the filter, newest
	// first, along with the total match count.
	ListMovements(ctx context.Context, filter MovementFilter) ([]StockMovement, int64, error)
}

// CatalogGateway is the product-existence check consumed from the
// catalog service. Only stock creation consults it; mutations on the
// hot path do not re-validate product identity.
type CatalogGateway interface {
	ProductExists(ctx context.Context, productID uint) (bool, error)
}
