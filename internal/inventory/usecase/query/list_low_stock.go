package query

import (
	"context"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// DefaultLowStockThreshold is the reorder threshold applied when a
// caller does not set one.
const DefaultLowStockThreshold = 10

// ListLowStockQuery lists every record whose available quantity is at
// or below the threshold, most depleted first.
type ListLowStockQuery struct {
	Threshold int
	Limit     int
	Offset    int
}

// ListLowStockHandler handles list low stock query
type ListLowStockHandler struct {
	store domain.InventoryStore
}

// NewListLowStockHandler creates a new list low stock handler
func NewListLowStockHandler(store domain.InventoryStore) *ListLowStockHandler {
	return &ListLowStockHandler{store: store}
}

// Handle executes the list low stock query
func (h *ListLowStockHandler) Handle(ctx context.Context, q ListLowStockQuery) ([]domain.StockRecord, error) {
	if q.Threshold <= 0 {
		q.Threshold = DefaultLowStockThreshold
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return h.store.ListByMaxAvailable(ctx, q.Threshold, q.Limit, q.Offset)
}
