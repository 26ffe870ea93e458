package query

import (
	"context"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// ListOutOfStockQuery lists records with nothing left to sell. Since
// the invariant keeps available non-negative, this is available == 0.
type ListOutOfStockQuery struct {
	Limit  int
	Offset int
}

// ListOutOfStockHandler handles list out of stock query
type ListOutOfStockHandler struct {
	store domain.InventoryStore
}

// NewListOutOfStockHandler creates a new list out of stock handler
func NewListOutOfStockHandler(store domain.InventoryStore) *ListOutOfStockHandler {
	return &ListOutOfStockHandler{store: store}
}

// Handle executes the list out of stock query
func (h *ListOutOfStockHandler) Handle(ctx context.Context, q ListOutOfStockQuery) ([]domain.StockRecord, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return h.store.ListByMaxAvailable(ctx, 0, q.Limit, q.Offset)
}
