package query

import (
	"context"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// ListStockQuery pages through all stock records.
type ListStockQuery struct {
	Limit  int
	Offset int
}

// ListStockHandler handles list stock query
type ListStockHandler struct {
	store domain.InventoryStore
}

// NewListStockHandler creates a new list stock handler
func NewListStockHandler(store domain.InventoryStore) *ListStockHandler {
	return &ListStockHandler{store: store}
}

// Handle executes the list stock query
func (h *ListStockHandler) Handle(ctx context.Context, q ListStockQuery) ([]domain.StockRecord, error) {
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return h.store.ListAll(ctx, q.Limit, q.Offset)
}
