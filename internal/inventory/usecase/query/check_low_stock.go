package query

import (
	"context"
	"fmt"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// CheckLowStockQuery asks whether a product's available quantity is at
// or below the reorder threshold.
type CheckLowStockQuery struct {
	ProductID uint
	Threshold int
}

// CheckLowStockHandler handles check low stock query
type CheckLowStockHandler struct {
	store domain.InventoryStore
}

// NewCheckLowStockHandler creates a new check low stock handler
func NewCheckLowStockHandler(store domain.InventoryStore) *CheckLowStockHandler {
	return &CheckLowStockHandler{store: store}
}

// Handle executes the check low stock query
func (h *CheckLowStockHandler) Handle(ctx context.Context, q CheckLowStockQuery) (bool, error) {
	if q.ProductID == 0 {
		return false, fmt.Errorf("product_id is required")
	}

	threshold := q.Threshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}

	record, err := h.store.GetByProduct(ctx, q.ProductID)
	if err != nil {
		return false, err
	}
	return record.Available() <= threshold, nil
}
