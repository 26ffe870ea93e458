package query

import (
	"context"
	"fmt"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// GetAvailabilityQuery represents the query for a product's current
// on-hand, reserved and available quantities.
type GetAvailabilityQuery struct {
	ProductID uint
}

// GetAvailabilityHandler handles get availability query
type GetAvailabilityHandler struct {
	store domain.InventoryStore
}

// NewGetAvailabilityHandler creates a new get availability handler
func NewGetAvailabilityHandler(store domain.InventoryStore) *GetAvailabilityHandler {
	return &GetAvailabilityHandler{store: store}
}

// Handle executes the get availability query
func (h *GetAvailabilityHandler) Handle(ctx context.Context, q GetAvailabilityQuery) (*domain.Availability, error) {
	if q.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}

	record, err := h.store.GetByProduct(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}

	snapshot := record.Snapshot()
	return &snapshot, nil
}
