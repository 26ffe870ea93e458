package command

import (
	"context"
	"fmt"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// ReserveStockCommand represents the command to hold stock against
// pending demand, typically an order being checked out.
type ReserveStockCommand struct {
	ProductID     uint
	Quantity      int
	Reason        string
	CorrelationID string
}

// ReserveStockHandler handles reserve stock command
type ReserveStockHandler struct {
	store domain.InventoryStore
}

// NewReserveStockHandler creates a new reserve stock handler
func NewReserveStockHandler(store domain.InventoryStore) *ReserveStockHandler {
	return &ReserveStockHandler{store: store}
}

// Handle executes the reservation. ErrInsufficientStock is an expected
// business outcome here, not a failure of the service.
func (h *ReserveStockHandler) Handle(ctx context.Context, cmd ReserveStockCommand) (*domain.StockRecord, *domain.StockMovement, error) {
	if cmd.ProductID == 0 {
		return nil, nil, fmt.Errorf("product_id is required")
	}
	if cmd.Reason == "" {
		return nil, nil, domain.ErrEmptyReason
	}

	var (
		record   *domain.StockRecord
		movement *domain.StockMovement
	)
	err := withConflictRetry(ctx, func(ctx context.Context) error {
		rec, err := h.store.GetByProduct(ctx, cmd.ProductID)
		if err != nil {
			return err
		}

		if err := rec.Reserve(cmd.Quantity); err != nil {
			return err
		}

		mv := domain.NewReservationMovement(cmd.ProductID, cmd.Quantity, rec.OnHand, cmd.Reason, cmd.CorrelationID)
		if err := h.store.SaveWithMovement(ctx, rec, mv); err != nil {
			return err
		}

		record, movement = rec, mv
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return record, movement, nil
}
