package command

import (
	"context"
	"fmt"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// RecordReturnCommand represents the command to put sold units back
// into stock, e.g. a customer return accepted at the warehouse.
type RecordReturnCommand struct {
	ProductID     uint
	Quantity      int
	Reason        string
	CorrelationID string
}

// RecordReturnHandler handles record return command
type RecordReturnHandler struct {
	store domain.InventoryStore
}

// NewRecordReturnHandler creates a new record return handler
func NewRecordReturnHandler(store domain.InventoryStore) *RecordReturnHandler {
	return &RecordReturnHandler{store: store}
}

// Handle executes the return.
func (h *RecordReturnHandler) Handle(ctx context.Context, cmd RecordReturnCommand) (*domain.StockRecord, *domain.StockMovement, error) {
	if cmd.ProductID == 0 {
		return nil, nil, fmt.Errorf("product_id is required")
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

		before := rec.OnHand
		if err := rec.Return(cmd.Quantity); err != nil {
			return err
		}

		mv := domain.NewReturnMovement(cmd.ProductID, cmd.Quantity, before, rec.OnHand, cmd.Reason, cmd.CorrelationID)
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
