package command

import (
	"context"
	"fmt"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// AdjustQuantityCommand represents a signed on-hand correction
// (receiving, damage, shrinkage). The sign of Delta sets the direction.
type AdjustQuantityCommand struct {
	ProductID uint
	Delta     int
	Reason    string
	Notes     string
	Actor     domain.Actor
}

// AdjustQuantityHandler handles adjust quantity command
type AdjustQuantityHandler struct {
	store domain.InventoryStore
}

// NewAdjustQuantityHandler creates a new adjust quantity handler
func NewAdjustQuantityHandler(store domain.InventoryStore) *AdjustQuantityHandler {
	return &AdjustQuantityHandler{store: store}
}

// Handle executes the adjustment and returns the updated record with
// its ledger entry.
func (h *AdjustQuantityHandler) Handle(ctx context.Context, cmd AdjustQuantityCommand) (*domain.StockRecord, *domain.StockMovement, error) {
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

		before := rec.OnHand
		if err := rec.Adjust(cmd.Delta); err != nil {
			return err
		}

		mv := domain.NewAdjustmentMovement(cmd.ProductID, cmd.Delta, before, rec.OnHand, cmd.Reason, cmd.Actor)
		mv.Notes = cmd.Notes
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
