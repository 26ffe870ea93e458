package command

import (
	"context"
	"fmt"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// ReleaseStockCommand represents the command to cancel a hold and
// return units to the sellable pool.
type ReleaseStockCommand struct {
	ProductID     uint
	Quantity      int
	Reason        string
	CorrelationID string
}

// ReleaseStockHandler handles release stock command
type ReleaseStockHandler struct {
	store domain.InventoryStore
}

// NewReleaseStockHandler creates a new release stock handler
func NewReleaseStockHandler(store domain.InventoryStore) *ReleaseStockHandler {
	return &ReleaseStockHandler{store: store}
}

// Handle executes the release. Over-releasing is a caller bug and is
// reported as ErrInvalidRelease instead of being clamped.
func (h *ReleaseStockHandler) Handle(ctx context.Context, cmd ReleaseStockCommand) (*domain.StockRecord, *domain.StockMovement, error) {
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

		if err := rec.Release(cmd.Quantity); err != nil {
			return err
		}

		mv := domain.NewReleaseMovement(cmd.ProductID, cmd.Quantity, rec.OnHand, cmd.Reason, cmd.CorrelationID)
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
