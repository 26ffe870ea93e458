package command

import (
	"context"
	"fmt"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// RecordSaleCommand represents the command to consume stock for a
// completed sale. CorrelationID ties the ledger entry to the
// originating order or payment.
type RecordSaleCommand struct {
	ProductID     uint
	Quantity      int
	CorrelationID string
	Actor         domain.Actor
}

// RecordSaleHandler handles record sale command
type RecordSaleHandler struct {
	store domain.InventoryStore
}

// NewRecordSaleHandler creates a new record sale handler
func NewRecordSaleHandler(store domain.InventoryStore) *RecordSaleHandler {
	return &RecordSaleHandler{store: store}
}

// Handle executes the sale. The reservation-consumption policy lives on
// StockRecord.Sell; the ledger entry records which path was taken.
func (h *RecordSaleHandler) Handle(ctx context.Context, cmd RecordSaleCommand) (*domain.StockRecord, *domain.StockMovement, error) {
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
		consumedReservation, err := rec.Sell(cmd.Quantity)
		if err != nil {
			return err
		}

		mv := domain.NewSaleMovement(cmd.ProductID, cmd.Quantity, before, rec.OnHand, consumedReservation, cmd.CorrelationID, cmd.Actor)
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
