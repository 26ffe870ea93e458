package command

import (
	"context"
	"fmt"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// CreateStockCommand represents the command to create stock for a product
type CreateStockCommand struct {
	ProductID       uint
	InitialQuantity int
	Location        string
	Actor           domain.Actor
}

// CreateStockHandler handles create stock command
type CreateStockHandler struct {
	store   domain.InventoryStore
	catalog domain.CatalogGateway
}

// NewCreateStockHandler creates a new create stock handler
func NewCreateStockHandler(store domain.InventoryStore, catalog domain.CatalogGateway) *CreateStockHandler {
	return &CreateStockHandler{store: store, catalog: catalog}
}

// Handle executes the create stock command. Product existence is
// checked against the catalog here and only here; later mutations trust
// the record.
func (h *CreateStockHandler) Handle(ctx context.Context, cmd CreateStockCommand) (*domain.StockRecord, error) {
	if cmd.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required")
	}
	if cmd.InitialQuantity < 0 {
		return nil, domain.ErrInvalidAdjustment
	}
	if cmd.Location == "" {
		cmd.Location = "warehouse"
	}

	if h.catalog != nil {
		exists, err := h.catalog.ProductExists(ctx, cmd.ProductID)
		if err != nil {
			return nil, fmt.Errorf("catalog lookup failed: %w", err)
		}
		if !exists {
			return nil, domain.ErrProductUnknown
		}
	}

	record := &domain.StockRecord{
		ProductID: cmd.ProductID,
		OnHand:    cmd.InitialQuantity,
		Reserved:  0,
		Location:  cmd.Location,
	}

	// The initial quantity is written to the ledger as an adjustment so
	// a replay from zero reproduces the record.
	movement := domain.NewAdjustmentMovement(
		cmd.ProductID, cmd.InitialQuantity, 0, cmd.InitialQuantity,
		"initial stock", cmd.Actor,
	)

	if err := h.store.CreateWithMovement(ctx, record, movement); err != nil {
		return nil, err
	}
	return record, nil
}
