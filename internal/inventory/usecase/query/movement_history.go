package query

import (
	"context"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// MovementHistoryQuery returns ledger entries matching the filter,
// newest first. Reads never touch the stock record and never append.
type MovementHistoryQuery struct {
	Filter domain.MovementFilter
}

// MovementHistoryResult carries one page of the ledger plus the total
// match count for pagination.
type MovementHistoryResult struct {
	Movements []domain.StockMovement `json:"movements"`
	Total     int64                  `json:"total"`
	Page      int                    `json:"page"`
	PageSize  int                    `json:"page_size"`
}

// MovementHistoryHandler handles movement history query
type MovementHistoryHandler struct {
	store domain.InventoryStore
}

// NewMovementHistoryHandler creates a new movement history handler
func NewMovementHistoryHandler(store domain.InventoryStore) *MovementHistoryHandler {
	return &MovementHistoryHandler{store: store}
}

// Handle executes the movement history query
func (h *MovementHistoryHandler) Handle(ctx context.Context, q MovementHistoryQuery) (*MovementHistoryResult, error) {
	movements, total, err := h.store.ListMovements(ctx, q.Filter)
	if err != nil {
		return nil, err
	}

	page := q.Filter.Page
	if page < 1 {
		page = 1
	}
	return &MovementHistoryResult{
		Movements: movements,
		Total:     total,
		Page:      page,
		PageSize:  q.Filter.Limit(),
	}, nil
}
