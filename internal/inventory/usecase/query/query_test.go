package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/repository"
)

func seedStock(t *testing.T, store *repository.MemoryInventoryStore, productID uint, onHand, reserved int) {
	t.Helper()
	rec := &domain.StockRecord{ProductID: productID, OnHand: onHand, Location: "warehouse"}
	mv := domain.NewAdjustmentMovement(productID, onHand, 0, onHand, "initial stock", domain.Actor{})
	require.NoError(t, store.CreateWithMovement(context.Background(), rec, mv))

	if reserved > 0 {
		require.NoError(t, rec.Reserve(reserved))
		mv := domain.NewReservationMovement(productID, reserved, rec.OnHand, "seed hold", "")
		require.NoError(t, store.SaveWithMovement(context.Background(), rec, mv))
	}
}

func TestGetAvailability(t *testing.T) {
	store := repository.NewMemoryInventoryStore()
	seedStock(t, store, 1, 100, 30)
	handler := NewGetAvailabilityHandler(store)

	got, err := handler.Handle(context.Background(), GetAvailabilityQuery{ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ProductID)
	assert.Equal(t, 100, got.OnHand)
	assert.Equal(t, 30, got.Reserved)
	assert.Equal(t, 70, got.Available)

	_, err = handler.Handle(context.Background(), GetAvailabilityQuery{ProductID: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = handler.Handle(context.Background(), GetAvailabilityQuery{})
	assert.Error(t, err)
}

func TestCheckLowStock(t *testing.T) {
	store := repository.NewMemoryInventoryStore()
	seedStock(t, store, 1, 100, 95) // 5 available
	seedStock(t, store, 2, 100, 0)  // 100 available
	handler := NewCheckLowStockHandler(store)

	low, err := handler.Handle(context.Background(), CheckLowStockQuery{ProductID: 1, Threshold: 5})
	require.NoError(t, err)
	assert.True(t, low)

	low, err = handler.Handle(context.Background(), CheckLowStockQuery{ProductID: 1, Threshold: 4})
	require.NoError(t, err)
	assert.False(t, low)

	// Default threshold kicks in when none is given.
	low, err = handler.Handle(context.Background(), CheckLowStockQuery{ProductID: 1})
	require.NoError(t, err)
	assert.True(t, low)

	low, err = handler.Handle(context.Background(), CheckLowStockQuery{ProductID: 2})
	require.NoError(t, err)
	assert.False(t, low)
}

func TestListLowStock(t *testing.T) {
	store := repository.NewMemoryInventoryStore()
	seedStock(t, store, 1, 2, 0)
	seedStock(t, store, 2, 8, 0)
	seedStock(t, store, 3, 50, 0)
	handler := NewListLowStockHandler(store)

	records, err := handler.Handle(context.Background(), ListLowStockQuery{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Most depleted first.
	assert.Equal(t, uint(1), records[0].ProductID)
	assert.Equal(t, uint(2), records[1].ProductID)
}

func TestListOutOfStock(t *testing.T) {
	store := repository.NewMemoryInventoryStore()
	seedStock(t, store, 1, 85, 85) // fully reserved counts as out of stock
	seedStock(t, store, 2, 0, 0)
	seedStock(t, store, 3, 1, 0)
	handler := NewListOutOfStockHandler(store)

	records, err := handler.Handle(context.Background(), ListOutOfStockQuery{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, 0, rec.Available())
	}
}

func TestListStock(t *testing.T) {
	store := repository.NewMemoryInventoryStore()
	for i := uint(1); i <= 15; i++ {
		seedStock(t, store, i, 10, 0)
	}
	handler := NewListStockHandler(store)

	// Default limit.
	records, err := handler.Handle(context.Background(), ListStockQuery{})
	require.NoError(t, err)
	assert.Len(t, records, 10)

	records, err = handler.Handle(context.Background(), ListStockQuery{Limit: 5, Offset: 12})
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestMovementHistory(t *testing.T) {
	store := repository.NewMemoryInventoryStore()
	seedStock(t, store, 1, 100, 20)
	seedStock(t, store, 2, 50, 0)
	handler := NewMovementHistoryHandler(store)

	result, err := handler.Handle(context.Background(), MovementHistoryQuery{
		Filter: domain.MovementFilter{ProductID: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Movements, 2)
	// Newest first.
	assert.Equal(t, domain.MovementReservation, result.Movements[0].Type)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.PageSize)
}

// Queries must never write to the store.
func TestQueriesAreSideEffectFree(t *testing.T) {
	store := repository.NewMemoryInventoryStore()
	seedStock(t, store, 1, 100, 30)

	before, err := store.GetByProduct(context.Background(), 1)
	require.NoError(t, err)

	_, err = NewGetAvailabilityHandler(store).Handle(context.Background(), GetAvailabilityQuery{ProductID: 1})
	require.NoError(t, err)
	_, err = NewCheckLowStockHandler(store).Handle(context.Background(), CheckLowStockQuery{ProductID: 1, Threshold: 50})
	require.NoError(t, err)
	_, err = NewListLowStockHandler(store).Handle(context.Background(), ListLowStockQuery{Threshold: 100})
	require.NoError(t, err)
	_, err = NewMovementHistoryHandler(store).Handle(context.Background(), MovementHistoryQuery{})
	require.NoError(t, err)

	after, err := store.GetByProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, before.OnHand, after.OnHand)
	assert.Equal(t, before.Reserved, after.Reserved)
	assert.Equal(t, before.Version, after.Version)

	_, total, err := store.ListMovements(context.Background(), domain.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}
