package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/repository"
)

// stubCatalog answers product existence checks from a fixed set.
type stubCatalog struct {
	known map[uint]bool
	err   error
}

func (c *stubCatalog) ProductExists(_ context.Context, productID uint) (bool, error) {
	if c.err != nil {
		return false, c.err
	}
	return c.known[productID], nil
}

// conflictingStore wraps the memory store and makes the first n saves
// lose the optimistic-lock race.
type conflictingStore struct {
	domain.InventoryStore
	conflictsLeft int
}

func (s *conflictingStore) SaveWithMovement(ctx context.Context, record *domain.StockRecord, movement *domain.StockMovement) error {
	if s.conflictsLeft > 0 {
		s.conflictsLeft--
		return domain.ErrConcurrencyConflict
	}
	return s.InventoryStore.SaveWithMovement(ctx, record, movement)
}

func newStockFixture(t *testing.T, productID uint, onHand int) *repository.MemoryInventoryStore {
	t.Helper()
	store := repository.NewMemoryInventoryStore()
	handler := NewCreateStockHandler(store, nil)
	_, err := handler.Handle(context.Background(), CreateStockCommand{
		ProductID:       productID,
		InitialQuantity: onHand,
	})
	require.NoError(t, err)
	return store
}

func TestCreateStock(t *testing.T) {
	store := repository.NewMemoryInventoryStore()
	handler := NewCreateStockHandler(store, &stubCatalog{known: map[uint]bool{1: true}})

	record, err := handler.Handle(context.Background(), CreateStockCommand{
		ProductID:       1,
		InitialQuantity: 100,
		Location:        "WH-A",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, record.OnHand)
	assert.Equal(t, 0, record.Reserved)
	assert.Equal(t, "WH-A", record.Location)
	assert.Equal(t, int64(1), record.Version)

	// The initial quantity lands in the ledger as an adjustment.
	movements, total, err := store.ListMovements(context.Background(), domain.MovementFilter{ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, domain.MovementAdjustment, movements[0].Type)
	assert.Equal(t, 100, movements[0].QuantityDelta)
	assert.Equal(t, "initial stock", movements[0].Reason)
}

func TestCreateStockValidation(t *testing.T) {
	store := repository.NewMemoryInventoryStore()
	handler := NewCreateStockHandler(store, nil)

	_, err := handler.Handle(context.Background(), CreateStockCommand{ProductID: 0, InitialQuantity: 1})
	assert.Error(t, err)

	_, err = handler.Handle(context.Background(), CreateStockCommand{ProductID: 1, InitialQuantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidAdjustment)

	// Zero initial quantity and default location are fine.
	record, err := handler.Handle(context.Background(), CreateStockCommand{ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, record.OnHand)
	assert.Equal(t, "warehouse", record.Location)
}

func TestCreateStockDuplicate(t *testing.T) {
	store := newStockFixture(t, 1, 100)
	handler := NewCreateStockHandler(store, nil)

	_, err := handler.Handle(context.Background(), CreateStockCommand{ProductID: 1, InitialQuantity: 5})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCreateStockUnknownProduct(t *testing.T) {
	store := repository.NewMemoryInventoryStore()
	handler := NewCreateStockHandler(store, &stubCatalog{known: map[uint]bool{}})

	_, err := handler.Handle(context.Background(), CreateStockCommand{ProductID: 7, InitialQuantity: 5})
	assert.ErrorIs(t, err, domain.ErrProductUnknown)
}

func TestCreateStockCatalogDown(t *testing.T) {
	store := repository.NewMemoryInventoryStore()
	catalogErr := errors.New("connection refused")
	handler := NewCreateStockHandler(store, &stubCatalog{err: catalogErr})

	_, err := handler.Handle(context.Background(), CreateStockCommand{ProductID: 7, InitialQuantity: 5})
	assert.ErrorIs(t, err, catalogErr)
}

func TestAdjustQuantity(t *testing.T) {
	store := newStockFixture(t, 1, 100)
	handler := NewAdjustQuantityHandler(store)

	record, movement, err := handler.Handle(context.Background(), AdjustQuantityCommand{
		ProductID: 1,
		Delta:     -15,
		Reason:    "damaged",
		Actor:     domain.Actor{ID: "42", Name: "alice"},
	})
	require.NoError(t, err)
	assert.Equal(t, 85, record.OnHand)
	assert.Equal(t, domain.MovementAdjustment, movement.Type)
	assert.Equal(t, -15, movement.QuantityDelta)
	assert.Equal(t, 100, movement.PreviousOnHand)
	assert.Equal(t, 85, movement.NewOnHand)
	assert.Equal(t, "42", movement.ActorID)
}

func TestAdjustQuantityRequiresReason(t *testing.T) {
	store := newStockFixture(t, 1, 100)
	handler := NewAdjustQuantityHandler(store)

	_, _, err := handler.Handle(context.Background(), AdjustQuantityCommand{ProductID: 1, Delta: 5})
	assert.ErrorIs(t, err, domain.ErrEmptyReason)
}

func TestAdjustQuantityInvalid(t *testing.T) {
	store := newStockFixture(t, 1, 10)
	handler := NewAdjustQuantityHandler(store)

	_, _, err := handler.Handle(context.Background(), AdjustQuantityCommand{
		ProductID: 1,
		Delta:     -11,
		Reason:    "shrinkage",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAdjustment)

	// Nothing was written.
	rec, err := store.GetByProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.OnHand)
	_, total, err := store.ListMovements(context.Background(), domain.MovementFilter{ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestReserveStock(t *testing.T) {
	store := newStockFixture(t, 1, 100)
	handler := NewReserveStockHandler(store)

	record, movement, err := handler.Handle(context.Background(), ReserveStockCommand{
		ProductID:     1,
		Quantity:      30,
		Reason:        "order-1",
		CorrelationID: "ord-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 100, record.OnHand)
	assert.Equal(t, 30, record.Reserved)
	assert.Equal(t, 70, record.Available())
	assert.Equal(t, -30, movement.QuantityDelta)
	assert.Equal(t, "ord-1", movement.CorrelationID)

	// A second hold beyond the remainder fails and changes nothing.
	_, _, err = handler.Handle(context.Background(), ReserveStockCommand{
		ProductID: 1,
		Quantity:  80,
		Reason:    "order-2",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	rec, err := store.GetByProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 30, rec.Reserved)
}

func TestReleaseStock(t *testing.T) {
	store := newStockFixture(t, 1, 100)
	reserve := NewReserveStockHandler(store)
	release := NewReleaseStockHandler(store)

	_, _, err := reserve.Handle(context.Background(), ReserveStockCommand{
		ProductID: 1, Quantity: 30, Reason: "order-1", CorrelationID: "ord-1",
	})
	require.NoError(t, err)

	record, movement, err := release.Handle(context.Background(), ReleaseStockCommand{
		ProductID: 1, Quantity: 30, Reason: "order-1 cancelled", CorrelationID: "ord-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, record.Reserved)
	assert.Equal(t, 100, record.Available())
	assert.Equal(t, 30, movement.QuantityDelta)

	_, _, err = release.Handle(context.Background(), ReleaseStockCommand{
		ProductID: 1, Quantity: 1, Reason: "oops",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRelease)
}

func TestRecordSaleConsumesReservation(t *testing.T) {
	store := newStockFixture(t, 1, 100)
	reserve := NewReserveStockHandler(store)
	sale := NewRecordSaleHandler(store)

	_, _, err := reserve.Handle(context.Background(), ReserveStockCommand{
		ProductID: 1, Quantity: 30, Reason: "order-1", CorrelationID: "ord-1",
	})
	require.NoError(t, err)

	record, movement, err := sale.Handle(context.Background(), RecordSaleCommand{
		ProductID: 1, Quantity: 30, CorrelationID: "ord-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 70, record.OnHand)
	assert.Equal(t, 0, record.Reserved)
	assert.True(t, movement.ConsumedReservation)
}

func TestRecordSaleDirect(t *testing.T) {
	store := newStockFixture(t, 1, 85)
	sale := NewRecordSaleHandler(store)

	record, movement, err := sale.Handle(context.Background(), RecordSaleCommand{
		ProductID: 1, Quantity: 85, CorrelationID: "order-3",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, record.Available())
	assert.False(t, movement.ConsumedReservation)

	_, _, err = sale.Handle(context.Background(), RecordSaleCommand{ProductID: 1, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRecordReturn(t *testing.T) {
	store := newStockFixture(t, 1, 80)
	handler := NewRecordReturnHandler(store)

	record, movement, err := handler.Handle(context.Background(), RecordReturnCommand{
		ProductID:     1,
		Quantity:      5,
		Reason:        "customer return",
		CorrelationID: "ord-2",
	})
	require.NoError(t, err)
	assert.Equal(t, 85, record.OnHand)
	assert.Equal(t, domain.MovementReturn, movement.Type)
	assert.Equal(t, 5, movement.QuantityDelta)
	assert.Equal(t, 80, movement.PreviousOnHand)
	assert.Equal(t, 85, movement.NewOnHand)
}

func TestConflictRetrySucceedsAfterRaces(t *testing.T) {
	inner := newStockFixture(t, 1, 100)
	store := &conflictingStore{InventoryStore: inner, conflictsLeft: 2}
	handler := NewReserveStockHandler(store)

	record, _, err := handler.Handle(context.Background(), ReserveStockCommand{
		ProductID: 1, Quantity: 10, Reason: "order-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, record.Reserved)
	assert.Equal(t, 0, store.conflictsLeft)
}

func TestConflictRetryExhausted(t *testing.T) {
	inner := newStockFixture(t, 1, 100)
	store := &conflictingStore{InventoryStore: inner, conflictsLeft: maxConflictRetries}
	handler := NewReserveStockHandler(store)

	_, _, err := handler.Handle(context.Background(), ReserveStockCommand{
		ProductID: 1, Quantity: 10, Reason: "order-1",
	})
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
}

func TestConflictRetryStopsOnCancel(t *testing.T) {
	inner := newStockFixture(t, 1, 100)
	store := &conflictingStore{InventoryStore: inner, conflictsLeft: maxConflictRetries}
	handler := NewReserveStockHandler(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := handler.Handle(ctx, ReserveStockCommand{
		ProductID: 1, Quantity: 10, Reason: "order-1",
	})
	assert.ErrorIs(t, err, context.Canceled)
}
