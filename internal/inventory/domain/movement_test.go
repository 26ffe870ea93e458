package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovementConstructors(t *testing.T) {
	actor := Actor{ID: "42", Name: "alice"}

	adj := NewAdjustmentMovement(1, -15, 100, 85, "damaged", actor)
	assert.Equal(t, MovementAdjustment, adj.Type)
	assert.Equal(t, -15, adj.QuantityDelta)
	assert.Equal(t, 100, adj.PreviousOnHand)
	assert.Equal(t, 85, adj.NewOnHand)
	assert.Equal(t, "42", adj.ActorID)

	res := NewReservationMovement(1, 30, 100, "order-1", "ord-1")
	assert.Equal(t, MovementReservation, res.Type)
	assert.Equal(t, -30, res.QuantityDelta)
	// Reservations never move on-hand.
	assert.Equal(t, res.PreviousOnHand, res.NewOnHand)

	rel := NewReleaseMovement(1, 30, 100, "order-1 cancelled", "ord-1")
	assert.Equal(t, MovementRelease, rel.Type)
	assert.Equal(t, 30, rel.QuantityDelta)
	assert.Equal(t, rel.PreviousOnHand, rel.NewOnHand)

	sale := NewSaleMovement(1, 20, 100, 80, true, "ord-2", actor)
	assert.Equal(t, MovementSale, sale.Type)
	assert.Equal(t, -20, sale.QuantityDelta)
	assert.True(t, sale.ConsumedReservation)

	ret := NewReturnMovement(1, 5, 80, 85, "customer return", "ord-2")
	assert.Equal(t, MovementReturn, ret.Type)
	assert.Equal(t, 5, ret.QuantityDelta)
}

// Replaying a product's full ledger from zero must land on the exact
// state the mutations produced.
func TestReplayReproducesState(t *testing.T) {
	rec := StockRecord{ProductID: 1, OnHand: 0}
	var ledger []StockMovement

	apply := func(mv *StockMovement) {
		ledger = append(ledger, *mv)
	}

	// Create with 100.
	require.NoError(t, rec.Adjust(100))
	apply(NewAdjustmentMovement(1, 100, 0, 100, "initial stock", Actor{}))

	// Reserve 30, sell 20 of it (consuming the hold), release the rest.
	require.NoError(t, rec.Reserve(30))
	apply(NewReservationMovement(1, 30, rec.OnHand, "order-1", "ord-1"))

	before := rec.OnHand
	consumed, err := rec.Sell(20)
	require.NoError(t, err)
	require.True(t, consumed)
	apply(NewSaleMovement(1, 20, before, rec.OnHand, consumed, "ord-1", Actor{}))

	require.NoError(t, rec.Release(10))
	apply(NewReleaseMovement(1, 10, rec.OnHand, "order-1 partial cancel", "ord-1"))

	// Direct sale with no hold, then a return and a shrinkage write-off.
	before = rec.OnHand
	consumed, err = rec.Sell(25)
	require.NoError(t, err)
	require.False(t, consumed)
	apply(NewSaleMovement(1, 25, before, rec.OnHand, consumed, "ord-2", Actor{}))

	require.NoError(t, rec.Return(5))
	apply(NewReturnMovement(1, 5, rec.OnHand-5, rec.OnHand, "customer return", "ord-2"))

	require.NoError(t, rec.Adjust(-3))
	apply(NewAdjustmentMovement(1, -3, rec.OnHand+3, rec.OnHand, "shrinkage", Actor{}))

	replayed := Replay(1, ledger)
	assert.Equal(t, rec.OnHand, replayed.OnHand)
	assert.Equal(t, rec.Reserved, replayed.Reserved)
	assert.Equal(t, rec.Available(), replayed.Available())
}

func TestReplayDistinguishesSalePaths(t *testing.T) {
	// Two ledgers with identical on-hand transitions but different
	// reservation outcomes.
	consuming := []StockMovement{
		*NewAdjustmentMovement(1, 50, 0, 50, "initial stock", Actor{}),
		*NewReservationMovement(1, 10, 50, "order", "o1"),
		*NewSaleMovement(1, 10, 50, 40, true, "o1", Actor{}),
	}
	direct := []StockMovement{
		*NewAdjustmentMovement(1, 50, 0, 50, "initial stock", Actor{}),
		*NewReservationMovement(1, 10, 50, "order", "o1"),
		*NewSaleMovement(1, 10, 50, 40, false, "o2", Actor{}),
	}

	gotConsuming := Replay(1, consuming)
	assert.Equal(t, 40, gotConsuming.OnHand)
	assert.Equal(t, 0, gotConsuming.Reserved)

	gotDirect := Replay(1, direct)
	assert.Equal(t, 40, gotDirect.OnHand)
	assert.Equal(t, 10, gotDirect.Reserved)
}

func TestMovementFilterPaging(t *testing.T) {
	var f MovementFilter
	assert.Equal(t, 20, f.Limit())
	assert.Equal(t, 0, f.Offset())

	f = MovementFilter{Page: 3, PageSize: 15}
	assert.Equal(t, 15, f.Limit())
	assert.Equal(t, 30, f.Offset())

	f = MovementFilter{PageSize: 500}
	assert.Equal(t, 100, f.Limit())
}
