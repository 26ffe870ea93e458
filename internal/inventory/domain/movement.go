package domain

import (
	"time"
)

// Movement types
const (
	MovementAdjustment  = "adjustment"
	MovementReservation = "reservation"
	MovementRelease     = "release"
	MovementSale        = "sale"
	MovementReturn      = "return"
)

// StockMovement is one immutable audit record of a stock transition.
// Entries are append-only: they are never updated or deleted, and
// replaying them from zero reproduces the current StockRecord.
//
// Sign convention for QuantityDelta: negative when sellable capacity is
// consumed (reservations, sales), positive when it is replenished
// (releases, returns, positive adjustments).
type StockMovement struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ProductID      uint   `json:"product_id" gorm:"not null;index"`
	Type           string `json:"movement_type" gorm:"column:movement_type;type:varchar(20);not null;index"`
	QuantityDelta  int    `json:"quantity_delta" gorm:"not null"`
	PreviousOnHand int    `json:"previous_quantity" gorm:"column:previous_quantity;not null"`
	NewOnHand      int    `json:"new_quantity" gorm:"column:new_quantity;not null"`
	// ConsumedReservation marks sales that consumed a prior hold, so a
	// replay knows whether the reserved quantity dropped with on-hand.
	ConsumedReservation bool      `json:"consumed_reservation,omitempty" gorm:"not null;default:false"`
	Reason              string    `json:"reason" gorm:"type:varchar(255)"`
	Notes               string    `json:"notes,omitempty" gorm:"type:varchar(255)"`
	ActorID             string    `json:"actor_id,omitempty" gorm:"index"`
	ActorName           string    `json:"actor_name,omitempty"`
	CorrelationID       string    `json:"correlation_id,omitempty" gorm:"index"`
	CreatedAt           time.Time `json:"created_at" gorm:"index"`
}

// TableName specifies the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// Actor identifies who performed a stock operation.
type Actor struct {
	ID   string
	Name string
}

// NewAdjustmentMovement records a signed on-hand correction, including
// the initial quantity written at stock creation.
func NewAdjustmentMovement(productID uint, delta, before, after int, reason string, actor Actor) *StockMovement {
	return &StockMovement{
		ProductID:      productID,
		Type:           MovementAdjustment,
		QuantityDelta:  delta,
		PreviousOnHand: before,
		NewOnHand:      after,
		Reason:         reason,
		ActorID:        actor.ID,
		ActorName:      actor.Name,
	}
}

// NewReservationMovement records a hold on stock. The delta is negative
// because sellable capacity decreased; on-hand itself is unchanged.
func NewReservationMovement(productID uint, quantity, onHand int, reason, correlationID string) *StockMovement {
	return &StockMovement{
		ProductID:      productID,
		Type:           MovementReservation,
		QuantityDelta:  -quantity,
		PreviousOnHand: onHand,
		NewOnHand:      onHand,
		Reason:         reason,
		CorrelationID:  correlationID,
	}
}

// NewReleaseMovement records the cancellation of a hold.
func NewReleaseMovement(productID uint, quantity, onHand int, reason, correlationID string) *StockMovement {
	return &StockMovement{
		ProductID:      productID,
		Type:           MovementRelease,
		QuantityDelta:  quantity,
		PreviousOnHand: onHand,
		NewOnHand:      onHand,
		Reason:         reason,
		CorrelationID:  correlationID,
	}
}

// NewSaleMovement records consumption of stock by a completed sale.
func NewSaleMovement(productID uint, quantity, before, after int, consumedReservation bool, correlationID string, actor Actor) *StockMovement {
	return &StockMovement{
		ProductID:           productID,
		Type:                MovementSale,
		QuantityDelta:       -quantity,
		PreviousOnHand:      before,
		NewOnHand:           after,
		ConsumedReservation: consumedReservation,
		CorrelationID:       correlationID,
		ActorID:             actor.ID,
		ActorName:           actor.Name,
	}
}

// NewReturnMovement records sold units coming back into stock.
func NewReturnMovement(productID uint, quantity, before, after int, reason, correlationID string) *StockMovement {
	return &StockMovement{
		ProductID:      productID,
		Type:           MovementReturn,
		QuantityDelta:  quantity,
		PreviousOnHand: before,
		NewOnHand:      after,
		Reason:         reason,
		CorrelationID:  correlationID,
	}
}

// MovementFilter narrows ledger history queries. Zero values mean "no
// filter" for that field.
type MovementFilter struct {
	ProductID     uint
	Type          string
	From          time.Time
	To            time.Time
	ActorID       string
	CorrelationID string
	Page          int
	PageSize      int
}

// Limit returns the effective page size, bounded to keep history
// queries cheap.
func (f MovementFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// Offset returns the row offset for the requested page.
func (f MovementFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.Limit()
}

// Replay folds a product's movements, oldest first, onto an empty
// record. Reservations and releases move only the reserved quantity;
// adjustments, sales and returns move on-hand (sales also consume the
// matching reservation when one was held).
func Replay(productID uint, movements []StockMovement) StockRecord {
	rec := StockRecord{ProductID: productID}
	for _, m := range movements {
		switch m.Type {
		case MovementReservation:
			rec.Reserved += -m.QuantityDelta
		case MovementRelease:
			rec.Reserved -= m.QuantityDelta
		case MovementSale:
			sold := -m.QuantityDelta
			rec.OnHand -= sold
			if m.ConsumedReservation {
				rec.Reserved -= sold
			}
		default:
			rec.OnHand += m.QuantityDelta
		}
	}
	return rec
}
