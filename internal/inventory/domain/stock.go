package domain

import (
	"time"
)

// StockRecord represents the current stock state of one product at one
// stocking location. AvailableQuantity is never stored: it is always
// derived from OnHand - Reserved so the two can never drift apart.
type StockRecord struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID uint      `json:"product_id" gorm:"not null;uniqueIndex"`
	OnHand    int       `json:"quantity_on_hand" gorm:"column:quantity_on_hand;not null;default:0"`
	Reserved  int       `json:"quantity_reserved" gorm:"column:quantity_reserved;not null;default:0"`
	Location  string    `json:"location" gorm:"not null;default:'warehouse'"`
	Version   int64     `json:"-" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (StockRecord) TableName() string {
	return "stock_records"
}

// Available returns the sellable remainder (on-hand minus reserved).
func (s *StockRecord) Available() int {
	return s.OnHand - s.Reserved
}

// Valid reports whether the record satisfies 0 <= Reserved <= OnHand.
func (s *StockRecord) Valid() bool {
	return s.Reserved >= 0 && s.OnHand >= s.Reserved
}

// Adjust applies a signed correction to the on-hand quantity. The
// resulting on-hand must still cover the reserved quantity; violations
// are reported, never clamped.
func (s *StockRecord) Adjust(delta int) error {
	newOnHand := s.OnHand + delta
	if newOnHand < 0 || newOnHand < s.Reserved {
		return ErrInvalidAdjustment
	}
	s.OnHand = newOnHand
	return nil
}

// Reserve earmarks quantity units against pending demand. On-hand is
// unchanged; only the sellable remainder shrinks.
func (s *StockRecord) Reserve(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > s.Available() {
		return ErrInsufficientStock
	}
	s.Reserved += quantity
	return nil
}

// Release returns previously reserved units to the sellable pool.
// Releasing more than is reserved is a caller bug and is reported,
// never clamped to zero.
func (s *StockRecord) Release(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > s.Reserved {
		return ErrInvalidRelease
	}
	s.Reserved -= quantity
	return nil
}

// Sell consumes stock for a completed sale and reports whether a
// reservation was consumed. Policy: if the reserved quantity covers the
// sale, the reservation is consumed (on-hand and reserved both drop,
// availability is unchanged); otherwise the sale is served directly
// from available stock, leaving reservations intact.
func (s *StockRecord) Sell(quantity int) (bool, error) {
	if quantity <= 0 {
		return false, ErrInvalidQuantity
	}
	switch {
	case quantity <= s.Reserved:
		s.OnHand -= quantity
		s.Reserved -= quantity
		return true, nil
	case quantity <= s.Available():
		s.OnHand -= quantity
		return false, nil
	default:
		return false, ErrInsufficientStock
	}
}

// Return puts sold units back into the on-hand pool.
func (s *StockRecord) Return(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	s.OnHand += quantity
	return nil
}

// Availability is the read model returned by availability queries.
type Availability struct {
	ProductID uint   `json:"product_id"`
	OnHand    int    `json:"quantity_on_hand"`
	Reserved  int    `json:"quantity_reserved"`
	Available int    `json:"quantity_available"`
	Location  string `json:"location"`
}

// Snapshot projects the record into its availability read model.
func (s *StockRecord) Snapshot() Availability {
	return Availability{
		ProductID: s.ProductID,
		OnHand:    s.OnHand,
		Reserved:  s.Reserved,
		Available: s.Available(),
		Location:  s.Location,
	}
}
