package kafka

import "time"

// StockMovementEvent is published after every committed inventory
// mutation so downstream services (analytics, reorder planning) can
// follow the ledger without polling.
type StockMovementEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	ProductID     uint      `json:"product_id"`
	MovementType  string    `json:"movement_type"`
	QuantityDelta int       `json:"quantity_delta"`
	OnHand        int       `json:"quantity_on_hand"`
	Reserved      int       `json:"quantity_reserved"`
	Available     int       `json:"quantity_available"`
	Reason        string    `json:"reason,omitempty"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// ProductPurchasedEvent is consumed from the payment service; each one
// is recorded as a sale against the purchased product.
type ProductPurchasedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	PaymentID     uint      `json:"payment_id"`
	ProductID     uint      `json:"product_id"`
	Quantity      int32     `json:"quantity"`
	UserID        uint      `json:"user_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentMethod string    `json:"payment_method"`
	Timestamp     time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeStockMovement    = "inventory.movement"
	EventTypeProductPurchased = "product.purchased"
)

// Kafka topics
const (
	TopicStockMovements   = "inventory-movements"
	TopicProductPurchased = "product-purchased"
)
