package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

var tracer = otel.Tracer("inventory-store")

// TracingInventoryStore wraps any InventoryStore with OpenTelemetry
// spans. It adds no behavior of its own.
type TracingInventoryStore struct {
	next domain.InventoryStore
}

func NewTracingInventoryStore(next domain.InventoryStore) *TracingInventoryStore {
	return &TracingInventoryStore{next: next}
}

func (s *TracingInventoryStore) GetByProduct(ctx context.Context, productID uint) (*domain.StockRecord, error) {
	ctx, span := tracer.Start(ctx, "store.GetByProduct",
		trace.WithAttributes(attribute.Int("stock.product_id", int(productID))),
	)
	defer span.End()

	record, err := s.next.GetByProduct(ctx, productID)
	if err != nil {
		recordSpanErr(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("stock.on_hand", record.OnHand),
		attribute.Int("stock.reserved", record.Reserved),
		attribute.Int("stock.available", record.Available()),
	)
	return record, nil
}

func (s *TracingInventoryStore) CreateWithMovement(ctx context.Context, record *domain.StockRecord, movement *domain.StockMovement) error {
	ctx, span := tracer.Start(ctx, "store.CreateWithMovement",
		trace.WithAttributes(
			attribute.Int("stock.product_id", int(record.ProductID)),
			attribute.Int("stock.on_hand", record.OnHand),
			attribute.String("stock.location", record.Location),
		),
	)
	defer span.End()

	if err := s.next.CreateWithMovement(ctx, record, movement); err != nil {
		recordSpanErr(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("stock.id", int(record.ID)))
	return nil
}

func (s *TracingInventoryStore) SaveWithMovement(ctx context.Context, record *domain.StockRecord, movement *domain.StockMovement) error {
	ctx, span := tracer.Start(ctx, "store.SaveWithMovement",
		trace.WithAttributes(
			attribute.Int("stock.product_id", int(record.ProductID)),
			attribute.String("movement.type", movement.Type),
			attribute.Int("movement.delta", movement.QuantityDelta),
			attribute.Int64("stock.version", record.Version),
		),
	)
	defer span.End()

	if err := s.next.SaveWithMovement(ctx, record, movement); err != nil {
		recordSpanErr(span, err)
		return err
	}
	span.SetAttributes(attribute.Int("movement.id", int(movement.ID)))
	return nil
}

func (s *TracingInventoryStore) ListByMaxAvailable(ctx context.Context, maxAvailable, limit, offset int) ([]domain.StockRecord, error) {
	ctx, span := tracer.Start(ctx, "store.ListByMaxAvailable",
		trace.WithAttributes(
			attribute.Int("query.max_available", maxAvailable),
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	records, err := s.next.ListByMaxAvailable(ctx, maxAvailable, limit, offset)
	if err != nil {
		recordSpanErr(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(records)))
	return records, nil
}

func (s *TracingInventoryStore) ListAll(ctx context.Context, limit, offset int) ([]domain.StockRecord, error) {
	ctx, span := tracer.Start(ctx, "store.ListAll",
		trace.WithAttributes(
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset),
		),
	)
	defer span.End()

	records, err := s.next.ListAll(ctx, limit, offset)
	if err != nil {
		recordSpanErr(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(records)))
	return records, nil
}

func (s *TracingInventoryStore) ListMovements(ctx context.Context, filter domain.MovementFilter) ([]domain.StockMovement, int64, error) {
	ctx, span := tracer.Start(ctx, "store.ListMovements",
		trace.WithAttributes(
			attribute.Int("query.product_id", int(filter.ProductID)),
			attribute.String("query.movement_type", filter.Type),
			attribute.Int("query.page_size", filter.Limit()),
		),
	)
	defer span.End()

	movements, total, err := s.next.ListMovements(ctx, filter)
	if err != nil {
		recordSpanErr(span, err)
		return nil, 0, err
	}
	span.SetAttributes(
		attribute.Int("result.count", len(movements)),
		attribute.Int64("result.total", total),
	)
	return movements, total, nil
}

func recordSpanErr(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
