package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// MemoryInventoryStore is a mutex-guarded in-memory implementation of
// the store contract, used by tests and broker-less local runs. It
// honors the same atomicity and version-check semantics as the GORM
// store.
type MemoryInventoryStore struct {
	mu        sync.RWMutex
	records   map[uint]*domain.StockRecord
	movements []domain.StockMovement
	nextID    uint
	nextMvID  uint
}

func NewMemoryInventoryStore() *MemoryInventoryStore {
	return &MemoryInventoryStore{
		records:  make(map[uint]*domain.StockRecord),
		nextID:   1,
		nextMvID: 1,
	}
}

func (s *MemoryInventoryStore) GetByProduct(_ context.Context, productID uint) (*domain.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryInventoryStore) CreateWithMovement(_ context.Context, record *domain.StockRecord, movement *domain.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.ProductID]; exists {
		return domain.ErrAlreadyExists
	}

	now := time.Now()
	record.ID = s.nextID
	record.Version = 1
	record.CreatedAt = now
	record.UpdatedAt = now
	s.nextID++

	cp := *record
	s.records[record.ProductID] = &cp
	s.appendLocked(movement)
	return nil
}

func (s *MemoryInventoryStore) SaveWithMovement(_ context.Context, record *domain.StockRecord, movement *domain.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[record.ProductID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Version != record.Version {
		return domain.ErrConcurrencyConflict
	}

	record.Version++
	record.UpdatedAt = time.Now()
	cp := *record
	s.records[record.ProductID] = &cp
	s.appendLocked(movement)
	return nil
}

func (s *MemoryInventoryStore) appendLocked(movement *domain.StockMovement) {
	movement.ID = s.nextMvID
	s.nextMvID++
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}
	s.movements = append(s.movements, *movement)
}

func (s *MemoryInventoryStore) ListByMaxAvailable(_ context.Context, maxAvailable, limit, offset int) ([]domain.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.StockRecord
	for _, rec := range s.records {
		if rec.Available() <= maxAvailable {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Available() < out[j].Available() })
	return page(out, limit, offset), nil
}

func (s *MemoryInventoryStore) ListAll(_ context.Context, limit, offset int) ([]domain.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.StockRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return page(out, limit, offset), nil
}

func (s *MemoryInventoryStore) ListMovements(_ context.Context, filter domain.MovementFilter) ([]domain.StockMovement, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.StockMovement
	for _, m := range s.movements {
		if filter.ProductID != 0 && m.ProductID != filter.ProductID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if !filter.From.IsZero() && m.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && m.CreatedAt.After(filter.To) {
			continue
		}
		if filter.ActorID != "" && m.ActorID != filter.ActorID {
			continue
		}
		if filter.CorrelationID != "" && m.CorrelationID != filter.CorrelationID {
			continue
		}
		matched = append(matched, m)
	}

	// Newest first, matching the SQL store's ordering.
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	total := int64(len(matched))
	return page(matched, filter.Limit(), filter.Offset()), total, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
