package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/alejandrovrod/ecommerce-inventory/internal/inventory/domain"
)

// GormInventoryStore persists stock records and their movement ledger
// in PostgreSQL. Every mutation couples the versioned stock write and
// the ledger append inside one transaction.
type GormInventoryStore struct {
	db *gorm.DB
}

func NewGormInventoryStore(db *gorm.DB) *GormInventoryStore {
	return &GormInventoryStore{db: db}
}

func (s *GormInventoryStore) AutoMigrate() error {
	return s.db.AutoMigrate(&domain.StockRecord{}, &domain.StockMovement{})
}

func (s *GormInventoryStore) GetByProduct(ctx context.Context, productID uint) (*domain.StockRecord, error) {
	var record domain.StockRecord
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapStoreErr(err)
	}
	return &record, nil
}

func (s *GormInventoryStore) CreateWithMovement(ctx context.Context, record *domain.StockRecord, movement *domain.StockMovement) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record.Version = 1
		if err := tx.Create(record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyExists
			}
			return err
		}
		return tx.Create(movement).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return err
		}
		return wrapStoreErr(err)
	}
	return nil
}

func (s *GormInventoryStore) SaveWithMovement(ctx context.Context, record *domain.StockRecord, movement *domain.StockMovement) error {
	readVersion := record.Version
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Optimistic write: the row must still carry the version we read.
		res := tx.Model(&domain.StockRecord{}).
			Where("product_id = ? AND version = ?", record.ProductID, readVersion).
			Updates(map[string]interface{}{
				"quantity_on_hand":  record.OnHand,
				"quantity_reserved": record.Reserved,
				"location":          record.Location,
				"version":           readVersion + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrConcurrencyConflict
		}
		return tx.Create(movement).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrConcurrencyConflict) {
			return err
		}
		return wrapStoreErr(err)
	}
	record.Version = readVersion + 1
	return nil
}

func (s *GormInventoryStore) ListByMaxAvailable(ctx context.Context, maxAvailable, limit, offset int) ([]domain.StockRecord, error) {
	var records []domain.StockRecord
	err := s.db.WithContext(ctx).
		Where("quantity_on_hand - quantity_reserved <= ?", maxAvailable).
		Order("quantity_on_hand - quantity_reserved ASC").
		Limit(limit).Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return records, nil
}

func (s *GormInventoryStore) ListAll(ctx context.Context, limit, offset int) ([]domain.StockRecord, error) {
	var records []domain.StockRecord
	err := s.db.WithContext(ctx).
		Order("product_id ASC").
		Limit(limit).Offset(offset).
		Find(&records).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return records, nil
}

func (s *GormInventoryStore) ListMovements(ctx context.Context, filter domain.MovementFilter) ([]domain.StockMovement, int64, error) {
	q := s.db.WithContext(ctx).Model(&domain.StockMovement{})

	if filter.ProductID != 0 {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	if filter.Type != "" {
		q = q.Where("movement_type = ?", filter.Type)
	}
	if !filter.From.IsZero() {
		q = q.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		q = q.Where("created_at <= ?", filter.To)
	}
	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.CorrelationID != "" {
		q = q.Where("correlation_id = ?", filter.CorrelationID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, wrapStoreErr(err)
	}

	var movements []domain.StockMovement
	err := q.Order("created_at DESC, id DESC").
		Limit(filter.Limit()).Offset(filter.Offset()).
		Find(&movements).Error
	if err != nil {
		return nil, 0, wrapStoreErr(err)
	}
	return movements, total, nil
}

func wrapStoreErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
