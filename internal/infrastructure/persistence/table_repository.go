package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/dining"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTableRepository implements TableRepository using GORM
type GormTableRepository struct {
	db *gorm.DB
}

// NewGormTableRepository creates a new GormTableRepository
func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

// FindByID finds a table by its ID
func (r *GormTableRepository) FindByID(ctx context.Context, id uuid.UUID) (*dining.Table, error) {
	var table dining.Table
	if err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &table, nil
}

// FindAll finds active tables, optionally filtered by status, ordered by
// table number
func (r *GormTableRepository) FindAll(ctx context.Context, status *dining.TableStatus) ([]dining.Table, error) {
	var tables []dining.Table
	query := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("number ASC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// Save creates or updates a table
func (r *GormTableRepository) Save(ctx context.Context, table *dining.Table) error {
	return r.db.WithContext(ctx).Save(table).Error
}

// Ensure GormTableRepository implements TableRepository
var _ dining.TableRepository = (*GormTableRepository)(nil)
