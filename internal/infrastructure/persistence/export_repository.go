package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormExportRepository implements ExportRepository using GORM
type GormExportRepository struct {
	db *gorm.DB
}

// NewGormExportRepository creates a new GormExportRepository
func NewGormExportRepository(db *gorm.DB) *GormExportRepository {
	return &GormExportRepository{db: db}
}

// FindByID finds an export with its items, including soft-deleted ones
func (r *GormExportRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Export, error) {
	var exp inventory.Export
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&exp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &exp, nil
}

// FindAll finds active exports matching the filter
func (r *GormExportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Export, error) {
	var exports []inventory.Export
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Export{}).
			Preload("Items").
			Where("deleted_at IS NULL"),
		filter,
	)
	if err := query.Find(&exports).Error; err != nil {
		return nil, err
	}
	return exports, nil
}

// Count counts active exports matching the filter
func (r *GormExportRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Export{}).
		Where("deleted_at IS NULL")
	if reason, ok := filter.Filters["reason"]; ok {
		query = query.Where("reason = ?", reason)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the export and all of its items in one write
func (r *GormExportRepository) Save(ctx context.Context, exp *inventory.Export) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(exp).Error
}

// applyFilter applies filter options to the query
func (r *GormExportRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	field := ValidateSortField(filter.OrderBy, ExportSortFields, "created_at")
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))

	if reason, ok := filter.Filters["reason"]; ok {
		query = query.Where("reason = ?", reason)
	}

	return query
}

// Ensure GormExportRepository implements ExportRepository
var _ inventory.ExportRepository = (*GormExportRepository)(nil)
