package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormImportRepository implements ImportRepository using GORM
type GormImportRepository struct {
	db *gorm.DB
}

// NewGormImportRepository creates a new GormImportRepository
func NewGormImportRepository(db *gorm.DB) *GormImportRepository {
	return &GormImportRepository{db: db}
}

// FindByID finds an import with its batches, including soft-deleted ones.
// Batches stay attached even when tombstoned so a restore can revive them.
func (r *GormImportRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Import, error) {
	var imp inventory.Import
	if err := r.db.WithContext(ctx).
		Preload("Batches").
		First(&imp, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &imp, nil
}

// FindAll finds active imports matching the filter
func (r *GormImportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Import, error) {
	var imports []inventory.Import
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Import{}).
			Preload("Batches").
			Where("deleted_at IS NULL"),
		filter,
	)
	if err := query.Find(&imports).Error; err != nil {
		return nil, err
	}
	return imports, nil
}

// Count counts active imports matching the filter
func (r *GormImportRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Import{}).
		Where("deleted_at IS NULL")
	if supplierID, ok := filter.Filters["supplier_id"]; ok {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the import and all of its batches in one write
func (r *GormImportRepository) Save(ctx context.Context, imp *inventory.Import) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(imp).Error
}

// applyFilter applies filter options to the query
func (r *GormImportRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	field := ValidateSortField(filter.OrderBy, ImportSortFields, "created_at")
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))

	if supplierID, ok := filter.Filters["supplier_id"]; ok {
		query = query.Where("supplier_id = ?", supplierID)
	}

	return query
}

// Ensure GormImportRepository implements ImportRepository
var _ inventory.ImportRepository = (*GormImportRepository)(nil)
