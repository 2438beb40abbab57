package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var batch inventory.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByIDForUpdate finds a batch by ID taking a row-level write lock.
// Outside a transaction the lock is released immediately, so this degrades
// to a plain read.
func (r *GormBatchRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var batch inventory.Batch
	query := r.lockForUpdate(r.db.WithContext(ctx))
	if err := query.First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindEligible returns the allocation-eligible batches of an ingredient in
// FEFO order: earliest expiry first, then oldest, then ID as the final
// tie-break so the order is total and stable across replicas.
func (r *GormBatchRepository) FindEligible(ctx context.Context, ingredientID uuid.UUID, now time.Time) ([]inventory.Batch, error) {
	var batches []inventory.Batch
	query := r.lockForUpdate(
		r.db.WithContext(ctx).
			Where("ingredient_id = ?", ingredientID).
			Where("status = ? AND remaining_quantity > 0 AND deleted_at IS NULL", inventory.BatchStatusAvailable).
			Where("expiry_date > ?", inventory.DateOnly(now)).
			Order("expiry_date ASC, created_at ASC, id ASC"),
	)
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByIngredient returns all non-deleted batches of an ingredient
func (r *GormBatchRepository) FindByIngredient(ctx context.Context, ingredientID uuid.UUID, filter shared.Filter) ([]inventory.Batch, error) {
	var batches []inventory.Batch
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Batch{}).
			Where("ingredient_id = ? AND deleted_at IS NULL", ingredientID),
		filter,
	)
	if err := query.Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindExpiringWithin returns eligible batches whose expiry date falls within
// the next withinDays days, soonest expiry first
func (r *GormBatchRepository) FindExpiringWithin(ctx context.Context, now time.Time, withinDays int) ([]inventory.Batch, error) {
	var batches []inventory.Batch
	today := inventory.DateOnly(now)
	deadline := today.AddDate(0, 0, withinDays)

	if err := r.db.WithContext(ctx).
		Where("status = ? AND remaining_quantity > 0 AND deleted_at IS NULL", inventory.BatchStatusAvailable).
		Where("expiry_date > ? AND expiry_date <= ?", today, deadline).
		Order("expiry_date ASC, created_at ASC, id ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// AvailableQuantity sums the remaining quantity of eligible batches
func (r *GormBatchRepository) AvailableQuantity(ctx context.Context, ingredientID uuid.UUID, now time.Time) (decimal.Decimal, error) {
	row := r.db.WithContext(ctx).
		Model(&inventory.Batch{}).
		Select("COALESCE(SUM(remaining_quantity), 0)").
		Where("ingredient_id = ?", ingredientID).
		Where("status = ? AND remaining_quantity > 0 AND deleted_at IS NULL", inventory.BatchStatusAvailable).
		Where("expiry_date > ?", inventory.DateOnly(now)).
		Row()

	var total decimal.Decimal
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *inventory.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// lockForUpdate adds a FOR UPDATE clause on dialects that support row locks.
// SQLite serializes writers at the file level, so the clause is skipped there.
func (r *GormBatchRepository) lockForUpdate(query *gorm.DB) *gorm.DB {
	if r.db.Dialector.Name() == "sqlite" {
		return query
	}
	return query.Clauses(clause.Locking{Strength: "UPDATE"})
}

// applyFilter applies filter options to the query
func (r *GormBatchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, BatchSortFields, "expiry_date")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("expiry_date ASC, created_at ASC, id ASC")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "has_stock":
			if value == true {
				query = query.Where("remaining_quantity > 0")
			}
		case "expired":
			if value == true {
				query = query.Where("expiry_date <= ?", inventory.DateOnly(time.Now()))
			}
		}
	}

	return query
}

// Ensure GormBatchRepository implements BatchRepository
var _ inventory.BatchRepository = (*GormBatchRepository)(nil)
