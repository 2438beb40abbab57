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
)

// GormIngredientRepository implements IngredientRepository using GORM
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GormIngredientRepository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// FindByID finds an ingredient by its ID, including soft-deleted ones
func (r *GormIngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Ingredient, error) {
	var ingredient inventory.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// FindActiveByID finds an ingredient by its ID, excluding soft-deleted ones
func (r *GormIngredientRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*inventory.Ingredient, error) {
	var ingredient inventory.Ingredient
	if err := r.db.WithContext(ctx).
		First(&ingredient, "id = ? AND deleted_at IS NULL", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// FindAll finds active ingredients matching the filter
func (r *GormIngredientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Ingredient, error) {
	var ingredients []inventory.Ingredient
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.Ingredient{}).
			Where("deleted_at IS NULL"),
		filter,
	)
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// Count counts active ingredients matching the filter
func (r *GormIngredientRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.Ingredient{}).
		Where("deleted_at IS NULL")
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an ingredient
func (r *GormIngredientRepository) Save(ctx context.Context, ingredient *inventory.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

// ingredientStockSum is the scan target of the grouped availability query
type ingredientStockSum struct {
	IngredientID uuid.UUID
	Total        decimal.Decimal
}

// FindBelowThreshold returns active ingredients whose aggregate eligible
// stock is at or below their configured threshold. Ingredients with no
// eligible batches at all count as zero stock.
func (r *GormIngredientRepository) FindBelowThreshold(ctx context.Context, now time.Time) ([]inventory.IngredientStockLevel, error) {
	var ingredients []inventory.Ingredient
	if err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("name ASC").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}

	var sums []ingredientStockSum
	if err := r.db.WithContext(ctx).
		Model(&inventory.Batch{}).
		Select("ingredient_id, COALESCE(SUM(remaining_quantity), 0) AS total").
		Where("status = ? AND remaining_quantity > 0 AND deleted_at IS NULL", inventory.BatchStatusAvailable).
		Where("expiry_date > ?", inventory.DateOnly(now)).
		Group("ingredient_id").
		Scan(&sums).Error; err != nil {
		return nil, err
	}

	available := make(map[uuid.UUID]decimal.Decimal, len(sums))
	for _, s := range sums {
		available[s.IngredientID] = s.Total
	}

	var levels []inventory.IngredientStockLevel
	for _, ing := range ingredients {
		stock, ok := available[ing.ID]
		if !ok {
			stock = decimal.Zero
		}
		if ing.IsBelowThreshold(stock) {
			levels = append(levels, inventory.IngredientStockLevel{
				Ingredient: ing,
				Available:  stock,
			})
		}
	}
	return levels, nil
}

// applyFilter applies filter options to the query
func (r *GormIngredientRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	field := ValidateSortField(filter.OrderBy, IngredientSortFields, "name")
	if field == "name" && filter.OrderBy == "" {
		query = query.Order("name ASC")
	} else {
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	}

	return query
}

// Ensure GormIngredientRepository implements IngredientRepository
var _ inventory.IngredientRepository = (*GormIngredientRepository)(nil)
