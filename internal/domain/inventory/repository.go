package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// IngredientStockLevel is a read model pairing an ingredient with its
// aggregate eligible stock, used by the low-stock monitor.
type IngredientStockLevel struct {
	Ingredient Ingredient
	Available  decimal.Decimal
}

// IngredientRepository provides access to ingredients
type IngredientRepository interface {
	// FindByID finds an ingredient by ID, including soft-deleted ones
	FindByID(ctx context.Context, id uuid.UUID) (*Ingredient, error)
	// FindActiveByID finds an ingredient by ID, excluding soft-deleted ones
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Ingredient, error)
	// FindAll finds active ingredients matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Ingredient, error)
	// Count counts active ingredients matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Save persists an ingredient (insert or update)
	Save(ctx context.Context, ingredient *Ingredient) error
	// FindBelowThreshold returns ingredients whose aggregate eligible stock
	// is at or below their threshold, as of the given instant
	FindBelowThreshold(ctx context.Context, now time.Time) ([]IngredientStockLevel, error)
}

// BatchRepository provides access to stock batches
type BatchRepository interface {
	// FindByID finds a batch by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)
	// FindByIDForUpdate finds a batch by ID taking a row-level write lock.
	// Outside a transaction it behaves like FindByID.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Batch, error)
	// FindEligible returns the allocation-eligible batches of an ingredient
	// in FEFO order (earliest expiry, then oldest, then ID), locking the
	// rows for update when called inside a transaction
	FindEligible(ctx context.Context, ingredientID uuid.UUID, now time.Time) ([]Batch, error)
	// FindByIngredient returns all non-deleted batches of an ingredient
	FindByIngredient(ctx context.Context, ingredientID uuid.UUID, filter shared.Filter) ([]Batch, error)
	// FindExpiringWithin returns eligible batches whose expiry date falls in
	// [now, now+withinDays], ordered by soonest expiry first
	FindExpiringWithin(ctx context.Context, now time.Time, withinDays int) ([]Batch, error)
	// AvailableQuantity sums the remaining quantity of eligible batches
	AvailableQuantity(ctx context.Context, ingredientID uuid.UUID, now time.Time) (decimal.Decimal, error)
	// Save persists a batch (insert or update)
	Save(ctx context.Context, batch *Batch) error
}

// ImportRepository provides access to import records
type ImportRepository interface {
	// FindByID finds an import with its batches, including soft-deleted ones
	FindByID(ctx context.Context, id uuid.UUID) (*Import, error)
	// FindAll finds active imports matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Import, error)
	// Count counts active imports matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Save persists the import and all of its batches
	Save(ctx context.Context, imp *Import) error
}

// ExportRepository provides access to export records
type ExportRepository interface {
	// FindByID finds an export with its items, including soft-deleted ones
	FindByID(ctx context.Context, id uuid.UUID) (*Export, error)
	// FindAll finds active exports matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Export, error)
	// Count counts active exports matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Save persists the export and all of its items
	Save(ctx context.Context, exp *Export) error
}
