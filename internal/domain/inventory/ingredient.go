package inventory

import (
	"strings"

	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Ingredient is a raw material tracked by the inventory.
// Stock for an ingredient lives in its batches; the ingredient itself only
// carries identity, unit of measure and the low-stock alert threshold.
type Ingredient struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	Name              string
	Unit              string // unit of measure (kg, l, pcs, ...)
	LowStockThreshold decimal.Decimal
}

// NewIngredient creates a new ingredient
func NewIngredient(name, unit string, lowStockThreshold decimal.Decimal) (*Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Ingredient name cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Ingredient unit cannot be empty")
	}
	if lowStockThreshold.IsNegative() {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}
	return &Ingredient{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Unit:              unit,
		LowStockThreshold: lowStockThreshold,
	}, nil
}

// Update changes the mutable ingredient attributes
func (i *Ingredient) Update(name, unit string, lowStockThreshold decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Ingredient name cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		return shared.NewDomainError("INVALID_UNIT", "Ingredient unit cannot be empty")
	}
	if lowStockThreshold.IsNegative() {
		return shared.NewDomainError("INVALID_THRESHOLD", "Low stock threshold cannot be negative")
	}
	i.Name = name
	i.Unit = unit
	i.LowStockThreshold = lowStockThreshold
	return nil
}

// IsBelowThreshold returns true if the given available quantity is at or
// below the configured alert threshold.
func (i *Ingredient) IsBelowThreshold(available decimal.Decimal) bool {
	return available.LessThanOrEqual(i.LowStockThreshold)
}
