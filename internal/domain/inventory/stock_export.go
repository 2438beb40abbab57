package inventory

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExportReason classifies why stock left the inventory
type ExportReason string

const (
	// ExportReasonUsage is consumption by order fulfillment or the kitchen
	ExportReasonUsage ExportReason = "usage"
	// ExportReasonDamaged is stock written off as damaged
	ExportReasonDamaged ExportReason = "damaged"
	// ExportReasonExpired is stock disposed of after expiry
	ExportReasonExpired ExportReason = "expired"
	// ExportReasonOther covers manual adjustments
	ExportReasonOther ExportReason = "other"
)

// IsValid checks if the reason is valid
func (r ExportReason) IsValid() bool {
	switch r {
	case ExportReasonUsage, ExportReasonDamaged, ExportReasonExpired, ExportReasonOther:
		return true
	}
	return false
}

// String returns the string representation
func (r ExportReason) String() string {
	return string(r)
}

// AllExportReasons returns all valid export reasons
func AllExportReasons() []ExportReason {
	return []ExportReason{ExportReasonUsage, ExportReasonDamaged, ExportReasonExpired, ExportReasonOther}
}

// ExportItem is one line of an export: a quantity already deducted from one
// batch. Items are immutable once created.
type ExportItem struct {
	shared.BaseEntity
	ExportID     uuid.UUID
	BatchID      uuid.UUID
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
}

// Export is the durable record of a completed allocation plan: stock leaving
// inventory for one reason, created only through the allocation executor.
type Export struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	Reason    ExportReason
	Note      string
	CreatedBy uuid.UUID
	Items     []ExportItem
}

// NewExport creates an export header. Items are added by the executor as it
// materializes the allocation plan.
func NewExport(reason ExportReason, note string, createdBy uuid.UUID) (*Export, error) {
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", "Unknown export reason: "+string(reason))
	}
	return &Export{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Reason:            reason,
		Note:              note,
		CreatedBy:         createdBy,
	}, nil
}

// AddItem appends an export item for an applied batch deduction
func (e *Export) AddItem(batchID, ingredientID uuid.UUID, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Export item quantity must be positive")
	}
	item := ExportItem{
		BaseEntity:   shared.NewBaseEntity(),
		ExportID:     e.ID,
		BatchID:      batchID,
		IngredientID: ingredientID,
		Quantity:     quantity,
	}
	e.Items = append(e.Items, item)
	return nil
}

// TotalQuantity sums the exported quantity across all items
func (e *Export) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Quantity)
	}
	return total
}

// QuantityForIngredient sums the exported quantity for one ingredient
func (e *Export) QuantityForIngredient(ingredientID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		if item.IngredientID == ingredientID {
			total = total.Add(item.Quantity)
		}
	}
	return total
}
