package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Import is the durable record of stock entering inventory: one delivery
// from one supplier, grouping the batches created together.
type Import struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	SupplierID uuid.UUID
	CreatedBy  uuid.UUID
	Note       string
	Batches    []Batch
}

// BatchSpec describes one batch to create as part of an import
type BatchSpec struct {
	IngredientID uuid.UUID
	Quantity     decimal.Decimal
	ExpiryDate   time.Time
	UnitPrice    decimal.Decimal
}

// NewImport creates an import with its batches. The import and every batch
// are created together; a single bad batch spec fails the whole import.
func NewImport(supplierID, createdBy uuid.UUID, note string, specs []BatchSpec) (*Import, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Import requires a supplier")
	}
	if len(specs) == 0 {
		return nil, shared.NewDomainError("EMPTY_IMPORT", "Import requires at least one batch")
	}

	imp := &Import{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SupplierID:        supplierID,
		CreatedBy:         createdBy,
		Note:              note,
		Batches:           make([]Batch, 0, len(specs)),
	}
	for _, spec := range specs {
		if spec.IngredientID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_INGREDIENT", "Batch requires an ingredient")
		}
		batch, err := NewBatch(spec.IngredientID, imp.ID, spec.Quantity, spec.ExpiryDate, spec.UnitPrice)
		if err != nil {
			return nil, err
		}
		imp.Batches = append(imp.Batches, *batch)
	}

	imp.RecordEvent(NewStockImportedEvent(imp))
	return imp, nil
}

// TotalValue returns the purchase value of the import at original quantities
func (i *Import) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, b := range i.Batches {
		total = total.Add(b.Quantity.Mul(b.UnitPrice))
	}
	return total
}

// SoftDelete tombstones the import and cascades to all of its batches.
// Rows are never physically removed while export items reference them.
func (i *Import) SoftDelete() error {
	if err := i.MarkDeleted(); err != nil {
		return err
	}
	for idx := range i.Batches {
		// batches deleted with their own import may already carry a tombstone
		// from a direct batch delete; keep the earliest one
		if !i.Batches[idx].IsDeleted() {
			_ = i.Batches[idx].MarkDeleted()
		}
	}
	i.UpdatedAt = time.Now()
	return nil
}

// RestoreWithBatches reverses a soft delete, restoring the batches deleted
// alongside the import. Restoring a live import is rejected.
func (i *Import) RestoreWithBatches() error {
	if err := i.Restore(); err != nil {
		return err
	}
	for idx := range i.Batches {
		if i.Batches[idx].IsDeleted() {
			_ = i.Batches[idx].Restore()
		}
	}
	i.UpdatedAt = time.Now()
	return nil
}
