package inventory

import (
	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event type constants
const (
	EventTypeStockImported       = "inventory.stock_imported"
	EventTypeStockExported       = "inventory.stock_exported"
	EventTypeBatchDepleted       = "inventory.batch_depleted"
	EventTypeStockBelowThreshold = "inventory.stock_below_threshold"
)

// Aggregate type constants
const (
	AggregateTypeImport     = "Import"
	AggregateTypeExport     = "Export"
	AggregateTypeBatch      = "Batch"
	AggregateTypeIngredient = "Ingredient"
)

// StockImportedEvent is published when an import and its batches are created
type StockImportedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	BatchCount int       `json:"batch_count"`
}

// NewStockImportedEvent creates a new StockImportedEvent
func NewStockImportedEvent(imp *Import) *StockImportedEvent {
	return &StockImportedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockImported, AggregateTypeImport, imp.ID),
		SupplierID:      imp.SupplierID,
		BatchCount:      len(imp.Batches),
	}
}

// StockExportedEvent is published after an allocation plan has been applied
type StockExportedEvent struct {
	shared.BaseDomainEvent
	Reason        string          `json:"reason"`
	ItemCount     int             `json:"item_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// NewStockExportedEvent creates a new StockExportedEvent
func NewStockExportedEvent(exp *Export) *StockExportedEvent {
	return &StockExportedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockExported, AggregateTypeExport, exp.ID),
		Reason:          exp.Reason.String(),
		ItemCount:       len(exp.Items),
		TotalQuantity:   exp.TotalQuantity(),
	}
}

// BatchDepletedEvent is published when an allocation drives a batch's
// remaining quantity to exactly zero
type BatchDepletedEvent struct {
	shared.BaseDomainEvent
	IngredientID uuid.UUID `json:"ingredient_id"`
	ImportID     uuid.UUID `json:"import_id"`
}

// NewBatchDepletedEvent creates a new BatchDepletedEvent
func NewBatchDepletedEvent(batch *Batch) *BatchDepletedEvent {
	return &BatchDepletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchDepleted, AggregateTypeBatch, batch.ID),
		IngredientID:    batch.IngredientID,
		ImportID:        batch.ImportID,
	}
}

// StockBelowThresholdEvent is published when an ingredient's aggregate
// eligible stock drops to or below its alert threshold
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	IngredientName string          `json:"ingredient_name"`
	Available      decimal.Decimal `json:"available"`
	Threshold      decimal.Decimal `json:"threshold"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(ingredient *Ingredient, available decimal.Decimal) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, AggregateTypeIngredient, ingredient.ID),
		IngredientName:  ingredient.Name,
		Available:       available,
		Threshold:       ingredient.LowStockThreshold,
	}
}
