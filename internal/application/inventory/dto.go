package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ExportItemRequest is one (ingredient, quantity) line of an export request
type ExportItemRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateExportRequest asks the executor to consume stock for one reason
type CreateExportRequest struct {
	Reason    string              `json:"reason" binding:"required,export_reason"`
	Note      string              `json:"note"`
	CreatedBy uuid.UUID           `json:"-"`
	Items     []ExportItemRequest `json:"items" binding:"required,min=1,dive"`
}

// BatchSpecRequest describes one batch of an import request
type BatchSpecRequest struct {
	IngredientID uuid.UUID       `json:"ingredient_id" binding:"required"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required"`
	ExpiryDate   string          `json:"expiry_date" binding:"required"` // YYYY-MM-DD
	UnitPrice    decimal.Decimal `json:"unit_price"`
}

// CreateImportRequest creates an import and its batches in one transaction
type CreateImportRequest struct {
	SupplierID uuid.UUID          `json:"supplier_id" binding:"required"`
	Note       string             `json:"note"`
	CreatedBy  uuid.UUID          `json:"-"`
	Batches    []BatchSpecRequest `json:"batches" binding:"required,min=1,dive"`
}

// CreateIngredientRequest creates a new ingredient
type CreateIngredientRequest struct {
	Name              string          `json:"name" binding:"required"`
	Unit              string          `json:"unit" binding:"required"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
}

// UpdateIngredientRequest updates an ingredient
type UpdateIngredientRequest struct {
	Name              string          `json:"name" binding:"required"`
	Unit              string          `json:"unit" binding:"required"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
}

// IngredientResponse is the API shape of an ingredient
type IngredientResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         *time.Time      `json:"deleted_at,omitempty"`
}

// ToIngredientResponse converts a domain ingredient to its API shape
func ToIngredientResponse(i *inventory.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:                i.ID,
		Name:              i.Name,
		Unit:              i.Unit,
		LowStockThreshold: i.LowStockThreshold,
		CreatedAt:         i.CreatedAt,
		UpdatedAt:         i.UpdatedAt,
		DeletedAt:         i.DeletedAt,
	}
}

// BatchResponse is the API shape of a batch
type BatchResponse struct {
	ID                uuid.UUID       `json:"id"`
	IngredientID      uuid.UUID       `json:"ingredient_id"`
	ImportID          uuid.UUID       `json:"import_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	ExpiryDate        string          `json:"expiry_date"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	DeletedAt         *time.Time      `json:"deleted_at,omitempty"`
}

// ToBatchResponse converts a domain batch to its API shape
func ToBatchResponse(b *inventory.Batch) BatchResponse {
	return BatchResponse{
		ID:                b.ID,
		IngredientID:      b.IngredientID,
		ImportID:          b.ImportID,
		Quantity:          b.Quantity,
		RemainingQuantity: b.RemainingQuantity,
		ExpiryDate:        b.ExpiryDate.Format("2006-01-02"),
		UnitPrice:         b.UnitPrice,
		Status:            b.Status.String(),
		CreatedAt:         b.CreatedAt,
		DeletedAt:         b.DeletedAt,
	}
}

// ImportResponse is the API shape of an import record
type ImportResponse struct {
	ID         uuid.UUID       `json:"id"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	CreatedBy  uuid.UUID       `json:"created_by"`
	Note       string          `json:"note,omitempty"`
	TotalValue decimal.Decimal `json:"total_value"`
	Batches    []BatchResponse `json:"batches"`
	CreatedAt  time.Time       `json:"created_at"`
	DeletedAt  *time.Time      `json:"deleted_at,omitempty"`
}

// ToImportResponse converts a domain import to its API shape
func ToImportResponse(imp *inventory.Import) ImportResponse {
	batches := make([]BatchResponse, 0, len(imp.Batches))
	for idx := range imp.Batches {
		batches = append(batches, ToBatchResponse(&imp.Batches[idx]))
	}
	return ImportResponse{
		ID:         imp.ID,
		SupplierID: imp.SupplierID,
		CreatedBy:  imp.CreatedBy,
		Note:       imp.Note,
		TotalValue: imp.TotalValue(),
		Batches:    batches,
		CreatedAt:  imp.CreatedAt,
		DeletedAt:  imp.DeletedAt,
	}
}

// ExportItemResponse is the API shape of an export line
type ExportItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	BatchID      uuid.UUID       `json:"batch_id"`
	IngredientID uuid.UUID       `json:"ingredient_id"`
	Quantity     decimal.Decimal `json:"quantity"`
}

// ExportResponse is the API shape of an export record
type ExportResponse struct {
	ID            uuid.UUID            `json:"id"`
	Reason        string               `json:"reason"`
	Note          string               `json:"note,omitempty"`
	CreatedBy     uuid.UUID            `json:"created_by"`
	TotalQuantity decimal.Decimal      `json:"total_quantity"`
	Items         []ExportItemResponse `json:"items"`
	CreatedAt     time.Time            `json:"created_at"`
	DeletedAt     *time.Time           `json:"deleted_at,omitempty"`
}

// ToExportResponse converts a domain export to its API shape
func ToExportResponse(exp *inventory.Export) ExportResponse {
	items := make([]ExportItemResponse, 0, len(exp.Items))
	for _, item := range exp.Items {
		items = append(items, ExportItemResponse{
			ID:           item.ID,
			BatchID:      item.BatchID,
			IngredientID: item.IngredientID,
			Quantity:     item.Quantity,
		})
	}
	return ExportResponse{
		ID:            exp.ID,
		Reason:        exp.Reason.String(),
		Note:          exp.Note,
		CreatedBy:     exp.CreatedBy,
		TotalQuantity: exp.TotalQuantity(),
		Items:         items,
		CreatedAt:     exp.CreatedAt,
		DeletedAt:     exp.DeletedAt,
	}
}

// ExpiringBatchResponse pairs a batch with its days until expiry
type ExpiringBatchResponse struct {
	BatchResponse
	DaysUntilExpiry int `json:"days_until_expiry"`
}

// StockLevelResponse is the low-stock monitor's API shape
type StockLevelResponse struct {
	Ingredient IngredientResponse `json:"ingredient"`
	Available  decimal.Decimal    `json:"available"`
}
