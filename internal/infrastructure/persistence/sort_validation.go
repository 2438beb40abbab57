package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// IngredientSortFields contains allowed sort fields for ingredients
var IngredientSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"name":                true,
	"unit":                true,
	"low_stock_threshold": true,
}

// BatchSortFields contains allowed sort fields for stock batches
var BatchSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"ingredient_id":      true,
	"import_id":          true,
	"quantity":           true,
	"remaining_quantity": true,
	"expiry_date":        true,
	"unit_price":         true,
	"status":             true,
}

// ImportSortFields contains allowed sort fields for import records
var ImportSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"supplier_id": true,
	"created_by":  true,
}

// ExportSortFields contains allowed sort fields for export records
var ExportSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"reason":     true,
	"created_by": true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"contact_name":  true,
	"contact_phone": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"display_name":  true,
	"role":          true,
	"last_login_at": true,
}

// TableSortFields contains allowed sort fields for dining tables
var TableSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"capacity":   true,
	"status":     true,
}
