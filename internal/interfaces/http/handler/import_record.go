package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/resto/backend/internal/application/inventory"
)

// ImportHandler handles stock import API endpoints
type ImportHandler struct {
	BaseHandler
	importService *inventoryapp.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *inventoryapp.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Create records an import and its batches in one transaction.
func (h *ImportHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.CreateImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = userID

	resp, err := h.importService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns one import with its batches.
func (h *ImportHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid import ID format")
		return
	}

	resp, err := h.importService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns imports matching the pagination parameters.
func (h *ImportHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		id, err := uuid.Parse(supplierID)
		if err != nil {
			h.BadRequest(c, "Invalid supplier ID format")
			return
		}
		filter.Filters["supplier_id"] = id
	}

	page, err := h.importService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Delete soft-deletes an import and its batches.
func (h *ImportHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid import ID format")
		return
	}

	if err := h.importService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Restore reverses the soft delete of an import and revives its batches.
func (h *ImportHandler) Restore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid import ID format")
		return
	}

	if err := h.importService.Restore(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
