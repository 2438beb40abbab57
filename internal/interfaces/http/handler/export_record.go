package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/resto/backend/internal/application/inventory"
)

// ExportHandler handles stock export API endpoints
type ExportHandler struct {
	BaseHandler
	exportService *inventoryapp.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *inventoryapp.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Create consumes stock for the requested ingredients. Batches are chosen
// earliest expiry first and the whole request succeeds or fails as one unit.
func (h *ExportHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.CreatedBy = userID

	resp, err := h.exportService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns one export with its allocation lines.
func (h *ExportHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid export ID format")
		return
	}

	resp, err := h.exportService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns exports matching the pagination parameters.
func (h *ExportHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if reason := c.Query("reason"); reason != "" {
		filter.Filters["reason"] = reason
	}

	page, err := h.exportService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Delete soft-deletes an export record. Consumed stock is not returned.
func (h *ExportHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid export ID format")
		return
	}

	if err := h.exportService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Restore reverses the soft delete of an export record.
func (h *ExportHandler) Restore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid export ID format")
		return
	}

	if err := h.exportService.Restore(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
