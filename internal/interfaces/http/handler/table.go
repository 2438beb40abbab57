package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	diningapp "github.com/resto/backend/internal/application/dining"
)

// defaultQRSize is the pixel width of generated QR codes.
const defaultQRSize = 256

// TableHandler handles dining table API endpoints
type TableHandler struct {
	BaseHandler
	tableService *diningapp.TableService
}

// NewTableHandler creates a new TableHandler
func NewTableHandler(tableService *diningapp.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

// Create registers a new dining table.
func (h *TableHandler) Create(c *gin.Context) {
	var req diningapp.CreateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.tableService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID returns one table.
func (h *TableHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	resp, err := h.tableService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns tables, optionally filtered by occupancy status.
func (h *TableHandler) List(c *gin.Context) {
	tables, err := h.tableService.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tables)
}

// ChangeStatus moves a table to a new occupancy status.
func (h *TableHandler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	var req diningapp.UpdateTableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.tableService.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// QRCode renders the table's ordering link as a PNG image.
func (h *TableHandler) QRCode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	size := defaultQRSize
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.BadRequest(c, "size must be a positive integer")
			return
		}
		size = parsed
	}

	png, err := h.tableService.QRCode(c.Request.Context(), id, size)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// Delete soft-deletes a table.
func (h *TableHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid table ID format")
		return
	}

	if err := h.tableService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
