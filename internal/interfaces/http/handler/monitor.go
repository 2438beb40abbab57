package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/resto/backend/internal/application/inventory"
)

// defaultExpiryWindowDays is the lookahead used when the caller does not
// specify one.
const defaultExpiryWindowDays = 7

// MonitorHandler exposes the expiry and low-stock read endpoints
type MonitorHandler struct {
	BaseHandler
	monitorService *inventoryapp.MonitorService
}

// NewMonitorHandler creates a new MonitorHandler
func NewMonitorHandler(monitorService *inventoryapp.MonitorService) *MonitorHandler {
	return &MonitorHandler{monitorService: monitorService}
}

// Expiring lists batches that will expire within the requested window,
// soonest first.
func (h *MonitorHandler) Expiring(c *gin.Context) {
	withinDays := defaultExpiryWindowDays
	if raw := c.Query("within_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "within_days must be an integer")
			return
		}
		withinDays = parsed
	}

	batches, err := h.monitorService.FindExpiring(c.Request.Context(), withinDays)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batches)
}

// LowStock lists ingredients whose available stock has fallen to or below
// their configured threshold.
func (h *MonitorHandler) LowStock(c *gin.Context) {
	levels, err := h.monitorService.FindLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, levels)
}
