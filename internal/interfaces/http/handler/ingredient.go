package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/resto/backend/internal/application/inventory"
)

// IngredientHandler handles ingredient catalog API endpoints
type IngredientHandler struct {
	BaseHandler
	ingredientService *inventoryapp.IngredientService
}

// NewIngredientHandler creates a new IngredientHandler
func NewIngredientHandler(ingredientService *inventoryapp.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// Create registers a new ingredient.
func (h *IngredientHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.ingredientService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Update changes an ingredient's name, unit or low-stock threshold.
func (h *IngredientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	var req inventoryapp.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.ingredientService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByID returns one ingredient.
func (h *IngredientHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	resp, err := h.ingredientService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns ingredients matching the pagination and search parameters.
func (h *IngredientHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.ingredientService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Batches lists the stock batches of one ingredient.
func (h *IngredientHandler) Batches(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if hasStock := c.Query("has_stock"); hasStock == "true" {
		filter.Filters["has_stock"] = true
	}

	batches, err := h.ingredientService.Batches(c.Request.Context(), id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, batches)
}

// Stock reports the quantity of one ingredient available for allocation.
func (h *IngredientHandler) Stock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	resp, err := h.ingredientService.Stock(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete soft-deletes an ingredient.
func (h *IngredientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	if err := h.ingredientService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Restore reverses the soft delete of an ingredient.
func (h *IngredientHandler) Restore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid ingredient ID format")
		return
	}

	if err := h.ingredientService.Restore(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
