package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gestor-mesas/internal/application/service"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/dto/request"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/dto/response"
)

// CatalogHandler handles menu and inventory HTTP requests
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListMenu handles listing the catalog; ?q= filters by name
func (h *CatalogHandler) ListMenu(c *gin.Context) {
	response.OK(c, "Menu retrieved successfully", h.catalogService.ListMenu(c.Query("q")))
}

// CreateMenuItem handles adding a catalog entry
func (h *CatalogHandler) CreateMenuItem(c *gin.Context) {
	var req request.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.catalogService.AddMenuItem(c.Request.Context(), req.Name, req.Price)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Menu item created successfully", item)
}

// ReplaceMenu handles swapping the whole catalog
func (h *CatalogHandler) ReplaceMenu(c *gin.Context) {
	var req request.ReplaceMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items, err := h.catalogService.ReplaceMenu(c.Request.Context(), req.Items)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Menu replaced successfully", items)
}

// DeleteMenuItem handles removing a catalog entry
func (h *CatalogHandler) DeleteMenuItem(c *gin.Context) {
	if err := h.catalogService.RemoveMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListInventory handles listing the stock, ordered by name
func (h *CatalogHandler) ListInventory(c *gin.Context) {
	response.OK(c, "Inventory retrieved successfully", h.catalogService.ListInventory())
}

// CreateInventoryItem handles adding a stock entry
func (h *CatalogHandler) CreateInventoryItem(c *gin.Context) {
	var req request.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.catalogService.AddInventoryItem(c.Request.Context(), req.Name, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Inventory item created successfully", item)
}

// ReplaceInventory handles swapping the whole stock list
func (h *CatalogHandler) ReplaceInventory(c *gin.Context) {
	var req request.ReplaceInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items, err := h.catalogService.ReplaceInventory(c.Request.Context(), req.Items)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Inventory replaced successfully", items)
}

// DeleteInventoryItem handles removing a stock entry
func (h *CatalogHandler) DeleteInventoryItem(c *gin.Context) {
	if err := h.catalogService.RemoveInventoryItem(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
