package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gestor-mesas/internal/application/service"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/dto/request"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/dto/response"
)

// PurchaseHandler handles purchase-related HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List handles listing purchases, newest first
func (h *PurchaseHandler) List(c *gin.Context) {
	result := h.purchaseService.ListPurchases(paginationParams(c))
	response.SuccessWithPagination(c, http.StatusOK, "Purchases retrieved successfully", result)
}

// Create handles recording a purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req request.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), &service.CreatePurchaseInput{
		Description: req.Description,
		Amount:      req.Amount,
		Method:      req.Method,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Purchase created successfully", purchase)
}

// Replace handles swapping the whole purchase list
func (h *PurchaseHandler) Replace(c *gin.Context) {
	var req request.ReplacePurchasesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	purchases, err := h.purchaseService.ReplacePurchases(c.Request.Context(), req.Purchases)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Purchases replaced successfully", purchases)
}

// Delete handles removing a purchase
func (h *PurchaseHandler) Delete(c *gin.Context) {
	if err := h.purchaseService.DeletePurchase(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
