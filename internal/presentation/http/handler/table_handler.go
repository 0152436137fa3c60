package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gestor-mesas/internal/application/service"
	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/dto/request"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/dto/response"
)

// TableHandler handles table, order line and payment HTTP requests
type TableHandler struct {
	tableService *service.TableService
}

// NewTableHandler creates a new table handler
func NewTableHandler(tableService *service.TableService) *TableHandler {
	return &TableHandler{tableService: tableService}
}

// List handles listing every table, the counter first
// @Summary List tables
// @Tags tables
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /tables [get]
func (h *TableHandler) List(c *gin.Context) {
	response.OK(c, "Tables retrieved successfully", h.tableService.List())
}

// Create handles opening a new table
// @Summary Create table
// @Tags tables
// @Produce json
// @Success 201 {object} response.APIResponse
// @Router /tables [post]
func (h *TableHandler) Create(c *gin.Context) {
	result, err := h.tableService.Create(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Table created successfully", result)
}

// Get handles fetching one table with its billing summary
// @Summary Get table
// @Tags tables
// @Produce json
// @Param id path string true "Table ID"
// @Success 200 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /tables/{id} [get]
func (h *TableHandler) Get(c *gin.Context) {
	detail, err := h.tableService.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table retrieved successfully", detail)
}

// Update handles replacing a table
func (h *TableHandler) Update(c *gin.Context) {
	var table entity.Table
	if err := c.ShouldBindJSON(&table); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	table.ID = c.Param("id")

	result, err := h.tableService.Update(c.Request.Context(), table)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table updated successfully", result)
}

// Rename handles changing the display name of a table
func (h *TableHandler) Rename(c *gin.Context) {
	var req request.RenameTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.tableService.Rename(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Table renamed successfully", result)
}

// Delete handles removing a table
// @Summary Delete table
// @Tags tables
// @Param id path string true "Table ID"
// @Success 204
// @Failure 403 {object} response.APIResponse
// @Router /tables/{id} [delete]
func (h *TableHandler) Delete(c *gin.Context) {
	if err := h.tableService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetSplit handles changing the split count
func (h *TableHandler) SetSplit(c *gin.Context) {
	var req request.SplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.tableService.SetSplit(c.Request.Context(), c.Param("id"), req.SplitCount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Split updated successfully", result)
}

// SetManualTotal handles overriding the displayed total
func (h *TableHandler) SetManualTotal(c *gin.Context) {
	var req request.ManualTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.tableService.SetManualTotal(c.Request.Context(), c.Param("id"), req.Total)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Total updated successfully", result)
}

// SetPayments handles editing the per-method totals
func (h *TableHandler) SetPayments(c *gin.Context) {
	var req request.PaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.tableService.SetPayments(c.Request.Context(), c.Param("id"), req.Payments)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payments updated successfully", result)
}

// AddProduct handles adding an order line
// @Summary Add order line
// @Tags tables
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body request.AddProductRequest true "Order line"
// @Success 201 {object} response.APIResponse
// @Router /tables/{id}/products [post]
func (h *TableHandler) AddProduct(c *gin.Context) {
	var req request.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.tableService.AddProduct(c.Request.Context(), c.Param("id"), &service.AddProductInput{
		MenuItemID:  req.MenuItemID,
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Delivered:   req.Delivered,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product added successfully", result)
}

// UpdateProduct handles editing an order line
func (h *TableHandler) UpdateProduct(c *gin.Context) {
	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.tableService.UpdateProduct(c.Request.Context(), c.Param("id"), c.Param("pid"), &service.UpdateProductInput{
		Description: req.Description,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		Delivered:   req.Delivered,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product updated successfully", result)
}

// RemoveProduct handles deleting an order line
func (h *TableHandler) RemoveProduct(c *gin.Context) {
	result, err := h.tableService.RemoveProduct(c.Request.Context(), c.Param("id"), c.Param("pid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product removed successfully", result)
}

// Deliver handles marking an order line as delivered
func (h *TableHandler) Deliver(c *gin.Context) {
	var req request.DeliverRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}
	delivered := true
	if req.Delivered != nil {
		delivered = *req.Delivered
	}

	result, err := h.tableService.SetDelivered(c.Request.Context(), c.Param("id"), c.Param("pid"), delivered)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery updated successfully", result)
}

// AddPayment handles recording a payment
// @Summary Add payment
// @Tags tables
// @Accept json
// @Produce json
// @Param id path string true "Table ID"
// @Param request body request.AddPaymentRequest true "Payment"
// @Success 201 {object} response.APIResponse
// @Router /tables/{id}/payment-records [post]
func (h *TableHandler) AddPayment(c *gin.Context) {
	var req request.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.tableService.AddPayment(c.Request.Context(), c.Param("id"), req.Amount, req.Method)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Payment recorded successfully", result)
}

// RemovePayment handles retracting a payment record
func (h *TableHandler) RemovePayment(c *gin.Context) {
	result, err := h.tableService.RemovePayment(c.Request.Context(), c.Param("id"), c.Param("rid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment removed successfully", result)
}
