package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gestor-mesas/internal/application/service"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/dto/request"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DashboardHandler handles the floor-wide views and reports
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles the global totals panel
func (h *DashboardHandler) GetStats(c *gin.Context) {
	response.OK(c, "Dashboard stats retrieved successfully", h.dashboardService.GetDashboardStats())
}

// GetView returns the active screen
func (h *DashboardHandler) GetView(c *gin.Context) {
	response.OK(c, "View retrieved successfully", h.dashboardService.GetView())
}

// SetView switches the active screen
func (h *DashboardHandler) SetView(c *gin.Context) {
	var req request.SetViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.dashboardService.SetView(c.Request.Context(), req.View, req.TableID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "View updated successfully", view)
}

// OpenTables lists tables still being served
func (h *DashboardHandler) OpenTables(c *gin.Context) {
	response.OK(c, "Open tables retrieved successfully", h.dashboardService.OpenTables())
}

// InvoicedTables lists closed tables
func (h *DashboardHandler) InvoicedTables(c *gin.Context) {
	response.OK(c, "Invoiced tables retrieved successfully", h.dashboardService.InvoicedTables())
}

// WaitingList returns the kitchen queue, oldest first
func (h *DashboardHandler) WaitingList(c *gin.Context) {
	response.OK(c, "Waiting list retrieved successfully", h.dashboardService.WaitingList())
}

// Sales returns the per-product sales report
func (h *DashboardHandler) Sales(c *gin.Context) {
	response.OK(c, "Sales report retrieved successfully", h.dashboardService.Sales())
}

// SalesXLSX streams the sales report as a spreadsheet
func (h *DashboardHandler) SalesXLSX(c *gin.Context) {
	data, err := h.dashboardService.ExportSalesXLSX()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "vendas.xlsx"))
	c.Data(200, xlsxContentType, data)
}
