package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gestor-mesas/internal/application/service"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/dto/response"
	"github.com/sangkips/gestor-mesas/pkg/apperror"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// PrintTable prints the bill of a table.
func (h *PrinterHandler) PrintTable(c *gin.Context) {
	receipt, err := h.printerService.PrintTableBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		if receipt == nil || apperror.IsAppError(err) {
			response.Error(c, err)
			return
		}
		// Return the receipt anyway (useful when printer type is "none")
		response.OK(c, "Bill generated (printer may be disabled)", gin.H{
			"receipt": receipt,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Bill sent to printer", gin.H{
		"receipt": receipt,
	})
}
