package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/application/service"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/dto/response"
)

// PrinterHandler handles thermal receipt printing
type PrinterHandler struct {
	receiptService *service.ReceiptService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(receiptService *service.ReceiptService) *PrinterHandler {
	return &PrinterHandler{receiptService: receiptService}
}

// GetStatus returns the printer connection status
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receiptService.Status(c.Request.Context()))
}

// PrintBill sends a bill receipt to the printer
func (h *PrinterHandler) PrintBill(c *gin.Context) {
	id, ok := pathID(c, "bill")
	if !ok {
		return
	}

	inv, err := h.receiptService.PrintBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", inv)
}
