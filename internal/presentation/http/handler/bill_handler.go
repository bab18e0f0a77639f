package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/application/service"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/cache"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/dto/request"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

// BillHandler handles bill and payment HTTP requests
type BillHandler struct {
	billService    *service.BillService
	paymentService *service.PaymentService
	reports        reportInvalidator
	loc            *time.Location
}

// NewBillHandler creates a new bill handler
func NewBillHandler(
	billService *service.BillService,
	paymentService *service.PaymentService,
	reportCache cache.Cache,
	loc *time.Location,
	log *zap.Logger,
) *BillHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &BillHandler{
		billService:    billService,
		paymentService: paymentService,
		reports:        reportInvalidator{cache: reportCache, log: log},
		loc:            loc,
	}
}

// List handles listing bills
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	from, to, err := dateRange(filter.StartDate, filter.EndDate, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := &repository.BillFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		Search:     filter.Search,
		UserID:     optionalUUID(filter.UserID),
		StartDate:  from,
		EndDate:    to,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
	}
	if filter.Status != "" {
		status := enum.PaymentStatus(filter.Status)
		params.Status = &status
	}
	if filter.BillStatus != "" {
		billStatus := enum.BillStatus(filter.BillStatus)
		params.BillStatus = &billStatus
	}

	result, err := h.billService.ListBills(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Create handles creating a bill
// @Summary Create bill
// @Tags bills
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replay guard"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse "insufficient_stock"
// @Failure 409 {object} response.APIResponse "duplicate_bill"
// @Router /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	input := &service.CreateBillInput{
		UserID:     req.UserID,
		Items:      make([]service.BillItemInput, 0, len(req.Items)),
		PaidAmount: req.PaidAmount,
		Notes:      req.Notes,
		BillDate:   req.BillDate,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.BillItemInput{
			FeedID:          item.FeedID,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			StorageLocation: item.StorageLocation,
		})
	}
	if req.Status != nil {
		status := enum.PaymentStatus(*req.Status)
		input.Status = &status
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.reports.invalidate(c.Request.Context())
	response.Created(c, "Bill created successfully", bill)
}

// Get handles getting a single bill with its lines
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "bill")
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Delete removes a bill, returning its stock and dropping its payments
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "bill")
	if !ok {
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	h.reports.invalidate(c.Request.Context())
	response.NoContent(c)
}

// Void cancels a bill while keeping it on record
func (h *BillHandler) Void(c *gin.Context) {
	id, ok := pathID(c, "bill")
	if !ok {
		return
	}

	bill, err := h.billService.VoidBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.reports.invalidate(c.Request.Context())
	response.OK(c, "Bill voided successfully", bill)
}

// RecordPayment applies a payment to a bill
// @Summary Pay bill
// @Tags bills
// @Param Idempotency-Key header string false "Replay guard"
// @Success 201 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse "amount_exceeds_pending"
// @Router /bills/{id}/payments [post]
func (h *BillHandler) RecordPayment(c *gin.Context) {
	id, ok := pathID(c, "bill")
	if !ok {
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	txn, err := h.paymentService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		BillID:      id,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.reports.invalidate(c.Request.Context())
	response.Created(c, "Payment recorded successfully", gin.H{
		"transaction": txn,
		"bill":        bill,
	})
}

// ListPayments lists the payments made against a bill
func (h *BillHandler) ListPayments(c *gin.Context) {
	id, ok := pathID(c, "bill")
	if !ok {
		return
	}

	txns, err := h.paymentService.ListBillTransactions(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", txns)
}

// InvoicePDF downloads the printable invoice of a bill
func (h *BillHandler) InvoicePDF(c *gin.Context) {
	id, ok := pathID(c, "bill")
	if !ok {
		return
	}

	data, filename, err := h.billService.InvoicePDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, "application/pdf", filename, data)
}

// ListTransactions lists payments across bills
func (h *BillHandler) ListTransactions(c *gin.Context) {
	var filter request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	from, to, err := dateRange(filter.StartDate, filter.EndDate, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.paymentService.ListTransactions(c.Request.Context(), &repository.TransactionFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		UserID:     optionalUUID(filter.UserID),
		BillID:     optionalUUID(filter.BillID),
		StartDate:  from,
		EndDate:    to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}
