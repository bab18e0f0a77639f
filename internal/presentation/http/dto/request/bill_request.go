package request

import (
	"time"

	"github.com/google/uuid"
)

// BillItemRequest is one line of a new bill
type BillItemRequest struct {
	FeedID          uuid.UUID `json:"feed_id" binding:"required"`
	Quantity        int       `json:"quantity" binding:"required,gt=0"`
	UnitPrice       float64   `json:"unit_price" binding:"gte=0"`
	StorageLocation string    `json:"storage_location" binding:"omitempty,max=20"`
}

// CreateBillRequest represents a bill creation request
type CreateBillRequest struct {
	UserID     uuid.UUID         `json:"user_id" binding:"required"`
	Items      []BillItemRequest `json:"items" binding:"required,min=1,dive"`
	Status     *string           `json:"status" binding:"omitempty,oneof=pending partial paid"`
	PaidAmount *float64          `json:"paid_amount" binding:"omitempty,gte=0"`
	Notes      *string           `json:"notes"`
	BillDate   *time.Time        `json:"bill_date"`
}

// RecordPaymentRequest represents a payment against a bill
type RecordPaymentRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"omitempty,max=500"`
}

// BillFilterRequest represents bill list filters
type BillFilterRequest struct {
	Search     string `form:"search"`
	UserID     string `form:"user_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending partial paid"`
	BillStatus string `form:"bill_status" binding:"omitempty,oneof=active void"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// TransactionFilterRequest represents transaction list filters
type TransactionFilterRequest struct {
	UserID    string `form:"user_id" binding:"omitempty,uuid"`
	BillID    string `form:"bill_id" binding:"omitempty,uuid"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
