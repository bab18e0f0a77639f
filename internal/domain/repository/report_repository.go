package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SalesSummary aggregates active bills created in a period
type SalesSummary struct {
	TotalSales  int64
	BillCount   int64
	Outstanding int64
}

// BillPoint is one bill's total at its creation time, used for bucketing
type BillPoint struct {
	CreatedAt   time.Time
	TotalAmount int64
}

// TopFeedResult represents a feed's sales performance
type TopFeedResult struct {
	FeedID       uuid.UUID
	FeedName     string
	Brand        string
	QuantitySold int64
	Revenue      int64
}

// CreditorResult is a customer with an outstanding balance
type CreditorResult struct {
	UserID       uuid.UUID
	UserCode     string
	UserName     string
	Phone        *string
	PendingTotal int64
	BillCount    int64
}

// SalesRow is one line of the sales report
type SalesRow struct {
	BillNumber    string
	CreatedAt     time.Time
	UserName      string
	TotalAmount   int64
	PaidAmount    int64
	PendingAmount int64
	Status        string
}

// FeedStats counts feeds for the dashboard
type FeedStats struct {
	Total    int64
	LowStock int64
}

// ReportRepository defines read-only aggregation queries. Void bills are
// excluded from every figure.
type ReportRepository interface {
	SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
	CollectedBetween(ctx context.Context, from, to time.Time) (int64, error)
	BillPoints(ctx context.Context, from, to time.Time) ([]BillPoint, error)
	TopFeeds(ctx context.Context, from, to time.Time, limit int) ([]TopFeedResult, error)
	Creditors(ctx context.Context, limit int) ([]CreditorResult, error)
	SalesRows(ctx context.Context, from, to time.Time) ([]SalesRow, error)
	FeedStats(ctx context.Context) (*FeedStats, error)
}
