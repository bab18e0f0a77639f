package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
)

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	// Create inserts the bill together with its items
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	// GetByIDForUpdate reads the bill row with a lock where the dialect supports it
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	NextSequence(ctx context.Context) (int64, error)
	List(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
	// FindRecentSimilar returns the newest active bills for the user with the
	// same total created at or after since, items preloaded.
	FindRecentSimilar(ctx context.Context, userID uuid.UUID, total int64, since time.Time, limit int) ([]entity.Bill, error)
	// ApplyPayment adds amount to paid and removes it from pending. It
	// returns false when pending no longer covers the amount.
	ApplyPayment(ctx context.Context, id uuid.UUID, amount int64, status enum.PaymentStatus) (bool, error)
	SetBillStatus(ctx context.Context, id uuid.UUID, status enum.BillStatus) error
	// Delete removes the bill, its items and its transactions
	Delete(ctx context.Context, id uuid.UUID) error
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// BalanceByUser totals the user's active bills
	BalanceByUser(ctx context.Context, userID uuid.UUID) (*UserBalance, error)
}

// UserBalance sums a customer's active bills, in paise
type UserBalance struct {
	BillCount   int64
	TotalBilled int64
	TotalPaid   int64
	Outstanding int64
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	UserID     *uuid.UUID
	Status     *enum.PaymentStatus
	BillStatus *enum.BillStatus
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
