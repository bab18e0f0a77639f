package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
)

// TransactionRepository defines the interface for payment records
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	ListByBill(ctx context.Context, billID uuid.UUID) ([]entity.Transaction, error)
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	SumByBill(ctx context.Context, billID uuid.UUID) (int64, error)
}

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	UserID     *uuid.UUID
	BillID     *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
