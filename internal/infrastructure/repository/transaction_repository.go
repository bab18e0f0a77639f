package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	domainRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	return conn(ctx, r.db).Omit("Bill", "User").Create(txn).Error
}

func (r *transactionRepository) ListByBill(ctx context.Context, billID uuid.UUID) ([]entity.Transaction, error) {
	var txns []entity.Transaction
	err := conn(ctx, r.db).
		Where("bill_id = ?", billID).
		Order("created_at ASC").
		Find(&txns).Error
	return txns, err
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var txns []entity.Transaction
	var total int64

	query := conn(ctx, r.db).Model(&entity.Transaction{}).
		Scopes(DateRangeScope("created_at", params.StartDate, params.EndDate))

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.BillID != nil {
		query = query.Where("bill_id = ?", *params.BillID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("User").
		Preload("Bill", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "bill_number", "total_amount", "pending_amount", "status")
		}).
		Order("created_at DESC").
		Find(&txns).Error

	return txns, total, err
}

func (r *transactionRepository) SumByBill(ctx context.Context, billID uuid.UUID) (int64, error) {
	var sum int64
	err := conn(ctx, r.db).Model(&entity.Transaction{}).
		Where("bill_id = ?", billID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}
