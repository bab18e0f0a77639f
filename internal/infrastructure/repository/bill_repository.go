package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	domainRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

// Create inserts the bill and its items in one statement batch
func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return conn(ctx, r.db).Omit("User").Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := conn(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := conn(ctx, r.db).
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.Feed").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := conn(ctx, r.db).
		Scopes(forUpdate(ctx)).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

// NextSequence reads MAX(sequence)+1 inside the caller's transaction. The
// unique index on sequence rejects a concurrent twin.
func (r *billRepository) NextSequence(ctx context.Context) (int64, error) {
	var max int64
	err := conn(ctx, r.db).Model(&entity.Bill{}).
		Select("COALESCE(MAX(sequence), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

var billSortColumns = map[string]bool{
	"created_at": true, "bill_number": true, "total_amount": true, "pending_amount": true,
}

func (r *billRepository) List(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := conn(ctx, r.db).Model(&entity.Bill{}).
		Scopes(
			SearchScope(params.Search, "bill_number"),
			DateRangeScope("created_at", params.StartDate, params.EndDate),
		)

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.BillStatus != nil {
		query = query.Where("bill_status = ?", *params.BillStatus)
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
		Order(orderBy(params.SortBy, params.SortOrder, billSortColumns, "created_at")).
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) FindRecentSimilar(ctx context.Context, userID uuid.UUID, total int64, since time.Time, limit int) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := conn(ctx, r.db).
		Where("user_id = ? AND total_amount = ? AND bill_status = ? AND created_at >= ?",
			userID, total, enum.BillStatusActive, since.UTC()).
		Order("created_at DESC").
		Limit(limit).
		Preload("Items").
		Find(&bills).Error
	return bills, err
}

// ApplyPayment moves amount from pending to paid in place. The pending
// guard keeps two concurrent payments from overshooting the total.
func (r *billRepository) ApplyPayment(ctx context.Context, id uuid.UUID, amount int64, status enum.PaymentStatus) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.Bill{}).
		Where("id = ? AND pending_amount >= ?", id, amount).
		Updates(map[string]interface{}{
			"paid_amount":    gorm.Expr("paid_amount + ?", amount),
			"pending_amount": gorm.Expr("pending_amount - ?", amount),
			"status":         status,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *billRepository) SetBillStatus(ctx context.Context, id uuid.UUID, status enum.BillStatus) error {
	return conn(ctx, r.db).Model(&entity.Bill{}).
		Where("id = ?", id).
		Update("bill_status", status).Error
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Where("bill_id = ?", id).Delete(&entity.Transaction{}).Error; err != nil {
		return err
	}
	if err := db.Where("bill_id = ?", id).Delete(&entity.BillItem{}).Error; err != nil {
		return err
	}
	return db.Delete(&entity.Bill{}, "id = ?", id).Error
}

func (r *billRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.Bill{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *billRepository) BalanceByUser(ctx context.Context, userID uuid.UUID) (*domainRepo.UserBalance, error) {
	var balance domainRepo.UserBalance
	err := conn(ctx, r.db).Model(&entity.Bill{}).
		Select(`
			COUNT(*) AS bill_count,
			COALESCE(SUM(total_amount), 0) AS total_billed,
			COALESCE(SUM(paid_amount), 0) AS total_paid,
			COALESCE(SUM(pending_amount), 0) AS outstanding
		`).
		Where("user_id = ? AND bill_status = ?", userID, enum.BillStatusActive).
		Scan(&balance).Error
	if err != nil {
		return nil, err
	}
	return &balance, nil
}
