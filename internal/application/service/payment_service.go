package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/apperror"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/utils"
	"go.uber.org/zap"
)

// PaymentService records payments against bills
type PaymentService struct {
	transactor repository.Transactor
	billRepo   repository.BillRepository
	txnRepo    repository.TransactionRepository
	userRepo   repository.UserRepository
	clock      Clock
	log        *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	transactor repository.Transactor,
	billRepo repository.BillRepository,
	txnRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	clock Clock,
	log *zap.Logger,
) *PaymentService {
	return &PaymentService{
		transactor: transactor,
		billRepo:   billRepo,
		txnRepo:    txnRepo,
		userRepo:   userRepo,
		clock:      clock,
		log:        log,
	}
}

// RecordPaymentInput represents a payment against one bill
type RecordPaymentInput struct {
	BillID      uuid.UUID
	Amount      float64
	Description string
}

// RecordPayment appends a payment transaction and moves the amount from
// pending to paid. The bill is re-read inside the transaction.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Transaction, error) {
	amount := utils.ToPaise(input.Amount)
	if amount <= 0 {
		return nil, apperror.NewFieldError("amount", "Amount must be greater than zero")
	}

	var txn *entity.Transaction
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.GetByIDForUpdate(ctx, input.BillID)
		if err != nil {
			return err
		}
		if bill == nil {
			return apperror.NewNotFoundError("Bill")
		}
		if bill.IsVoid() {
			return apperror.NewFieldError("bill_id", "Cannot record a payment against a void bill")
		}
		if amount > bill.PendingAmount {
			return apperror.NewAmountExceedsPendingError(utils.FromPaise(bill.PendingAmount))
		}

		description := strings.TrimSpace(input.Description)
		if description == "" {
			description = "Payment for " + bill.BillNumber
		}

		txn = &entity.Transaction{
			UserID:      bill.UserID,
			BillID:      bill.ID,
			Type:        enum.TransactionTypePayment,
			Amount:      amount,
			Description: description,
			CreatedAt:   s.clock.Now(),
		}
		if err := s.txnRepo.Create(ctx, txn); err != nil {
			return err
		}

		status := enum.DerivePaymentStatus(bill.TotalAmount, bill.PaidAmount+amount)
		ok, err := s.billRepo.ApplyPayment(ctx, bill.ID, amount, status)
		if err != nil {
			return err
		}
		if !ok {
			// pending shrank between the read and the update
			current, err := s.billRepo.GetByID(ctx, bill.ID)
			if err != nil {
				return err
			}
			return apperror.NewAmountExceedsPendingError(utils.FromPaise(current.PendingAmount))
		}
		return nil
	})
	if err != nil {
		return nil, persistErr(s.log, "record payment", err)
	}

	s.log.Info("payment recorded",
		zap.String("bill_id", txn.BillID.String()),
		zap.Int64("amount", txn.Amount))
	return txn, nil
}

// ListTransactions retrieves payments with filtering and pagination
func (s *PaymentService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	txns, total, err := s.txnRepo.List(ctx, params)
	if err != nil {
		return nil, persistErr(s.log, "list transactions", err)
	}

	return pagination.Paginate(txns, params.Pagination, total), nil
}

// ListBillTransactions returns every payment of a bill, oldest first
func (s *PaymentService) ListBillTransactions(ctx context.Context, billID uuid.UUID) ([]entity.Transaction, error) {
	bill, err := s.billRepo.GetByID(ctx, billID)
	if err != nil {
		return nil, persistErr(s.log, "load bill", err)
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	txns, err := s.txnRepo.ListByBill(ctx, billID)
	if err != nil {
		return nil, persistErr(s.log, "list transactions", err)
	}
	return txns, nil
}
