package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/export"
	infraRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/apperror"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/utils"
	"go.uber.org/zap"
)

// BillOptions carries the presentation settings of the bill engine
type BillOptions struct {
	Prefix   string
	Header   entity.InvoiceHeader
	Location *time.Location
}

// BillService creates, voids and deletes bills
type BillService struct {
	transactor repository.Transactor
	billRepo   repository.BillRepository
	feedRepo   repository.FeedRepository
	userRepo   repository.UserRepository
	txnRepo    repository.TransactionRepository
	duplicates *DuplicateDetector
	clock      Clock
	opts       BillOptions
	log        *zap.Logger
}

// NewBillService creates a new bill service
func NewBillService(
	transactor repository.Transactor,
	billRepo repository.BillRepository,
	feedRepo repository.FeedRepository,
	userRepo repository.UserRepository,
	txnRepo repository.TransactionRepository,
	duplicates *DuplicateDetector,
	clock Clock,
	opts BillOptions,
	log *zap.Logger,
) *BillService {
	if opts.Prefix == "" {
		opts.Prefix = "BILL"
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &BillService{
		transactor: transactor,
		billRepo:   billRepo,
		feedRepo:   feedRepo,
		userRepo:   userRepo,
		txnRepo:    txnRepo,
		duplicates: duplicates,
		clock:      clock,
		opts:       opts,
		log:        log,
	}
}

// BillItemInput represents one requested line
type BillItemInput struct {
	FeedID          uuid.UUID
	Quantity        int
	UnitPrice       float64
	StorageLocation string
}

// CreateBillInput represents the create bill input
type CreateBillInput struct {
	UserID     uuid.UUID
	Items      []BillItemInput
	Status     *enum.PaymentStatus
	PaidAmount *float64
	Notes      *string
	BillDate   *time.Time
}

type preparedLine struct {
	input     BillItemInput
	feed      *entity.Feed
	location  enum.StorageLocation
	unitPrice int64
	total     int64
}

func validateBillInput(input *CreateBillInput) error {
	var fieldErrors []apperror.FieldError

	if input.UserID == uuid.Nil {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "user_id", Message: "User is required"})
	}
	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "At least one item is required"})
	}
	for i, item := range input.Items {
		if item.FeedID == uuid.Nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].feed_id", i), Message: "Feed is required"})
		}
		if item.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "Quantity must be greater than zero"})
		}
		if item.UnitPrice < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("items[%d].unit_price", i), Message: "Unit price cannot be negative"})
		}
	}
	if input.PaidAmount != nil && *input.PaidAmount < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "paid_amount", Message: "Paid amount cannot be negative"})
	}
	if input.Status != nil && !input.Status.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "status", Message: "Status must be pending, partial or paid"})
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

func feedIDs(items []BillItemInput) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if !seen[item.FeedID] {
			seen[item.FeedID] = true
			ids = append(ids, item.FeedID)
		}
	}
	return ids
}

// prepareLines resolves each line against the given feeds, checks the
// accumulated demand per counter and prices the line
func prepareLines(items []BillItemInput, feeds []entity.Feed) ([]preparedLine, int64, error) {
	feedMap := make(map[uuid.UUID]*entity.Feed, len(feeds))
	for i := range feeds {
		feedMap[feeds[i].ID] = &feeds[i]
	}

	demand := stockDemand{}
	lines := make([]preparedLine, 0, len(items))
	var total int64

	for _, item := range items {
		feed, exists := feedMap[item.FeedID]
		if !exists || !feed.IsActive() {
			return nil, 0, apperror.NewNotFoundError(fmt.Sprintf("Feed %s", item.FeedID))
		}

		loc := enum.ParseStorageLocation(item.StorageLocation)
		available, _ := AvailableStock(feed, loc)
		if demand.Add(feed, loc, item.Quantity) > available {
			return nil, 0, apperror.NewInsufficientStockError(feed.Name, available)
		}

		unitPrice := utils.ToPaise(item.UnitPrice)
		lineTotal := utils.LineTotal(unitPrice, item.Quantity)
		total += lineTotal

		lines = append(lines, preparedLine{
			input:     item,
			feed:      feed,
			location:  loc,
			unitPrice: unitPrice,
			total:     lineTotal,
		})
	}

	return lines, total, nil
}

// resolvePayment settles the paid amount and status of a new bill. An
// explicit status fills in a missing paid amount and must agree with a
// given one.
func resolvePayment(total int64, status *enum.PaymentStatus, paidAmount *float64) (int64, enum.PaymentStatus, error) {
	var paid int64
	if paidAmount != nil {
		paid = utils.ToPaise(*paidAmount)
		if paid > total {
			return 0, "", apperror.NewFieldError("paid_amount", "Paid amount cannot exceed the bill total")
		}
	}

	if status == nil {
		return paid, enum.DerivePaymentStatus(total, paid), nil
	}

	if paidAmount == nil {
		switch *status {
		case enum.PaymentStatusPaid:
			paid = total
		case enum.PaymentStatusPartial:
			return 0, "", apperror.NewFieldError("paid_amount", "Paid amount is required for a partial bill")
		}
		return paid, enum.DerivePaymentStatus(total, paid), nil
	}

	if derived := enum.DerivePaymentStatus(total, paid); derived != *status {
		return 0, "", apperror.NewFieldError("status", fmt.Sprintf("Status %s does not match the paid amount", *status))
	}
	return paid, *status, nil
}

// CreateBill validates stock, suppresses resubmissions and commits the
// bill, its stock debits and any initial payment in one transaction
func (s *BillService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	if err := validateBillInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, persistErr(s.log, "load user", err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	feeds, err := s.feedRepo.GetByIDs(ctx, feedIDs(input.Items))
	if err != nil {
		return nil, persistErr(s.log, "load feeds", err)
	}
	_, total, err := prepareLines(input.Items, feeds)
	if err != nil {
		return nil, err
	}

	dup, err := s.duplicates.Find(ctx, input.UserID, total, input.Items)
	if err != nil {
		return nil, persistErr(s.log, "check duplicate bills", err)
	}
	if dup != nil {
		s.log.Info("duplicate bill suppressed",
			zap.String("user_id", input.UserID.String()),
			zap.String("bill_number", dup.BillNumber))
		return nil, apperror.NewDuplicateBillError(dup.ID.String(), dup.BillNumber)
	}

	paid, status, err := resolvePayment(total, input.Status, input.PaidAmount)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	billDate := now
	if input.BillDate != nil {
		billDate = input.BillDate.UTC()
	}

	var billID uuid.UUID
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		seq, err := s.billRepo.NextSequence(ctx)
		if err != nil {
			return err
		}

		// Re-read under lock so the check runs against committed counters
		locked, err := s.feedRepo.GetByIDsForUpdate(ctx, feedIDs(input.Items))
		if err != nil {
			return err
		}
		lines, lockedTotal, err := prepareLines(input.Items, locked)
		if err != nil {
			return err
		}

		bill := &entity.Bill{
			BillNumber:    utils.FormatBillNumber(s.opts.Prefix, seq),
			Sequence:      seq,
			UserID:        input.UserID,
			TotalAmount:   lockedTotal,
			PaidAmount:    paid,
			PendingAmount: lockedTotal - paid,
			Status:        status,
			BillStatus:    enum.BillStatusActive,
			Notes:         input.Notes,
			BillDate:      billDate,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		moves := make([]repository.StockMovement, len(lines))
		legacyLeft := make(map[uuid.UUID]int, len(lines))
		for _, line := range lines {
			legacyLeft[line.feed.ID] = line.feed.Stock
		}
		for i, line := range lines {
			moves[i] = PlanDebit(line.feed, line.location, line.input.Quantity)
			taken := LegacyTaken(legacyLeft[line.feed.ID], line.input.Quantity)
			legacyLeft[line.feed.ID] -= taken
			bill.Items = append(bill.Items, entity.BillItem{
				FeedID:          line.feed.ID,
				Position:        i,
				Quantity:        line.input.Quantity,
				UnitPrice:       line.unitPrice,
				Total:           line.total,
				StorageLocation: string(line.location),
				LegacyDraw:      moves[i].LegacyOnly,
				LegacyDebited:   taken,
				CreatedAt:       now,
			})
		}

		if err := s.billRepo.Create(ctx, bill); err != nil {
			if infraRepo.IsDuplicateKey(err) {
				return apperror.NewConflictError("Bill number already taken, please retry")
			}
			return err
		}

		for i, m := range moves {
			ok, err := s.feedRepo.DebitStock(ctx, m)
			if err != nil {
				return err
			}
			if !ok {
				available, _ := AvailableStock(lines[i].feed, lines[i].location)
				return apperror.NewInsufficientStockError(lines[i].feed.Name, available)
			}
		}

		if err := s.userRepo.SetStatus(ctx, input.UserID, enum.RecordStatusActive); err != nil {
			return err
		}

		if paid > 0 {
			txn := &entity.Transaction{
				UserID:      input.UserID,
				BillID:      bill.ID,
				Type:        enum.TransactionTypePayment,
				Amount:      paid,
				Description: "Initial payment for " + bill.BillNumber,
				CreatedAt:   now,
			}
			if err := s.txnRepo.Create(ctx, txn); err != nil {
				return err
			}
		}

		billID = bill.ID
		return nil
	})
	if err != nil {
		return nil, persistErr(s.log, "create bill", err)
	}

	s.log.Info("bill created", zap.String("bill_id", billID.String()), zap.Int64("total", total))
	return s.GetBill(ctx, billID)
}

// restoreStock credits every line back to the counter it was drawn from
func (s *BillService) restoreStock(ctx context.Context, items []entity.BillItem) error {
	for _, item := range items {
		err := s.feedRepo.CreditStock(ctx, repository.StockMovement{
			FeedID:     item.FeedID,
			Location:   enum.ParseStorageLocation(item.StorageLocation),
			Quantity:   item.Quantity,
			LegacyOnly: item.LegacyDraw,
			Legacy:     item.LegacyDebited,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteBill removes a bill with its items and transactions. Stock of an
// active bill is returned; a void bill already returned it.
func (s *BillService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.billRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return apperror.NewNotFoundError("Bill")
		}

		bill, err := s.billRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if !bill.IsVoid() {
			if err := s.restoreStock(ctx, bill.Items); err != nil {
				return err
			}
		}
		return s.billRepo.Delete(ctx, id)
	})
	if err != nil {
		return persistErr(s.log, "delete bill", err)
	}

	s.log.Info("bill deleted", zap.String("bill_id", id.String()))
	return nil
}

// VoidBill returns a bill's stock and marks it void. The bill and its
// payments stay on record.
func (s *BillService) VoidBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.billRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if locked == nil {
			return apperror.NewNotFoundError("Bill")
		}
		if locked.IsVoid() {
			return apperror.NewFieldError("bill_status", "Bill is already void")
		}

		bill, err := s.billRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.restoreStock(ctx, bill.Items); err != nil {
			return err
		}
		return s.billRepo.SetBillStatus(ctx, id, enum.BillStatusVoid)
	})
	if err != nil {
		return nil, persistErr(s.log, "void bill", err)
	}

	s.log.Info("bill voided", zap.String("bill_id", id.String()))
	return s.GetBill(ctx, id)
}

// GetBill retrieves a bill with its customer, items and feeds
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, persistErr(s.log, "load bill", err)
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills retrieves bills with filtering and pagination
func (s *BillService) ListBills(ctx context.Context, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	bills, total, err := s.billRepo.List(ctx, params)
	if err != nil {
		return nil, persistErr(s.log, "list bills", err)
	}

	return pagination.Paginate(bills, params.Pagination, total), nil
}

// ListUserBills lists one customer's bills
func (s *BillService) ListUserBills(ctx context.Context, userID uuid.UUID, params *repository.BillFilterParams) (*pagination.PaginatedResult[entity.Bill], error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, persistErr(s.log, "load user", err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	params.UserID = &userID
	return s.ListBills(ctx, params)
}

// BuildInvoice composes the printable view of a bill
func (s *BillService) BuildInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	bill, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}

	inv := &entity.Invoice{
		Header:     s.opts.Header,
		BillNumber: bill.BillNumber,
		Date:       bill.BillDate.In(s.opts.Location).Format("02-01-2006"),
		Status:     string(bill.Status),
		Total:      utils.FromPaise(bill.TotalAmount),
		Paid:       utils.FromPaise(bill.PaidAmount),
		Pending:    utils.FromPaise(bill.PendingAmount),
	}
	if bill.IsVoid() {
		inv.Status = string(enum.BillStatusVoid)
	}
	if bill.User != nil {
		inv.CustomerName = bill.User.Name
		inv.CustomerCode = bill.User.Code
	}

	for _, item := range bill.Items {
		name := item.FeedID.String()
		if item.Feed != nil {
			name = item.Feed.Name
			if item.Feed.Brand != "" {
				name += " (" + item.Feed.Brand + ")"
			}
		}
		inv.Lines = append(inv.Lines, entity.InvoiceLine{
			Name:      name,
			Location:  item.StorageLocation,
			Quantity:  item.Quantity,
			UnitPrice: utils.FromPaise(item.UnitPrice),
			Total:     utils.FromPaise(item.Total),
		})
	}

	return inv, nil
}

// InvoicePDF renders the bill invoice and returns it with a file name
func (s *BillService) InvoicePDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	inv, err := s.BuildInvoice(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := export.RenderInvoice(inv)
	if err != nil {
		s.log.Error("invoice render failed", zap.String("bill_id", id.String()), zap.Error(err))
		return nil, "", apperror.NewPersistenceError("render invoice", err)
	}
	return data, inv.BillNumber + ".pdf", nil
}
