package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	infraRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/apperror"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/utils"
	"go.uber.org/zap"
)

// codeAttempts bounds retries when two creations race for the same code
const codeAttempts = 5

// UserService handles customer records
type UserService struct {
	userRepo repository.UserRepository
	billRepo repository.BillRepository
	txnRepo  repository.TransactionRepository
	log      *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	billRepo repository.BillRepository,
	txnRepo repository.TransactionRepository,
	log *zap.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		billRepo: billRepo,
		txnRepo:  txnRepo,
		log:      log,
	}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Name     string
	Phone    *string
	Email    *string
	Address  *string
	Village  *string
	Category enum.UserCategory
}

// UpdateUserInput represents the update user input
type UpdateUserInput struct {
	ID       uuid.UUID
	Name     *string
	Phone    *string
	Email    *string
	Address  *string
	Village  *string
	Category *enum.UserCategory
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// CreateUser stores a customer and assigns the next code of its category.
// New records start inactive and become active with their first bill.
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperror.NewFieldError("name", "Name is required")
	}

	category := input.Category
	if category == "" {
		category = enum.UserCategoryCustomer
	}
	if !category.IsValid() {
		return nil, apperror.NewFieldError("category", "Category must be customer, bmc or dabhadi")
	}

	prefix := category.CodePrefix()

	user := &entity.User{
		Name:     name,
		Phone:    trimmed(input.Phone),
		Email:    trimmed(input.Email),
		Address:  trimmed(input.Address),
		Village:  trimmed(input.Village),
		Category: category,
		Status:   enum.RecordStatusInactive,
	}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		last, err := s.userRepo.MaxCodeNumber(ctx, prefix)
		if err != nil {
			return nil, persistErr(s.log, "find last user code", err)
		}
		user.Code = utils.FormatUserCode(prefix, last+1)
		err = s.userRepo.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		if !infraRepo.IsDuplicateKey(err) {
			return nil, persistErr(s.log, "create user", err)
		}
		s.log.Debug("user code taken, retrying", zap.String("code", user.Code))
	}

	return nil, apperror.NewConflictError("Could not allocate a user code, please retry")
}

// GetUser retrieves a customer by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistErr(s.log, "load user", err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers returns a paginated list of customers
func (s *UserService) ListUsers(ctx context.Context, params *repository.UserFilterParams) (*pagination.PaginatedResult[entity.User], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, persistErr(s.log, "list users", err)
	}

	return pagination.Paginate(users, params.Pagination, total), nil
}

// UpdateUser changes contact details. The code never changes, even when
// the category does.
func (s *UserService) UpdateUser(ctx context.Context, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperror.NewFieldError("name", "Name cannot be empty")
		}
		user.Name = name
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, apperror.NewFieldError("category", "Category must be customer, bmc or dabhadi")
		}
		user.Category = *input.Category
	}
	if input.Phone != nil {
		user.Phone = trimmed(input.Phone)
	}
	if input.Email != nil {
		user.Email = trimmed(input.Email)
	}
	if input.Address != nil {
		user.Address = trimmed(input.Address)
	}
	if input.Village != nil {
		user.Village = trimmed(input.Village)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, persistErr(s.log, "update user", err)
	}
	return user, nil
}

// SetStatus activates or deactivates a customer
func (s *UserService) SetStatus(ctx context.Context, id uuid.UUID, status enum.RecordStatus) (*entity.User, error) {
	if !status.IsValid() {
		return nil, apperror.NewFieldError("status", "Status must be active or inactive")
	}
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetStatus(ctx, id, status); err != nil {
		return nil, persistErr(s.log, "update user status", err)
	}
	user.Status = status
	return user, nil
}

// DeleteUser removes a customer who has never been billed
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	count, err := s.billRepo.CountByUser(ctx, id)
	if err != nil {
		return persistErr(s.log, "count user bills", err)
	}
	if count > 0 {
		return apperror.NewConflictError("User has bills and cannot be deleted; deactivate instead")
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return persistErr(s.log, "delete user", err)
	}
	return nil
}

// Balance is a customer's running account, in rupees
type Balance struct {
	BillCount   int64   `json:"bill_count"`
	TotalBilled float64 `json:"total_billed"`
	TotalPaid   float64 `json:"total_paid"`
	Outstanding float64 `json:"outstanding"`
}

// UserLedger is a customer's account statement
type UserLedger struct {
	User         *entity.User                                    `json:"user"`
	Balance      Balance                                         `json:"balance"`
	Bills        *pagination.PaginatedResult[entity.Bill]        `json:"bills"`
	Transactions *pagination.PaginatedResult[entity.Transaction] `json:"transactions"`
}

// Ledger returns the balance with one page of bills and payments
func (s *UserService) Ledger(ctx context.Context, id uuid.UUID, page *pagination.PaginationParams) (*UserLedger, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if page == nil {
		page = pagination.DefaultPagination()
	}
	page.Validate()

	balance, err := s.billRepo.BalanceByUser(ctx, id)
	if err != nil {
		return nil, persistErr(s.log, "load balance", err)
	}

	billPage := *page
	bills, billTotal, err := s.billRepo.List(ctx, &repository.BillFilterParams{
		Pagination: &billPage,
		UserID:     &id,
	})
	if err != nil {
		return nil, persistErr(s.log, "list user bills", err)
	}

	txnPage := *page
	txns, txnTotal, err := s.txnRepo.List(ctx, &repository.TransactionFilterParams{
		Pagination: &txnPage,
		UserID:     &id,
	})
	if err != nil {
		return nil, persistErr(s.log, "list user transactions", err)
	}

	return &UserLedger{
		User: user,
		Balance: Balance{
			BillCount:   balance.BillCount,
			TotalBilled: utils.FromPaise(balance.TotalBilled),
			TotalPaid:   utils.FromPaise(balance.TotalPaid),
			Outstanding: utils.FromPaise(balance.Outstanding),
		},
		Bills:        pagination.Paginate(bills, page, billTotal),
		Transactions: pagination.Paginate(txns, page, txnTotal),
	}, nil
}
