package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	domainRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return conn(ctx, r.db).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := conn(ctx, r.db).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return conn(ctx, r.db).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.User{}, "id = ?", id).Error
}

func (r *userRepository) SetStatus(ctx context.Context, id uuid.UUID, status enum.RecordStatus) error {
	return conn(ctx, r.db).Model(&entity.User{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *userRepository) List(ctx context.Context, params *domainRepo.UserFilterParams) ([]entity.User, int64, error) {
	var users []entity.User
	var total int64

	query := conn(ctx, r.db).Model(&entity.User{}).
		Scopes(SearchScope(params.Search, "name", "code", "phone", "village"))

	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&users).Error

	return users, total, err
}

func (r *userRepository) MaxCodeNumber(ctx context.Context, prefix string) (int64, error) {
	var codes []string
	// zero padded codes sort numerically once grouped by length
	err := conn(ctx, r.db).Model(&entity.User{}).
		Where("code LIKE ?", prefix+"-%").
		Order("LENGTH(code) DESC, code DESC").
		Pluck("code", &codes).Error
	if err != nil {
		return 0, err
	}
	for _, code := range codes {
		n, err := strconv.ParseInt(strings.TrimPrefix(code, prefix+"-"), 10, 64)
		if err == nil && n > 0 {
			return n, nil
		}
	}
	return 0, nil
}

func (r *userRepository) Stats(ctx context.Context, newSince time.Time) (*domainRepo.UserStats, error) {
	var stats domainRepo.UserStats
	err := conn(ctx, r.db).Model(&entity.User{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active, "+
				"COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0) AS new_users",
			enum.RecordStatusActive, newSince.UTC(),
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
