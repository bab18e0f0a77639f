package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	domainRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"gorm.io/gorm"
)

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) domainRepo.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *entity.Admin) error {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	return conn(ctx, r.db).Create(admin).Error
}

func (r *adminRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error) {
	var admin entity.Admin
	err := conn(ctx, r.db).First(&admin, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &admin, err
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var admin entity.Admin
	err := conn(ctx, r.db).
		First(&admin, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &admin, err
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return conn(ctx, r.db).Model(&entity.Admin{}).
		Where("id = ?", id).
		Update("last_login_at", at.UTC()).Error
}
