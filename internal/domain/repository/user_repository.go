package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
)

// UserRepository defines the interface for customer record operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status enum.RecordStatus) error
	List(ctx context.Context, params *UserFilterParams) ([]entity.User, int64, error)
	// MaxCodeNumber returns the highest numeric suffix among codes that
	// start with prefix, 0 when there are none
	MaxCodeNumber(ctx context.Context, prefix string) (int64, error)
	Stats(ctx context.Context, newSince time.Time) (*UserStats, error)
}

// UserFilterParams contains filtering parameters for user queries
type UserFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   *enum.UserCategory
	Status     *enum.RecordStatus
}

// UserStats counts customer records for the dashboard
type UserStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
	New    int64 `gorm:"column:new_users" json:"new"`
}
