package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
)

// AdminRepository defines the interface for back-office operators
type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Admin, error)
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
