package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	domainRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, adminID uuid.UUID) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := conn(ctx, r.db).
		Where("idem_key = ? AND admin_id = ?", key, adminID).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

// Create stores the key, replacing an expired record with the same key
func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "idem_key"}, {Name: "admin_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"endpoint", "response_code", "response_body", "expires_at"}),
	}).Create(ikey).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := conn(ctx, r.db).
		Where("expires_at < ?", before.UTC()).
		Delete(&entity.IdempotencyKey{})
	return result.RowsAffected, result.Error
}
