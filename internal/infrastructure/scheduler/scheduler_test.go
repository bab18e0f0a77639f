package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	infraRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPurgeIdempotencyKeys(t *testing.T) {
	db := testutil.NewDB(t)
	repo := infraRepo.NewIdempotencyRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	admin := uuid.New()

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "old", AdminID: admin, Endpoint: "POST /api/v1/bills", ResponseCode: 201, ExpiresAt: now.Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "fresh", AdminID: admin, Endpoint: "POST /api/v1/bills", ResponseCode: 201, ExpiresAt: now.Add(time.Hour),
	}))

	assert.Equal(t, int64(1), PurgeIdempotencyKeys(ctx, repo, now, zap.NewNop()))

	kept, err := repo.GetByKey(ctx, "fresh", admin)
	require.NoError(t, err)
	assert.NotNil(t, kept)

	gone, err := repo.GetByKey(ctx, "old", admin)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAddIdempotencyCleanup_RejectsBadSchedule(t *testing.T) {
	s := New(zap.NewNop())
	err := s.AddIdempotencyCleanup("not a schedule", nil, time.Now)
	assert.Error(t, err)
}
