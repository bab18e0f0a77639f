// Package scheduler runs housekeeping jobs on a cron schedule.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"go.uber.org/zap"
)

// Scheduler wraps a cron runner with the housekeeping jobs registered
type Scheduler struct {
	cron *cron.Cron
	log  *zap.Logger
}

// New creates an idle scheduler
func New(log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		log:  log,
	}
}

// AddIdempotencyCleanup registers the job that purges expired idempotency keys
func (s *Scheduler) AddIdempotencyCleanup(schedule string, repo repository.IdempotencyRepository, now func() time.Time) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		PurgeIdempotencyKeys(ctx, repo, now(), s.log)
	})
	return err
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}

// PurgeIdempotencyKeys deletes keys that expired before now
func PurgeIdempotencyKeys(ctx context.Context, repo repository.IdempotencyRepository, now time.Time, log *zap.Logger) int64 {
	deleted, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		log.Error("idempotency cleanup failed", zap.Error(err))
		return 0
	}
	if deleted > 0 {
		log.Info("expired idempotency keys removed", zap.Int64("count", deleted))
	}
	return deleted
}
