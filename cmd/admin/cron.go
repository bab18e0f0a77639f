package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/scheduler"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runOnce bool

var cronCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Run the maintenance scheduler in the foreground",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.close()

		repo := repository.NewIdempotencyRepository(e.db)
		if runOnce {
			scheduler.PurgeIdempotencyKeys(cmd.Context(), repo, time.Now(), e.log)
			return nil
		}

		jobs := scheduler.New(e.log)
		if err := jobs.AddIdempotencyCleanup(e.cfg.Cron.IdempotencyCleanupSchedule, repo, time.Now); err != nil {
			return err
		}
		jobs.Start()
		e.log.Info("scheduler started", zap.String("idempotency_cleanup", e.cfg.Cron.IdempotencyCleanupSchedule))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		jobs.Stop(stopCtx)
		return nil
	},
}

func init() {
	cronCmd.Flags().BoolVar(&runOnce, "once", false, "Purge expired idempotency keys once and exit")
	rootCmd.AddCommand(cronCmd)
}
