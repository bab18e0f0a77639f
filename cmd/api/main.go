package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/app"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/application/service"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/config"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/cache"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/database"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/logger"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/scheduler"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.App.Env, cfg.App.Debug)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(&cfg.Database, cfg.App.Debug, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}

	ctx := context.Background()
	if err := database.CheckSchema(ctx, db); err != nil {
		zlog.Fatal("database schema check failed, run `admin migrate`", zap.Error(err))
	}

	reportCache, err := newCache(ctx, &cfg.Cache, zlog)
	if err != nil {
		zlog.Fatal("failed to set up cache", zap.Error(err))
	}

	clock := service.SystemClock{}
	a, err := app.New(cfg, db, app.Options{Clock: clock, Cache: reportCache, Log: zlog})
	if err != nil {
		zlog.Fatal("failed to build application", zap.Error(err))
	}
	defer a.Close()

	jobs := scheduler.New(zlog)
	if err := jobs.AddIdempotencyCleanup(cfg.Cron.IdempotencyCleanupSchedule, a.IdempotencyRepo, clock.Now); err != nil {
		zlog.Fatal("failed to schedule idempotency cleanup", zap.Error(err))
	}
	jobs.Start()

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting server", zap.String("service", cfg.App.Name), zap.String("port", port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
	jobs.Stop(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// newCache picks the report cache backend. Redis lets several API
// instances share cached reports.
func newCache(ctx context.Context, cfg *config.CacheConfig, zlog *zap.Logger) (cache.Cache, error) {
	switch cfg.Driver {
	case "redis":
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		zlog.Info("using redis report cache", zap.String("addr", cfg.RedisAddr))
		return cache.NewRedisCache(client), nil
	case "none":
		return nil, nil
	default:
		return cache.NewMemoryCache(), nil
	}
}
