// Command admin runs maintenance tasks against the trading database:
// schema migration, seeding, catalogue import and offline reports.
package main

import (
	"fmt"
	"os"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/config"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/database"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:           "admin",
	Short:         "Gurudatta Traders back-office maintenance",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// env is what every subcommand needs to reach the database
type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func setup() (*env, error) {
	cfg := config.Load()
	log, err := logger.New(cfg.App.Env, cfg.App.Debug)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	db, err := database.Open(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = e.log.Sync()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
