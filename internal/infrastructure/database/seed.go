package database

import (
	"context"
	"fmt"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/config"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDefaultData creates the first admin from configuration when no
// admin with that email exists yet
func SeedDefaultData(ctx context.Context, db *gorm.DB, cfg *config.AdminSeedConfig, log *zap.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		log.Info("admin seed skipped, ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&entity.Admin{}).Where("email = ?", cfg.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up admin: %w", err)
	}
	if count > 0 {
		log.Info("admin already exists", zap.String("email", cfg.Email))
		return nil
	}

	hashed, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = "Administrator"
	}

	admin := entity.Admin{
		Name:     name,
		Email:    cfg.Email,
		Password: hashed,
		Role:     enum.AdminRoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Info("admin user created", zap.String("email", cfg.Email))
	return nil
}

// SeedDemoFeeds inserts a small catalogue for local development. Existing
// feeds are left alone.
func SeedDemoFeeds(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&entity.Feed{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	feeds := []entity.Feed{
		{Name: "Cattle Feed Gold", Brand: "Godrej", Weight: 50, Price: 135000, ShopStock: 20, GodownStock: 80, Stock: 100, LowStockAlert: 10},
		{Name: "Pashu Aahar", Brand: "Amul", Weight: 50, Price: 128000, ShopStock: 10, GodownStock: 40, Stock: 50, LowStockAlert: 10},
		{Name: "Mineral Mixture", Brand: "Virbac", Weight: 5, Price: 45000, ShopStock: 15, GodownStock: 0, Stock: 15, LowStockAlert: 5},
	}
	if err := db.WithContext(ctx).Create(&feeds).Error; err != nil {
		return fmt.Errorf("failed to seed feeds: %w", err)
	}

	log.Info("demo feeds created", zap.Int("count", len(feeds)))
	return nil
}
