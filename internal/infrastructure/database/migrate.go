package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SchemaVersion is the schema this build expects. Bump it whenever the
// entity set or a column changes.
const SchemaVersion = 4

// ErrSchemaOutdated is returned when the database has not been migrated
// to SchemaVersion.
var ErrSchemaOutdated = errors.New("database schema is outdated, run the migrate command")

func models() []interface{} {
	return []interface{}{
		&entity.Admin{},
		&entity.User{},
		&entity.Feed{},
		&entity.Bill{},
		&entity.BillItem{},
		&entity.Transaction{},
		&entity.IdempotencyKey{},
		&entity.SchemaMigration{},
	}
}

// AutoMigrate runs GORM auto-migration for all entities and records
// SchemaVersion
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	if err := db.AutoMigrate(models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	current, err := CurrentVersion(context.Background(), db)
	if err != nil {
		return err
	}
	if current > 0 && current < 4 {
		// bills sold before version 4 credited the full quantity back to
		// the legacy aggregate
		err := db.Model(&entity.BillItem{}).
			Where("legacy_debited = 0").
			Update("legacy_debited", gorm.Expr("quantity")).Error
		if err != nil {
			return fmt.Errorf("failed to backfill legacy debits: %w", err)
		}
	}
	if current < SchemaVersion {
		rec := entity.SchemaMigration{Version: SchemaVersion, AppliedAt: time.Now().UTC()}
		if err := db.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}

	log.Info("database migrations completed", zap.Int("version", SchemaVersion))
	return nil
}

// CurrentVersion returns the highest applied schema version, or 0 when
// the database has never been migrated
func CurrentVersion(ctx context.Context, db *gorm.DB) (int, error) {
	if !db.Migrator().HasTable(&entity.SchemaMigration{}) {
		return 0, nil
	}
	var version int
	err := db.WithContext(ctx).Model(&entity.SchemaMigration{}).
		Select("COALESCE(MAX(version), 0)").
		Scan(&version).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// CheckSchema fails unless the database is at SchemaVersion or newer
func CheckSchema(ctx context.Context, db *gorm.DB) error {
	version, err := CurrentVersion(ctx, db)
	if err != nil {
		return err
	}
	if version < SchemaVersion {
		return fmt.Errorf("%w (have %d, need %d)", ErrSchemaOutdated, version, SchemaVersion)
	}
	return nil
}
