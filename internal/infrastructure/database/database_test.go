package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/config"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "db.sqlite")}
	db, err := database.Open(cfg, false, zap.NewNop())
	require.NoError(t, err)
	return db
}

func TestCheckSchema_FreshDatabaseIsOutdated(t *testing.T) {
	db := openSQLite(t)

	err := database.CheckSchema(context.Background(), db)

	assert.ErrorIs(t, err, database.ErrSchemaOutdated)
}

func TestAutoMigrate_RecordsVersionOnce(t *testing.T) {
	db := openSQLite(t)
	log := zap.NewNop()

	require.NoError(t, database.AutoMigrate(db, log))
	require.NoError(t, database.AutoMigrate(db, log))

	require.NoError(t, database.CheckSchema(context.Background(), db))

	var count int64
	require.NoError(t, db.Model(&entity.SchemaMigration{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := database.Open(&config.DatabaseConfig{Driver: "oracle"}, false, zap.NewNop())
	assert.Error(t, err)
}

func TestSeedDefaultData(t *testing.T) {
	db := openSQLite(t)
	log := zap.NewNop()
	require.NoError(t, database.AutoMigrate(db, log))
	ctx := context.Background()

	seed := &config.AdminSeedConfig{Email: "owner@example.com", Password: "secret"}
	require.NoError(t, database.SeedDefaultData(ctx, db, seed, log))
	require.NoError(t, database.SeedDefaultData(ctx, db, seed, log))

	var admins []entity.Admin
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "Administrator", admins[0].Name)
	assert.NotEqual(t, "secret", admins[0].Password)

	require.NoError(t, database.SeedDemoFeeds(ctx, db, log))
	var feeds int64
	require.NoError(t, db.Model(&entity.Feed{}).Count(&feeds).Error)
	assert.Equal(t, int64(3), feeds)
}

func TestAutoMigrate_BackfillsLegacyDebitsFromVersion3(t *testing.T) {
	db := openSQLite(t)
	log := zap.NewNop()
	require.NoError(t, database.AutoMigrate(db, log))

	user := entity.User{Name: "Ramesh", Code: "CUS-0001", Category: enum.UserCategoryCustomer}
	require.NoError(t, db.Create(&user).Error)
	feed := entity.Feed{Name: "Cattle Feed", Brand: "Test"}
	require.NoError(t, db.Create(&feed).Error)
	bill := entity.Bill{
		BillNumber: "BILL-000001",
		Sequence:   1,
		UserID:     user.ID,
		BillDate:   time.Now(),
		Items:      []entity.BillItem{{FeedID: feed.ID, Quantity: 5, StorageLocation: "godown"}},
	}
	require.NoError(t, db.Create(&bill).Error)

	// pretend the database was last migrated by an older build
	require.NoError(t, db.Where("1 = 1").Delete(&entity.SchemaMigration{}).Error)
	require.NoError(t, db.Create(&entity.SchemaMigration{Version: 3, AppliedAt: time.Now()}).Error)

	require.NoError(t, database.AutoMigrate(db, log))

	var item entity.BillItem
	require.NoError(t, db.First(&item, "bill_id = ?", bill.ID).Error)
	assert.Equal(t, 5, item.LegacyDebited)
	require.NoError(t, database.CheckSchema(context.Background(), db))
}
