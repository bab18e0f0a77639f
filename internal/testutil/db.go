// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/config"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewDB opens a migrated sqlite database in a temp file. A file is used
// instead of :memory: so every pooled connection sees the same tables.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := database.Open(cfg, false, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a customer record
func CreateUser(t testing.TB, db *gorm.DB, name string) *entity.User {
	t.Helper()
	user := &entity.User{
		Code:     "CUS-" + name,
		Name:     name,
		Category: enum.UserCategoryCustomer,
		Status:   enum.RecordStatusInactive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// CreateFeed inserts a feed with the given counters. Legacy stock is set
// to shop + godown unless legacy is non-negative.
func CreateFeed(t testing.TB, db *gorm.DB, name string, price int64, shop, godown, legacy int) *entity.Feed {
	t.Helper()
	if legacy < 0 {
		legacy = shop + godown
	}
	feed := &entity.Feed{
		Name:        name,
		Brand:       "Test",
		Weight:      50,
		Price:       price,
		ShopStock:   shop,
		GodownStock: godown,
		Stock:       legacy,
	}
	if err := db.Create(feed).Error; err != nil {
		t.Fatalf("create feed: %v", err)
	}
	return feed
}

// ReloadFeed reads the feed back from the database
func ReloadFeed(t testing.TB, db *gorm.DB, feed *entity.Feed) *entity.Feed {
	t.Helper()
	var out entity.Feed
	if err := db.First(&out, "id = ?", feed.ID).Error; err != nil {
		t.Fatalf("reload feed: %v", err)
	}
	return &out
}

// FixedClock is a settable clock for tests. It is safe for concurrent use.
type FixedClock struct {
	mu sync.Mutex
	T  time.Time
}

// Now returns the current fake time
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.T
}

// Advance moves the clock forward
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.T = c.T.Add(d)
}
