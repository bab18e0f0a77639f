package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDSNByDriver(t *testing.T) {
	pg := DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", Name: "feeds", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=feeds port=5432 sslmode=disable TimeZone=UTC", pg.DSN())

	my := DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", Name: "feeds", User: "u", Password: "p"}
	assert.Equal(t, "u:p@tcp(db:3306)/feeds?charset=utf8mb4&parseTime=True&loc=UTC", my.DSN())

	lite := DatabaseConfig{Driver: "sqlite", Path: "/tmp/x.db"}
	assert.True(t, strings.HasPrefix(lite.DSN(), "/tmp/x.db?_pragma=busy_timeout(5000)"))
	assert.Contains(t, lite.DSN(), "_txlock=immediate")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BILL_DUPLICATE_WINDOW_SECONDS", "30")

	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.Billing.DuplicateWindow)
	assert.Equal(t, 5, cfg.Billing.DuplicateLimit)
	assert.Equal(t, "BILL", cfg.Billing.BillPrefix)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, "none", cfg.Printer.Type)
	assert.Equal(t, 32, cfg.Printer.Width)
}

func TestLocationFallsBackToUTC(t *testing.T) {
	app := AppConfig{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, app.Location())
}
