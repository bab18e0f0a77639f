package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Billing   BillingConfig
	Cache     CacheConfig
	Cron      CronConfig
	Business  BusinessConfig
	Admin     AdminSeedConfig
	Printer   PrinterConfig
}

type AppConfig struct {
	Name     string
	Env      string
	Port     string
	Debug    bool
	Timezone string
}

type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
	// Path is the database file when Driver is sqlite
	Path string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
	CookieName  string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type BillingConfig struct {
	BillPrefix      string
	DuplicateWindow time.Duration
	DuplicateLimit  int
}

type CacheConfig struct {
	Driver        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

type CronConfig struct {
	IdempotencyCleanupSchedule string
}

type BusinessConfig struct {
	Name    string
	Address string
	Phone   string
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

type AdminSeedConfig struct {
	Name     string
	Email    string
	Password string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "gurudatta-traders-api")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "gurudatta")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("DB_PATH", "./gurudatta.db")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("JWT_COOKIE_NAME", "auth-token")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("BILL_PREFIX", "BILL")
	viper.SetDefault("BILL_DUPLICATE_WINDOW_SECONDS", 10)
	viper.SetDefault("BILL_DUPLICATE_LIMIT", 5)
	viper.SetDefault("CACHE_DRIVER", "memory")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL_SECONDS", 60)
	viper.SetDefault("CRON_IDEMPOTENCY_CLEANUP", "@hourly")
	viper.SetDefault("BUSINESS_NAME", "Gurudatta Traders")
	viper.SetDefault("BUSINESS_ADDRESS", "")
	viper.SetDefault("BUSINESS_PHONE", "")
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_USB_PATH", "/dev/usb/lp0")
	viper.SetDefault("PRINTER_ADDRESS", "")
	viper.SetDefault("PRINTER_WIDTH", 32)

	return &Config{
		App: AppConfig{
			Name:     viper.GetString("APP_NAME"),
			Env:      viper.GetString("APP_ENV"),
			Port:     viper.GetString("APP_PORT"),
			Debug:    viper.GetBool("APP_DEBUG"),
			Timezone: viper.GetString("APP_TIMEZONE"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("DB_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
			Path:     viper.GetString("DB_PATH"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
			CookieName:  viper.GetString("JWT_COOKIE_NAME"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Billing: BillingConfig{
			BillPrefix:      viper.GetString("BILL_PREFIX"),
			DuplicateWindow: time.Duration(viper.GetInt("BILL_DUPLICATE_WINDOW_SECONDS")) * time.Second,
			DuplicateLimit:  viper.GetInt("BILL_DUPLICATE_LIMIT"),
		},
		Cache: CacheConfig{
			Driver:        viper.GetString("CACHE_DRIVER"),
			RedisAddr:     viper.GetString("REDIS_ADDR"),
			RedisPassword: viper.GetString("REDIS_PASSWORD"),
			RedisDB:       viper.GetInt("REDIS_DB"),
			TTL:           time.Duration(viper.GetInt("CACHE_TTL_SECONDS")) * time.Second,
		},
		Cron: CronConfig{
			IdempotencyCleanupSchedule: viper.GetString("CRON_IDEMPOTENCY_CLEANUP"),
		},
		Business: BusinessConfig{
			Name:    viper.GetString("BUSINESS_NAME"),
			Address: viper.GetString("BUSINESS_ADDRESS"),
			Phone:   viper.GetString("BUSINESS_PHONE"),
		},
		Admin: AdminSeedConfig{
			Name:     viper.GetString("ADMIN_NAME"),
			Email:    viper.GetString("ADMIN_EMAIL"),
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
	}
}

// DSN builds the driver-specific connection string
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Name)
	case "sqlite":
		return c.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_txlock=immediate"
	default:
		return "host=" + c.Host +
			" user=" + c.User +
			" password=" + c.Password +
			" dbname=" + c.Name +
			" port=" + c.Port +
			" sslmode=" + c.SSLMode +
			" TimeZone=" + c.Timezone
	}
}

// Location returns the business timezone used for report periods
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
