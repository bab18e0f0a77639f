// Package app wires repositories, services and HTTP handlers together for
// the API server and the admin CLI.
package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/application/service"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/config"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	domainRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/cache"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/handler"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/middleware"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/routes"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/printer"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services are the application services built from one database handle
type Services struct {
	Auth     *service.AuthService
	Users    *service.UserService
	Feeds    *service.FeedService
	Bills    *service.BillService
	Payments *service.PaymentService
	Reports  *service.ReportService
	Receipts *service.ReceiptService
	JWT      *utils.JWTManager
}

// App holds everything the API process runs
type App struct {
	Services        *Services
	IdempotencyRepo domainRepo.IdempotencyRepository
	JWTManager      *utils.JWTManager
	RateLimiter     *middleware.RateLimiter
	Router          *gin.Engine
}

// Options carries the collaborators that differ between production and
// tests. Zero values pick the production default.
type Options struct {
	Clock   service.Clock
	Cache   cache.Cache
	Printer printer.Printer
	Log     *zap.Logger
}

// NewServices builds the application services
func NewServices(cfg *config.Config, db *gorm.DB, opts Options) (*Services, error) {
	opts = withDefaults(opts)
	loc := cfg.App.Location()

	transactor := repository.NewTransactor(db)
	adminRepo := repository.NewAdminRepository(db)
	userRepo := repository.NewUserRepository(db)
	feedRepo := repository.NewFeedRepository(db)
	billRepo := repository.NewBillRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	reportRepo := repository.NewReportRepository(db)

	header := entity.InvoiceHeader{
		BusinessName: cfg.Business.Name,
		Address:      cfg.Business.Address,
		Phone:        cfg.Business.Phone,
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.App.Name, cfg.JWT.ExpiryHours)
	duplicates := service.NewDuplicateDetector(billRepo, opts.Clock, cfg.Billing.DuplicateWindow, cfg.Billing.DuplicateLimit)

	bills := service.NewBillService(transactor, billRepo, feedRepo, userRepo, txnRepo, duplicates, opts.Clock,
		service.BillOptions{Prefix: cfg.Billing.BillPrefix, Header: header, Location: loc}, opts.Log)

	p := opts.Printer
	if p == nil {
		var err error
		p, err = printer.New(printer.Config{
			Type:       cfg.Printer.Type,
			DevicePath: cfg.Printer.USBPath,
			Address:    cfg.Printer.Address,
		})
		if err != nil {
			return nil, err
		}
	}

	return &Services{
		Auth:     service.NewAuthService(adminRepo, jwtManager, opts.Clock, opts.Log),
		Users:    service.NewUserService(userRepo, billRepo, txnRepo, opts.Log),
		Feeds:    service.NewFeedService(transactor, feedRepo, opts.Log),
		Bills:    bills,
		Payments: service.NewPaymentService(transactor, billRepo, txnRepo, userRepo, opts.Clock, opts.Log),
		Reports:  service.NewReportService(reportRepo, userRepo, opts.Clock, loc, header, opts.Log),
		Receipts: service.NewReceiptService(p, bills, cfg.Printer.Type, cfg.Printer.Width, opts.Log),
		JWT:      jwtManager,
	}, nil
}

// New builds the services and the HTTP router
func New(cfg *config.Config, db *gorm.DB, opts Options) (*App, error) {
	opts = withDefaults(opts)

	services, err := NewServices(cfg, db, opts)
	if err != nil {
		return nil, err
	}

	a := &App{
		Services:        services,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		JWTManager:      services.JWT,
		RateLimiter:     newRateLimiter(cfg),
	}

	loc := cfg.App.Location()
	handlers := &routes.Handlers{
		Auth: handler.NewAuthHandler(services.Auth, handler.CookieConfig{
			Name:   cfg.JWT.CookieName,
			Secure: cfg.App.Env == "production",
		}),
		User:    handler.NewUserHandler(services.Users),
		Feed:    handler.NewFeedHandler(services.Feeds, opts.Cache, opts.Log),
		Bill:    handler.NewBillHandler(services.Bills, services.Payments, opts.Cache, loc, opts.Log),
		Report:  handler.NewReportHandler(services.Reports, opts.Cache, cfg.Cache.TTL, opts.Log),
		Printer: handler.NewPrinterHandler(services.Receipts),
	}

	a.Router = routes.Setup(handlers, &routes.Deps{
		JWTManager:      a.JWTManager,
		Cfg:             cfg,
		IdempotencyRepo: a.IdempotencyRepo,
		RateLimiter:     a.RateLimiter,
		Log:             opts.Log,
		Now:             opts.Clock.Now,
	})

	return a, nil
}

// Close stops background work started by New
func (a *App) Close() {
	if a.RateLimiter != nil {
		a.RateLimiter.Stop()
	}
}

func newRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	if cfg.RateLimit.Requests <= 0 || cfg.RateLimit.Duration <= 0 {
		return nil
	}
	return middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
}

func withDefaults(opts Options) Options {
	if opts.Clock == nil {
		opts.Clock = service.SystemClock{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return opts
}
