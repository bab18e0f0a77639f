package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/config"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	domainRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/handler"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/middleware"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	User    *handler.UserHandler
	Feed    *handler.FeedHandler
	Bill    *handler.BillHandler
	Report  *handler.ReportHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.RateLimiter
	Log             *zap.Logger
	// Now feeds the idempotency expiry check; nil means time.Now
	Now func() time.Time
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		public := v1.Group("")
		if deps.RateLimiter != nil {
			public.Use(deps.RateLimiter.Middleware())
		}
		public.POST("/auth/login", h.Auth.Login)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager, deps.Cfg.JWT.CookieName))
		if deps.RateLimiter != nil {
			protected.Use(deps.RateLimiter.Middleware())
		}

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	adminOnly := middleware.RequireRole(string(enum.AdminRoleAdmin))
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		Log:  deps.Log,
		Now:  deps.Now,
	})

	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)

	users := protected.Group("/users")
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", adminOnly, h.User.Delete)
		users.PUT("/:id/status", h.User.UpdateStatus)
		users.GET("/:id/ledger", h.User.Ledger)
	}

	feeds := protected.Group("/feeds")
	{
		feeds.GET("", h.Feed.List)
		feeds.POST("", h.Feed.Create)
		feeds.GET("/low-stock", h.Feed.GetLowStock)
		feeds.POST("/import", h.Feed.Import)
		feeds.GET("/:id", h.Feed.Get)
		feeds.PUT("/:id", h.Feed.Update)
		feeds.DELETE("/:id", adminOnly, h.Feed.Delete)
	}

	bills := protected.Group("/bills")
	{
		bills.GET("", h.Bill.List)
		bills.POST("", idempotent, h.Bill.Create)
		bills.GET("/:id", h.Bill.Get)
		bills.DELETE("/:id", adminOnly, h.Bill.Delete)
		bills.POST("/:id/void", adminOnly, h.Bill.Void)
		bills.GET("/:id/payments", h.Bill.ListPayments)
		bills.POST("/:id/payments", idempotent, h.Bill.RecordPayment)
		bills.GET("/:id/pdf", h.Bill.InvoicePDF)
		bills.POST("/:id/print", h.Printer.PrintBill)
	}

	protected.GET("/printer/status", h.Printer.GetStatus)

	protected.GET("/transactions", h.Bill.ListTransactions)

	reports := protected.Group("/reports")
	{
		reports.GET("/dashboard", h.Report.Dashboard)
		reports.GET("/creditors", h.Report.Creditors)
		reports.GET("/top-feeds", h.Report.TopFeeds)
		reports.GET("/sales.pdf", h.Report.SalesPDF)
	}
}
