package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/application/service"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/cache"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

// ReportHandler serves dashboard and report endpoints. JSON reports are
// cached under cache.ReportsPrefix until a write invalidates them or the
// TTL runs out.
type ReportHandler struct {
	reportService *service.ReportService
	cache         cache.Cache
	ttl           time.Duration
	log           *zap.Logger
}

// NewReportHandler creates a new report handler. A nil cache disables
// caching.
func NewReportHandler(reportService *service.ReportService, reportCache cache.Cache, ttl time.Duration, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		cache:         reportCache,
		ttl:           ttl,
		log:           log,
	}
}

// cached returns the stored response for key or computes and stores it
func (h *ReportHandler) cached(ctx context.Context, key string, compute func() (any, error)) (json.RawMessage, error) {
	if h.cache != nil {
		data, ok, err := h.cache.Get(ctx, key)
		if err != nil {
			h.log.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return data, nil
		}
	}

	value, err := compute()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, data, h.ttl); err != nil {
			h.log.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return data, nil
}

func queryLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return limit
}

// Dashboard returns the overview for ?period=today|month|year
func (h *ReportHandler) Dashboard(c *gin.Context) {
	period, err := service.ParsePeriod(c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	data, err := h.cached(ctx, cache.ReportsPrefix+"dashboard:"+string(period), func() (any, error) {
		return h.reportService.Dashboard(ctx, period)
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard retrieved successfully", data)
}

// Creditors lists customers with outstanding balances
func (h *ReportHandler) Creditors(c *gin.Context) {
	limit := queryLimit(c)

	ctx := c.Request.Context()
	data, err := h.cached(ctx, fmt.Sprintf("%screditors:%d", cache.ReportsPrefix, limit), func() (any, error) {
		return h.reportService.Creditors(ctx, limit)
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Creditors retrieved successfully", data)
}

// TopFeeds lists the best sellers of the period
func (h *ReportHandler) TopFeeds(c *gin.Context) {
	period, err := service.ParsePeriod(c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}
	limit := queryLimit(c)

	ctx := c.Request.Context()
	data, err := h.cached(ctx, fmt.Sprintf("%stop-feeds:%s:%d", cache.ReportsPrefix, period, limit), func() (any, error) {
		return h.reportService.TopFeeds(ctx, period, limit)
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Top feeds retrieved successfully", data)
}

// SalesPDF downloads the sales report of the period
func (h *ReportHandler) SalesPDF(c *gin.Context) {
	period, err := service.ParsePeriod(c.Query("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := h.reportService.SalesReportPDF(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.File(c, "application/pdf", fmt.Sprintf("sales-%s.pdf", period), data)
}
