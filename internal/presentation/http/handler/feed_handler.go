package handler

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/application/service"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/cache"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/dto/request"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

// maxImportSize caps uploaded catalogue workbooks
const maxImportSize = 10 << 20

// FeedHandler handles feed catalogue HTTP requests
type FeedHandler struct {
	feedService *service.FeedService
	reports     reportInvalidator
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService *service.FeedService, reportCache cache.Cache, log *zap.Logger) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		reports:     reportInvalidator{cache: reportCache, log: log},
	}
}

// List handles listing feeds
func (h *FeedHandler) List(c *gin.Context) {
	var filter request.FeedFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.feedService.ListFeeds(c.Request.Context(), &repository.FeedFilterParams{
		Pagination:      pageParams(filter.Page, filter.PerPage),
		Search:          filter.Search,
		Brand:           filter.Brand,
		LowStock:        filter.LowStock,
		IncludeInactive: filter.IncludeInactive,
		SortBy:          filter.SortBy,
		SortOrder:       filter.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Feeds retrieved successfully", result)
}

// Create handles creating a feed
func (h *FeedHandler) Create(c *gin.Context) {
	var req request.CreateFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	feed, err := h.feedService.CreateFeed(c.Request.Context(), &service.CreateFeedInput{
		Name:          req.Name,
		Brand:         req.Brand,
		Weight:        req.Weight,
		Price:         req.Price,
		ShopStock:     req.ShopStock,
		GodownStock:   req.GodownStock,
		LowStockAlert: req.LowStockAlert,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.reports.invalidate(c.Request.Context())
	response.Created(c, "Feed created successfully", feed)
}

// Get handles getting a single feed
func (h *FeedHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "feed")
	if !ok {
		return
	}

	feed, err := h.feedService.GetFeed(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Feed retrieved successfully", feed)
}

// Update handles updating a feed, including its stock counters
func (h *FeedHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "feed")
	if !ok {
		return
	}

	var req request.UpdateFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	input := &service.UpdateFeedInput{
		ID:            id,
		Name:          req.Name,
		Brand:         req.Brand,
		Weight:        req.Weight,
		Price:         req.Price,
		ShopStock:     req.ShopStock,
		GodownStock:   req.GodownStock,
		LowStockAlert: req.LowStockAlert,
	}
	if req.Status != nil {
		status := enum.RecordStatus(*req.Status)
		input.Status = &status
	}

	feed, err := h.feedService.UpdateFeed(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.reports.invalidate(c.Request.Context())
	response.OK(c, "Feed updated successfully", feed)
}

// Delete deactivates a feed. Bills that reference it keep their lines.
func (h *FeedHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "feed")
	if !ok {
		return
	}

	if err := h.feedService.DeleteFeed(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	h.reports.invalidate(c.Request.Context())
	response.NoContent(c)
}

// GetLowStock lists active feeds at or below their alert level
func (h *FeedHandler) GetLowStock(c *gin.Context) {
	feeds, err := h.feedService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock feeds retrieved successfully", feeds)
}

// Import loads an .xlsx catalogue sent as the multipart field "file"
func (h *FeedHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A workbook must be uploaded in the \"file\" field")
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		response.BadRequest(c, "Only .xlsx workbooks are supported")
		return
	}
	if header.Size > maxImportSize {
		response.BadRequest(c, "Workbook is larger than 10 MB")
		return
	}

	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "Could not read the uploaded workbook")
		return
	}
	defer file.Close()

	result, err := h.feedService.ImportFeeds(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Created > 0 || result.Updated > 0 {
		h.reports.invalidate(c.Request.Context())
	}
	response.OK(c, "Feed import finished", result)
}
