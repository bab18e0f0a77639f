package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/infrastructure/export"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/apperror"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/utils"
	"go.uber.org/zap"
)

// FeedService handles the feed catalogue and its stock counters
type FeedService struct {
	transactor repository.Transactor
	feedRepo   repository.FeedRepository
	log        *zap.Logger
}

// NewFeedService creates a new feed service
func NewFeedService(transactor repository.Transactor, feedRepo repository.FeedRepository, log *zap.Logger) *FeedService {
	return &FeedService{
		transactor: transactor,
		feedRepo:   feedRepo,
		log:        log,
	}
}

// CreateFeedInput represents the create feed input
type CreateFeedInput struct {
	Name          string
	Brand         string
	Weight        float64
	Price         float64
	ShopStock     int
	GodownStock   int
	LowStockAlert int
}

// UpdateFeedInput represents the update feed input
type UpdateFeedInput struct {
	ID            uuid.UUID
	Name          *string
	Brand         *string
	Weight        *float64
	Price         *float64
	ShopStock     *int
	GodownStock   *int
	LowStockAlert *int
	Status        *enum.RecordStatus
}

func validateFeedNumbers(weight, price float64, shop, godown, alert int) []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	if weight < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "weight", Message: "Weight cannot be negative"})
	}
	if price < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "price", Message: "Price cannot be negative"})
	}
	if shop < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "shop_stock", Message: "Shop stock cannot be negative"})
	}
	if godown < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "godown_stock", Message: "Godown stock cannot be negative"})
	}
	if alert < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "low_stock_alert", Message: "Low stock alert cannot be negative"})
	}
	return fieldErrors
}

// CreateFeed adds a feed. Name and brand together must be unique.
func (s *FeedService) CreateFeed(ctx context.Context, input *CreateFeedInput) (*entity.Feed, error) {
	name := strings.TrimSpace(input.Name)
	brand := strings.TrimSpace(input.Brand)

	fieldErrors := validateFeedNumbers(input.Weight, input.Price, input.ShopStock, input.GodownStock, input.LowStockAlert)
	if name == "" {
		fieldErrors = append([]apperror.FieldError{{Field: "name", Message: "Name is required"}}, fieldErrors...)
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	existing, err := s.feedRepo.GetByNameAndBrand(ctx, name, brand)
	if err != nil {
		return nil, persistErr(s.log, "look up feed", err)
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("Feed %s (%s) already exists", name, brand))
	}

	feed := &entity.Feed{
		Name:          name,
		Brand:         brand,
		Weight:        input.Weight,
		Price:         utils.ToPaise(input.Price),
		ShopStock:     input.ShopStock,
		GodownStock:   input.GodownStock,
		Stock:         input.ShopStock + input.GodownStock,
		LowStockAlert: input.LowStockAlert,
		Status:        enum.RecordStatusActive,
	}
	if err := s.feedRepo.Create(ctx, feed); err != nil {
		return nil, persistErr(s.log, "create feed", err)
	}

	s.log.Info("feed created", zap.String("feed_id", feed.ID.String()), zap.String("name", feed.Name))
	return feed, nil
}

// GetFeed retrieves a feed by ID
func (s *FeedService) GetFeed(ctx context.Context, id uuid.UUID) (*entity.Feed, error) {
	feed, err := s.feedRepo.GetByID(ctx, id)
	if err != nil {
		return nil, persistErr(s.log, "load feed", err)
	}
	if feed == nil {
		return nil, apperror.NewNotFoundError("Feed")
	}
	return feed, nil
}

// ListFeeds retrieves feeds with filtering and pagination
func (s *FeedService) ListFeeds(ctx context.Context, params *repository.FeedFilterParams) (*pagination.PaginatedResult[entity.Feed], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	feeds, total, err := s.feedRepo.List(ctx, params)
	if err != nil {
		return nil, persistErr(s.log, "list feeds", err)
	}

	return pagination.Paginate(feeds, params.Pagination, total), nil
}

// UpdateFeed edits catalogue details. Setting either counter rewrites the
// legacy aggregate as shop plus godown.
func (s *FeedService) UpdateFeed(ctx context.Context, input *UpdateFeedInput) (*entity.Feed, error) {
	var feed *entity.Feed
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := s.feedRepo.GetByIDsForUpdate(ctx, []uuid.UUID{input.ID})
		if err != nil {
			return err
		}
		if len(locked) == 0 {
			return apperror.NewNotFoundError("Feed")
		}
		feed = &locked[0]

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return apperror.NewFieldError("name", "Name cannot be empty")
			}
			feed.Name = name
		}
		if input.Brand != nil {
			feed.Brand = strings.TrimSpace(*input.Brand)
		}
		if input.Weight != nil {
			feed.Weight = *input.Weight
		}
		price := utils.FromPaise(feed.Price)
		if input.Price != nil {
			price = *input.Price
		}
		countersChanged := false
		if input.ShopStock != nil {
			feed.ShopStock = *input.ShopStock
			countersChanged = true
		}
		if input.GodownStock != nil {
			feed.GodownStock = *input.GodownStock
			countersChanged = true
		}
		if input.LowStockAlert != nil {
			feed.LowStockAlert = *input.LowStockAlert
		}
		if input.Status != nil {
			if !input.Status.IsValid() {
				return apperror.NewFieldError("status", "Status must be active or inactive")
			}
			feed.Status = *input.Status
		}

		if fieldErrors := validateFeedNumbers(feed.Weight, price, feed.ShopStock, feed.GodownStock, feed.LowStockAlert); len(fieldErrors) > 0 {
			return apperror.NewValidationError(fieldErrors)
		}
		feed.Price = utils.ToPaise(price)
		if countersChanged {
			feed.Stock = feed.ShopStock + feed.GodownStock
		}

		if input.Name != nil || input.Brand != nil {
			other, err := s.feedRepo.GetByNameAndBrand(ctx, feed.Name, feed.Brand)
			if err != nil {
				return err
			}
			if other != nil && other.ID != feed.ID {
				return apperror.NewConflictError(fmt.Sprintf("Feed %s (%s) already exists", feed.Name, feed.Brand))
			}
		}

		return s.feedRepo.Update(ctx, feed)
	})
	if err != nil {
		return nil, persistErr(s.log, "update feed", err)
	}
	return feed, nil
}

// DeleteFeed deactivates a feed. Bills keep pointing at it.
func (s *FeedService) DeleteFeed(ctx context.Context, id uuid.UUID) error {
	inactive := enum.RecordStatusInactive
	_, err := s.UpdateFeed(ctx, &UpdateFeedInput{ID: id, Status: &inactive})
	return err
}

// GetLowStock lists active feeds at or below their alert level
func (s *FeedService) GetLowStock(ctx context.Context) ([]entity.Feed, error) {
	feeds, err := s.feedRepo.GetLowStock(ctx)
	if err != nil {
		return nil, persistErr(s.log, "list low stock feeds", err)
	}
	if feeds == nil {
		feeds = []entity.Feed{}
	}
	return feeds, nil
}

// ImportResult contains the result of a feed import
type ImportResult struct {
	TotalRows int              `json:"total_rows"`
	Created   int              `json:"created"`
	Updated   int              `json:"updated"`
	Failed    int              `json:"failed"`
	Errors    []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportFeeds reads an xlsx catalogue. Unknown feeds are created; a feed
// that already exists gets its details replaced and the sheet quantities
// added to its counters.
func (s *FeedService) ImportFeeds(ctx context.Context, r io.Reader) (*ImportResult, error) {
	rows, sheetErrs, err := export.ParseFeedSheet(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid import file: " + err.Error())
	}

	result := &ImportResult{TotalRows: len(rows) + len(sheetErrs)}
	for _, e := range sheetErrs {
		result.Errors = append(result.Errors, ImportRowError{Row: e.Row, Field: e.Field, Message: e.Message})
	}

	seen := make(map[string]int)
	for _, row := range rows {
		if row.Name == "" {
			result.Errors = append(result.Errors, ImportRowError{Row: row.Row, Field: "name", Message: "Name is required"})
			continue
		}
		if fe := validateFeedNumbers(row.Weight, row.Price, row.ShopStock, row.GodownStock, row.LowStockAlert); len(fe) > 0 {
			result.Errors = append(result.Errors, ImportRowError{Row: row.Row, Field: fe[0].Field, Message: fe[0].Message})
			continue
		}

		key := strings.ToLower(row.Name) + "|" + strings.ToLower(row.Brand)
		if prev, dup := seen[key]; dup {
			result.Errors = append(result.Errors, ImportRowError{
				Row:     row.Row,
				Field:   "name",
				Message: fmt.Sprintf("Duplicate feed '%s' (same as row %d)", row.Name, prev),
			})
			continue
		}
		seen[key] = row.Row

		created, err := s.importRow(ctx, row)
		if err != nil {
			s.log.Warn("feed import row failed", zap.Int("row", row.Row), zap.Error(err))
			result.Errors = append(result.Errors, ImportRowError{Row: row.Row, Field: "name", Message: apperror.GetAppError(err).Message})
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	result.Failed = len(result.Errors)
	s.log.Info("feed import finished",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))
	return result, nil
}

func (s *FeedService) importRow(ctx context.Context, row export.FeedSheetRow) (bool, error) {
	created := false
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.feedRepo.GetByNameAndBrand(ctx, row.Name, row.Brand)
		if err != nil {
			return err
		}

		if existing == nil {
			created = true
			return s.feedRepo.Create(ctx, &entity.Feed{
				Name:          row.Name,
				Brand:         row.Brand,
				Weight:        row.Weight,
				Price:         utils.ToPaise(row.Price),
				ShopStock:     row.ShopStock,
				GodownStock:   row.GodownStock,
				Stock:         row.ShopStock + row.GodownStock,
				LowStockAlert: row.LowStockAlert,
				Status:        enum.RecordStatusActive,
			})
		}

		existing.Weight = row.Weight
		existing.Price = utils.ToPaise(row.Price)
		existing.LowStockAlert = row.LowStockAlert
		existing.Status = enum.RecordStatusActive
		if err := s.feedRepo.UpdateDetails(ctx, existing); err != nil {
			return err
		}
		if row.ShopStock > 0 {
			if err := s.feedRepo.CreditStock(ctx, repository.StockMovement{FeedID: existing.ID, Location: enum.StorageLocationShop, Quantity: row.ShopStock, Legacy: row.ShopStock}); err != nil {
				return err
			}
		}
		if row.GodownStock > 0 {
			if err := s.feedRepo.CreditStock(ctx, repository.StockMovement{FeedID: existing.ID, Location: enum.StorageLocationGodown, Quantity: row.GodownStock, Legacy: row.GodownStock}); err != nil {
				return err
			}
		}
		return nil
	})
	return created, err
}
