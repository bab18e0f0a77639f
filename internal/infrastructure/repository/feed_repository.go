package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	domainRepo "github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/repository"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
	"gorm.io/gorm"
)

type feedRepository struct {
	db *gorm.DB
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *gorm.DB) domainRepo.FeedRepository {
	return &feedRepository{db: db}
}

func (r *feedRepository) Create(ctx context.Context, feed *entity.Feed) error {
	return conn(ctx, r.db).Create(feed).Error
}

func (r *feedRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Feed, error) {
	var feed entity.Feed
	err := conn(ctx, r.db).First(&feed, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &feed, err
}

// GetByIDs retrieves multiple feeds by their IDs in a single query
func (r *feedRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Feed, error) {
	if len(ids) == 0 {
		return []entity.Feed{}, nil
	}
	var feeds []entity.Feed
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&feeds).Error
	return feeds, err
}

func (r *feedRepository) GetByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]entity.Feed, error) {
	if len(ids) == 0 {
		return []entity.Feed{}, nil
	}
	var feeds []entity.Feed
	err := conn(ctx, r.db).
		Scopes(forUpdate(ctx)).
		Where("id IN ?", ids).
		Order("id").
		Find(&feeds).Error
	return feeds, err
}

func (r *feedRepository) GetByNameAndBrand(ctx context.Context, name, brand string) (*entity.Feed, error) {
	var feed entity.Feed
	err := conn(ctx, r.db).
		Where("LOWER(name) = LOWER(?) AND LOWER(brand) = LOWER(?)", name, brand).
		First(&feed).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &feed, err
}

func (r *feedRepository) Update(ctx context.Context, feed *entity.Feed) error {
	return conn(ctx, r.db).Save(feed).Error
}

func (r *feedRepository) UpdateDetails(ctx context.Context, feed *entity.Feed) error {
	return conn(ctx, r.db).Model(feed).
		Select("name", "brand", "weight", "price", "low_stock_alert", "status", "updated_at").
		Updates(feed).Error
}

var feedSortColumns = map[string]bool{
	"name": true, "brand": true, "price": true, "created_at": true,
	"shop_stock": true, "godown_stock": true, "stock": true,
}

func (r *feedRepository) List(ctx context.Context, params *domainRepo.FeedFilterParams) ([]entity.Feed, int64, error) {
	var feeds []entity.Feed
	var total int64

	query := conn(ctx, r.db).Model(&entity.Feed{}).
		Scopes(SearchScope(params.Search, "name", "brand"))

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	} else if !params.IncludeInactive {
		query = query.Where("status = ?", enum.RecordStatusActive)
	}

	if params.Brand != "" {
		query = query.Where("LOWER(brand) = LOWER(?)", params.Brand)
	}

	if params.LowStock {
		query = query.Where("low_stock_alert > 0 AND shop_stock + godown_stock <= low_stock_alert")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(orderBy(params.SortBy, params.SortOrder, feedSortColumns, "created_at")).
		Find(&feeds).Error

	return feeds, total, err
}

func (r *feedRepository) GetLowStock(ctx context.Context) ([]entity.Feed, error) {
	var feeds []entity.Feed
	err := conn(ctx, r.db).
		Where("status = ? AND low_stock_alert > 0 AND shop_stock + godown_stock <= low_stock_alert", enum.RecordStatusActive).
		Order("shop_stock + godown_stock ASC").
		Find(&feeds).Error
	return feeds, err
}

// stockColumn maps a location onto the counter that backs it
func stockColumn(loc enum.StorageLocation) string {
	if loc.IsShop() {
		return "shop_stock"
	}
	return "godown_stock"
}

// DebitStock decrements stock in place so concurrent sales cannot both
// spend the same bags. The legacy mirror follows the counter and is
// clamped at zero.
func (r *feedRepository) DebitStock(ctx context.Context, m domainRepo.StockMovement) (bool, error) {
	db := conn(ctx, r.db).Model(&entity.Feed{})

	var result *gorm.DB
	if m.LegacyOnly {
		result = db.
			Where("id = ? AND stock >= ? AND shop_stock = 0 AND godown_stock = 0", m.FeedID, m.Quantity).
			Update("stock", gorm.Expr("stock - ?", m.Quantity))
	} else {
		col := stockColumn(m.Location)
		result = db.
			Where("id = ? AND "+col+" >= ?", m.FeedID, m.Quantity).
			Updates(map[string]interface{}{
				col:     gorm.Expr(col+" - ?", m.Quantity),
				"stock": gorm.Expr("CASE WHEN stock >= ? THEN stock - ? ELSE 0 END", m.Quantity, m.Quantity),
			})
	}

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreditStock returns stock to the counter it was drawn from. A location
// credit restores m.Legacy on the aggregate.
func (r *feedRepository) CreditStock(ctx context.Context, m domainRepo.StockMovement) error {
	db := conn(ctx, r.db).Model(&entity.Feed{}).Where("id = ?", m.FeedID)

	if m.LegacyOnly {
		return db.Update("stock", gorm.Expr("stock + ?", m.Quantity)).Error
	}

	col := stockColumn(m.Location)
	return db.Updates(map[string]interface{}{
		col:     gorm.Expr(col+" + ?", m.Quantity),
		"stock": gorm.Expr("stock + ?", m.Legacy),
	}).Error
}
