package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/entity"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/pkg/pagination"
)

// StockMovement is a relative change to one feed's stock
type StockMovement struct {
	FeedID   uuid.UUID
	Location enum.StorageLocation
	Quantity int
	// LegacyOnly moves only the legacy aggregate, leaving both location
	// counters untouched.
	LegacyOnly bool
	// Legacy is how much of the legacy aggregate a location credit puts
	// back. Debits clamp the aggregate at zero and ignore it.
	Legacy int
}

// FeedRepository defines the interface for feed data operations
type FeedRepository interface {
	Create(ctx context.Context, feed *entity.Feed) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Feed, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Feed, error)
	// GetByIDsForUpdate reads feeds with a row lock where the dialect supports it
	GetByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]entity.Feed, error)
	GetByNameAndBrand(ctx context.Context, name, brand string) (*entity.Feed, error)
	Update(ctx context.Context, feed *entity.Feed) error
	// UpdateDetails writes the catalogue columns only. Stock counters are
	// left to DebitStock and CreditStock.
	UpdateDetails(ctx context.Context, feed *entity.Feed) error
	List(ctx context.Context, params *FeedFilterParams) ([]entity.Feed, int64, error)
	GetLowStock(ctx context.Context) ([]entity.Feed, error)
	// DebitStock applies a guarded decrement. It returns false when the
	// counter could not cover the quantity and nothing was changed.
	DebitStock(ctx context.Context, m StockMovement) (bool, error)
	CreditStock(ctx context.Context, m StockMovement) error
}

// FeedFilterParams contains filtering parameters for feed queries
type FeedFilterParams struct {
	Pagination      *pagination.PaginationParams
	Search          string
	Brand           string
	Status          *enum.RecordStatus
	LowStock        bool
	IncludeInactive bool
	SortBy          string
	SortOrder       string
}
