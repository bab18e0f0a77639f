package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"gorm.io/gorm"
)

// Feed is a stocked product. Stock is counted in bags at two locations;
// Stock is the legacy aggregate kept in step with the location counters.
type Feed struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name          string            `gorm:"size:255;not null;index" json:"name"`
	Brand         string            `gorm:"size:255;index" json:"brand"`
	Weight        float64           `gorm:"default:0" json:"weight"`
	Price         int64             `gorm:"default:0" json:"-"` // Stored in paise
	ShopStock     int               `gorm:"not null;default:0" json:"shop_stock"`
	GodownStock   int               `gorm:"not null;default:0" json:"godown_stock"`
	Stock         int               `gorm:"not null;default:0" json:"stock"`
	LowStockAlert int               `gorm:"default:0" json:"low_stock_alert"`
	Status        enum.RecordStatus `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (f Feed) MarshalJSON() ([]byte, error) {
	type Alias Feed
	return json.Marshal(&struct {
		Alias
		Price      float64 `json:"price"`
		TotalStock int     `json:"total_stock"`
		IsLowStock bool    `json:"is_low_stock"`
	}{
		Alias:      Alias(f),
		Price:      float64(f.Price) / 100,
		TotalStock: f.TotalStock(),
		IsLowStock: f.IsLowStock(),
	})
}

// BeforeCreate generates a UUID before creating a new feed
func (f *Feed) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Status == "" {
		f.Status = enum.RecordStatusActive
	}
	return nil
}

// TableName returns the table name for the Feed model
func (Feed) TableName() string {
	return "feeds"
}

// TotalStock is the sum of both location counters
func (f *Feed) TotalStock() int {
	return f.ShopStock + f.GodownStock
}

// IsLowStock reports whether total stock has dropped to the alert level
func (f *Feed) IsLowStock() bool {
	return f.LowStockAlert > 0 && f.TotalStock() <= f.LowStockAlert
}

// IsActive reports whether the feed can still be billed
func (f *Feed) IsActive() bool {
	return f.Status == enum.RecordStatusActive
}
