package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"gorm.io/gorm"
)

// Bill is a sales document. Pending is always Total minus Paid.
type Bill struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	BillNumber    string             `gorm:"size:32;uniqueIndex;not null" json:"bill_number"`
	Sequence      int64              `gorm:"uniqueIndex;not null" json:"-"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalAmount   int64              `gorm:"not null;default:0;index" json:"-"` // Stored in paise
	PaidAmount    int64              `gorm:"not null;default:0" json:"-"`       // Stored in paise
	PendingAmount int64              `gorm:"not null;default:0" json:"-"`       // Stored in paise
	Status        enum.PaymentStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	BillStatus    enum.BillStatus    `gorm:"size:20;not null;default:'active';index" json:"bill_status"`
	Notes         *string            `gorm:"type:text" json:"notes,omitempty"`
	BillDate      time.Time          `gorm:"not null" json:"bill_date"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	User  *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		TotalAmount   float64 `json:"total_amount"`
		PaidAmount    float64 `json:"paid_amount"`
		PendingAmount float64 `json:"pending_amount"`
	}{
		Alias:         Alias(b),
		TotalAmount:   float64(b.TotalAmount) / 100,
		PaidAmount:    float64(b.PaidAmount) / 100,
		PendingAmount: float64(b.PendingAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// IsVoid reports whether the bill has been voided
func (b *Bill) IsVoid() bool {
	return b.BillStatus == enum.BillStatusVoid
}

// BillItem is one immutable line of a bill
type BillItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BillID          uuid.UUID `gorm:"type:uuid;not null;index" json:"bill_id"`
	FeedID          uuid.UUID `gorm:"type:uuid;not null;index" json:"feed_id"`
	Position        int       `gorm:"not null;default:0" json:"position"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	UnitPrice       int64     `gorm:"not null" json:"-"` // Stored in paise
	Total           int64     `gorm:"not null" json:"-"` // Stored in paise
	StorageLocation string    `gorm:"size:50;not null;default:'godown'" json:"storage_location"`
	// LegacyDraw marks a line served from the legacy aggregate because both
	// location counters were empty at sale time.
	LegacyDraw bool `gorm:"not null;default:false" json:"legacy_draw"`
	// LegacyDebited is how many bags the sale took off the legacy
	// aggregate, which is clamped at zero and may be less than Quantity.
	LegacyDebited int       `gorm:"not null;default:0" json:"-"`
	CreatedAt     time.Time `json:"created_at"`

	// Relationships
	Feed *Feed `gorm:"foreignKey:FeedID" json:"feed,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (bi BillItem) MarshalJSON() ([]byte, error) {
	type Alias BillItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(bi),
		UnitPrice: float64(bi.UnitPrice) / 100,
		Total:     float64(bi.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
