package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction is an append-only payment record against a bill
type Transaction struct {
	ID          uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	BillID      uuid.UUID            `gorm:"type:uuid;not null;index" json:"bill_id"`
	Type        enum.TransactionType `gorm:"size:20;not null;default:'payment'" json:"type"`
	Amount      int64                `gorm:"not null" json:"-"` // Stored in paise
	Description string               `gorm:"size:500" json:"description"`
	CreatedAt   time.Time            `gorm:"index" json:"created_at"`

	// Relationships
	Bill *Bill `gorm:"foreignKey:BillID" json:"bill,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (t Transaction) MarshalJSON() ([]byte, error) {
	type Alias Transaction
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(t),
		Amount: float64(t.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
