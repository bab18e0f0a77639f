package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shubham0454/Gurudatta-trader-s-sub000/internal/domain/enum"
	"gorm.io/gorm"
)

// User is a customer record: a farmer, a BMC or a Dabhadi account
type User struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Code      string            `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name      string            `gorm:"size:255;not null;index" json:"name"`
	Phone     *string           `gorm:"size:20" json:"phone,omitempty"`
	Email     *string           `gorm:"size:255" json:"email,omitempty"`
	Address   *string           `gorm:"type:text" json:"address,omitempty"`
	Village   *string           `gorm:"size:255" json:"village,omitempty"`
	Category  enum.UserCategory `gorm:"size:20;not null;default:'customer';index" json:"category"`
	Status    enum.RecordStatus `gorm:"size:20;not null;default:'active';index" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
