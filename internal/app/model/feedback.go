package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerFeedback is a rated comment a user leaves against a market.
type CustomerFeedback struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	MarketID  string    `gorm:"type:varchar(36);not null;index" json:"market_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Market Market `gorm:"foreignKey:MarketID" json:"market,omitempty"`
}

func (CustomerFeedback) TableName() string {
	return "customer_feedback"
}

func (f *CustomerFeedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
