package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chairman is the local-government-level supervisor. The unique index
// on MarketID enforces at most one chairman per market.
type Chairman struct {
	ID                string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	UserID            string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	LocalGovernmentID string    `gorm:"type:varchar(36);not null;index" json:"local_government_id"`
	MarketID          string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"market_id"`
	Title             string    `gorm:"type:varchar(100)" json:"title,omitempty"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	User            User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	LocalGovernment LocalGovernment `gorm:"foreignKey:LocalGovernmentID" json:"local_government,omitempty"`
	Market          Market          `gorm:"foreignKey:MarketID" json:"market,omitempty"`
}

func (Chairman) TableName() string {
	return "chairmen"
}

func (c *Chairman) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
