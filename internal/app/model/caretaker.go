package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Caretaker is the market-level supervisor managing traders and the
// collectors (GoodBoys) who work under them.
type Caretaker struct {
	ID                string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	UserID            string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	MarketID          string    `gorm:"type:varchar(36);not null;index" json:"market_id"`
	LocalGovernmentID string    `gorm:"type:varchar(36);not null;index" json:"local_government_id"`
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Market   Market    `gorm:"foreignKey:MarketID" json:"market,omitempty"`
	GoodBoys []GoodBoy `gorm:"foreignKey:CaretakerID" json:"good_boys,omitempty"`
	Traders  []Trader  `gorm:"foreignKey:CaretakerID" json:"traders,omitempty"`
}

func (Caretaker) TableName() string {
	return "caretakers"
}

func (c *Caretaker) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
