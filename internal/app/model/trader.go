package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trader is a registered market vendor. Each trader belongs to exactly
// one market (optionally one section) and one caretaker. QRCode, when
// set, is globally unique and resolves to exactly one trader for
// on-the-spot payment lookup.
type Trader struct {
	ID           string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	UserID       string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	MarketID     string    `gorm:"type:varchar(36);not null;index" json:"market_id"`
	SectionID    *string   `gorm:"type:varchar(36);index" json:"section_id,omitempty"`
	CaretakerID  string    `gorm:"type:varchar(36);not null;index" json:"caretaker_id"`
	BusinessName string    `gorm:"type:varchar(100);not null" json:"business_name"`
	BusinessType string    `gorm:"type:varchar(50)" json:"business_type,omitempty"`
	TIN          string    `gorm:"column:tin;type:varchar(50);uniqueIndex;not null" json:"tin"` // tax identification number
	QRCode       *string   `gorm:"type:varchar(100);uniqueIndex" json:"qr_code,omitempty"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	User      User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Market    Market         `gorm:"foreignKey:MarketID" json:"market,omitempty"`
	Section   *MarketSection `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Caretaker Caretaker      `gorm:"foreignKey:CaretakerID" json:"caretaker,omitempty"`
}

func (Trader) TableName() string {
	return "traders"
}

func (t *Trader) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
