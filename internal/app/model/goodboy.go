package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoodBoyStatus string

const (
	GoodBoyStatusUnlocked GoodBoyStatus = "unlocked" // may record collections
	GoodBoyStatusLocked   GoodBoyStatus = "locked"   // collection recording blocked
)

// GoodBoy is the field collector who records levy payments from traders
// on behalf of a caretaker. TotalCollections is a running counter of
// paid collections, incremented as a side effect of levy recording.
type GoodBoy struct {
	ID               string        `gorm:"primarykey;type:varchar(36)" json:"id"`
	UserID           string        `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	CaretakerID      string        `gorm:"type:varchar(36);not null;index" json:"caretaker_id"`
	MarketID         string        `gorm:"type:varchar(36);not null;index" json:"market_id"`
	Status           GoodBoyStatus `gorm:"type:varchar(20);not null;default:'unlocked'" json:"status"`
	TotalCollections int64         `gorm:"not null;default:0" json:"total_collections"`
	IsActive         bool          `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Caretaker Caretaker `gorm:"foreignKey:CaretakerID" json:"caretaker,omitempty"`
	Market    Market    `gorm:"foreignKey:MarketID" json:"market,omitempty"`
}

func (GoodBoy) TableName() string {
	return "good_boys"
}

func (g *GoodBoy) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
