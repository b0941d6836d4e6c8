package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocalGovernment is the tenant boundary: every Market and Chairman is
// scoped to exactly one local government area.
type LocalGovernment struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	State     string    `gorm:"type:varchar(100);not null" json:"state"`
	Address   string    `gorm:"type:text" json:"address"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Markets []Market `gorm:"foreignKey:LocalGovernmentID" json:"markets,omitempty"`
}

func (LocalGovernment) TableName() string {
	return "local_governments"
}

func (lg *LocalGovernment) BeforeCreate(tx *gorm.DB) error {
	if lg.ID == "" {
		lg.ID = uuid.NewString()
	}
	return nil
}
