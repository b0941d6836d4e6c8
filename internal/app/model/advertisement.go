package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type AdvertStatus string

const (
	AdvertStatusPending  AdvertStatus = "pending"
	AdvertStatusActive   AdvertStatus = "active"
	AdvertStatusRejected AdvertStatus = "rejected"
	AdvertStatusExpired  AdvertStatus = "expired"
)

// Advertisement is a vendor ad placement. Admins approve or reject
// pending placements; active placements expire by EndDate.
type Advertisement struct {
	ID              string         `gorm:"primarykey;type:varchar(36)" json:"id"`
	VendorID        string         `gorm:"type:varchar(36);not null;index" json:"vendor_id"` // User ID of the vendor
	Title           string         `gorm:"type:varchar(200);not null" json:"title"`
	Description     string         `gorm:"type:text" json:"description,omitempty"`
	ImageURL        string         `gorm:"type:text" json:"image_url,omitempty"` // S3 URL
	TargetLocations pq.StringArray `gorm:"type:text[]" json:"target_locations"`
	StartDate       time.Time      `gorm:"not null" json:"start_date"`
	EndDate         time.Time      `gorm:"not null" json:"end_date"`
	Status          AdvertStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Vendor User `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

func (Advertisement) TableName() string {
	return "advertisements"
}

func (a *Advertisement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
