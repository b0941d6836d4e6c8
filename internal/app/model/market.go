package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Market holds cached aggregate columns (TotalRevenue through
// NonCompliantTraders) that are snapshots written by the compliance
// engine. They are stale until RefreshMarketSnapshot runs; readers who
// need live numbers must recompute, not read these.
type Market struct {
	ID                string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	LocalGovernmentID string    `gorm:"type:varchar(36);not null;index" json:"local_government_id"`
	Name              string    `gorm:"type:varchar(100);not null" json:"name"`
	Location          string    `gorm:"type:text;not null" json:"location"`
	Description       string    `gorm:"type:text" json:"description,omitempty"`
	Capacity          int       `gorm:"not null;default:0" json:"capacity"` // total stall capacity
	IsActive          bool      `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Snapshot aggregates, written by ComplianceService.RefreshMarketSnapshot.
	TotalRevenue        float64    `gorm:"default:0" json:"total_revenue"`
	TotalTraders        int        `gorm:"default:0" json:"total_traders"`
	CompliantTraders    int        `gorm:"default:0" json:"compliant_traders"`
	NonCompliantTraders int        `gorm:"default:0" json:"non_compliant_traders"`
	ComplianceRate      float64    `gorm:"default:0" json:"compliance_rate"`
	OccupancyRate       float64    `gorm:"default:0" json:"occupancy_rate"`
	SnapshotAt          *time.Time `json:"snapshot_at,omitempty"` // last recompute time

	LocalGovernment LocalGovernment `gorm:"foreignKey:LocalGovernmentID" json:"local_government,omitempty"`
	Sections        []MarketSection `gorm:"foreignKey:MarketID" json:"sections,omitempty"`
	Traders         []Trader        `gorm:"foreignKey:MarketID" json:"traders,omitempty"`
}

func (Market) TableName() string {
	return "markets"
}

func (m *Market) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// MarketSection is an optional subdivision of a market that traders can
// be assigned to.
type MarketSection struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"id"`
	MarketID  string    `gorm:"type:varchar(36);not null;index" json:"market_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Capacity  int       `gorm:"not null;default:0" json:"capacity"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MarketSection) TableName() string {
	return "market_sections"
}

func (s *MarketSection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
