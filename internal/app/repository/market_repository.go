package repository

import (
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

// MarketSnapshot is the set of cached aggregate columns the compliance
// engine writes back onto a market row.
type MarketSnapshot struct {
	TotalRevenue        float64
	TotalTraders        int
	CompliantTraders    int
	NonCompliantTraders int
	ComplianceRate      float64
	OccupancyRate       float64
	SnapshotAt          time.Time
}

type MarketFilter struct {
	LocalGovernmentID string
	Search            string
	ActiveOnly        bool
	Page              PageFilter
}

type MarketRepository interface {
	Create(market *model.Market) error
	FindByID(id string) (*model.Market, error)
	List(filter MarketFilter) (*Page[model.Market], error)
	ListAllActive() ([]model.Market, error)
	Update(market *model.Market) error
	UpdateSnapshot(id string, snapshot MarketSnapshot) error
	Deactivate(id string) error
	CreateSection(section *model.MarketSection) error
	FindSectionByID(id string) (*model.MarketSection, error)
}

type marketRepository struct {
	db *gorm.DB
}

func NewMarketRepository(db *gorm.DB) MarketRepository {
	return &marketRepository{db: db}
}

func (r *marketRepository) Create(market *model.Market) error {
	logger.Debug("Creating market in database", map[string]interface{}{
		"name":                market.Name,
		"local_government_id": market.LocalGovernmentID,
	})

	if err := r.db.Create(market).Error; err != nil {
		logger.Error("Failed to create market in database", err, map[string]interface{}{
			"name": market.Name,
		})
		return err
	}
	return nil
}

func (r *marketRepository) FindByID(id string) (*model.Market, error) {
	var market model.Market
	err := r.db.
		Preload("LocalGovernment").
		Preload("Sections").
		First(&market, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &market, nil
}

func (r *marketRepository) List(filter MarketFilter) (*Page[model.Market], error) {
	query := r.db.Model(&model.Market{})

	if filter.LocalGovernmentID != "" {
		query = query.Where("local_government_id = ?", filter.LocalGovernmentID)
	}
	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	return Paginate[model.Market](query, filter.Page)
}

func (r *marketRepository) ListAllActive() ([]model.Market, error) {
	var markets []model.Market
	if err := r.db.Where("is_active = ?", true).Find(&markets).Error; err != nil {
		logger.Error("Failed to list active markets in database", err)
		return nil, err
	}
	return markets, nil
}

func (r *marketRepository) Update(market *model.Market) error {
	if err := r.db.Save(market).Error; err != nil {
		logger.Error("Failed to update market in database", err, map[string]interface{}{
			"market_id": market.ID,
		})
		return err
	}
	return nil
}

// UpdateSnapshot writes only the cached aggregate columns, leaving the
// descriptive columns untouched.
func (r *marketRepository) UpdateSnapshot(id string, snapshot MarketSnapshot) error {
	logger.Debug("Writing market snapshot to database", map[string]interface{}{
		"market_id":       id,
		"total_traders":   snapshot.TotalTraders,
		"compliance_rate": snapshot.ComplianceRate,
	})

	err := r.db.Model(&model.Market{}).Where("id = ?", id).Updates(map[string]interface{}{
		"total_revenue":         snapshot.TotalRevenue,
		"total_traders":         snapshot.TotalTraders,
		"compliant_traders":     snapshot.CompliantTraders,
		"non_compliant_traders": snapshot.NonCompliantTraders,
		"compliance_rate":       snapshot.ComplianceRate,
		"occupancy_rate":        snapshot.OccupancyRate,
		"snapshot_at":           snapshot.SnapshotAt,
	}).Error
	if err != nil {
		logger.Error("Failed to write market snapshot", err, map[string]interface{}{
			"market_id": id,
		})
		return err
	}
	return nil
}

func (r *marketRepository) Deactivate(id string) error {
	return r.db.Model(&model.Market{}).Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *marketRepository) CreateSection(section *model.MarketSection) error {
	if err := r.db.Create(section).Error; err != nil {
		logger.Error("Failed to create market section in database", err, map[string]interface{}{
			"market_id": section.MarketID,
			"name":      section.Name,
		})
		return err
	}
	return nil
}

func (r *marketRepository) FindSectionByID(id string) (*model.MarketSection, error) {
	var section model.MarketSection
	if err := r.db.First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}
