package repository

import (
	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type GoodBoyFilter struct {
	MarketID    string
	CaretakerID string
	Status      model.GoodBoyStatus
	ActiveOnly  bool
	Page        PageFilter
}

type GoodBoyRepository interface {
	Create(goodBoy *model.GoodBoy) error
	FindByID(id string) (*model.GoodBoy, error)
	FindByUserID(userID string) (*model.GoodBoy, error)
	List(filter GoodBoyFilter) (*Page[model.GoodBoy], error)
	Update(goodBoy *model.GoodBoy) error
	UpdateStatus(id string, status model.GoodBoyStatus) error
	Deactivate(id string) error
}

type goodBoyRepository struct {
	db *gorm.DB
}

func NewGoodBoyRepository(db *gorm.DB) GoodBoyRepository {
	return &goodBoyRepository{db: db}
}

func (r *goodBoyRepository) Create(goodBoy *model.GoodBoy) error {
	logger.Debug("Creating collector in database", map[string]interface{}{
		"user_id":      goodBoy.UserID,
		"caretaker_id": goodBoy.CaretakerID,
		"market_id":    goodBoy.MarketID,
	})

	if err := r.db.Create(goodBoy).Error; err != nil {
		logger.Error("Failed to create collector in database", err, map[string]interface{}{
			"user_id": goodBoy.UserID,
		})
		return err
	}
	return nil
}

func (r *goodBoyRepository) FindByID(id string) (*model.GoodBoy, error) {
	var goodBoy model.GoodBoy
	err := r.db.Preload("User").Preload("Caretaker").Preload("Market").
		First(&goodBoy, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &goodBoy, nil
}

func (r *goodBoyRepository) FindByUserID(userID string) (*model.GoodBoy, error) {
	var goodBoy model.GoodBoy
	err := r.db.Preload("User").Preload("Market").
		First(&goodBoy, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &goodBoy, nil
}

func (r *goodBoyRepository) List(filter GoodBoyFilter) (*Page[model.GoodBoy], error) {
	query := r.db.Model(&model.GoodBoy{}).Preload("User")

	if filter.MarketID != "" {
		query = query.Where("market_id = ?", filter.MarketID)
	}
	if filter.CaretakerID != "" {
		query = query.Where("caretaker_id = ?", filter.CaretakerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	return Paginate[model.GoodBoy](query, filter.Page)
}

func (r *goodBoyRepository) Update(goodBoy *model.GoodBoy) error {
	if err := r.db.Save(goodBoy).Error; err != nil {
		logger.Error("Failed to update collector in database", err, map[string]interface{}{
			"good_boy_id": goodBoy.ID,
		})
		return err
	}
	return nil
}

func (r *goodBoyRepository) UpdateStatus(id string, status model.GoodBoyStatus) error {
	logger.Debug("Updating collector status in database", map[string]interface{}{
		"good_boy_id": id,
		"status":      status,
	})

	if err := r.db.Model(&model.GoodBoy{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update collector status in database", err, map[string]interface{}{
			"good_boy_id": id,
		})
		return err
	}
	return nil
}

func (r *goodBoyRepository) Deactivate(id string) error {
	return r.db.Model(&model.GoodBoy{}).Where("id = ?", id).
		Update("is_active", false).Error
}
