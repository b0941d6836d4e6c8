package repository

import (
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type CaretakerRepository interface {
	Create(caretaker *model.Caretaker) error
	FindByID(id string) (*model.Caretaker, error)
	FindByUserID(userID string) (*model.Caretaker, error)
	List(marketID string, page PageFilter) (*Page[model.Caretaker], error)
	Update(caretaker *model.Caretaker) error
	CountByMarket(marketID string) (int64, error)
	CountRegisteredBetween(marketID string, start, end time.Time) (int64, error)
}

type caretakerRepository struct {
	db *gorm.DB
}

func NewCaretakerRepository(db *gorm.DB) CaretakerRepository {
	return &caretakerRepository{db: db}
}

func (r *caretakerRepository) Create(caretaker *model.Caretaker) error {
	logger.Debug("Creating caretaker in database", map[string]interface{}{
		"user_id":   caretaker.UserID,
		"market_id": caretaker.MarketID,
	})

	if err := r.db.Create(caretaker).Error; err != nil {
		logger.Error("Failed to create caretaker in database", err, map[string]interface{}{
			"user_id": caretaker.UserID,
		})
		return err
	}
	return nil
}

func (r *caretakerRepository) FindByID(id string) (*model.Caretaker, error) {
	var caretaker model.Caretaker
	err := r.db.Preload("User").Preload("Market").
		First(&caretaker, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &caretaker, nil
}

func (r *caretakerRepository) FindByUserID(userID string) (*model.Caretaker, error) {
	var caretaker model.Caretaker
	err := r.db.Preload("Market").
		First(&caretaker, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &caretaker, nil
}

func (r *caretakerRepository) List(marketID string, page PageFilter) (*Page[model.Caretaker], error) {
	query := r.db.Model(&model.Caretaker{}).Preload("User")
	if marketID != "" {
		query = query.Where("market_id = ?", marketID)
	}
	return Paginate[model.Caretaker](query, page)
}

func (r *caretakerRepository) Update(caretaker *model.Caretaker) error {
	if err := r.db.Save(caretaker).Error; err != nil {
		logger.Error("Failed to update caretaker in database", err, map[string]interface{}{
			"caretaker_id": caretaker.ID,
		})
		return err
	}
	return nil
}

func (r *caretakerRepository) CountByMarket(marketID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Caretaker{}).
		Where("market_id = ? AND is_active = ?", marketID, true).
		Count(&count).Error
	return count, err
}

func (r *caretakerRepository) CountRegisteredBetween(marketID string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Caretaker{}).
		Where("market_id = ? AND created_at >= ? AND created_at < ?", marketID, start, end).
		Count(&count).Error
	return count, err
}
