package repository

import (
	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type FeedbackRepository interface {
	Create(feedback *model.CustomerFeedback) error
	FindByID(id string) (*model.CustomerFeedback, error)
	ListByMarket(marketID string, page PageFilter) (*Page[model.CustomerFeedback], error)
	AverageRating(marketID string) (float64, error)
	Deactivate(id string) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(feedback *model.CustomerFeedback) error {
	if err := r.db.Create(feedback).Error; err != nil {
		logger.Error("Failed to create feedback in database", err, map[string]interface{}{
			"user_id":   feedback.UserID,
			"market_id": feedback.MarketID,
		})
		return err
	}
	return nil
}

func (r *feedbackRepository) FindByID(id string) (*model.CustomerFeedback, error) {
	var feedback model.CustomerFeedback
	if err := r.db.Preload("User").First(&feedback, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) ListByMarket(marketID string, page PageFilter) (*Page[model.CustomerFeedback], error) {
	query := r.db.Model(&model.CustomerFeedback{}).Preload("User").
		Where("market_id = ? AND is_active = ?", marketID, true)
	return Paginate[model.CustomerFeedback](query, page)
}

func (r *feedbackRepository) AverageRating(marketID string) (float64, error) {
	var result struct {
		Average float64
	}
	err := r.db.Model(&model.CustomerFeedback{}).
		Select("COALESCE(AVG(rating), 0) as average").
		Where("market_id = ? AND is_active = ?", marketID, true).
		Scan(&result).Error
	if err != nil {
		return 0, err
	}
	return result.Average, nil
}

func (r *feedbackRepository) Deactivate(id string) error {
	return r.db.Model(&model.CustomerFeedback{}).Where("id = ?", id).
		Update("is_active", false).Error
}
