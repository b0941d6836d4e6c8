package repository

import (
	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type ChairmanRepository interface {
	Create(chairman *model.Chairman) error
	FindByID(id string) (*model.Chairman, error)
	FindByUserID(userID string) (*model.Chairman, error)
	FindByMarketID(marketID string) (*model.Chairman, error)
	List(localGovernmentID string, page PageFilter) (*Page[model.Chairman], error)
	Update(chairman *model.Chairman) error
}

type chairmanRepository struct {
	db *gorm.DB
}

func NewChairmanRepository(db *gorm.DB) ChairmanRepository {
	return &chairmanRepository{db: db}
}

func (r *chairmanRepository) Create(chairman *model.Chairman) error {
	logger.Debug("Creating chairman in database", map[string]interface{}{
		"user_id":   chairman.UserID,
		"market_id": chairman.MarketID,
	})

	// The unique index on market_id enforces one chairman per market;
	// violations surface as a duplicate-key error.
	if err := r.db.Create(chairman).Error; err != nil {
		logger.Error("Failed to create chairman in database", err, map[string]interface{}{
			"user_id":   chairman.UserID,
			"market_id": chairman.MarketID,
		})
		return err
	}
	return nil
}

func (r *chairmanRepository) FindByID(id string) (*model.Chairman, error) {
	var chairman model.Chairman
	err := r.db.Preload("User").Preload("Market").Preload("LocalGovernment").
		First(&chairman, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &chairman, nil
}

func (r *chairmanRepository) FindByUserID(userID string) (*model.Chairman, error) {
	var chairman model.Chairman
	err := r.db.Preload("Market").
		First(&chairman, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &chairman, nil
}

func (r *chairmanRepository) FindByMarketID(marketID string) (*model.Chairman, error) {
	var chairman model.Chairman
	err := r.db.Preload("User").
		First(&chairman, "market_id = ?", marketID).Error
	if err != nil {
		return nil, err
	}
	return &chairman, nil
}

func (r *chairmanRepository) List(localGovernmentID string, page PageFilter) (*Page[model.Chairman], error) {
	query := r.db.Model(&model.Chairman{}).Preload("User").Preload("Market")
	if localGovernmentID != "" {
		query = query.Where("local_government_id = ?", localGovernmentID)
	}
	return Paginate[model.Chairman](query, page)
}

func (r *chairmanRepository) Update(chairman *model.Chairman) error {
	if err := r.db.Save(chairman).Error; err != nil {
		logger.Error("Failed to update chairman in database", err, map[string]interface{}{
			"chairman_id": chairman.ID,
		})
		return err
	}
	return nil
}
