package repository

import (
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type TraderFilter struct {
	MarketID    string
	CaretakerID string
	SectionID   string
	Search      string
	ActiveOnly  bool
	Page        PageFilter
}

type TraderRepository interface {
	Create(trader *model.Trader) error
	FindByID(id string) (*model.Trader, error)
	FindByQRCode(qrCode string) (*model.Trader, error)
	FindByUserID(userID string) (*model.Trader, error)
	List(filter TraderFilter) (*Page[model.Trader], error)
	Update(trader *model.Trader) error
	Deactivate(id string) error
	CountByMarket(marketID string) (int64, error)
	CountByCaretaker(caretakerID string) (int64, error)
	CountRegisteredBetween(marketID string, start, end time.Time) (int64, error)
}

type traderRepository struct {
	db *gorm.DB
}

func NewTraderRepository(db *gorm.DB) TraderRepository {
	return &traderRepository{db: db}
}

func (r *traderRepository) preloadTrader() *gorm.DB {
	return r.db.Preload("User").Preload("Market").Preload("Section").
		Preload("Caretaker", func(db *gorm.DB) *gorm.DB {
			return db.Preload("User")
		})
}

func (r *traderRepository) Create(trader *model.Trader) error {
	logger.Debug("Creating trader in database", map[string]interface{}{
		"user_id":   trader.UserID,
		"market_id": trader.MarketID,
		"tin":       trader.TIN,
	})

	if err := r.db.Create(trader).Error; err != nil {
		logger.Error("Failed to create trader in database", err, map[string]interface{}{
			"user_id":   trader.UserID,
			"market_id": trader.MarketID,
		})
		return err
	}
	return nil
}

func (r *traderRepository) FindByID(id string) (*model.Trader, error) {
	var trader model.Trader
	if err := r.preloadTrader().First(&trader, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &trader, nil
}

// FindByQRCode resolves the unique payment QR code to its trader.
func (r *traderRepository) FindByQRCode(qrCode string) (*model.Trader, error) {
	var trader model.Trader
	if err := r.preloadTrader().First(&trader, "qr_code = ?", qrCode).Error; err != nil {
		return nil, err
	}
	return &trader, nil
}

func (r *traderRepository) FindByUserID(userID string) (*model.Trader, error) {
	var trader model.Trader
	if err := r.preloadTrader().First(&trader, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &trader, nil
}

func (r *traderRepository) List(filter TraderFilter) (*Page[model.Trader], error) {
	query := r.db.Model(&model.Trader{}).Preload("User").Preload("Section")

	if filter.MarketID != "" {
		query = query.Where("market_id = ?", filter.MarketID)
	}
	if filter.CaretakerID != "" {
		query = query.Where("caretaker_id = ?", filter.CaretakerID)
	}
	if filter.SectionID != "" {
		query = query.Where("section_id = ?", filter.SectionID)
	}
	if filter.Search != "" {
		query = query.Where("business_name LIKE ?", "%"+filter.Search+"%")
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}

	return Paginate[model.Trader](query, filter.Page)
}

func (r *traderRepository) Update(trader *model.Trader) error {
	if err := r.db.Save(trader).Error; err != nil {
		logger.Error("Failed to update trader in database", err, map[string]interface{}{
			"trader_id": trader.ID,
		})
		return err
	}
	return nil
}

func (r *traderRepository) Deactivate(id string) error {
	return r.db.Model(&model.Trader{}).Where("id = ?", id).
		Update("is_active", false).Error
}

func (r *traderRepository) CountByMarket(marketID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Trader{}).
		Where("market_id = ? AND is_active = ?", marketID, true).
		Count(&count).Error
	return count, err
}

func (r *traderRepository) CountByCaretaker(caretakerID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Trader{}).
		Where("caretaker_id = ? AND is_active = ?", caretakerID, true).
		Count(&count).Error
	return count, err
}

func (r *traderRepository) CountRegisteredBetween(marketID string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Trader{}).
		Where("market_id = ? AND created_at >= ? AND created_at < ?", marketID, start, end).
		Count(&count).Error
	return count, err
}
