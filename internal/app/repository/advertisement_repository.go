package repository

import (
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type AdvertFilter struct {
	VendorID string
	Status   model.AdvertStatus
	Page     PageFilter
}

type AdvertisementRepository interface {
	Create(advert *model.Advertisement) error
	FindByID(id string) (*model.Advertisement, error)
	List(filter AdvertFilter) (*Page[model.Advertisement], error)
	Update(advert *model.Advertisement) error
	UpdateStatus(id string, status model.AdvertStatus, reason string) error
	ExpireOutdated(now time.Time) (int64, error)
}

type advertisementRepository struct {
	db *gorm.DB
}

func NewAdvertisementRepository(db *gorm.DB) AdvertisementRepository {
	return &advertisementRepository{db: db}
}

func (r *advertisementRepository) Create(advert *model.Advertisement) error {
	logger.Debug("Creating advertisement in database", map[string]interface{}{
		"vendor_id": advert.VendorID,
		"title":     advert.Title,
	})

	if err := r.db.Create(advert).Error; err != nil {
		logger.Error("Failed to create advertisement in database", err, map[string]interface{}{
			"vendor_id": advert.VendorID,
		})
		return err
	}
	return nil
}

func (r *advertisementRepository) FindByID(id string) (*model.Advertisement, error) {
	var advert model.Advertisement
	if err := r.db.Preload("Vendor").First(&advert, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &advert, nil
}

func (r *advertisementRepository) List(filter AdvertFilter) (*Page[model.Advertisement], error) {
	query := r.db.Model(&model.Advertisement{}).Preload("Vendor")

	if filter.VendorID != "" {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	return Paginate[model.Advertisement](query, filter.Page)
}

func (r *advertisementRepository) Update(advert *model.Advertisement) error {
	if err := r.db.Save(advert).Error; err != nil {
		logger.Error("Failed to update advertisement in database", err, map[string]interface{}{
			"advert_id": advert.ID,
		})
		return err
	}
	return nil
}

func (r *advertisementRepository) UpdateStatus(id string, status model.AdvertStatus, reason string) error {
	updates := map[string]interface{}{"status": status}
	if reason != "" {
		updates["rejection_reason"] = reason
	}
	if err := r.db.Model(&model.Advertisement{}).Where("id = ?", id).
		Updates(updates).Error; err != nil {
		logger.Error("Failed to update advertisement status in database", err, map[string]interface{}{
			"advert_id": id,
			"status":    status,
		})
		return err
	}
	return nil
}

// ExpireOutdated marks active placements whose end date has passed.
func (r *advertisementRepository) ExpireOutdated(now time.Time) (int64, error) {
	result := r.db.Model(&model.Advertisement{}).
		Where("status = ? AND end_date < ?", model.AdvertStatusActive, now).
		Update("status", model.AdvertStatusExpired)
	if result.Error != nil {
		logger.Error("Failed to expire outdated advertisements", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
