package service

import (
	"errors"
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAdvertNotFound    = errors.New("advertisement not found")
	ErrAdvertNotPending  = errors.New("advertisement is not awaiting review")
	ErrAdvertDateInvalid = errors.New("advertisement end date must be after start date")
)

type CreateAdvertInput struct {
	VendorID        string
	Title           string
	Description     string
	ImageURL        string
	TargetLocations []string
	StartDate       time.Time
	EndDate         time.Time
}

type AdvertisementService interface {
	CreateAdvert(input CreateAdvertInput) (*model.Advertisement, error)
	GetAdvert(id string) (*model.Advertisement, error)
	GetAdverts(filter repository.AdvertFilter) (*repository.Page[model.Advertisement], error)
	ApproveAdvert(id string) (*model.Advertisement, error)
	RejectAdvert(id, reason string) (*model.Advertisement, error)
	ExpireOutdatedAdverts(now time.Time) (int64, error)
}

type advertisementService struct {
	advertRepo repository.AdvertisementRepository
	userRepo   repository.UserRepository
}

func NewAdvertisementService(
	advertRepo repository.AdvertisementRepository,
	userRepo repository.UserRepository,
) AdvertisementService {
	return &advertisementService{advertRepo: advertRepo, userRepo: userRepo}
}

func (s *advertisementService) CreateAdvert(input CreateAdvertInput) (*model.Advertisement, error) {
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrAdvertDateInvalid
	}

	if _, err := s.userRepo.FindByID(input.VendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	advert := &model.Advertisement{
		VendorID:        input.VendorID,
		Title:           input.Title,
		Description:     input.Description,
		ImageURL:        input.ImageURL,
		TargetLocations: input.TargetLocations,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Status:          model.AdvertStatusPending,
		IsActive:        true,
	}
	if err := s.advertRepo.Create(advert); err != nil {
		logger.Error("Failed to create advertisement", err, map[string]interface{}{
			"vendor_id": input.VendorID,
		})
		return nil, err
	}

	logger.Info("Advertisement submitted for review", map[string]interface{}{
		"advert_id": advert.ID,
		"vendor_id": advert.VendorID,
	})
	return s.advertRepo.FindByID(advert.ID)
}

func (s *advertisementService) GetAdvert(id string) (*model.Advertisement, error) {
	advert, err := s.advertRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdvertNotFound
		}
		return nil, err
	}
	return advert, nil
}

func (s *advertisementService) GetAdverts(filter repository.AdvertFilter) (*repository.Page[model.Advertisement], error) {
	if filter.Page.SortBy == "" {
		filter.Page.SortBy = "created_at"
		filter.Page.SortDesc = true
	}
	return s.advertRepo.List(filter)
}

func (s *advertisementService) ApproveAdvert(id string) (*model.Advertisement, error) {
	return s.review(id, model.AdvertStatusActive, "")
}

func (s *advertisementService) RejectAdvert(id, reason string) (*model.Advertisement, error) {
	return s.review(id, model.AdvertStatusRejected, reason)
}

// review transitions a pending placement; nothing else is reviewable.
func (s *advertisementService) review(id string, status model.AdvertStatus, reason string) (*model.Advertisement, error) {
	advert, err := s.advertRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdvertNotFound
		}
		return nil, err
	}
	if advert.Status != model.AdvertStatusPending {
		return nil, ErrAdvertNotPending
	}

	if err := s.advertRepo.UpdateStatus(id, status, reason); err != nil {
		return nil, err
	}

	logger.Info("Advertisement reviewed", map[string]interface{}{
		"advert_id": id,
		"status":    status,
	})
	return s.advertRepo.FindByID(id)
}

// ExpireOutdatedAdverts marks every active placement whose end date has
// passed as expired. The scheduler runs this nightly.
func (s *advertisementService) ExpireOutdatedAdverts(now time.Time) (int64, error) {
	expired, err := s.advertRepo.ExpireOutdated(now)
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		logger.Info("Expired outdated advertisements", map[string]interface{}{
			"count": expired,
		})
	}
	return expired, nil
}
