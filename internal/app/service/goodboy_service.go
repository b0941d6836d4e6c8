package service

import (
	"errors"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type RegisterGoodBoyInput struct {
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
	MarketID    string
	CaretakerID string
}

type GoodBoyService interface {
	RegisterGoodBoy(input RegisterGoodBoyInput) (*model.GoodBoy, error)
	GetGoodBoy(id string) (*model.GoodBoy, error)
	GetGoodBoys(filter repository.GoodBoyFilter) (*repository.Page[model.GoodBoy], error)
	LockGoodBoy(id string) (*model.GoodBoy, error)
	UnlockGoodBoy(id string) (*model.GoodBoy, error)
	DeactivateGoodBoy(id string) error
}

type goodBoyService struct {
	goodBoyRepo   repository.GoodBoyRepository
	caretakerRepo repository.CaretakerRepository
	auth          AuthService
}

func NewGoodBoyService(
	goodBoyRepo repository.GoodBoyRepository,
	caretakerRepo repository.CaretakerRepository,
	auth AuthService,
) GoodBoyService {
	return &goodBoyService{
		goodBoyRepo:   goodBoyRepo,
		caretakerRepo: caretakerRepo,
		auth:          auth,
	}
}

func (s *goodBoyService) RegisterGoodBoy(input RegisterGoodBoyInput) (*model.GoodBoy, error) {
	caretaker, err := s.caretakerRepo.FindByID(input.CaretakerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaretakerNotFound
		}
		return nil, err
	}
	if caretaker.MarketID != input.MarketID {
		return nil, ErrCaretakerNotInMarket
	}

	user, err := s.auth.Register(RegisterInput{
		FullName:    input.FullName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
		Role:        model.RoleGoodBoy,
	})
	if err != nil {
		return nil, err
	}

	goodBoy := &model.GoodBoy{
		UserID:      user.ID,
		CaretakerID: caretaker.ID,
		MarketID:    input.MarketID,
		Status:      model.GoodBoyStatusUnlocked,
		IsActive:    true,
	}
	if err := s.goodBoyRepo.Create(goodBoy); err != nil {
		logger.Error("Failed to create collector record", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	logger.Info("Collector registered", map[string]interface{}{
		"good_boy_id": goodBoy.ID,
		"market_id":   input.MarketID,
	})
	return s.goodBoyRepo.FindByID(goodBoy.ID)
}

func (s *goodBoyService) GetGoodBoy(id string) (*model.GoodBoy, error) {
	goodBoy, err := s.goodBoyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectorNotFound
		}
		return nil, err
	}
	return goodBoy, nil
}

func (s *goodBoyService) GetGoodBoys(filter repository.GoodBoyFilter) (*repository.Page[model.GoodBoy], error) {
	if filter.Page.SortBy == "" {
		filter.Page.SortBy = "created_at"
		filter.Page.SortDesc = true
	}
	return s.goodBoyRepo.List(filter)
}

// LockGoodBoy blocks the collector from recording any further
// collections until unlocked.
func (s *goodBoyService) LockGoodBoy(id string) (*model.GoodBoy, error) {
	return s.setStatus(id, model.GoodBoyStatusLocked)
}

func (s *goodBoyService) UnlockGoodBoy(id string) (*model.GoodBoy, error) {
	return s.setStatus(id, model.GoodBoyStatusUnlocked)
}

func (s *goodBoyService) setStatus(id string, status model.GoodBoyStatus) (*model.GoodBoy, error) {
	if _, err := s.goodBoyRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectorNotFound
		}
		return nil, err
	}
	if err := s.goodBoyRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	logger.Info("Collector status changed", map[string]interface{}{
		"good_boy_id": id,
		"status":      status,
	})
	return s.goodBoyRepo.FindByID(id)
}

func (s *goodBoyService) DeactivateGoodBoy(id string) error {
	if _, err := s.goodBoyRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCollectorNotFound
		}
		return err
	}
	return s.goodBoyRepo.Deactivate(id)
}
