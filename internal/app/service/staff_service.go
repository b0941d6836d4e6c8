package service

import (
	"errors"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrMarketHasChairman = errors.New("market already has a chairman")

type RegisterCaretakerInput struct {
	FullName          string
	Email             string
	PhoneNumber       string
	Password          string
	MarketID          string
	LocalGovernmentID string
}

type RegisterChairmanInput struct {
	FullName          string
	Email             string
	PhoneNumber       string
	Password          string
	MarketID          string
	LocalGovernmentID string
	Title             string
}

// StaffService covers the supervisory roles above the collector level:
// caretakers and chairmen.
type StaffService interface {
	RegisterCaretaker(input RegisterCaretakerInput) (*model.Caretaker, error)
	GetCaretaker(id string) (*model.Caretaker, error)
	GetCaretakers(marketID string, page repository.PageFilter) (*repository.Page[model.Caretaker], error)
	RegisterChairman(input RegisterChairmanInput) (*model.Chairman, error)
	GetChairman(id string) (*model.Chairman, error)
}

type staffService struct {
	caretakerRepo repository.CaretakerRepository
	chairmanRepo  repository.ChairmanRepository
	marketRepo    repository.MarketRepository
	auth          AuthService
}

func NewStaffService(
	caretakerRepo repository.CaretakerRepository,
	chairmanRepo repository.ChairmanRepository,
	marketRepo repository.MarketRepository,
	auth AuthService,
) StaffService {
	return &staffService{
		caretakerRepo: caretakerRepo,
		chairmanRepo:  chairmanRepo,
		marketRepo:    marketRepo,
		auth:          auth,
	}
}

func (s *staffService) RegisterCaretaker(input RegisterCaretakerInput) (*model.Caretaker, error) {
	if _, err := s.marketRepo.FindByID(input.MarketID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	user, err := s.auth.Register(RegisterInput{
		FullName:    input.FullName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
		Role:        model.RoleCaretaker,
	})
	if err != nil {
		return nil, err
	}

	caretaker := &model.Caretaker{
		UserID:            user.ID,
		MarketID:          input.MarketID,
		LocalGovernmentID: input.LocalGovernmentID,
		IsActive:          true,
	}
	if err := s.caretakerRepo.Create(caretaker); err != nil {
		logger.Error("Failed to create caretaker record", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	logger.Info("Caretaker registered", map[string]interface{}{
		"caretaker_id": caretaker.ID,
		"market_id":    input.MarketID,
	})
	return s.caretakerRepo.FindByID(caretaker.ID)
}

func (s *staffService) GetCaretaker(id string) (*model.Caretaker, error) {
	caretaker, err := s.caretakerRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaretakerNotFound
		}
		return nil, err
	}
	return caretaker, nil
}

func (s *staffService) GetCaretakers(marketID string, page repository.PageFilter) (*repository.Page[model.Caretaker], error) {
	if page.SortBy == "" {
		page.SortBy = "created_at"
		page.SortDesc = true
	}
	return s.caretakerRepo.List(marketID, page)
}

// RegisterChairman enforces at most one chairman per market before the
// unique index gets a chance to reject the insert with a raw error.
func (s *staffService) RegisterChairman(input RegisterChairmanInput) (*model.Chairman, error) {
	if _, err := s.marketRepo.FindByID(input.MarketID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	if _, err := s.chairmanRepo.FindByMarketID(input.MarketID); err == nil {
		return nil, ErrMarketHasChairman
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.auth.Register(RegisterInput{
		FullName:    input.FullName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
		Role:        model.RoleChairman,
	})
	if err != nil {
		return nil, err
	}

	chairman := &model.Chairman{
		UserID:            user.ID,
		LocalGovernmentID: input.LocalGovernmentID,
		MarketID:          input.MarketID,
		Title:             input.Title,
		IsActive:          true,
	}
	if err := s.chairmanRepo.Create(chairman); err != nil {
		logger.Error("Failed to create chairman record", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, err
	}

	logger.Info("Chairman registered", map[string]interface{}{
		"chairman_id": chairman.ID,
		"market_id":   input.MarketID,
	})
	return s.chairmanRepo.FindByID(chairman.ID)
}

func (s *staffService) GetChairman(id string) (*model.Chairman, error) {
	chairman, err := s.chairmanRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChairmanNotFound
		}
		return nil, err
	}
	return chairman, nil
}
