package service

import (
	"errors"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"github.com/sabimarket/sabimarket-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrSectionNotFound      = errors.New("market section not found")
	ErrSectionNotInMarket   = errors.New("market section belongs to a different market")
	ErrCaretakerNotInMarket = errors.New("caretaker belongs to a different market")
)

type RegisterTraderInput struct {
	FullName     string
	Email        string
	PhoneNumber  string
	Password     string
	MarketID     string
	SectionID    *string
	CaretakerID  string
	BusinessName string
	BusinessType string
	TIN          string
}

type UpdateTraderInput struct {
	BusinessName string
	BusinessType string
	SectionID    *string
}

type TraderService interface {
	RegisterTrader(input RegisterTraderInput) (*model.Trader, error)
	GetTrader(id string) (*model.Trader, error)
	GetTraders(filter repository.TraderFilter) (*repository.Page[model.Trader], error)
	UpdateTrader(id string, input UpdateTraderInput) (*model.Trader, error)
	DeactivateTrader(id string) error
}

type traderService struct {
	traderRepo    repository.TraderRepository
	marketRepo    repository.MarketRepository
	caretakerRepo repository.CaretakerRepository
	auth          AuthService
}

func NewTraderService(
	traderRepo repository.TraderRepository,
	marketRepo repository.MarketRepository,
	caretakerRepo repository.CaretakerRepository,
	auth AuthService,
) TraderService {
	return &traderService{
		traderRepo:    traderRepo,
		marketRepo:    marketRepo,
		caretakerRepo: caretakerRepo,
		auth:          auth,
	}
}

// RegisterTrader creates the identity record and the trader record
// together. The trader gets a generated QR code so collectors can
// resolve them in the field from day one.
func (s *traderService) RegisterTrader(input RegisterTraderInput) (*model.Trader, error) {
	market, err := s.marketRepo.FindByID(input.MarketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	caretaker, err := s.caretakerRepo.FindByID(input.CaretakerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaretakerNotFound
		}
		return nil, err
	}
	if caretaker.MarketID != market.ID {
		return nil, ErrCaretakerNotInMarket
	}

	if input.SectionID != nil {
		section, err := s.marketRepo.FindSectionByID(*input.SectionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSectionNotFound
			}
			return nil, err
		}
		if section.MarketID != market.ID {
			return nil, ErrSectionNotInMarket
		}
	}

	user, err := s.auth.Register(RegisterInput{
		FullName:    input.FullName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
		Role:        model.RoleTrader,
	})
	if err != nil {
		return nil, err
	}

	qrCode := util.GenerateQRCode()
	trader := &model.Trader{
		UserID:       user.ID,
		MarketID:     market.ID,
		SectionID:    input.SectionID,
		CaretakerID:  caretaker.ID,
		BusinessName: input.BusinessName,
		BusinessType: input.BusinessType,
		TIN:          input.TIN,
		QRCode:       &qrCode,
		IsActive:     true,
	}
	if err := s.traderRepo.Create(trader); err != nil {
		logger.Error("Failed to create trader record", err, map[string]interface{}{
			"user_id":   user.ID,
			"market_id": market.ID,
		})
		return nil, err
	}

	logger.Info("Trader registered", map[string]interface{}{
		"trader_id": trader.ID,
		"market_id": market.ID,
		"tin":       trader.TIN,
	})
	return s.traderRepo.FindByID(trader.ID)
}

func (s *traderService) GetTrader(id string) (*model.Trader, error) {
	trader, err := s.traderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTraderNotFound
		}
		return nil, err
	}
	return trader, nil
}

func (s *traderService) GetTraders(filter repository.TraderFilter) (*repository.Page[model.Trader], error) {
	if filter.Page.SortBy == "" {
		filter.Page.SortBy = "created_at"
		filter.Page.SortDesc = true
	}
	return s.traderRepo.List(filter)
}

func (s *traderService) UpdateTrader(id string, input UpdateTraderInput) (*model.Trader, error) {
	trader, err := s.traderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTraderNotFound
		}
		return nil, err
	}

	if input.SectionID != nil {
		section, err := s.marketRepo.FindSectionByID(*input.SectionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSectionNotFound
			}
			return nil, err
		}
		if section.MarketID != trader.MarketID {
			return nil, ErrSectionNotInMarket
		}
		trader.SectionID = input.SectionID
	}
	if input.BusinessName != "" {
		trader.BusinessName = input.BusinessName
	}
	if input.BusinessType != "" {
		trader.BusinessType = input.BusinessType
	}

	if err := s.traderRepo.Update(trader); err != nil {
		return nil, err
	}
	return s.traderRepo.FindByID(trader.ID)
}

func (s *traderService) DeactivateTrader(id string) error {
	if _, err := s.traderRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTraderNotFound
		}
		return err
	}
	return s.traderRepo.Deactivate(id)
}
