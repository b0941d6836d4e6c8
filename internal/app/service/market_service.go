package service

import (
	"errors"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrLocalGovernmentNotFound = errors.New("local government not found")

type CreateMarketInput struct {
	LocalGovernmentID string
	Name              string
	Location          string
	Description       string
	Capacity          int
}

type CreateSectionInput struct {
	MarketID string
	Name     string
	Capacity int
}

type MarketService interface {
	CreateMarket(input CreateMarketInput) (*model.Market, error)
	GetMarket(id string) (*model.Market, error)
	GetMarkets(filter repository.MarketFilter) (*repository.Page[model.Market], error)
	UpdateMarket(id string, input CreateMarketInput) (*model.Market, error)
	DeactivateMarket(id string) error
	CreateSection(input CreateSectionInput) (*model.MarketSection, error)
}

type marketService struct {
	marketRepo repository.MarketRepository
	db         *gorm.DB
}

func NewMarketService(marketRepo repository.MarketRepository, db *gorm.DB) MarketService {
	return &marketService{marketRepo: marketRepo, db: db}
}

func (s *marketService) CreateMarket(input CreateMarketInput) (*model.Market, error) {
	var lg model.LocalGovernment
	if err := s.db.First(&lg, "id = ?", input.LocalGovernmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocalGovernmentNotFound
		}
		return nil, err
	}

	market := &model.Market{
		LocalGovernmentID: input.LocalGovernmentID,
		Name:              input.Name,
		Location:          input.Location,
		Description:       input.Description,
		Capacity:          input.Capacity,
		IsActive:          true,
	}
	if err := s.marketRepo.Create(market); err != nil {
		logger.Error("Failed to create market", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Market created", map[string]interface{}{
		"market_id": market.ID,
		"name":      market.Name,
	})
	return s.marketRepo.FindByID(market.ID)
}

func (s *marketService) GetMarket(id string) (*model.Market, error) {
	market, err := s.marketRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}
	return market, nil
}

func (s *marketService) GetMarkets(filter repository.MarketFilter) (*repository.Page[model.Market], error) {
	if filter.Page.SortBy == "" {
		filter.Page.SortBy = "name"
	}
	return s.marketRepo.List(filter)
}

func (s *marketService) UpdateMarket(id string, input CreateMarketInput) (*model.Market, error) {
	market, err := s.marketRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		market.Name = input.Name
	}
	if input.Location != "" {
		market.Location = input.Location
	}
	if input.Description != "" {
		market.Description = input.Description
	}
	if input.Capacity > 0 {
		market.Capacity = input.Capacity
	}

	if err := s.marketRepo.Update(market); err != nil {
		return nil, err
	}
	return s.marketRepo.FindByID(market.ID)
}

func (s *marketService) DeactivateMarket(id string) error {
	if _, err := s.marketRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMarketNotFound
		}
		return err
	}
	return s.marketRepo.Deactivate(id)
}

func (s *marketService) CreateSection(input CreateSectionInput) (*model.MarketSection, error) {
	if _, err := s.marketRepo.FindByID(input.MarketID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	section := &model.MarketSection{
		MarketID: input.MarketID,
		Name:     input.Name,
		Capacity: input.Capacity,
	}
	if err := s.marketRepo.CreateSection(section); err != nil {
		return nil, err
	}
	return s.marketRepo.FindSectionByID(section.ID)
}
