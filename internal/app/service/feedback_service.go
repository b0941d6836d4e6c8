package service

import (
	"errors"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

type SubmitFeedbackInput struct {
	UserID   string
	MarketID string
	Comment  string
	Rating   int
}

// MarketFeedbackSummary carries a page of feedback plus the market's
// average rating over all of it.
type MarketFeedbackSummary struct {
	Feedback      *repository.Page[model.CustomerFeedback] `json:"feedback"`
	AverageRating float64                                  `json:"average_rating"`
}

type FeedbackService interface {
	SubmitFeedback(input SubmitFeedbackInput) (*model.CustomerFeedback, error)
	GetMarketFeedback(marketID string, page repository.PageFilter) (*MarketFeedbackSummary, error)
	RemoveFeedback(id string) error
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	marketRepo   repository.MarketRepository
	userRepo     repository.UserRepository
}

func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	marketRepo repository.MarketRepository,
	userRepo repository.UserRepository,
) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		marketRepo:   marketRepo,
		userRepo:     userRepo,
	}
}

func (s *feedbackService) SubmitFeedback(input SubmitFeedbackInput) (*model.CustomerFeedback, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.userRepo.FindByID(input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.marketRepo.FindByID(input.MarketID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	feedback := &model.CustomerFeedback{
		UserID:   input.UserID,
		MarketID: input.MarketID,
		Comment:  input.Comment,
		Rating:   input.Rating,
		IsActive: true,
	}
	if err := s.feedbackRepo.Create(feedback); err != nil {
		logger.Error("Failed to create feedback", err, map[string]interface{}{
			"user_id":   input.UserID,
			"market_id": input.MarketID,
		})
		return nil, err
	}

	return s.feedbackRepo.FindByID(feedback.ID)
}

func (s *feedbackService) GetMarketFeedback(marketID string, page repository.PageFilter) (*MarketFeedbackSummary, error) {
	if _, err := s.marketRepo.FindByID(marketID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	if page.SortBy == "" {
		page.SortBy = "created_at"
		page.SortDesc = true
	}
	feedback, err := s.feedbackRepo.ListByMarket(marketID, page)
	if err != nil {
		return nil, err
	}

	average, err := s.feedbackRepo.AverageRating(marketID)
	if err != nil {
		return nil, err
	}

	return &MarketFeedbackSummary{
		Feedback:      feedback,
		AverageRating: roundRate(average),
	}, nil
}

func (s *feedbackService) RemoveFeedback(id string) error {
	if _, err := s.feedbackRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}
	return s.feedbackRepo.Deactivate(id)
}
