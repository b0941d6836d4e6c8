package service

import (
	"context"
	"errors"
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"github.com/sabimarket/sabimarket-backend/pkg/paystack"
	"github.com/sabimarket/sabimarket-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrInvalidPlanAmount    = errors.New("subscription amount must be greater than zero")
)

type CreateSubscriptionInput struct {
	SubscriberID string
	PlanName     string
	Amount       float64
	DurationDays int
}

// SubscriptionSession pairs the pending subscription with the gateway
// checkout URL the subscriber completes payment at.
type SubscriptionSession struct {
	Subscription     *model.Subscription `json:"subscription"`
	AuthorizationURL string              `json:"authorization_url"`
	Reference        string              `json:"reference"`
}

type SubscriptionService interface {
	InitializeSubscription(ctx context.Context, input CreateSubscriptionInput) (*SubscriptionSession, error)
	ConfirmSubscription(ctx context.Context, reference string) (*model.Subscription, error)
	GetSubscription(id string) (*model.Subscription, error)
	GetSubscriptions(subscriberID string, page repository.PageFilter) (*repository.Page[model.Subscription], error)
	CancelSubscription(id string) error
}

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
	gateway          PaymentGateway
}

func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	gateway PaymentGateway,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		gateway:          gateway,
	}
}

// InitializeSubscription records a pending subscription and opens a
// gateway checkout session. The plan only becomes active once the
// gateway confirms the reference.
func (s *subscriptionService) InitializeSubscription(ctx context.Context, input CreateSubscriptionInput) (*SubscriptionSession, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidPlanAmount
	}

	subscriber, err := s.userRepo.FindByID(input.SubscriberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	reference := util.GenerateTransactionReference("SUB")
	duration := input.DurationDays
	if duration <= 0 {
		duration = 30
	}
	now := time.Now()

	subscription := &model.Subscription{
		SubscriberID:     subscriber.ID,
		PlanName:         input.PlanName,
		Amount:           input.Amount,
		StartDate:        now,
		EndDate:          now.AddDate(0, 0, duration),
		Status:           model.SubscriptionStatusPending,
		PaymentReference: reference,
		IsActive:         true,
	}
	if err := s.subscriptionRepo.Create(subscription); err != nil {
		logger.Error("Failed to create subscription", err, map[string]interface{}{
			"subscriber_id": subscriber.ID,
		})
		return nil, err
	}

	session, err := s.gateway.Initialize(ctx, paystack.InitializeRequest{
		Email:     subscriber.Email,
		Amount:    int64(input.Amount * 100), // naira to kobo
		Reference: reference,
	})
	if err != nil {
		logger.Error("Failed to initialize subscription checkout", err, map[string]interface{}{
			"subscription_id": subscription.ID,
			"reference":       reference,
		})
		return nil, err
	}

	logger.Info("Subscription checkout opened", map[string]interface{}{
		"subscription_id": subscription.ID,
		"plan":            subscription.PlanName,
		"reference":       reference,
	})

	return &SubscriptionSession{
		Subscription:     subscription,
		AuthorizationURL: session.AuthorizationURL,
		Reference:        reference,
	}, nil
}

// ConfirmSubscription activates the plan when the gateway reports the
// reference paid. Re-confirming an active subscription is a no-op.
func (s *subscriptionService) ConfirmSubscription(ctx context.Context, reference string) (*model.Subscription, error) {
	subscription, err := s.subscriptionRepo.FindByReference(reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}

	if subscription.Status == model.SubscriptionStatusActive {
		return subscription, nil
	}

	verification, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		logger.Error("Failed to verify subscription payment", err, map[string]interface{}{
			"reference": reference,
		})
		return nil, err
	}

	status := model.SubscriptionStatusPending
	if verification.Status == paystack.VerifyStatusSuccess {
		status = model.SubscriptionStatusActive
	}
	if status == subscription.Status {
		return subscription, nil
	}

	if err := s.subscriptionRepo.UpdateStatus(subscription.ID, status); err != nil {
		return nil, err
	}

	logger.Info("Subscription status updated after verification", map[string]interface{}{
		"subscription_id": subscription.ID,
		"status":          status,
	})
	return s.subscriptionRepo.FindByID(subscription.ID)
}

func (s *subscriptionService) GetSubscription(id string) (*model.Subscription, error) {
	subscription, err := s.subscriptionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return subscription, nil
}

func (s *subscriptionService) GetSubscriptions(subscriberID string, page repository.PageFilter) (*repository.Page[model.Subscription], error) {
	if page.SortBy == "" {
		page.SortBy = "created_at"
		page.SortDesc = true
	}
	return s.subscriptionRepo.List(subscriberID, page)
}

func (s *subscriptionService) CancelSubscription(id string) error {
	if _, err := s.subscriptionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return s.subscriptionRepo.UpdateStatus(id, model.SubscriptionStatusCancelled)
}
