package repository

import (
	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(subscription *model.Subscription) error
	FindByID(id string) (*model.Subscription, error)
	FindByReference(reference string) (*model.Subscription, error)
	List(subscriberID string, page PageFilter) (*Page[model.Subscription], error)
	Update(subscription *model.Subscription) error
	UpdateStatus(id string, status model.SubscriptionStatus) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(subscription *model.Subscription) error {
	logger.Debug("Creating subscription in database", map[string]interface{}{
		"subscriber_id": subscription.SubscriberID,
		"plan_name":     subscription.PlanName,
	})

	if err := r.db.Create(subscription).Error; err != nil {
		logger.Error("Failed to create subscription in database", err, map[string]interface{}{
			"subscriber_id": subscription.SubscriberID,
		})
		return err
	}
	return nil
}

func (r *subscriptionRepository) FindByID(id string) (*model.Subscription, error) {
	var subscription model.Subscription
	if err := r.db.Preload("Subscriber").First(&subscription, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (r *subscriptionRepository) FindByReference(reference string) (*model.Subscription, error) {
	var subscription model.Subscription
	if err := r.db.First(&subscription, "payment_reference = ?", reference).Error; err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (r *subscriptionRepository) List(subscriberID string, page PageFilter) (*Page[model.Subscription], error) {
	query := r.db.Model(&model.Subscription{})
	if subscriberID != "" {
		query = query.Where("subscriber_id = ?", subscriberID)
	}
	return Paginate[model.Subscription](query, page)
}

func (r *subscriptionRepository) Update(subscription *model.Subscription) error {
	if err := r.db.Save(subscription).Error; err != nil {
		logger.Error("Failed to update subscription in database", err, map[string]interface{}{
			"subscription_id": subscription.ID,
		})
		return err
	}
	return nil
}

func (r *subscriptionRepository) UpdateStatus(id string, status model.SubscriptionStatus) error {
	if err := r.db.Model(&model.Subscription{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		logger.Error("Failed to update subscription status in database", err, map[string]interface{}{
			"subscription_id": id,
			"status":          status,
		})
		return err
	}
	return nil
}
