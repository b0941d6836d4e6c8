package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubscriptionStatusPending   SubscriptionStatus = "pending"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

// Subscription is a vendor/customer plan purchase. Activation happens
// only after the payment gateway confirms the reference; the status the
// gateway reports is persisted, never computed here.
type Subscription struct {
	ID               string             `gorm:"primarykey;type:varchar(36)" json:"id"`
	SubscriberID     string             `gorm:"type:varchar(36);not null;index" json:"subscriber_id"` // User ID
	PlanName         string             `gorm:"type:varchar(100);not null" json:"plan_name"`
	Amount           float64            `gorm:"not null" json:"amount"`
	StartDate        time.Time          `json:"start_date"`
	EndDate          time.Time          `json:"end_date"`
	Status           SubscriptionStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentReference string             `gorm:"type:varchar(100);uniqueIndex" json:"payment_reference"`
	IsActive         bool               `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`

	Subscriber User `gorm:"foreignKey:SubscriberID" json:"subscriber,omitempty"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
