package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sabimarket/sabimarket-backend/internal/app/service"
	apperrors "github.com/sabimarket/sabimarket-backend/internal/errors"
	"github.com/sabimarket/sabimarket-backend/internal/middleware"
)

type SubscriptionController struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionController(subscriptionService service.SubscriptionService) *SubscriptionController {
	return &SubscriptionController{subscriptionService: subscriptionService}
}

type CreateSubscriptionRequest struct {
	PlanName     string  `json:"plan_name" binding:"required"`
	Amount       float64 `json:"amount" binding:"required"`
	DurationDays int     `json:"duration_days" binding:"omitempty,min=1"`
}

// InitializeSubscription opens a gateway checkout for a plan
// POST /api/v1/subscriptions
func (ctrl *SubscriptionController) InitializeSubscription(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	subscriberID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid subscription details")
		return
	}

	session, err := ctrl.subscriptionService.InitializeSubscription(c.Request.Context(), service.CreateSubscriptionInput{
		SubscriberID: subscriberID,
		PlanName:     req.PlanName,
		Amount:       req.Amount,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPlanAmount):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Subscription amount must be greater than zero")
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.BadRequest(c, apperrors.ResourceNotFound, "Subscriber account not found")
		default:
			log.Error("Failed to initialize subscription", err, map[string]interface{}{
				"subscriber_id": subscriberID,
			})
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalGatewayError, "Failed to open subscription checkout")
		}
		return
	}

	apperrors.Created(c, session)
}

// ConfirmSubscription verifies a gateway reference and activates the plan
// GET /api/v1/subscriptions/confirm/:reference
func (ctrl *SubscriptionController) ConfirmSubscription(c *gin.Context) {
	subscription, err := ctrl.subscriptionService.ConfirmSubscription(c.Request.Context(), c.Param("reference"))
	if err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			apperrors.BadRequest(c, apperrors.SubscriptionNotFound, "No subscription exists for this reference")
			return
		}
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalGatewayError, "Subscription verification failed, please try again later")
		return
	}
	apperrors.OK(c, subscription)
}

// GetSubscriptions lists the caller's subscriptions
// GET /api/v1/subscriptions
func (ctrl *SubscriptionController) GetSubscriptions(c *gin.Context) {
	subscriberID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	page, err := ctrl.subscriptionService.GetSubscriptions(subscriberID, parsePageFilter(c))
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch subscriptions")
		return
	}
	apperrors.OK(c, page)
}

// CancelSubscription cancels a plan
// DELETE /api/v1/subscriptions/:id
func (ctrl *SubscriptionController) CancelSubscription(c *gin.Context) {
	if err := ctrl.subscriptionService.CancelSubscription(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrSubscriptionNotFound) {
			apperrors.BadRequest(c, apperrors.SubscriptionNotFound, "Subscription not found")
			return
		}
		apperrors.InternalError(c, "Failed to cancel subscription")
		return
	}
	apperrors.OK(c, gin.H{"message": "Subscription cancelled"})
}
