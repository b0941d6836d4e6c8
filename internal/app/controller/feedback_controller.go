package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sabimarket/sabimarket-backend/internal/app/service"
	apperrors "github.com/sabimarket/sabimarket-backend/internal/errors"
	"github.com/sabimarket/sabimarket-backend/internal/middleware"
)

type FeedbackController struct {
	feedbackService service.FeedbackService
}

func NewFeedbackController(feedbackService service.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

type SubmitFeedbackRequest struct {
	MarketID string `json:"market_id" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
}

// SubmitFeedback records a rated comment against a market
// POST /api/v1/feedback
func (ctrl *FeedbackController) SubmitFeedback(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid feedback details")
		return
	}

	feedback, err := ctrl.feedbackService.SubmitFeedback(service.SubmitFeedbackInput{
		UserID:   userID,
		MarketID: req.MarketID,
		Comment:  req.Comment,
		Rating:   req.Rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			apperrors.BadRequest(c, apperrors.FeedbackInvalidRating, "Rating must be between 1 and 5")
		case errors.Is(err, service.ErrMarketNotFound):
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.BadRequest(c, apperrors.ResourceNotFound, "User account not found")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "feedback")
		}
		return
	}

	apperrors.Created(c, feedback)
}

// GetMarketFeedback lists a market's feedback with its average rating
// GET /api/v1/markets/:id/feedback
func (ctrl *FeedbackController) GetMarketFeedback(c *gin.Context) {
	summary, err := ctrl.feedbackService.GetMarketFeedback(c.Param("id"), parsePageFilter(c))
	if err != nil {
		if errors.Is(err, service.ErrMarketNotFound) {
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch feedback")
		return
	}
	apperrors.OK(c, summary)
}

// RemoveFeedback hides a feedback entry
// DELETE /api/v1/feedback/:id
func (ctrl *FeedbackController) RemoveFeedback(c *gin.Context) {
	if err := ctrl.feedbackService.RemoveFeedback(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrFeedbackNotFound) {
			apperrors.BadRequest(c, apperrors.FeedbackNotFound, "Feedback not found")
			return
		}
		apperrors.InternalError(c, "Failed to remove feedback")
		return
	}
	apperrors.OK(c, gin.H{"message": "Feedback removed"})
}
