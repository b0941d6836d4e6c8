package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/internal/app/service"
	apperrors "github.com/sabimarket/sabimarket-backend/internal/errors"
	"github.com/sabimarket/sabimarket-backend/internal/middleware"
)

type GoodBoyController struct {
	goodBoyService service.GoodBoyService
}

func NewGoodBoyController(goodBoyService service.GoodBoyService) *GoodBoyController {
	return &GoodBoyController{goodBoyService: goodBoyService}
}

type RegisterGoodBoyRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password" binding:"required,min=8"`
	MarketID    string `json:"market_id" binding:"required"`
	CaretakerID string `json:"caretaker_id" binding:"required"`
}

// RegisterGoodBoy registers a collector together with their user account
// POST /api/v1/goodboys
func (ctrl *GoodBoyController) RegisterGoodBoy(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterGoodBoyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid collector details")
		return
	}

	goodBoy, err := ctrl.goodBoyService.RegisterGoodBoy(service.RegisterGoodBoyInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		MarketID:    req.MarketID,
		CaretakerID: req.CaretakerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaretakerNotFound):
			apperrors.BadRequest(c, apperrors.CaretakerNotFound, "Caretaker not found")
		case errors.Is(err, service.ErrCaretakerNotInMarket):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Caretaker belongs to a different market")
		case errors.Is(err, service.ErrEmailTaken):
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "This email address is already registered")
		default:
			log.Error("Collector registration failed", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "collector")
		}
		return
	}

	apperrors.Created(c, goodBoy)
}

// GetGoodBoy returns a single collector
// GET /api/v1/goodboys/:id
func (ctrl *GoodBoyController) GetGoodBoy(c *gin.Context) {
	goodBoy, err := ctrl.goodBoyService.GetGoodBoy(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCollectorNotFound) {
			apperrors.BadRequest(c, apperrors.CollectorNotFound, "Collector not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch collector")
		return
	}
	apperrors.OK(c, goodBoy)
}

// GetGoodBoys lists collectors
// GET /api/v1/goodboys
func (ctrl *GoodBoyController) GetGoodBoys(c *gin.Context) {
	filter := repository.GoodBoyFilter{
		MarketID:    c.Query("market_id"),
		CaretakerID: c.Query("caretaker_id"),
		Status:      model.GoodBoyStatus(c.Query("status")),
		ActiveOnly:  c.DefaultQuery("active_only", "true") == "true",
		Page:        parsePageFilter(c),
	}

	page, err := ctrl.goodBoyService.GetGoodBoys(filter)
	if err != nil {
		if errors.Is(err, repository.ErrUnsortedQuery) {
			apperrors.BadRequest(c, apperrors.PageUnsortedQuery, "A sort key is required for paginated queries")
			return
		}
		apperrors.InternalError(c, "Failed to fetch collectors")
		return
	}
	apperrors.OK(c, page)
}

// LockGoodBoy blocks a collector from recording collections
// POST /api/v1/goodboys/:id/lock
func (ctrl *GoodBoyController) LockGoodBoy(c *gin.Context) {
	ctrl.setStatus(c, true)
}

// UnlockGoodBoy re-enables a locked collector
// POST /api/v1/goodboys/:id/unlock
func (ctrl *GoodBoyController) UnlockGoodBoy(c *gin.Context) {
	ctrl.setStatus(c, false)
}

func (ctrl *GoodBoyController) setStatus(c *gin.Context, lock bool) {
	log := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	var goodBoy *model.GoodBoy
	var err error
	if lock {
		goodBoy, err = ctrl.goodBoyService.LockGoodBoy(id)
	} else {
		goodBoy, err = ctrl.goodBoyService.UnlockGoodBoy(id)
	}
	if err != nil {
		if errors.Is(err, service.ErrCollectorNotFound) {
			apperrors.BadRequest(c, apperrors.CollectorNotFound, "Collector not found")
			return
		}
		log.Error("Failed to change collector status", err, map[string]interface{}{
			"good_boy_id": id,
		})
		apperrors.InternalError(c, "Failed to change collector status")
		return
	}

	apperrors.OK(c, goodBoy)
}

// DeactivateGoodBoy soft-deletes a collector
// DELETE /api/v1/goodboys/:id
func (ctrl *GoodBoyController) DeactivateGoodBoy(c *gin.Context) {
	if err := ctrl.goodBoyService.DeactivateGoodBoy(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCollectorNotFound) {
			apperrors.BadRequest(c, apperrors.CollectorNotFound, "Collector not found")
			return
		}
		apperrors.InternalError(c, "Failed to deactivate collector")
		return
	}
	apperrors.OK(c, gin.H{"message": "Collector deactivated"})
}
