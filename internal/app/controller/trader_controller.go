package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/internal/app/service"
	apperrors "github.com/sabimarket/sabimarket-backend/internal/errors"
	"github.com/sabimarket/sabimarket-backend/internal/middleware"
)

type TraderController struct {
	traderService service.TraderService
}

func NewTraderController(traderService service.TraderService) *TraderController {
	return &TraderController{traderService: traderService}
}

type RegisterTraderRequest struct {
	FullName     string  `json:"full_name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	PhoneNumber  string  `json:"phone_number"`
	Password     string  `json:"password" binding:"required,min=8"`
	MarketID     string  `json:"market_id" binding:"required"`
	SectionID    *string `json:"section_id"`
	CaretakerID  string  `json:"caretaker_id" binding:"required"`
	BusinessName string  `json:"business_name" binding:"required"`
	BusinessType string  `json:"business_type"`
	TIN          string  `json:"tin" binding:"required"`
}

type UpdateTraderRequest struct {
	BusinessName string  `json:"business_name"`
	BusinessType string  `json:"business_type"`
	SectionID    *string `json:"section_id"`
}

// RegisterTrader registers a trader together with their user account
// POST /api/v1/traders
func (ctrl *TraderController) RegisterTrader(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterTraderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid trader registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid trader details")
		return
	}

	trader, err := ctrl.traderService.RegisterTrader(service.RegisterTraderInput{
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Password:     req.Password,
		MarketID:     req.MarketID,
		SectionID:    req.SectionID,
		CaretakerID:  req.CaretakerID,
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
		TIN:          req.TIN,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMarketNotFound):
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
		case errors.Is(err, service.ErrCaretakerNotFound):
			apperrors.BadRequest(c, apperrors.CaretakerNotFound, "Caretaker not found")
		case errors.Is(err, service.ErrCaretakerNotInMarket):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Caretaker belongs to a different market")
		case errors.Is(err, service.ErrSectionNotFound):
			apperrors.BadRequest(c, apperrors.MarketSectionNotFound, "Market section not found")
		case errors.Is(err, service.ErrSectionNotInMarket):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Section belongs to a different market")
		case errors.Is(err, service.ErrEmailTaken):
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "This email address is already registered")
		default:
			log.Error("Trader registration failed", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "trader")
		}
		return
	}

	apperrors.Created(c, trader)
}

// GetTrader returns a single trader
// GET /api/v1/traders/:id
func (ctrl *TraderController) GetTrader(c *gin.Context) {
	trader, err := ctrl.traderService.GetTrader(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTraderNotFound) {
			apperrors.BadRequest(c, apperrors.TraderNotFound, "Trader not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch trader")
		return
	}
	apperrors.OK(c, trader)
}

// GetTraders lists traders
// GET /api/v1/traders
func (ctrl *TraderController) GetTraders(c *gin.Context) {
	filter := repository.TraderFilter{
		MarketID:    c.Query("market_id"),
		CaretakerID: c.Query("caretaker_id"),
		SectionID:   c.Query("section_id"),
		Search:      c.Query("search"),
		ActiveOnly:  c.DefaultQuery("active_only", "true") == "true",
		Page:        parsePageFilter(c),
	}

	page, err := ctrl.traderService.GetTraders(filter)
	if err != nil {
		if errors.Is(err, repository.ErrUnsortedQuery) {
			apperrors.BadRequest(c, apperrors.PageUnsortedQuery, "A sort key is required for paginated queries")
			return
		}
		apperrors.InternalError(c, "Failed to fetch traders")
		return
	}
	apperrors.OK(c, page)
}

// UpdateTrader updates trader business details
// PUT /api/v1/traders/:id
func (ctrl *TraderController) UpdateTrader(c *gin.Context) {
	var req UpdateTraderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid trader details")
		return
	}

	trader, err := ctrl.traderService.UpdateTrader(c.Param("id"), service.UpdateTraderInput{
		BusinessName: req.BusinessName,
		BusinessType: req.BusinessType,
		SectionID:    req.SectionID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTraderNotFound):
			apperrors.BadRequest(c, apperrors.TraderNotFound, "Trader not found")
		case errors.Is(err, service.ErrSectionNotFound):
			apperrors.BadRequest(c, apperrors.MarketSectionNotFound, "Market section not found")
		case errors.Is(err, service.ErrSectionNotInMarket):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Section belongs to a different market")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "trader")
		}
		return
	}
	apperrors.OK(c, trader)
}

// DeactivateTrader soft-deletes a trader
// DELETE /api/v1/traders/:id
func (ctrl *TraderController) DeactivateTrader(c *gin.Context) {
	if err := ctrl.traderService.DeactivateTrader(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrTraderNotFound) {
			apperrors.BadRequest(c, apperrors.TraderNotFound, "Trader not found")
			return
		}
		apperrors.InternalError(c, "Failed to deactivate trader")
		return
	}
	apperrors.OK(c, gin.H{"message": "Trader deactivated"})
}
