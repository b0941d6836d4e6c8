package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sabimarket/sabimarket-backend/internal/app/service"
	apperrors "github.com/sabimarket/sabimarket-backend/internal/errors"
	"github.com/sabimarket/sabimarket-backend/internal/middleware"
)

type StaffController struct {
	staffService service.StaffService
}

func NewStaffController(staffService service.StaffService) *StaffController {
	return &StaffController{staffService: staffService}
}

type RegisterCaretakerRequest struct {
	FullName          string `json:"full_name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	PhoneNumber       string `json:"phone_number"`
	Password          string `json:"password" binding:"required,min=8"`
	MarketID          string `json:"market_id" binding:"required"`
	LocalGovernmentID string `json:"local_government_id" binding:"required"`
}

type RegisterChairmanRequest struct {
	FullName          string `json:"full_name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	PhoneNumber       string `json:"phone_number"`
	Password          string `json:"password" binding:"required,min=8"`
	MarketID          string `json:"market_id" binding:"required"`
	LocalGovernmentID string `json:"local_government_id" binding:"required"`
	Title             string `json:"title"`
}

// RegisterCaretaker registers a caretaker together with their user account
// POST /api/v1/caretakers
func (ctrl *StaffController) RegisterCaretaker(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterCaretakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid caretaker details")
		return
	}

	caretaker, err := ctrl.staffService.RegisterCaretaker(service.RegisterCaretakerInput{
		FullName:          req.FullName,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		Password:          req.Password,
		MarketID:          req.MarketID,
		LocalGovernmentID: req.LocalGovernmentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMarketNotFound):
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
		case errors.Is(err, service.ErrEmailTaken):
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "This email address is already registered")
		default:
			log.Error("Caretaker registration failed", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "caretaker")
		}
		return
	}

	apperrors.Created(c, caretaker)
}

// GetCaretaker returns a single caretaker
// GET /api/v1/caretakers/:id
func (ctrl *StaffController) GetCaretaker(c *gin.Context) {
	caretaker, err := ctrl.staffService.GetCaretaker(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCaretakerNotFound) {
			apperrors.BadRequest(c, apperrors.CaretakerNotFound, "Caretaker not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch caretaker")
		return
	}
	apperrors.OK(c, caretaker)
}

// GetCaretakers lists caretakers, optionally scoped to a market
// GET /api/v1/caretakers
func (ctrl *StaffController) GetCaretakers(c *gin.Context) {
	page, err := ctrl.staffService.GetCaretakers(c.Query("market_id"), parsePageFilter(c))
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch caretakers")
		return
	}
	apperrors.OK(c, page)
}

// RegisterChairman registers a chairman together with their user account
// POST /api/v1/chairmen
func (ctrl *StaffController) RegisterChairman(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterChairmanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid chairman details")
		return
	}

	chairman, err := ctrl.staffService.RegisterChairman(service.RegisterChairmanInput{
		FullName:          req.FullName,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		Password:          req.Password,
		MarketID:          req.MarketID,
		LocalGovernmentID: req.LocalGovernmentID,
		Title:             req.Title,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMarketNotFound):
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
		case errors.Is(err, service.ErrMarketHasChairman):
			apperrors.Conflict(c, apperrors.ChairmanAlreadySet, "This market already has a chairman")
		case errors.Is(err, service.ErrEmailTaken):
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "This email address is already registered")
		default:
			log.Error("Chairman registration failed", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "chairman")
		}
		return
	}

	apperrors.Created(c, chairman)
}

// GetChairman returns a single chairman
// GET /api/v1/chairmen/:id
func (ctrl *StaffController) GetChairman(c *gin.Context) {
	chairman, err := ctrl.staffService.GetChairman(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrChairmanNotFound) {
			apperrors.BadRequest(c, apperrors.ChairmanNotFound, "Chairman not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch chairman")
		return
	}
	apperrors.OK(c, chairman)
}
