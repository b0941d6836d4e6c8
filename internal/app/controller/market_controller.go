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

type MarketController struct {
	marketService service.MarketService
}

func NewMarketController(marketService service.MarketService) *MarketController {
	return &MarketController{marketService: marketService}
}

type CreateMarketRequest struct {
	LocalGovernmentID string `json:"local_government_id" binding:"required"`
	Name              string `json:"name" binding:"required"`
	Location          string `json:"location" binding:"required"`
	Description       string `json:"description"`
	Capacity          int    `json:"capacity" binding:"omitempty,min=1"`
}

type UpdateMarketRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" binding:"omitempty,min=1"`
}

type CreateSectionRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"omitempty,min=1"`
}

// CreateMarket registers a new market
// POST /api/v1/markets
func (ctrl *MarketController) CreateMarket(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid market details")
		return
	}

	market, err := ctrl.marketService.CreateMarket(service.CreateMarketInput{
		LocalGovernmentID: req.LocalGovernmentID,
		Name:              req.Name,
		Location:          req.Location,
		Description:       req.Description,
		Capacity:          req.Capacity,
	})
	if err != nil {
		if errors.Is(err, service.ErrLocalGovernmentNotFound) {
			apperrors.BadRequest(c, apperrors.ResourceNotFound, "Local government not found")
			return
		}
		log.Error("Failed to create market", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "market")
		return
	}

	apperrors.Created(c, market)
}

// GetMarket returns a single market with its cached snapshot fields
// GET /api/v1/markets/:id
func (ctrl *MarketController) GetMarket(c *gin.Context) {
	market, err := ctrl.marketService.GetMarket(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMarketNotFound) {
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch market")
		return
	}
	apperrors.OK(c, market)
}

// GetMarkets lists markets
// GET /api/v1/markets
func (ctrl *MarketController) GetMarkets(c *gin.Context) {
	filter := repository.MarketFilter{
		LocalGovernmentID: c.Query("local_government_id"),
		Search:            c.Query("search"),
		ActiveOnly:        c.DefaultQuery("active_only", "true") == "true",
		Page:              parsePageFilter(c),
	}

	page, err := ctrl.marketService.GetMarkets(filter)
	if err != nil {
		if errors.Is(err, repository.ErrUnsortedQuery) {
			apperrors.BadRequest(c, apperrors.PageUnsortedQuery, "A sort key is required for paginated queries")
			return
		}
		apperrors.InternalError(c, "Failed to fetch markets")
		return
	}
	apperrors.OK(c, page)
}

// UpdateMarket updates market details
// PUT /api/v1/markets/:id
func (ctrl *MarketController) UpdateMarket(c *gin.Context) {
	var req UpdateMarketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid market details")
		return
	}

	market, err := ctrl.marketService.UpdateMarket(c.Param("id"), service.CreateMarketInput{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Capacity:    req.Capacity,
	})
	if err != nil {
		if errors.Is(err, service.ErrMarketNotFound) {
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "market")
		return
	}
	apperrors.OK(c, market)
}

// DeactivateMarket soft-deletes a market
// DELETE /api/v1/markets/:id
func (ctrl *MarketController) DeactivateMarket(c *gin.Context) {
	if err := ctrl.marketService.DeactivateMarket(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrMarketNotFound) {
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
			return
		}
		apperrors.InternalError(c, "Failed to deactivate market")
		return
	}
	apperrors.OK(c, gin.H{"message": "Market deactivated"})
}

// CreateSection adds a section to a market
// POST /api/v1/markets/:id/sections
func (ctrl *MarketController) CreateSection(c *gin.Context) {
	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid section details")
		return
	}

	section, err := ctrl.marketService.CreateSection(service.CreateSectionInput{
		MarketID: c.Param("id"),
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		if errors.Is(err, service.ErrMarketNotFound) {
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "market section")
		return
	}
	apperrors.Created(c, section)
}
