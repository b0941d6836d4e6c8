package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/internal/app/service"
	apperrors "github.com/sabimarket/sabimarket-backend/internal/errors"
	"github.com/sabimarket/sabimarket-backend/internal/middleware"
)

type AdvertisementController struct {
	advertService service.AdvertisementService
}

func NewAdvertisementController(advertService service.AdvertisementService) *AdvertisementController {
	return &AdvertisementController{advertService: advertService}
}

type CreateAdvertRequest struct {
	Title           string    `json:"title" binding:"required"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url"`
	TargetLocations []string  `json:"target_locations"`
	StartDate       time.Time `json:"start_date" binding:"required"`
	EndDate         time.Time `json:"end_date" binding:"required"`
}

type RejectAdvertRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CreateAdvert submits a placement for review
// POST /api/v1/adverts
func (ctrl *AdvertisementController) CreateAdvert(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	vendorID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateAdvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid advertisement details")
		return
	}

	advert, err := ctrl.advertService.CreateAdvert(service.CreateAdvertInput{
		VendorID:        vendorID,
		Title:           req.Title,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		TargetLocations: req.TargetLocations,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAdvertDateInvalid):
			apperrors.BadRequest(c, apperrors.AdvertInvalidDates, "The end date must be after the start date")
		case errors.Is(err, service.ErrUserNotFound):
			apperrors.BadRequest(c, apperrors.ResourceNotFound, "Vendor account not found")
		default:
			log.Error("Failed to create advertisement", err, map[string]interface{}{
				"vendor_id": vendorID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "advertisement")
		}
		return
	}

	apperrors.Created(c, advert)
}

// GetAdvert returns a single placement
// GET /api/v1/adverts/:id
func (ctrl *AdvertisementController) GetAdvert(c *gin.Context) {
	advert, err := ctrl.advertService.GetAdvert(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAdvertNotFound) {
			apperrors.BadRequest(c, apperrors.AdvertNotFound, "Advertisement not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch advertisement")
		return
	}
	apperrors.OK(c, advert)
}

// GetAdverts lists placements
// GET /api/v1/adverts
func (ctrl *AdvertisementController) GetAdverts(c *gin.Context) {
	filter := repository.AdvertFilter{
		VendorID: c.Query("vendor_id"),
		Status:   model.AdvertStatus(c.Query("status")),
		Page:     parsePageFilter(c),
	}

	page, err := ctrl.advertService.GetAdverts(filter)
	if err != nil {
		if errors.Is(err, repository.ErrUnsortedQuery) {
			apperrors.BadRequest(c, apperrors.PageUnsortedQuery, "A sort key is required for paginated queries")
			return
		}
		apperrors.InternalError(c, "Failed to fetch advertisements")
		return
	}
	apperrors.OK(c, page)
}

// ApproveAdvert activates a pending placement
// POST /api/v1/adverts/:id/approve
func (ctrl *AdvertisementController) ApproveAdvert(c *gin.Context) {
	advert, err := ctrl.advertService.ApproveAdvert(c.Param("id"))
	if err != nil {
		ctrl.respondReviewError(c, err)
		return
	}
	apperrors.OK(c, advert)
}

// RejectAdvert rejects a pending placement with a reason
// POST /api/v1/adverts/:id/reject
func (ctrl *AdvertisementController) RejectAdvert(c *gin.Context) {
	var req RejectAdvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "A rejection reason is required")
		return
	}

	advert, err := ctrl.advertService.RejectAdvert(c.Param("id"), req.Reason)
	if err != nil {
		ctrl.respondReviewError(c, err)
		return
	}
	apperrors.OK(c, advert)
}

func (ctrl *AdvertisementController) respondReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAdvertNotFound):
		apperrors.BadRequest(c, apperrors.AdvertNotFound, "Advertisement not found")
	case errors.Is(err, service.ErrAdvertNotPending):
		apperrors.Conflict(c, apperrors.AdvertNotPending, "Only pending advertisements can be reviewed")
	default:
		apperrors.InternalError(c, "Failed to review advertisement")
	}
}
