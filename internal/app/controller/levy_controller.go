package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/internal/app/service"
	apperrors "github.com/sabimarket/sabimarket-backend/internal/errors"
	"github.com/sabimarket/sabimarket-backend/internal/middleware"
)

type LevyController struct {
	levyService service.LevyService
}

func NewLevyController(levyService service.LevyService) *LevyController {
	return &LevyController{levyService: levyService}
}

type RecordPaymentRequest struct {
	TraderID      string  `json:"trader_id" binding:"required"`
	GoodBoyID     string  `json:"good_boy_id" binding:"required"`
	MarketID      string  `json:"market_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	Period        string  `json:"period" binding:"required,oneof=daily weekly monthly yearly"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=cash card bank_transfer qr_code"`
	Status        string  `json:"status" binding:"omitempty,oneof=pending paid failed"`
	Notes         string  `json:"notes"`
}

type QRPaymentRequest struct {
	QRCode    string  `json:"qr_code" binding:"required"`
	GoodBoyID string  `json:"good_boy_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Period    string  `json:"period" binding:"required,oneof=daily weekly monthly yearly"`
}

type OnlinePaymentRequest struct {
	TraderID   string  `json:"trader_id" binding:"required"`
	GoodBoyID  string  `json:"good_boy_id" binding:"required"`
	MarketID   string  `json:"market_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	Period     string  `json:"period" binding:"required,oneof=daily weekly monthly yearly"`
	PayerEmail string  `json:"payer_email" binding:"required,email"`
}

// RecordPayment records a levy collection
// POST /api/v1/levies
func (ctrl *LevyController) RecordPayment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid levy recording request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid levy payment details")
		return
	}

	payment, err := ctrl.levyService.RecordPayment(service.RecordPaymentInput{
		TraderID:  req.TraderID,
		GoodBoyID: req.GoodBoyID,
		MarketID:  req.MarketID,
		Amount:    req.Amount,
		Period:    model.PaymentPeriod(req.Period),
		Method:    model.PaymentMethod(req.PaymentMethod),
		Status:    model.PaymentStatus(req.Status),
		Notes:     req.Notes,
	})
	if err != nil {
		ctrl.respondRecordingError(c, err)
		return
	}

	log.Info("Levy payment recorded", map[string]interface{}{
		"payment_id": payment.ID,
	})
	apperrors.Created(c, payment)
}

// RecordPaymentByQRCode records an on-the-spot collection via QR scan
// POST /api/v1/levies/qr
func (ctrl *LevyController) RecordPaymentByQRCode(c *gin.Context) {
	var req QRPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid QR payment details")
		return
	}

	payment, err := ctrl.levyService.RecordPaymentByQRCode(req.QRCode, req.GoodBoyID, req.Amount, model.PaymentPeriod(req.Period))
	if err != nil {
		if errors.Is(err, service.ErrQRCodeNotFound) {
			apperrors.BadRequest(c, apperrors.TraderQRCodeNotFound, "No trader is registered for this QR code")
			return
		}
		ctrl.respondRecordingError(c, err)
		return
	}

	apperrors.Created(c, payment)
}

// InitializeOnlinePayment opens a gateway checkout for a levy payment
// POST /api/v1/levies/online
func (ctrl *LevyController) InitializeOnlinePayment(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req OnlinePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid online payment details")
		return
	}

	session, err := ctrl.levyService.InitializeOnlinePayment(c.Request.Context(), service.RecordPaymentInput{
		TraderID:  req.TraderID,
		GoodBoyID: req.GoodBoyID,
		MarketID:  req.MarketID,
		Amount:    req.Amount,
		Period:    model.PaymentPeriod(req.Period),
	}, req.PayerEmail)
	if err != nil {
		log.Error("Failed to initialize online levy payment", err, map[string]interface{}{
			"trader_id": req.TraderID,
		})
		ctrl.respondRecordingError(c, err)
		return
	}

	apperrors.Created(c, session)
}

// ConfirmOnlinePayment verifies a gateway reference and persists its outcome
// GET /api/v1/levies/online/confirm/:reference
func (ctrl *LevyController) ConfirmOnlinePayment(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Payment reference is required")
		return
	}

	payment, err := ctrl.levyService.ConfirmOnlinePayment(c.Request.Context(), reference)
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			apperrors.BadRequest(c, apperrors.LevyPaymentNotFound, "No payment exists for this reference")
			return
		}
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.InternalGatewayError, "Payment verification failed, please try again later")
		return
	}

	apperrors.OK(c, payment)
}

// GetPayment returns a single levy payment
// GET /api/v1/levies/:id
func (ctrl *LevyController) GetPayment(c *gin.Context) {
	payment, err := ctrl.levyService.GetPaymentByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			apperrors.BadRequest(c, apperrors.LevyPaymentNotFound, "Levy payment not found")
			return
		}
		apperrors.InternalError(c, "Failed to fetch levy payment")
		return
	}
	apperrors.OK(c, payment)
}

// GetPayments lists levy payments with filters and pagination
// GET /api/v1/levies
func (ctrl *LevyController) GetPayments(c *gin.Context) {
	filter := repository.LevyFilter{
		MarketID:  c.Query("market_id"),
		TraderID:  c.Query("trader_id"),
		GoodBoyID: c.Query("good_boy_id"),
		Status:    model.PaymentStatus(c.Query("status")),
		Period:    model.PaymentPeriod(c.Query("period")),
		Page:      parsePageFilter(c),
	}
	if from, ok := parseTimeQuery(c, "from"); ok {
		filter.From = &from
	}
	if to, ok := parseTimeQuery(c, "to"); ok {
		filter.To = &to
	}

	page, err := ctrl.levyService.GetPayments(filter)
	if err != nil {
		if errors.Is(err, repository.ErrUnsortedQuery) {
			apperrors.BadRequest(c, apperrors.PageUnsortedQuery, "A sort key is required for paginated queries")
			return
		}
		apperrors.InternalError(c, "Failed to fetch levy payments")
		return
	}
	apperrors.OK(c, page)
}

// respondRecordingError maps levy recording failures to the envelope.
func (ctrl *LevyController) respondRecordingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		apperrors.BadRequest(c, apperrors.LevyInvalidAmount, "Payment amount must be greater than zero")
	case errors.Is(err, service.ErrTraderNotFound):
		apperrors.BadRequest(c, apperrors.LevyTraderNotFound, "Trader not found")
	case errors.Is(err, service.ErrTraderNotInMarket):
		apperrors.BadRequest(c, apperrors.LevyTraderNotInMarket, "Trader does not belong to the supplied market")
	case errors.Is(err, service.ErrCollectorNotFound):
		apperrors.BadRequest(c, apperrors.CollectorNotFound, "Collector not found")
	case errors.Is(err, service.ErrCollectorLocked):
		apperrors.Conflict(c, apperrors.LevyCollectorLocked, "This collector is locked and cannot record collections")
	default:
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "levy payment")
	}
}

// parsePageFilter reads the shared pagination query parameters.
func parsePageFilter(c *gin.Context) repository.PageFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return repository.PageFilter{
		PageNumber: page,
		PageSize:   size,
		SortBy:     c.Query("sort_by"),
		SortDesc:   c.DefaultQuery("sort_dir", "desc") == "desc",
	}
}

// parseTimeQuery reads an RFC 3339 or date-only query parameter.
func parseTimeQuery(c *gin.Context, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
