package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sabimarket/sabimarket-backend/internal/app/service"
	apperrors "github.com/sabimarket/sabimarket-backend/internal/errors"
	"github.com/sabimarket/sabimarket-backend/internal/middleware"
)

type DashboardController struct {
	dashboardService  service.DashboardService
	complianceService service.ComplianceService
	reportService     service.ReportService
}

func NewDashboardController(
	dashboardService service.DashboardService,
	complianceService service.ComplianceService,
	reportService service.ReportService,
) *DashboardController {
	return &DashboardController{
		dashboardService:  dashboardService,
		complianceService: complianceService,
		reportService:     reportService,
	}
}

// GetMarketDashboard returns the aggregate dashboard for a market
// GET /api/v1/markets/:id/dashboard
func (ctrl *DashboardController) GetMarketDashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.dashboardService.GetMarketDashboard(c.Param("id"), time.Now())
	if err != nil {
		if errors.Is(err, service.ErrMarketNotFound) {
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
			return
		}
		log.Error("Failed to build market dashboard", err, map[string]interface{}{
			"market_id": c.Param("id"),
		})
		apperrors.InternalError(c, "Failed to build dashboard")
		return
	}

	apperrors.OK(c, stats)
}

// GetChairmanDashboard returns the dashboard for the caller's market
// GET /api/v1/dashboard/chairman
func (ctrl *DashboardController) GetChairmanDashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := ctrl.dashboardService.GetChairmanDashboard(userID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChairmanNotFound):
			apperrors.BadRequest(c, apperrors.ChairmanNotFound, "No chairman record exists for this account")
		case errors.Is(err, service.ErrMarketNotFound):
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
		default:
			apperrors.InternalError(c, "Failed to build dashboard")
		}
		return
	}

	apperrors.OK(c, stats)
}

// GetMarketCompliance returns the live compliance picture for a market
// GET /api/v1/markets/:id/compliance
func (ctrl *DashboardController) GetMarketCompliance(c *gin.Context) {
	compliance, err := ctrl.complianceService.ComputeMarketCompliance(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMarketNotFound) {
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
			return
		}
		apperrors.InternalError(c, "Failed to compute compliance")
		return
	}

	apperrors.OK(c, compliance)
}

// GetCaretakerCompliantCount returns the caretaker's recent compliant-trader count
// GET /api/v1/caretakers/:id/compliant-count
func (ctrl *DashboardController) GetCaretakerCompliantCount(c *gin.Context) {
	count, err := ctrl.complianceService.GetCompliantTraderCount(c.Param("id"), time.Now())
	if err != nil {
		if errors.Is(err, service.ErrCaretakerNotFound) {
			apperrors.BadRequest(c, apperrors.CaretakerNotFound, "Caretaker not found")
			return
		}
		apperrors.InternalError(c, "Failed to count compliant traders")
		return
	}

	apperrors.OK(c, gin.H{"compliant_traders": count})
}

// RefreshMarketSnapshot recomputes the market's cached aggregates
// POST /api/v1/markets/:id/snapshot/refresh
func (ctrl *DashboardController) RefreshMarketSnapshot(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	market, err := ctrl.complianceService.RefreshMarketSnapshot(c.Param("id"), time.Now())
	if err != nil {
		if errors.Is(err, service.ErrMarketNotFound) {
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
			return
		}
		log.Error("Snapshot refresh failed", err, map[string]interface{}{
			"market_id": c.Param("id"),
		})
		apperrors.InternalError(c, "Failed to refresh market snapshot")
		return
	}

	apperrors.OK(c, market)
}

// ExportLevyReport streams the market's paid levies as an XLSX file
// GET /api/v1/markets/:id/reports/levies?from=...&to=...
func (ctrl *DashboardController) ExportLevyReport(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	from, ok := parseTimeQuery(c, "from")
	if !ok {
		from = service.StartOfMonth(time.Now())
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		to = time.Now()
	}
	if !to.After(from) {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "The report range end must be after its start")
		return
	}

	data, filename, err := ctrl.reportService.ExportLevyReport(c.Param("id"), from, to)
	if err != nil {
		if errors.Is(err, service.ErrMarketNotFound) {
			apperrors.BadRequest(c, apperrors.MarketNotFound, "Market not found")
			return
		}
		log.Error("Levy report export failed", err, map[string]interface{}{
			"market_id": c.Param("id"),
		})
		apperrors.InternalError(c, "Failed to export levy report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
