package service

import (
	"errors"
	"math"
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrMarketNotFound    = errors.New("market not found")
	ErrCaretakerNotFound = errors.New("caretaker not found")
)

// caretakerComplianceWindow is how far back a paid levy still counts a
// trader as compliant for a caretaker's view.
const caretakerComplianceWindow = 48 * time.Hour

// MarketCompliance is a point-in-time compliance picture for one
// market. A trader is compliant when at least one paid levy payment
// exists for them; pending and failed payments never count.
type MarketCompliance struct {
	MarketID            string  `json:"market_id"`
	TotalTraders        int64   `json:"total_traders"`
	CompliantTraders    int64   `json:"compliant_traders"`
	NonCompliantTraders int64   `json:"non_compliant_traders"`
	ComplianceRate      float64 `json:"compliance_rate"`
}

type ComplianceService interface {
	ComputeMarketCompliance(marketID string) (*MarketCompliance, error)
	GetCompliantTraderCount(caretakerID string, asOf time.Time) (int64, error)
	RefreshMarketSnapshot(marketID string, now time.Time) (*model.Market, error)
	RefreshAllMarketSnapshots(now time.Time) error
}

type complianceService struct {
	marketRepo    repository.MarketRepository
	traderRepo    repository.TraderRepository
	caretakerRepo repository.CaretakerRepository
	levyRepo      repository.LevyRepository
}

func NewComplianceService(
	marketRepo repository.MarketRepository,
	traderRepo repository.TraderRepository,
	caretakerRepo repository.CaretakerRepository,
	levyRepo repository.LevyRepository,
) ComplianceService {
	return &complianceService{
		marketRepo:    marketRepo,
		traderRepo:    traderRepo,
		caretakerRepo: caretakerRepo,
		levyRepo:      levyRepo,
	}
}

// ComputeMarketCompliance derives the compliance picture from live
// payment rows. Nothing here reads the stored market snapshot, so the
// result is always current.
func (s *complianceService) ComputeMarketCompliance(marketID string) (*MarketCompliance, error) {
	if _, err := s.marketRepo.FindByID(marketID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	total, err := s.traderRepo.CountByMarket(marketID)
	if err != nil {
		return nil, err
	}

	result := &MarketCompliance{MarketID: marketID, TotalTraders: total}
	if total == 0 {
		return result, nil
	}

	compliant, err := s.levyRepo.CountDistinctPaidTraders(marketID, nil)
	if err != nil {
		return nil, err
	}

	result.CompliantTraders = compliant
	result.NonCompliantTraders = total - compliant
	result.ComplianceRate = roundRate(float64(compliant) / float64(total) * 100)
	return result, nil
}

// GetCompliantTraderCount counts the caretaker's traders with a paid
// levy inside the trailing compliance window ending at asOf.
func (s *complianceService) GetCompliantTraderCount(caretakerID string, asOf time.Time) (int64, error) {
	if _, err := s.caretakerRepo.FindByID(caretakerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCaretakerNotFound
		}
		return 0, err
	}

	since := asOf.Add(-caretakerComplianceWindow)
	return s.levyRepo.CountDistinctPaidTradersByCaretaker(caretakerID, since)
}

// RefreshMarketSnapshot recomputes every stored aggregate on the market
// row from payment and trader data. Readers of the snapshot columns get
// whatever the last refresh produced; this is the only writer.
func (s *complianceService) RefreshMarketSnapshot(marketID string, now time.Time) (*model.Market, error) {
	market, err := s.marketRepo.FindByID(marketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	compliance, err := s.ComputeMarketCompliance(marketID)
	if err != nil {
		return nil, err
	}

	revenue, err := s.levyRepo.SumPaidAmount(marketID, nil, nil)
	if err != nil {
		return nil, err
	}

	occupancy := 0.0
	if market.Capacity > 0 {
		occupancy = roundRate(float64(compliance.TotalTraders) / float64(market.Capacity) * 100)
	}

	snapshot := repository.MarketSnapshot{
		TotalRevenue:        revenue,
		TotalTraders:        int(compliance.TotalTraders),
		CompliantTraders:    int(compliance.CompliantTraders),
		NonCompliantTraders: int(compliance.NonCompliantTraders),
		ComplianceRate:      compliance.ComplianceRate,
		OccupancyRate:       occupancy,
		SnapshotAt:          now,
	}
	if err := s.marketRepo.UpdateSnapshot(marketID, snapshot); err != nil {
		logger.Error("Failed to persist market snapshot", err, map[string]interface{}{
			"market_id": marketID,
		})
		return nil, err
	}

	logger.Info("Market snapshot refreshed", map[string]interface{}{
		"market_id":       marketID,
		"total_revenue":   revenue,
		"compliance_rate": compliance.ComplianceRate,
		"occupancy_rate":  occupancy,
	})

	return s.marketRepo.FindByID(marketID)
}

// RefreshAllMarketSnapshots refreshes every active market. A failure on
// one market is logged and skipped so the rest still refresh.
func (s *complianceService) RefreshAllMarketSnapshots(now time.Time) error {
	markets, err := s.marketRepo.ListAllActive()
	if err != nil {
		return err
	}

	var failed int
	for _, market := range markets {
		if _, err := s.RefreshMarketSnapshot(market.ID, now); err != nil {
			failed++
			logger.Error("Snapshot refresh failed for market", err, map[string]interface{}{
				"market_id": market.ID,
			})
		}
	}

	logger.Info("Snapshot refresh sweep finished", map[string]interface{}{
		"markets": len(markets),
		"failed":  failed,
	})
	return nil
}

// roundRate rounds a percentage to one decimal place.
func roundRate(v float64) float64 {
	return math.Round(v*10) / 10
}
