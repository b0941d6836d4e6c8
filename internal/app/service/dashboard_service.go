package service

import (
	"errors"
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"gorm.io/gorm"
)

var ErrChairmanNotFound = errors.New("chairman not found")

const recentPaymentLimit = 10

type PayerKind string

const (
	PayerTrader    PayerKind = "trader"
	PayerCollector PayerKind = "collector"
	PayerUnknown   PayerKind = "unknown"
)

// PayerName is a display name plus a tag saying where it came from, so
// callers can distinguish a trader called "Unknown" from a genuinely
// unresolvable payer.
type PayerName struct {
	Kind PayerKind `json:"kind"`
	Name string    `json:"name"`
}

type RecentPayment struct {
	PaymentID   string              `json:"payment_id"`
	Payer       PayerName           `json:"payer"`
	Amount      float64             `json:"amount"`
	Method      model.PaymentMethod `json:"method"`
	PaymentDate time.Time           `json:"payment_date"`
}

// DashboardStats is the full market dashboard payload. Counts and
// change percentages compare the current calendar period against the
// immediately preceding one of the same length.
type DashboardStats struct {
	MarketID    string    `json:"market_id"`
	GeneratedAt time.Time `json:"generated_at"`

	DailyRevenue   float64 `json:"daily_revenue"`
	WeeklyRevenue  float64 `json:"weekly_revenue"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
	TotalRevenue   float64 `json:"total_revenue"`

	TradersToday           int64   `json:"traders_today"`
	TraderChangePercent    float64 `json:"trader_change_percent"`
	CaretakersToday        int64   `json:"caretakers_today"`
	CaretakerChangePercent float64 `json:"caretaker_change_percent"`
	LeviesToday            int64   `json:"levies_today"`
	LevyChangePercent      float64 `json:"levy_change_percent"`

	Compliance     *MarketCompliance `json:"compliance"`
	RecentPayments []RecentPayment   `json:"recent_payments"`
}

type DashboardService interface {
	GetMarketDashboard(marketID string, now time.Time) (*DashboardStats, error)
	GetChairmanDashboard(chairmanUserID string, now time.Time) (*DashboardStats, error)
}

type dashboardService struct {
	marketRepo    repository.MarketRepository
	traderRepo    repository.TraderRepository
	caretakerRepo repository.CaretakerRepository
	chairmanRepo  repository.ChairmanRepository
	levyRepo      repository.LevyRepository
	compliance    ComplianceService
}

func NewDashboardService(
	marketRepo repository.MarketRepository,
	traderRepo repository.TraderRepository,
	caretakerRepo repository.CaretakerRepository,
	chairmanRepo repository.ChairmanRepository,
	levyRepo repository.LevyRepository,
	compliance ComplianceService,
) DashboardService {
	return &dashboardService{
		marketRepo:    marketRepo,
		traderRepo:    traderRepo,
		caretakerRepo: caretakerRepo,
		chairmanRepo:  chairmanRepo,
		levyRepo:      levyRepo,
		compliance:    compliance,
	}
}

func (s *dashboardService) GetMarketDashboard(marketID string, now time.Time) (*DashboardStats, error) {
	if _, err := s.marketRepo.FindByID(marketID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMarketNotFound
		}
		return nil, err
	}

	dayStart := StartOfDay(now)
	weekStart := StartOfWeek(now)
	monthStart := StartOfMonth(now)
	prevDayStart := dayStart.AddDate(0, 0, -1)

	stats := &DashboardStats{MarketID: marketID, GeneratedAt: now}

	var err error
	if stats.DailyRevenue, err = s.levyRepo.SumPaidAmount(marketID, &dayStart, &now); err != nil {
		return nil, err
	}
	if stats.WeeklyRevenue, err = s.levyRepo.SumPaidAmount(marketID, &weekStart, &now); err != nil {
		return nil, err
	}
	if stats.MonthlyRevenue, err = s.levyRepo.SumPaidAmount(marketID, &monthStart, &now); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.levyRepo.SumPaidAmount(marketID, nil, nil); err != nil {
		return nil, err
	}

	tradersToday, err := s.traderRepo.CountRegisteredBetween(marketID, dayStart, now)
	if err != nil {
		return nil, err
	}
	tradersPrev, err := s.traderRepo.CountRegisteredBetween(marketID, prevDayStart, dayStart)
	if err != nil {
		return nil, err
	}
	stats.TradersToday = tradersToday
	stats.TraderChangePercent = PercentChange(float64(tradersToday), float64(tradersPrev))

	caretakersToday, err := s.caretakerRepo.CountRegisteredBetween(marketID, dayStart, now)
	if err != nil {
		return nil, err
	}
	caretakersPrev, err := s.caretakerRepo.CountRegisteredBetween(marketID, prevDayStart, dayStart)
	if err != nil {
		return nil, err
	}
	stats.CaretakersToday = caretakersToday
	stats.CaretakerChangePercent = PercentChange(float64(caretakersToday), float64(caretakersPrev))

	leviesToday, err := s.levyRepo.CountPaidBetween(marketID, dayStart, now)
	if err != nil {
		return nil, err
	}
	leviesPrev, err := s.levyRepo.CountPaidBetween(marketID, prevDayStart, dayStart)
	if err != nil {
		return nil, err
	}
	stats.LeviesToday = leviesToday
	stats.LevyChangePercent = PercentChange(float64(leviesToday), float64(leviesPrev))

	if stats.Compliance, err = s.compliance.ComputeMarketCompliance(marketID); err != nil {
		return nil, err
	}

	recent, err := s.levyRepo.RecentPaid(marketID, recentPaymentLimit)
	if err != nil {
		return nil, err
	}
	stats.RecentPayments = make([]RecentPayment, 0, len(recent))
	for i := range recent {
		p := &recent[i]
		stats.RecentPayments = append(stats.RecentPayments, RecentPayment{
			PaymentID:   p.ID,
			Payer:       ResolvePayerName(p),
			Amount:      p.Amount,
			Method:      p.PaymentMethod,
			PaymentDate: p.PaymentDate,
		})
	}

	return stats, nil
}

// GetChairmanDashboard resolves the chairman's market from their user
// account and returns that market's dashboard.
func (s *dashboardService) GetChairmanDashboard(chairmanUserID string, now time.Time) (*DashboardStats, error) {
	chairman, err := s.chairmanRepo.FindByUserID(chairmanUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChairmanNotFound
		}
		return nil, err
	}
	return s.GetMarketDashboard(chairman.MarketID, now)
}

// ResolvePayerName falls back through trader name, then collector name,
// then an explicit unknown marker.
func ResolvePayerName(p *model.LevyPayment) PayerName {
	if p.Trader.User.FullName != "" {
		return PayerName{Kind: PayerTrader, Name: p.Trader.User.FullName}
	}
	if p.GoodBoy.User.FullName != "" {
		return PayerName{Kind: PayerCollector, Name: p.GoodBoy.User.FullName}
	}
	return PayerName{Kind: PayerUnknown, Name: "Unknown"}
}

// PercentChange reports the relative change from previous to current,
// rounded to one decimal place. A zero previous value maps to 100 when
// anything was gained and 0 otherwise, so a cold start never divides
// by zero.
func PercentChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return roundRate((current - previous) / previous * 100)
}

// StartOfDay truncates to local midnight.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek truncates to the most recent Sunday's midnight.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// StartOfMonth truncates to the first of the month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
