package repository

import (
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type LevyFilter struct {
	MarketID  string
	TraderID  string
	GoodBoyID string
	Status    model.PaymentStatus
	Period    model.PaymentPeriod
	From      *time.Time
	To        *time.Time
	Page      PageFilter
}

type LevyRepository interface {
	Create(payment *model.LevyPayment) error
	FindByID(id string) (*model.LevyPayment, error)
	FindByReference(reference string) (*model.LevyPayment, error)
	List(filter LevyFilter) (*Page[model.LevyPayment], error)
	UpdateStatus(id string, status model.PaymentStatus) error

	// Aggregates. Only rows with status paid are financially
	// authoritative; every method below filters on it.
	SumPaidAmount(marketID string, from, to *time.Time) (float64, error)
	CountPaidBetween(marketID string, start, end time.Time) (int64, error)
	CountDistinctPaidTraders(marketID string, since *time.Time) (int64, error)
	CountDistinctPaidTradersByCaretaker(caretakerID string, since time.Time) (int64, error)
	RecentPaid(marketID string, limit int) ([]model.LevyPayment, error)
	ListPaidBetween(marketID string, start, end time.Time) ([]model.LevyPayment, error)
}

type levyRepository struct {
	db *gorm.DB
}

func NewLevyRepository(db *gorm.DB) LevyRepository {
	return &levyRepository{db: db}
}

func (r *levyRepository) preloadPayment() *gorm.DB {
	return r.db.
		Preload("Trader", func(db *gorm.DB) *gorm.DB {
			return db.Preload("User")
		}).
		Preload("GoodBoy", func(db *gorm.DB) *gorm.DB {
			return db.Preload("User")
		}).
		Preload("Market")
}

func (r *levyRepository) Create(payment *model.LevyPayment) error {
	logger.Debug("Creating levy payment in database", map[string]interface{}{
		"trader_id":   payment.TraderID,
		"good_boy_id": payment.GoodBoyID,
		"market_id":   payment.MarketID,
		"amount":      payment.Amount,
		"status":      payment.PaymentStatus,
	})

	if err := r.db.Create(payment).Error; err != nil {
		logger.Error("Failed to create levy payment in database", err, map[string]interface{}{
			"trader_id": payment.TraderID,
			"reference": payment.TransactionReference,
		})
		return err
	}
	return nil
}

func (r *levyRepository) FindByID(id string) (*model.LevyPayment, error) {
	var payment model.LevyPayment
	if err := r.preloadPayment().First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *levyRepository) FindByReference(reference string) (*model.LevyPayment, error) {
	var payment model.LevyPayment
	if err := r.preloadPayment().First(&payment, "transaction_reference = ?", reference).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *levyRepository) List(filter LevyFilter) (*Page[model.LevyPayment], error) {
	query := r.db.Model(&model.LevyPayment{}).
		Preload("Trader.User").Preload("GoodBoy.User")

	if filter.MarketID != "" {
		query = query.Where("market_id = ?", filter.MarketID)
	}
	if filter.TraderID != "" {
		query = query.Where("trader_id = ?", filter.TraderID)
	}
	if filter.GoodBoyID != "" {
		query = query.Where("good_boy_id = ?", filter.GoodBoyID)
	}
	if filter.Status != "" {
		query = query.Where("payment_status = ?", filter.Status)
	}
	if filter.Period != "" {
		query = query.Where("period = ?", filter.Period)
	}
	if filter.From != nil {
		query = query.Where("payment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("payment_date < ?", *filter.To)
	}

	return Paginate[model.LevyPayment](query, filter.Page)
}

func (r *levyRepository) UpdateStatus(id string, status model.PaymentStatus) error {
	logger.Debug("Updating levy payment status in database", map[string]interface{}{
		"payment_id": id,
		"status":     status,
	})

	if err := r.db.Model(&model.LevyPayment{}).Where("id = ?", id).
		Update("payment_status", status).Error; err != nil {
		logger.Error("Failed to update levy payment status in database", err, map[string]interface{}{
			"payment_id": id,
			"status":     status,
		})
		return err
	}
	return nil
}

func (r *levyRepository) SumPaidAmount(marketID string, from, to *time.Time) (float64, error) {
	var result struct {
		Total float64
	}
	query := r.db.Model(&model.LevyPayment{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("market_id = ? AND payment_status = ?", marketID, model.PaymentStatusPaid)

	if from != nil {
		query = query.Where("payment_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("payment_date < ?", *to)
	}

	if err := query.Scan(&result).Error; err != nil {
		logger.Error("Failed to sum paid levy amounts", err, map[string]interface{}{
			"market_id": marketID,
		})
		return 0, err
	}
	return result.Total, nil
}

func (r *levyRepository) CountPaidBetween(marketID string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.LevyPayment{}).
		Where("market_id = ? AND payment_status = ? AND payment_date >= ? AND payment_date < ?",
			marketID, model.PaymentStatusPaid, start, end).
		Count(&count).Error
	return count, err
}

// CountDistinctPaidTraders counts active traders of the market with at
// least one paid payment. The join keeps the count over the same trader
// set as CountByMarket, so a deactivated trader's old payments cannot
// push a compliance numerator past its denominator.
// since == nil means cumulative-to-date.
func (r *levyRepository) CountDistinctPaidTraders(marketID string, since *time.Time) (int64, error) {
	var count int64
	query := r.db.Model(&model.LevyPayment{}).
		Joins("JOIN traders ON traders.id = levy_payments.trader_id").
		Where("levy_payments.market_id = ? AND levy_payments.payment_status = ? AND traders.is_active = ?",
			marketID, model.PaymentStatusPaid, true)
	if since != nil {
		query = query.Where("levy_payments.payment_date >= ?", *since)
	}
	err := query.Distinct("levy_payments.trader_id").Count(&count).Error
	return count, err
}

func (r *levyRepository) CountDistinctPaidTradersByCaretaker(caretakerID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.LevyPayment{}).
		Joins("JOIN traders ON traders.id = levy_payments.trader_id").
		Where("traders.caretaker_id = ? AND traders.is_active = ? AND levy_payments.payment_status = ? AND levy_payments.payment_date >= ?",
			caretakerID, true, model.PaymentStatusPaid, since).
		Distinct("levy_payments.trader_id").
		Count(&count).Error
	return count, err
}

func (r *levyRepository) RecentPaid(marketID string, limit int) ([]model.LevyPayment, error) {
	var payments []model.LevyPayment
	err := r.preloadPayment().
		Where("market_id = ? AND payment_status = ?", marketID, model.PaymentStatusPaid).
		Order("payment_date DESC").
		Limit(limit).
		Find(&payments).Error
	if err != nil {
		logger.Error("Failed to list recent paid levy payments", err, map[string]interface{}{
			"market_id": marketID,
		})
		return nil, err
	}
	return payments, nil
}

func (r *levyRepository) ListPaidBetween(marketID string, start, end time.Time) ([]model.LevyPayment, error) {
	var payments []model.LevyPayment
	err := r.preloadPayment().
		Where("market_id = ? AND payment_status = ? AND payment_date >= ? AND payment_date < ?",
			marketID, model.PaymentStatusPaid, start, end).
		Order("payment_date ASC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
