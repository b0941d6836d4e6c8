package service

import (
	"testing"
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupComplianceServiceTest(t *testing.T) (ComplianceService, LevyService, *levyFixture) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	levyRepo := repository.NewLevyRepository(testDB)
	traderRepo := repository.NewTraderRepository(testDB)
	goodBoyRepo := repository.NewGoodBoyRepository(testDB)
	marketRepo := repository.NewMarketRepository(testDB)
	caretakerRepo := repository.NewCaretakerRepository(testDB)

	complianceService := NewComplianceService(marketRepo, traderRepo, caretakerRepo, levyRepo)
	levyService := NewLevyService(levyRepo, traderRepo, goodBoyRepo, nil, testDB)

	fx := seedLevyFixture(t, testDB)
	return complianceService, levyService, fx
}

// addTrader registers an extra trader in the fixture market.
func addTrader(t *testing.T, fx *levyFixture, n int) *model.Trader {
	t.Helper()

	user := &model.User{
		FullName:     "Extra Trader",
		Email:        "trader" + string(rune('a'+n)) + "@example.com",
		PasswordHash: "hash",
		Role:         model.RoleTrader,
	}
	require.NoError(t, fx.db.Create(user).Error)

	trader := &model.Trader{
		UserID:       user.ID,
		MarketID:     fx.market.ID,
		CaretakerID:  fx.caretaker.ID,
		BusinessName: "Extra Shop",
		TIN:          "TIN-X" + string(rune('a'+n)),
		IsActive:     true,
	}
	require.NoError(t, fx.db.Create(trader).Error)
	return trader
}

func payFor(t *testing.T, levyService LevyService, fx *levyFixture, traderID string, status model.PaymentStatus) {
	t.Helper()
	_, err := levyService.RecordPayment(RecordPaymentInput{
		TraderID:  traderID,
		GoodBoyID: fx.goodBoy.ID,
		MarketID:  fx.market.ID,
		Amount:    100,
		Period:    model.PeriodDaily,
		Method:    model.MethodCash,
		Status:    status,
	})
	require.NoError(t, err)
}

func TestComputeMarketCompliance(t *testing.T) {
	t.Run("market with no traders has zero rate", func(t *testing.T) {
		complianceService, _, fx := setupComplianceServiceTest(t)

		result, err := complianceService.ComputeMarketCompliance(fx.otherMkt.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.TotalTraders)
		assert.Equal(t, 0.0, result.ComplianceRate)
	})

	t.Run("unknown market is rejected", func(t *testing.T) {
		complianceService, _, _ := setupComplianceServiceTest(t)

		_, err := complianceService.ComputeMarketCompliance("missing-market")
		assert.ErrorIs(t, err, ErrMarketNotFound)
	})

	t.Run("pending and failed payments never count", func(t *testing.T) {
		complianceService, levyService, fx := setupComplianceServiceTest(t)

		payFor(t, levyService, fx, fx.trader.ID, model.PaymentStatusPending)
		payFor(t, levyService, fx, fx.trader.ID, model.PaymentStatusFailed)

		result, err := complianceService.ComputeMarketCompliance(fx.market.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.TotalTraders)
		assert.Equal(t, int64(0), result.CompliantTraders)
		assert.Equal(t, 0.0, result.ComplianceRate)
	})

	t.Run("rate is rounded to one decimal place", func(t *testing.T) {
		complianceService, levyService, fx := setupComplianceServiceTest(t)

		// 6 traders total, 1 paid: 1/6 = 16.666... -> 16.7
		for i := 0; i < 5; i++ {
			addTrader(t, fx, i)
		}
		payFor(t, levyService, fx, fx.trader.ID, model.PaymentStatusPaid)

		result, err := complianceService.ComputeMarketCompliance(fx.market.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(6), result.TotalTraders)
		assert.Equal(t, int64(1), result.CompliantTraders)
		assert.Equal(t, int64(5), result.NonCompliantTraders)
		assert.Equal(t, 16.7, result.ComplianceRate)
	})

	t.Run("deactivated payers drop out of both counts", func(t *testing.T) {
		complianceService, levyService, fx := setupComplianceServiceTest(t)

		leaver := addTrader(t, fx, 0)
		payFor(t, levyService, fx, leaver.ID, model.PaymentStatusPaid)
		payFor(t, levyService, fx, fx.trader.ID, model.PaymentStatusPaid)
		require.NoError(t, fx.db.Model(&model.Trader{}).
			Where("id = ?", leaver.ID).
			Update("is_active", false).Error)

		result, err := complianceService.ComputeMarketCompliance(fx.market.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.TotalTraders)
		assert.Equal(t, int64(1), result.CompliantTraders)
		assert.Equal(t, int64(0), result.NonCompliantTraders)
		assert.Equal(t, 100.0, result.ComplianceRate)
	})

	t.Run("duplicate payments count a trader once", func(t *testing.T) {
		complianceService, levyService, fx := setupComplianceServiceTest(t)

		addTrader(t, fx, 0)
		payFor(t, levyService, fx, fx.trader.ID, model.PaymentStatusPaid)
		payFor(t, levyService, fx, fx.trader.ID, model.PaymentStatusPaid)

		result, err := complianceService.ComputeMarketCompliance(fx.market.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.CompliantTraders)
		assert.Equal(t, 50.0, result.ComplianceRate)
	})
}

func TestGetCompliantTraderCount(t *testing.T) {
	t.Run("counts only payments inside the trailing window", func(t *testing.T) {
		complianceService, levyService, fx := setupComplianceServiceTest(t)

		old := addTrader(t, fx, 0)
		_, err := levyService.RecordPayment(RecordPaymentInput{
			TraderID:    old.ID,
			GoodBoyID:   fx.goodBoy.ID,
			MarketID:    fx.market.ID,
			Amount:      100,
			Period:      model.PeriodDaily,
			Method:      model.MethodCash,
			Status:      model.PaymentStatusPaid,
			PaymentDate: time.Now().Add(-72 * time.Hour),
		})
		require.NoError(t, err)
		payFor(t, levyService, fx, fx.trader.ID, model.PaymentStatusPaid)

		count, err := complianceService.GetCompliantTraderCount(fx.caretaker.ID, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("deactivated payers are not counted", func(t *testing.T) {
		complianceService, levyService, fx := setupComplianceServiceTest(t)

		leaver := addTrader(t, fx, 0)
		payFor(t, levyService, fx, leaver.ID, model.PaymentStatusPaid)
		payFor(t, levyService, fx, fx.trader.ID, model.PaymentStatusPaid)
		require.NoError(t, fx.db.Model(&model.Trader{}).
			Where("id = ?", leaver.ID).
			Update("is_active", false).Error)

		count, err := complianceService.GetCompliantTraderCount(fx.caretaker.ID, time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown caretaker is rejected", func(t *testing.T) {
		complianceService, _, _ := setupComplianceServiceTest(t)

		_, err := complianceService.GetCompliantTraderCount("missing-caretaker", time.Now())
		assert.ErrorIs(t, err, ErrCaretakerNotFound)
	})
}

func TestRefreshMarketSnapshot(t *testing.T) {
	complianceService, levyService, fx := setupComplianceServiceTest(t)

	addTrader(t, fx, 0)
	payFor(t, levyService, fx, fx.trader.ID, model.PaymentStatusPaid)
	payFor(t, levyService, fx, fx.trader.ID, model.PaymentStatusPaid)

	now := time.Now()
	market, err := complianceService.RefreshMarketSnapshot(fx.market.ID, now)
	require.NoError(t, err)

	assert.Equal(t, 200.0, market.TotalRevenue)
	assert.Equal(t, 2, market.TotalTraders)
	assert.Equal(t, 1, market.CompliantTraders)
	assert.Equal(t, 1, market.NonCompliantTraders)
	assert.Equal(t, 50.0, market.ComplianceRate)
	// 2 traders in a capacity-100 market.
	assert.Equal(t, 2.0, market.OccupancyRate)
	require.NotNil(t, market.SnapshotAt)

	// The stored row carries the refreshed values.
	var stored model.Market
	require.NoError(t, fx.db.First(&stored, "id = ?", fx.market.ID).Error)
	assert.Equal(t, 200.0, stored.TotalRevenue)
}

func TestRefreshAllMarketSnapshots(t *testing.T) {
	complianceService, levyService, fx := setupComplianceServiceTest(t)

	payFor(t, levyService, fx, fx.trader.ID, model.PaymentStatusPaid)
	require.NoError(t, complianceService.RefreshAllMarketSnapshots(time.Now()))

	var markets []model.Market
	require.NoError(t, fx.db.Order("name").Find(&markets).Error)
	for _, m := range markets {
		assert.NotNil(t, m.SnapshotAt, m.Name)
	}
}
