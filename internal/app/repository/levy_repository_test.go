package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type levyRepoFixture struct {
	db      *gorm.DB
	market  *model.Market
	trader  *model.Trader
	goodBoy *model.GoodBoy
}

func setupLevyRepositoryTest(t *testing.T) (LevyRepository, *levyRepoFixture) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	lg := &model.LocalGovernment{Name: "Ikeja", State: "Lagos"}
	require.NoError(t, testDB.Create(lg).Error)

	market := &model.Market{
		LocalGovernmentID: lg.ID,
		Name:              "Computer Village",
		Location:          "Ikeja, Lagos",
		Capacity:          100,
		IsActive:          true,
	}
	require.NoError(t, testDB.Create(market).Error)

	caretakerUser := &model.User{
		FullName: "Ada Caretaker", Email: "ada@example.com",
		PasswordHash: "hash", Role: model.RoleCaretaker,
	}
	require.NoError(t, testDB.Create(caretakerUser).Error)
	caretaker := &model.Caretaker{
		UserID: caretakerUser.ID, MarketID: market.ID,
		LocalGovernmentID: lg.ID, IsActive: true,
	}
	require.NoError(t, testDB.Create(caretaker).Error)

	goodBoyUser := &model.User{
		FullName: "Bola Collector", Email: "bola@example.com",
		PasswordHash: "hash", Role: model.RoleGoodBoy,
	}
	require.NoError(t, testDB.Create(goodBoyUser).Error)
	goodBoy := &model.GoodBoy{
		UserID: goodBoyUser.ID, CaretakerID: caretaker.ID,
		MarketID: market.ID, Status: model.GoodBoyStatusUnlocked, IsActive: true,
	}
	require.NoError(t, testDB.Create(goodBoy).Error)

	traderUser := &model.User{
		FullName: "Chidi Trader", Email: "chidi@example.com",
		PasswordHash: "hash", Role: model.RoleTrader,
	}
	require.NoError(t, testDB.Create(traderUser).Error)
	trader := &model.Trader{
		UserID: traderUser.ID, MarketID: market.ID, CaretakerID: caretaker.ID,
		BusinessName: "Chidi Electronics", TIN: "TIN-0001", IsActive: true,
	}
	require.NoError(t, testDB.Create(trader).Error)

	return NewLevyRepository(testDB), &levyRepoFixture{
		db: testDB, market: market, trader: trader, goodBoy: goodBoy,
	}
}

func (fx *levyRepoFixture) payment(n int, status model.PaymentStatus, amount float64, date time.Time) *model.LevyPayment {
	return &model.LevyPayment{
		TraderID:             fx.trader.ID,
		GoodBoyID:            fx.goodBoy.ID,
		MarketID:             fx.market.ID,
		Amount:               amount,
		Period:               model.PeriodDaily,
		PaymentMethod:        model.MethodCash,
		PaymentStatus:        status,
		PaymentDate:          date,
		TransactionReference: fmt.Sprintf("LEVY-TEST-%04d", n),
	}
}

func TestLevyRepository_CreateAndFind(t *testing.T) {
	repo, fx := setupLevyRepositoryTest(t)

	payment := fx.payment(1, model.PaymentStatusPaid, 500, time.Now())
	require.NoError(t, repo.Create(payment))
	require.NotEmpty(t, payment.ID)

	found, err := repo.FindByID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, found.Amount)
	assert.Equal(t, "Chidi Trader", found.Trader.User.FullName)
	assert.Equal(t, "Bola Collector", found.GoodBoy.User.FullName)

	byRef, err := repo.FindByReference("LEVY-TEST-0001")
	require.NoError(t, err)
	assert.Equal(t, payment.ID, byRef.ID)

	_, err = repo.FindByID("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLevyRepository_List(t *testing.T) {
	repo, fx := setupLevyRepositoryTest(t)
	now := time.Now()

	require.NoError(t, repo.Create(fx.payment(1, model.PaymentStatusPaid, 100, now)))
	require.NoError(t, repo.Create(fx.payment(2, model.PaymentStatusPending, 200, now)))
	require.NoError(t, repo.Create(fx.payment(3, model.PaymentStatusPaid, 300, now.Add(-48*time.Hour))))

	page := PageFilter{PageNumber: 1, PageSize: 10, SortBy: "payment_date", SortDesc: true}

	t.Run("filters by status", func(t *testing.T) {
		result, err := repo.List(LevyFilter{MarketID: fx.market.ID, Status: model.PaymentStatusPaid, Page: page})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.TotalCount)
	})

	t.Run("filters by date window", func(t *testing.T) {
		from := now.Add(-time.Hour)
		result, err := repo.List(LevyFilter{MarketID: fx.market.ID, From: &from, Page: page})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.TotalCount)
	})

	t.Run("unknown market matches nothing", func(t *testing.T) {
		result, err := repo.List(LevyFilter{MarketID: "missing", Page: page})
		require.NoError(t, err)
		assert.Equal(t, int64(0), result.TotalCount)
		assert.Empty(t, result.Data)
	})
}

func TestLevyRepository_UpdateStatus(t *testing.T) {
	repo, fx := setupLevyRepositoryTest(t)

	payment := fx.payment(1, model.PaymentStatusPending, 100, time.Now())
	require.NoError(t, repo.Create(payment))

	require.NoError(t, repo.UpdateStatus(payment.ID, model.PaymentStatusPaid))

	found, err := repo.FindByID(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, found.PaymentStatus)
}

func TestLevyRepository_Aggregates(t *testing.T) {
	repo, fx := setupLevyRepositoryTest(t)
	now := time.Now()
	dayAgo := now.Add(-24 * time.Hour)

	require.NoError(t, repo.Create(fx.payment(1, model.PaymentStatusPaid, 100, now)))
	require.NoError(t, repo.Create(fx.payment(2, model.PaymentStatusPaid, 250, now.Add(-48*time.Hour))))
	require.NoError(t, repo.Create(fx.payment(3, model.PaymentStatusPending, 999, now)))

	t.Run("sum counts paid rows only", func(t *testing.T) {
		total, err := repo.SumPaidAmount(fx.market.ID, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, 350.0, total)
	})

	t.Run("sum respects the window", func(t *testing.T) {
		end := now.Add(time.Minute)
		total, err := repo.SumPaidAmount(fx.market.ID, &dayAgo, &end)
		require.NoError(t, err)
		assert.Equal(t, 100.0, total)
	})

	t.Run("empty window sums to zero", func(t *testing.T) {
		from := now.Add(time.Hour)
		to := now.Add(2 * time.Hour)
		total, err := repo.SumPaidAmount(fx.market.ID, &from, &to)
		require.NoError(t, err)
		assert.Equal(t, 0.0, total)
	})

	t.Run("count paid between", func(t *testing.T) {
		count, err := repo.CountPaidBetween(fx.market.ID, dayAgo, now.Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("distinct traders dedupes repeat payers", func(t *testing.T) {
		count, err := repo.CountDistinctPaidTraders(fx.market.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestLevyRepository_RecentPaid(t *testing.T) {
	repo, fx := setupLevyRepositoryTest(t)
	now := time.Now()

	for i := 0; i < 5; i++ {
		p := fx.payment(i, model.PaymentStatusPaid, float64(i+1), now.Add(-time.Duration(i)*time.Hour))
		require.NoError(t, repo.Create(p))
	}
	require.NoError(t, repo.Create(fx.payment(99, model.PaymentStatusPending, 999, now)))

	recent, err := repo.RecentPaid(fx.market.ID, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, 1.0, recent[0].Amount)
	assert.Equal(t, 2.0, recent[1].Amount)
	assert.Equal(t, "Chidi Trader", recent[0].Trader.User.FullName)
}
