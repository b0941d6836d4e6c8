package repository

import (
	"fmt"
	"testing"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type traderRepoFixture struct {
	db        *gorm.DB
	market    *model.Market
	caretaker *model.Caretaker
}

func setupTraderRepositoryTest(t *testing.T) (TraderRepository, *traderRepoFixture) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	lg := &model.LocalGovernment{Name: "Ikeja", State: "Lagos"}
	require.NoError(t, testDB.Create(lg).Error)

	market := &model.Market{
		LocalGovernmentID: lg.ID,
		Name:              "Balogun Market",
		Location:          "Lagos Island",
		Capacity:          200,
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

	return NewTraderRepository(testDB), &traderRepoFixture{
		db: testDB, market: market, caretaker: caretaker,
	}
}

func (fx *traderRepoFixture) seedTrader(t *testing.T, repo TraderRepository, n int, businessName string) *model.Trader {
	user := &model.User{
		FullName:     fmt.Sprintf("Trader %02d", n),
		Email:        fmt.Sprintf("trader%02d@example.com", n),
		PasswordHash: "hash",
		Role:         model.RoleTrader,
	}
	require.NoError(t, fx.db.Create(user).Error)

	qrCode := fmt.Sprintf("SBM-QR-REPO-%04d", n)
	trader := &model.Trader{
		UserID:       user.ID,
		MarketID:     fx.market.ID,
		CaretakerID:  fx.caretaker.ID,
		BusinessName: businessName,
		TIN:          fmt.Sprintf("TIN-%04d", n),
		QRCode:       &qrCode,
		IsActive:     true,
	}
	require.NoError(t, repo.Create(trader))
	return trader
}

func TestTraderRepository_FindByQRCode(t *testing.T) {
	repo, fx := setupTraderRepositoryTest(t)
	trader := fx.seedTrader(t, repo, 1, "Chidi Electronics")

	found, err := repo.FindByQRCode("SBM-QR-REPO-0001")
	require.NoError(t, err)
	assert.Equal(t, trader.ID, found.ID)
	assert.Equal(t, "Trader 01", found.User.FullName)

	_, err = repo.FindByQRCode("SBM-QR-REPO-9999")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTraderRepository_List(t *testing.T) {
	repo, fx := setupTraderRepositoryTest(t)

	fx.seedTrader(t, repo, 1, "Chidi Electronics")
	fx.seedTrader(t, repo, 2, "Amaka Fabrics")
	deactivated := fx.seedTrader(t, repo, 3, "Closed Electronics")
	require.NoError(t, repo.Deactivate(deactivated.ID))

	page := PageFilter{PageNumber: 1, PageSize: 10, SortBy: "created_at"}

	t.Run("search matches the business name", func(t *testing.T) {
		result, err := repo.List(TraderFilter{MarketID: fx.market.ID, Search: "Electronics", Page: page})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.TotalCount)
	})

	t.Run("active only excludes deactivated traders", func(t *testing.T) {
		result, err := repo.List(TraderFilter{MarketID: fx.market.ID, ActiveOnly: true, Page: page})
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.TotalCount)
	})

	t.Run("caretaker filter", func(t *testing.T) {
		result, err := repo.List(TraderFilter{CaretakerID: fx.caretaker.ID, Page: page})
		require.NoError(t, err)
		assert.Equal(t, int64(3), result.TotalCount)
	})
}

func TestTraderRepository_Counts(t *testing.T) {
	repo, fx := setupTraderRepositoryTest(t)

	fx.seedTrader(t, repo, 1, "Chidi Electronics")
	fx.seedTrader(t, repo, 2, "Amaka Fabrics")
	deactivated := fx.seedTrader(t, repo, 3, "Closed Electronics")
	require.NoError(t, repo.Deactivate(deactivated.ID))

	count, err := repo.CountByMarket(fx.market.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByCaretaker(fx.caretaker.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTraderRepository_Update(t *testing.T) {
	repo, fx := setupTraderRepositoryTest(t)
	trader := fx.seedTrader(t, repo, 1, "Chidi Electronics")

	trader.BusinessName = "Chidi Electronics & Phones"
	require.NoError(t, repo.Update(trader))

	found, err := repo.FindByID(trader.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chidi Electronics & Phones", found.BusinessName)
}
