package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/internal/app/service"
	"github.com/sabimarket/sabimarket-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type levyControllerFixture struct {
	db      *gorm.DB
	market  *model.Market
	trader  *model.Trader
	goodBoy *model.GoodBoy
}

func setupLevyControllerTest(t *testing.T) (*gin.Engine, *levyControllerFixture) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	levyRepo := repository.NewLevyRepository(testDB)
	traderRepo := repository.NewTraderRepository(testDB)
	goodBoyRepo := repository.NewGoodBoyRepository(testDB)
	levyService := service.NewLevyService(levyRepo, traderRepo, goodBoyRepo, nil, testDB)

	ctrl := NewLevyController(levyService)

	router := gin.New()
	router.POST("/levies", ctrl.RecordPayment)
	router.POST("/levies/qr", ctrl.RecordPaymentByQRCode)
	router.GET("/levies", ctrl.GetPayments)
	router.GET("/levies/:id", ctrl.GetPayment)

	fx := seedLevyControllerFixture(t, testDB)
	return router, fx
}

func seedLevyControllerFixture(t *testing.T, testDB *gorm.DB) *levyControllerFixture {
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
	qrCode := "SBM-QR-CTRL-0001"
	trader := &model.Trader{
		UserID: traderUser.ID, MarketID: market.ID, CaretakerID: caretaker.ID,
		BusinessName: "Chidi Electronics", TIN: "TIN-0001",
		QRCode: &qrCode, IsActive: true,
	}
	require.NoError(t, testDB.Create(trader).Error)

	return &levyControllerFixture{db: testDB, market: market, trader: trader, goodBoy: goodBoy}
}

func TestLevyController_RecordPayment(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, fx := setupLevyControllerTest(t)

		w := postJSON(t, router, "/levies", RecordPaymentRequest{
			TraderID:      fx.trader.ID,
			GoodBoyID:     fx.goodBoy.ID,
			MarketID:      fx.market.ID,
			Amount:        500,
			Period:        "daily",
			PaymentMethod: "cash",
			Status:        "paid",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		response := decodeEnvelope(t, w)
		assert.Equal(t, true, response["isSuccessful"])
		payment := response["data"].(map[string]interface{})
		assert.Equal(t, "paid", payment["payment_status"])
		assert.NotEmpty(t, payment["transaction_reference"])
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		router, _ := setupLevyControllerTest(t)

		w := postJSON(t, router, "/levies", RecordPaymentRequest{Amount: 500})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown period fails validation", func(t *testing.T) {
		router, fx := setupLevyControllerTest(t)

		w := postJSON(t, router, "/levies", RecordPaymentRequest{
			TraderID:      fx.trader.ID,
			GoodBoyID:     fx.goodBoy.ID,
			MarketID:      fx.market.ID,
			Amount:        500,
			Period:        "hourly",
			PaymentMethod: "cash",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown trader", func(t *testing.T) {
		router, fx := setupLevyControllerTest(t)

		w := postJSON(t, router, "/levies", RecordPaymentRequest{
			TraderID:      "missing",
			GoodBoyID:     fx.goodBoy.ID,
			MarketID:      fx.market.ID,
			Amount:        500,
			Period:        "daily",
			PaymentMethod: "cash",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("locked collector conflicts", func(t *testing.T) {
		router, fx := setupLevyControllerTest(t)
		require.NoError(t, fx.db.Model(&model.GoodBoy{}).Where("id = ?", fx.goodBoy.ID).
			Update("status", model.GoodBoyStatusLocked).Error)

		w := postJSON(t, router, "/levies", RecordPaymentRequest{
			TraderID:      fx.trader.ID,
			GoodBoyID:     fx.goodBoy.ID,
			MarketID:      fx.market.ID,
			Amount:        500,
			Period:        "daily",
			PaymentMethod: "cash",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLevyController_RecordPaymentByQRCode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, fx := setupLevyControllerTest(t)

		w := postJSON(t, router, "/levies/qr", QRPaymentRequest{
			QRCode:    "SBM-QR-CTRL-0001",
			GoodBoyID: fx.goodBoy.ID,
			Amount:    200,
			Period:    "daily",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		response := decodeEnvelope(t, w)
		payment := response["data"].(map[string]interface{})
		assert.Equal(t, "paid", payment["payment_status"])
		assert.Equal(t, "qr_code", payment["payment_method"])
	})

	t.Run("unknown code", func(t *testing.T) {
		router, fx := setupLevyControllerTest(t)

		w := postJSON(t, router, "/levies/qr", QRPaymentRequest{
			QRCode:    "SBM-QR-NOPE",
			GoodBoyID: fx.goodBoy.ID,
			Amount:    200,
			Period:    "daily",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLevyController_GetPayments(t *testing.T) {
	router, fx := setupLevyControllerTest(t)

	for i := 0; i < 3; i++ {
		w := postJSON(t, router, "/levies", RecordPaymentRequest{
			TraderID:      fx.trader.ID,
			GoodBoyID:     fx.goodBoy.ID,
			MarketID:      fx.market.ID,
			Amount:        float64(100 * (i + 1)),
			Period:        "daily",
			PaymentMethod: "cash",
			Status:        "paid",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	req := httptest.NewRequest("GET", "/levies?market_id="+fx.market.ID+"&page=1&page_size=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeEnvelope(t, w)
	page := response["data"].(map[string]interface{})
	assert.Equal(t, float64(3), page["total_count"])
	assert.Equal(t, float64(2), page["total_pages"])
}

func TestLevyController_GetPayment(t *testing.T) {
	router, fx := setupLevyControllerTest(t)

	created := postJSON(t, router, "/levies", RecordPaymentRequest{
		TraderID:      fx.trader.ID,
		GoodBoyID:     fx.goodBoy.ID,
		MarketID:      fx.market.ID,
		Amount:        500,
		Period:        "daily",
		PaymentMethod: "cash",
	})
	require.Equal(t, http.StatusCreated, created.Code)
	paymentID := decodeEnvelope(t, created)["data"].(map[string]interface{})["id"].(string)

	req := httptest.NewRequest("GET", "/levies/"+paymentID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/levies/missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
