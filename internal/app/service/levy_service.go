package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/app/repository"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
	"github.com/sabimarket/sabimarket-backend/pkg/paystack"
	"github.com/sabimarket/sabimarket-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidAmount     = errors.New("payment amount must be greater than zero")
	ErrTraderNotFound    = errors.New("trader not found")
	ErrTraderNotInMarket = errors.New("trader does not belong to the supplied market")
	ErrCollectorNotFound = errors.New("collector not found")
	ErrCollectorLocked   = errors.New("collector is locked and cannot record collections")
	ErrPaymentNotFound   = errors.New("levy payment not found")
	ErrQRCodeNotFound    = errors.New("no trader registered for this QR code")
)

// PaymentGateway is the narrow contract the levy service needs from the
// external payment provider. The service persists the status the
// gateway reports, never computes it.
type PaymentGateway interface {
	Initialize(ctx context.Context, req paystack.InitializeRequest) (*paystack.InitializeData, error)
	Verify(ctx context.Context, reference string) (*paystack.VerifyData, error)
}

// RecordPaymentInput carries one levy collection event.
type RecordPaymentInput struct {
	TraderID             string
	GoodBoyID            string
	MarketID             string
	Amount               float64
	Period               model.PaymentPeriod
	Method               model.PaymentMethod
	Status               model.PaymentStatus // empty means pending
	TransactionReference string              // generated when empty
	PaymentDate          time.Time           // zero means now
	ChairmanID           *string
	Notes                string
}

// OnlinePaymentSession is the handle returned to a payer starting an
// online (gateway) levy payment.
type OnlinePaymentSession struct {
	Payment          *model.LevyPayment `json:"payment"`
	AuthorizationURL string             `json:"authorization_url"`
	Reference        string             `json:"reference"`
}

type LevyService interface {
	RecordPayment(input RecordPaymentInput) (*model.LevyPayment, error)
	RecordPaymentByQRCode(qrCode, goodBoyID string, amount float64, period model.PaymentPeriod) (*model.LevyPayment, error)
	InitializeOnlinePayment(ctx context.Context, input RecordPaymentInput, payerEmail string) (*OnlinePaymentSession, error)
	ConfirmOnlinePayment(ctx context.Context, reference string) (*model.LevyPayment, error)
	GetPaymentByID(id string) (*model.LevyPayment, error)
	GetPayments(filter repository.LevyFilter) (*repository.Page[model.LevyPayment], error)
}

type levyService struct {
	levyRepo    repository.LevyRepository
	traderRepo  repository.TraderRepository
	goodBoyRepo repository.GoodBoyRepository
	gateway     PaymentGateway
	db          *gorm.DB
}

func NewLevyService(
	levyRepo repository.LevyRepository,
	traderRepo repository.TraderRepository,
	goodBoyRepo repository.GoodBoyRepository,
	gateway PaymentGateway,
	db *gorm.DB,
) LevyService {
	return &levyService{
		levyRepo:    levyRepo,
		traderRepo:  traderRepo,
		goodBoyRepo: goodBoyRepo,
		gateway:     gateway,
		db:          db,
	}
}

// RecordPayment validates and persists a single levy collection. The
// payment insert and the collector counter increment run in one
// transaction so a failure cannot leave them inconsistent. Duplicate
// payments for the same trader and period are accepted as distinct
// records; only the transaction reference is unique.
func (s *levyService) RecordPayment(input RecordPaymentInput) (*model.LevyPayment, error) {
	logger.Info("Recording levy payment", map[string]interface{}{
		"trader_id":   input.TraderID,
		"good_boy_id": input.GoodBoyID,
		"market_id":   input.MarketID,
		"amount":      input.Amount,
		"period":      input.Period,
	})

	if input.Amount <= 0 {
		logger.Warn("Levy recording rejected: non-positive amount", map[string]interface{}{
			"trader_id": input.TraderID,
			"amount":    input.Amount,
		})
		return nil, ErrInvalidAmount
	}

	trader, err := s.traderRepo.FindByID(input.TraderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTraderNotFound
		}
		logger.Error("Failed to fetch trader during levy recording", err, map[string]interface{}{
			"trader_id": input.TraderID,
		})
		return nil, err
	}

	if trader.MarketID != input.MarketID {
		logger.Warn("Levy recording rejected: trader not in market", map[string]interface{}{
			"trader_id":        input.TraderID,
			"trader_market_id": trader.MarketID,
			"supplied_market":  input.MarketID,
		})
		return nil, ErrTraderNotInMarket
	}

	goodBoy, err := s.goodBoyRepo.FindByID(input.GoodBoyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollectorNotFound
		}
		logger.Error("Failed to fetch collector during levy recording", err, map[string]interface{}{
			"good_boy_id": input.GoodBoyID,
		})
		return nil, err
	}

	if goodBoy.Status == model.GoodBoyStatusLocked {
		logger.Warn("Levy recording rejected: collector locked", map[string]interface{}{
			"good_boy_id": goodBoy.ID,
		})
		return nil, ErrCollectorLocked
	}

	status := input.Status
	if status == "" {
		status = model.PaymentStatusPending
	}
	reference := input.TransactionReference
	if reference == "" {
		reference = util.GenerateTransactionReference("LEVY")
	}
	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	payment := &model.LevyPayment{
		TraderID:             trader.ID,
		GoodBoyID:            goodBoy.ID,
		MarketID:             input.MarketID,
		ChairmanID:           input.ChairmanID,
		Amount:               input.Amount,
		Period:               input.Period,
		PaymentMethod:        input.Method,
		PaymentStatus:        status,
		PaymentDate:          paymentDate,
		TransactionReference: reference,
		Notes:                input.Notes,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during levy recording, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"trader_id": input.TraderID,
			})
			panic(r)
		}
	}()

	if err := tx.Create(payment).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create levy payment", err, map[string]interface{}{
			"trader_id": input.TraderID,
			"reference": reference,
		})
		return nil, err
	}

	// The running collection counter only moves on paid collections.
	if status == model.PaymentStatusPaid {
		if err := tx.Model(&model.GoodBoy{}).
			Where("id = ?", goodBoy.ID).
			Update("total_collections", gorm.Expr("total_collections + 1")).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to increment collector counter", err, map[string]interface{}{
				"good_boy_id": goodBoy.ID,
			})
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit levy recording transaction", err, map[string]interface{}{
			"trader_id": input.TraderID,
		})
		return nil, err
	}

	logger.Info("Levy payment recorded successfully", map[string]interface{}{
		"payment_id": payment.ID,
		"trader_id":  trader.ID,
		"amount":     payment.Amount,
		"status":     payment.PaymentStatus,
		"reference":  reference,
	})

	return s.levyRepo.FindByID(payment.ID)
}

// RecordPaymentByQRCode resolves the trader through their unique QR
// code and records the collection as paid on the spot.
func (s *levyService) RecordPaymentByQRCode(qrCode, goodBoyID string, amount float64, period model.PaymentPeriod) (*model.LevyPayment, error) {
	trader, err := s.traderRepo.FindByQRCode(qrCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("QR collection rejected: unknown code", map[string]interface{}{
				"good_boy_id": goodBoyID,
			})
			return nil, ErrQRCodeNotFound
		}
		return nil, err
	}

	return s.RecordPayment(RecordPaymentInput{
		TraderID:  trader.ID,
		GoodBoyID: goodBoyID,
		MarketID:  trader.MarketID,
		Amount:    amount,
		Period:    period,
		Method:    model.MethodQRCode,
		Status:    model.PaymentStatusPaid,
	})
}

// InitializeOnlinePayment records a pending payment and opens a gateway
// checkout session for it.
func (s *levyService) InitializeOnlinePayment(ctx context.Context, input RecordPaymentInput, payerEmail string) (*OnlinePaymentSession, error) {
	input.Status = model.PaymentStatusPending
	input.Method = model.MethodCard
	if input.TransactionReference == "" {
		input.TransactionReference = util.GenerateTransactionReference("LEVY")
	}

	payment, err := s.RecordPayment(input)
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.Initialize(ctx, paystack.InitializeRequest{
		Email:     payerEmail,
		Amount:    int64(payment.Amount * 100), // naira to kobo
		Reference: payment.TransactionReference,
	})
	if err != nil {
		logger.Error("Failed to initialize gateway checkout", err, map[string]interface{}{
			"payment_id": payment.ID,
			"reference":  payment.TransactionReference,
		})
		return nil, err
	}

	return &OnlinePaymentSession{
		Payment:          payment,
		AuthorizationURL: session.AuthorizationURL,
		Reference:        payment.TransactionReference,
	}, nil
}

// ConfirmOnlinePayment asks the gateway for the outcome of a reference
// and persists the resulting status. Confirming an already-paid
// reference is a no-op, so client retries are safe.
func (s *levyService) ConfirmOnlinePayment(ctx context.Context, reference string) (*model.LevyPayment, error) {
	payment, err := s.levyRepo.FindByReference(reference)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.PaymentStatus == model.PaymentStatusPaid {
		return payment, nil
	}

	verification, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		logger.Error("Failed to verify payment with gateway", err, map[string]interface{}{
			"reference": reference,
		})
		return nil, err
	}

	status := model.PaymentStatusFailed
	if verification.Status == paystack.VerifyStatusSuccess {
		status = model.PaymentStatusPaid
	}

	tx := s.db.Begin()
	if err := tx.Model(&model.LevyPayment{}).
		Where("id = ?", payment.ID).
		Update("payment_status", status).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to update payment status after verification", err, map[string]interface{}{
			"payment_id": payment.ID,
		})
		return nil, err
	}
	if status == model.PaymentStatusPaid {
		if err := tx.Model(&model.GoodBoy{}).
			Where("id = ?", payment.GoodBoyID).
			Update("total_collections", gorm.Expr("total_collections + 1")).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to increment collector counter after verification", err, map[string]interface{}{
				"good_boy_id": payment.GoodBoyID,
			})
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logger.Info("Online payment confirmed", map[string]interface{}{
		"payment_id": payment.ID,
		"reference":  reference,
		"status":     status,
	})

	return s.levyRepo.FindByID(payment.ID)
}

func (s *levyService) GetPaymentByID(id string) (*model.LevyPayment, error) {
	payment, err := s.levyRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (s *levyService) GetPayments(filter repository.LevyFilter) (*repository.Page[model.LevyPayment], error) {
	if filter.Page.SortBy == "" {
		filter.Page.SortBy = "payment_date"
		filter.Page.SortDesc = true
	}
	return s.levyRepo.List(filter)
}
