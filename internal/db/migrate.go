package db

import (
	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
)

// Migrate runs schema migrations for all domain models.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.LocalGovernment{},
		&model.Market{},
		&model.MarketSection{},
		&model.Chairman{},
		&model.Caretaker{},
		&model.GoodBoy{},
		&model.Trader{},
		&model.LevyPayment{},
		&model.Advertisement{},
		&model.Subscription{},
		&model.CustomerFeedback{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
