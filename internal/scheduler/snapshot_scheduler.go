package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sabimarket/sabimarket-backend/internal/app/service"
	"github.com/sabimarket/sabimarket-backend/pkg/logger"
)

// SnapshotScheduler refreshes every market's cached compliance and
// revenue aggregates nightly, and expires outdated ad placements in the
// same sweep.
type SnapshotScheduler struct {
	cron              *cron.Cron
	complianceService service.ComplianceService
	advertService     service.AdvertisementService
}

func NewSnapshotScheduler(
	complianceService service.ComplianceService,
	advertService service.AdvertisementService,
) *SnapshotScheduler {
	return &SnapshotScheduler{
		cron:              cron.New(),
		complianceService: complianceService,
		advertService:     advertService,
	}
}

func (s *SnapshotScheduler) Start() error {
	// Nightly at 01:00, after the day's collections have settled.
	_, err := s.cron.AddFunc("0 1 * * *", func() {
		now := time.Now()
		logger.Info("Starting nightly snapshot refresh", nil)

		if err := s.complianceService.RefreshAllMarketSnapshots(now); err != nil {
			logger.Error("Nightly snapshot refresh failed", err)
		}

		if _, err := s.advertService.ExpireOutdatedAdverts(now); err != nil {
			logger.Error("Advertisement expiry sweep failed", err)
		}

		logger.Info("Nightly snapshot refresh finished", nil)
	})
	if err != nil {
		logger.Error("Failed to register snapshot cron job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Snapshot scheduler started (nightly at 01:00)", nil)
	return nil
}

func (s *SnapshotScheduler) Stop() {
	s.cron.Stop()
	logger.Info("Snapshot scheduler stopped", nil)
}
