package services

import (
	"context"
	"time"

	"github.com/shiftwise/backend/internal/config"
	"github.com/shiftwise/backend/internal/models"
	"github.com/shiftwise/backend/pkg/logger"
	"gorm.io/gorm"
)

// RetentionService purges refresh tokens that were revoked long ago. Active
// rows, and rows revoked more recently than the retention threshold, are
// never touched; request-path code never deletes.
type RetentionService struct {
	db        *gorm.DB
	retention time.Duration
	interval  time.Duration
}

func NewRetentionService(db *gorm.DB, cfg *config.AuthConfig) *RetentionService {
	retentionDays := cfg.RetentionDays
	if retentionDays <= 0 {
		retentionDays = 30
	}
	intervalDays := cfg.SweepIntervalDays
	if intervalDays <= 0 {
		intervalDays = 7
	}
	return &RetentionService{
		db:        db,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		interval:  time.Duration(intervalDays) * 24 * time.Hour,
	}
}

// Start launches the weekly sweep loop. It returns immediately; the loop
// exits when ctx is cancelled.
func (s *RetentionService) Start(ctx context.Context) {
	go runPeriodic(ctx, "refresh-token-cleanup", taskStartDelay, s.interval, func(ctx context.Context) error {
		_, err := s.Sweep(ctx)
		return err
	})
}

// Sweep deletes every token revoked before the retention threshold in a
// single self-contained statement and reports the count removed.
func (s *RetentionService) Sweep(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-s.retention)

	res := s.db.WithContext(ctx).
		Where("revoked_at IS NOT NULL AND revoked_at < ?", cutoff).
		Delete(&models.RefreshToken{})
	if res.Error != nil {
		return 0, res.Error
	}

	logger.Info().Int64("deleted", res.RowsAffected).Msg("purged revoked refresh tokens")
	return res.RowsAffected, nil
}
