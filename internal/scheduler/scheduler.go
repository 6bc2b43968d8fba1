package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/dealyield/internal/config"
)

// Purger removes stored analyses older than a given age.
type Purger interface {
	PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron   *cron.Cron
	purger Purger
	cfg    config.RetentionConfig
	logger *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.RetentionConfig, purger Purger, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Standard 5-field cron expressions, evaluated in UTC.
	c := cron.New(cron.WithLocation(time.UTC))

	return &Scheduler{
		cron:   c,
		purger: purger,
		cfg:    cfg,
		logger: logger,
	}
}

// Start schedules the retention purge. It does nothing when retention is
// disabled.
func (s *Scheduler) Start() error {
	if s.cfg.Days <= 0 {
		s.logger.Info("analysis retention disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.CronSchedule, s.purgeExpired); err != nil {
		return fmt.Errorf("schedule retention purge %q: %w", s.cfg.CronSchedule, err)
	}

	s.logger.Info("starting scheduler",
		zap.String("schedule", s.cfg.CronSchedule),
		zap.Int("retention_days", s.cfg.Days))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running purge.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) purgeExpired() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	age := time.Duration(s.cfg.Days) * 24 * time.Hour
	n, err := s.purger.PurgeOlderThan(ctx, age)
	if err != nil {
		s.logger.Error("failed to purge expired analyses", zap.Error(err))
		return
	}
	s.logger.Info("expired analyses purged", zap.Int64("deleted", n))
}
