package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"rsi-tracker/src/logger"
)

// -----------------------------------------------------------------------------

// Scheduler runs the daily forced refresh so each new calendar day starts
// with fresh data instead of waiting for the first client request.
type Scheduler struct {
	Cron    *cron.Cron
	Logger  *logger.Logger
	refresh func()
}

// -----------------------------------------------------------------------------

// NewScheduler wires the refresh callback. Cron specs include seconds
// ("0 30 8 * * *" is 08:30:00 every day).
func NewScheduler(logLevel string, refresh func()) *Scheduler {
	return &Scheduler{
		Cron:    cron.New(cron.WithSeconds()),
		Logger:  logger.NewLogger(logLevel, "Scheduler"),
		refresh: refresh,
	}
}

// -----------------------------------------------------------------------------

// Register installs the daily task. An empty spec disables scheduling.
func (s *Scheduler) Register(dailyCron string) error {
	if dailyCron == "" {
		s.Logger.Info("Daily refresh disabled (no cron spec)")
		return nil
	}
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyRefresh); err != nil {
		return fmt.Errorf("register daily refresh: %w", err)
	}
	s.Logger.Info("Daily refresh registered: %s", dailyCron)
	return nil
}

// -----------------------------------------------------------------------------

func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("Scheduler started")
}

func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Logger.Info("Scheduler stopped")
}

// -----------------------------------------------------------------------------

func (s *Scheduler) dailyRefresh() {
	s.Logger.Info("Running scheduled daily refresh")
	s.refresh()
}
