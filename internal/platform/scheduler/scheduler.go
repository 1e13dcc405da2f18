// Package scheduler runs the background jobs of the server.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	portssvc "github.com/vintagenote/vn_backend/internal/core/ports/services"
)

const warmupTimeout = 30 * time.Second

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Scheduler wraps a cron instance running in the configured timezone.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a stopped scheduler.
func New(loc *time.Location, logger *slog.Logger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc), cron.WithParser(cronParser)),
		logger: logger.With(slog.String("component", "scheduler")),
	}
}

// AddRateWarmup fetches the rate table of the new day on schedule so the first request of
// the day does not pay for the upstream call.
func (s *Scheduler) AddRateWarmup(schedule string, rates portssvc.ExchangeRateSvcFacade) error {
	_, err := s.cron.AddFunc(schedule, func() { s.warmRates(rates) })
	if err != nil {
		return fmt.Errorf("invalid rate warmup schedule %q: %w", schedule, err)
	}
	s.logger.Info("Rate warmup scheduled", slog.String("schedule", schedule))
	return nil
}

func (s *Scheduler) warmRates(rates portssvc.ExchangeRateSvcFacade) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Rate warmup panicked", slog.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	defer cancel()

	table, err := rates.GetRates(ctx)
	if err != nil {
		s.logger.Error("Rate warmup failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Rate warmup completed",
		slog.String("day", table.Day),
		slog.Bool("cached", table.Cached),
		slog.Bool("stale", table.Stale),
	)
}

// Start runs the jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stopped before jobs completed")
	}
}
