package worker

import (
	"context"
	"time"

	"github.com/IsaacLanzoni/projeto-belezza/internal/repository"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/logger"
	"github.com/IsaacLanzoni/projeto-belezza/pkg/metrics"
)

// CompletionSweeper periodically marks appointments whose end time has
// passed as completed.
type CompletionSweeper struct {
	repo     repository.AppointmentRepository
	interval time.Duration
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewCompletionSweeper(
	repo repository.AppointmentRepository,
	interval time.Duration,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *CompletionSweeper {
	if interval <= 0 {
		panic("interval must be greater than 0")
	}

	return &CompletionSweeper{
		repo:     repo,
		interval: interval,
		logger:   logger,
		metrics:  metrics,
	}
}

func (s *CompletionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Starting completion sweeper")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Shutting down completion sweeper")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CompletionSweeper) sweep(ctx context.Context) {
	count, err := s.repo.MarkCompletedBefore(ctx, time.Now())
	if err != nil {
		s.logger.Error(err, "Failed to mark appointments completed")
		return
	}

	if count > 0 {
		if s.metrics != nil {
			s.metrics.AppointmentsCompleted.Add(float64(count))
		}
		s.logger.Info("Marked appointments completed", "count", count)
	}
}
