package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/everyclass_server/internal/clock"
	"go.uber.org/zap"
)

// Purger чистит счётчики, которые не сбрасывались с cutoff
type Purger interface {
	PurgeBefore(cutoff time.Time) int
}

// Scheduler периодически чистит счётчики лимитера календаря старше maxAge.
// Хранилище оставляет по ним надгробия, так что следующий запрос всё равно перегенерирует файл.
type Scheduler struct {
	counters Purger
	interval time.Duration
	maxAge   time.Duration
	clock    clock.Clock
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

func NewScheduler(counters Purger, interval, maxAge time.Duration, clk clock.Clock, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		counters: counters,
		interval: interval,
		maxAge:   maxAge,
		clock:    clk,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновую чистку
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("interval", s.interval))
	go s.runPurgeTask(ctx)
}

// Stop останавливает чистку и ждёт завершения горутины
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
	<-s.done
}

func (s *Scheduler) runPurgeTask(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Purge()
		case <-s.stopChan:
			s.logger.Info("Counter purge task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Counter purge task cancelled")
			return
		}
	}
}

// Purge удаляет устаревшие счётчики, возвращает сколько удалено
func (s *Scheduler) Purge() int {
	removed := s.counters.PurgeBefore(s.clock.Now().Add(-s.maxAge))
	if removed > 0 {
		s.logger.Info("Stale counters purged", zap.Int("removed", removed))
	}
	return removed
}
