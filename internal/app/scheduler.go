package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DraftPurger удаляет брошенные черновики форм
type DraftPurger interface {
	PurgeStale(maxAge time.Duration) int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	drafts   DraftPurger
	draftTTL time.Duration
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewScheduler создаёт новый планировщик
func NewScheduler(drafts DraftPurger, draftTTL time.Duration, logger *zap.Logger) *Scheduler {
	interval := draftTTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}

	return &Scheduler{
		drafts:   drafts,
		draftTTL: draftTTL,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler",
		zap.Duration("draft_ttl", s.draftTTL),
		zap.Duration("interval", s.interval))

	go s.runDraftCleanupTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
}

// runDraftCleanupTask периодически удаляет черновики, которые давно не редактировались
func (s *Scheduler) runDraftCleanupTask(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purgeDrafts()
		case <-s.stopChan:
			s.logger.Info("Draft cleanup task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Draft cleanup task cancelled")
			return
		}
	}
}

func (s *Scheduler) purgeDrafts() {
	purged := s.drafts.PurgeStale(s.draftTTL)
	if purged > 0 {
		s.logger.Info("Stale drafts purged", zap.Int("count", purged))
	}
}
