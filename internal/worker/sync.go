package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/emellop-senai/arena-senai-forca/internal/config"
	"github.com/emellop-senai/arena-senai-forca/internal/postgres"
	"github.com/emellop-senai/arena-senai-forca/internal/redis"
)

// RankingSyncWorker rebuilds the Redis ranking cache from PostgreSQL.
// The cache normally tracks writes incrementally; a periodic full rebuild
// repairs drift after cache restarts or missed increments.
type RankingSyncWorker struct {
	cache    *redis.RankingCache
	postgres *postgres.Repository
	config   *config.SyncConfig
	logger   *slog.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewRankingSyncWorker creates a new sync worker
func NewRankingSyncWorker(
	cache *redis.RankingCache,
	postgres *postgres.Repository,
	cfg *config.SyncConfig,
	logger *slog.Logger,
) *RankingSyncWorker {
	return &RankingSyncWorker{
		cache:    cache,
		postgres: postgres,
		config:   cfg,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sync process
func (w *RankingSyncWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info("ranking sync worker started", "interval", w.config.Interval)

	go w.run(ctx)
	return nil
}

// Stop stops the background sync process
func (w *RankingSyncWorker) Stop() error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("ranking sync worker stopped")
	return nil
}

// run is the main worker loop
func (w *RankingSyncWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			if err := w.Rebuild(ctx); err != nil {
				w.logger.Error("ranking cache rebuild failed", "error", err)
			}
		}
	}
}

// Rebuild loads every score from PostgreSQL and replaces the cached
// ranking with it. Also called once at startup to warm a cold cache.
func (w *RankingSyncWorker) Rebuild(ctx context.Context) error {
	startTime := time.Now()

	scores, err := w.postgres.AllScores(ctx)
	if err != nil {
		return err
	}

	if err := w.cache.Rebuild(ctx, scores); err != nil {
		return err
	}

	w.logger.Info("ranking cache rebuild completed",
		"duration", time.Since(startTime),
		"users", len(scores),
	)
	return nil
}

// IsRunning returns whether the worker is currently running
func (w *RankingSyncWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
