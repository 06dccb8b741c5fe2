// Package scheduler keeps the dashboard caches warm so user requests rarely
// pay the full remote fetch.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"blockedge/co2e-dashboard/dashboard-backend/internal/config"
	"blockedge/co2e-dashboard/dashboard-backend/internal/dashboard"
	"blockedge/co2e-dashboard/dashboard-backend/internal/projects"
)

// jobTimeout bounds one background refresh pass.
const jobTimeout = 30 * time.Second

// RefreshWorker periodically rebuilds the project list and the dashboard
// rollups on the caches' own cadence.
type RefreshWorker struct {
	cron       *cron.Cron
	projects   projects.Service
	aggregator *dashboard.Aggregator
	logger     *zap.Logger
}

// NewRefreshWorker schedules one job per cache, spaced by its TTL.
func NewRefreshWorker(
	projectsService projects.Service,
	aggregator *dashboard.Aggregator,
	cacheCfg config.CacheConfig,
	logger *zap.Logger,
) (*RefreshWorker, error) {
	w := &RefreshWorker{
		cron:       cron.New(),
		projects:   projectsService,
		aggregator: aggregator,
		logger:     logger,
	}

	if _, err := w.cron.AddFunc(everySpec(cacheCfg.ProjectsTTL), w.refreshProjects); err != nil {
		return nil, fmt.Errorf("failed to schedule project refresh: %w", err)
	}
	if _, err := w.cron.AddFunc(everySpec(cacheCfg.StatsTTL), w.refreshDashboard); err != nil {
		return nil, fmt.Errorf("failed to schedule dashboard refresh: %w", err)
	}

	return w, nil
}

// Start launches the cron scheduler and performs an initial warm-up in the
// background.
func (w *RefreshWorker) Start() {
	w.cron.Start()
	go w.refreshProjects()
	w.logger.Info("Refresh worker started")
}

// Stop halts the scheduler; running jobs finish.
func (w *RefreshWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("Refresh worker stopped")
}

func (w *RefreshWorker) refreshProjects() {
	runID := uuid.New().String()
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	list, err := w.projects.Refresh(ctx)
	if err != nil {
		w.logger.Warn("Background project refresh failed",
			zap.String("run_id", runID), zap.Error(err))
		return
	}

	w.logger.Debug("Project cache refreshed",
		zap.String("run_id", runID),
		zap.Int("projects", len(list)),
		zap.Duration("duration", time.Since(start)))
}

func (w *RefreshWorker) refreshDashboard() {
	runID := uuid.New().String()
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	w.aggregator.ClearCaches()
	if _, err := w.aggregator.Summary(ctx); err != nil {
		w.logger.Warn("Background dashboard refresh failed",
			zap.String("run_id", runID), zap.Error(err))
	}
}

// everySpec renders a TTL as a cron @every spec, clamped to a sane floor.
func everySpec(d time.Duration) string {
	if d < 30*time.Second {
		d = 30 * time.Second
	}
	return "@every " + d.String()
}
