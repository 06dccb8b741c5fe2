// Package dashboard aggregates portfolio totals and network statistics for
// the dashboard's headline widgets.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"blockedge/co2e-dashboard/dashboard-backend/internal/cache"
	"blockedge/co2e-dashboard/dashboard-backend/internal/explorer"
	"blockedge/co2e-dashboard/dashboard-backend/internal/projects"
)

const (
	summaryCacheKey = "summary"
	networkCacheKey = "network"
)

// StatsClient provides the explorer's chain-wide feeds.
type StatsClient interface {
	NetworkStats(ctx context.Context) (*explorer.NetworkStats, error)
	MainPageTransactions(ctx context.Context) ([]explorer.MainPageTransaction, error)
	MainPageBlocks(ctx context.Context) ([]explorer.MainPageBlock, error)
}

// Summary is the portfolio-wide rollup shown at the top of the dashboard.
type Summary struct {
	TotalProjects     int `json:"total_projects"`
	OnChainProjects   int `json:"onchain_projects"`
	EstimatedProjects int `json:"estimated_projects"`

	TotalSupply     float64 `json:"total_supply"`
	AvailableSupply float64 `json:"available_supply"`
	RetiredSupply   float64 `json:"retired_supply"`
	TotalCO2Tons    float64 `json:"total_co2_tons"`
	TotalInvestment float64 `json:"total_investment"`

	ProjectsByRegistry map[string]int `json:"projects_by_registry"`

	Network *explorer.NetworkStats `json:"network,omitempty"`

	ComputedAt time.Time `json:"computed_at"`
}

// NetworkOverview is the explorer activity feed for the dashboard's network
// panel.
type NetworkOverview struct {
	Stats              *explorer.NetworkStats         `json:"stats"`
	RecentTransactions []explorer.MainPageTransaction `json:"recent_transactions"`
	RecentBlocks       []explorer.MainPageBlock       `json:"recent_blocks"`
	ComputedAt         time.Time                      `json:"computed_at"`
}

// Aggregator computes and caches dashboard rollups.
type Aggregator struct {
	projects projects.Service
	stats    StatsClient

	summaryCache *cache.Cache[*Summary]
	networkCache *cache.Cache[*NetworkOverview]

	logger *zap.Logger
}

// NewAggregator creates a new aggregator. Both rollups share the stats TTL.
func NewAggregator(projectsService projects.Service, stats StatsClient, statsTTL time.Duration, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		projects:     projectsService,
		stats:        stats,
		summaryCache: cache.New[*Summary](statsTTL),
		networkCache: cache.New[*NetworkOverview](statsTTL),
		logger:       logger,
	}
}

// Summary returns the cached portfolio summary, recomputing when stale.
func (a *Aggregator) Summary(ctx context.Context) (*Summary, error) {
	return a.summaryCache.GetOrFetch(ctx, summaryCacheKey, a.computeSummary)
}

// NetworkStats returns the cached network overview, recomputing when stale.
func (a *Aggregator) NetworkStats(ctx context.Context) (*NetworkOverview, error) {
	return a.networkCache.GetOrFetch(ctx, networkCacheKey, a.computeNetworkOverview)
}

// ClearCaches drops both rollup caches.
func (a *Aggregator) ClearCaches() {
	a.summaryCache.Clear()
	a.networkCache.Clear()
}

// computeSummary gathers the project list and the network stats
// concurrently. The project roll-up is mandatory; a network stats failure
// only costs the network panel and is logged, not surfaced.
func (a *Aggregator) computeSummary(ctx context.Context) (*Summary, error) {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	summary := &Summary{
		ProjectsByRegistry: make(map[string]int),
		ComputedAt:         time.Now(),
	}

	wg.Add(2)

	go func() {
		defer wg.Done()
		list, err := a.projects.GetProjects(ctx)
		if err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("project summary: %w", err))
			mu.Unlock()
			return
		}
		mu.Lock()
		defer mu.Unlock()
		summary.TotalProjects = len(list)
		for _, p := range list {
			if p.DataSource == projects.DataSourceOnChain {
				summary.OnChainProjects++
			} else {
				summary.EstimatedProjects++
			}
			summary.TotalSupply += p.Supply.Total
			summary.AvailableSupply += p.Supply.Available
			summary.RetiredSupply += p.Supply.Retired
			summary.TotalCO2Tons += p.Supply.Total
			summary.TotalInvestment += p.InvestmentEstimate
			summary.ProjectsByRegistry[p.Registry]++
		}
	}()

	go func() {
		defer wg.Done()
		stats, err := a.stats.NetworkStats(ctx)
		if err != nil {
			a.logger.Warn("Network stats unavailable for summary", zap.Error(err))
			return
		}
		mu.Lock()
		summary.Network = stats
		mu.Unlock()
	}()

	wg.Wait()

	if len(errs) > 0 {
		return nil, errs[0]
	}

	return summary, nil
}

// computeNetworkOverview gathers the explorer's chain feeds concurrently.
// Stats are mandatory; the recent-activity feeds degrade to empty on failure.
func (a *Aggregator) computeNetworkOverview(ctx context.Context) (*NetworkOverview, error) {
	overview := &NetworkOverview{ComputedAt: time.Now()}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		statsErr error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		stats, err := a.stats.NetworkStats(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			statsErr = fmt.Errorf("network stats: %w", err)
			return
		}
		overview.Stats = stats
	}()

	go func() {
		defer wg.Done()
		txs, err := a.stats.MainPageTransactions(ctx)
		if err != nil {
			a.logger.Warn("Recent transactions unavailable", zap.Error(err))
			return
		}
		mu.Lock()
		overview.RecentTransactions = txs
		mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		blocks, err := a.stats.MainPageBlocks(ctx)
		if err != nil {
			a.logger.Warn("Recent blocks unavailable", zap.Error(err))
			return
		}
		mu.Lock()
		overview.RecentBlocks = blocks
		mu.Unlock()
	}()

	wg.Wait()

	if statsErr != nil {
		return nil, statsErr
	}

	return overview, nil
}
