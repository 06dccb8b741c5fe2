package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blockedge/co2e-dashboard/dashboard-backend/internal/explorer"
	"blockedge/co2e-dashboard/dashboard-backend/internal/projects"
)

// MockProjectService is a mock implementation of the projects.Service interface
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) GetProjects(ctx context.Context) ([]*projects.ProjectData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*projects.ProjectData), args.Error(1)
}

func (m *MockProjectService) GetProjectByID(ctx context.Context, id string) (*projects.ProjectData, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projects.ProjectData), args.Error(1)
}

func (m *MockProjectService) GetCertificateMetadata(ctx context.Context, certAddress, tokenID string) (*projects.NFTMetadata, error) {
	args := m.Called(ctx, certAddress, tokenID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projects.NFTMetadata), args.Error(1)
}

func (m *MockProjectService) Refresh(ctx context.Context) ([]*projects.ProjectData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*projects.ProjectData), args.Error(1)
}

func (m *MockProjectService) ClearCaches() {
	m.Called()
}

func (m *MockProjectService) CacheStatus() projects.CacheStatus {
	args := m.Called()
	return args.Get(0).(projects.CacheStatus)
}

// MockStatsClient is a mock implementation of the StatsClient interface
type MockStatsClient struct {
	mock.Mock
}

func (m *MockStatsClient) NetworkStats(ctx context.Context) (*explorer.NetworkStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*explorer.NetworkStats), args.Error(1)
}

func (m *MockStatsClient) MainPageTransactions(ctx context.Context) ([]explorer.MainPageTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]explorer.MainPageTransaction), args.Error(1)
}

func (m *MockStatsClient) MainPageBlocks(ctx context.Context) ([]explorer.MainPageBlock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]explorer.MainPageBlock), args.Error(1)
}

func sampleProjects() []*projects.ProjectData {
	return []*projects.ProjectData{
		{
			ID:                 "VCS1",
			Registry:           "Verra",
			Supply:             projects.Supply{Total: 1000, Available: 800, Retired: 200},
			InvestmentEstimate: 12500,
			DataSource:         projects.DataSourceOnChain,
		},
		{
			ID:                 "GS1",
			Registry:           "Gold Standard Registry",
			Supply:             projects.Supply{Total: 500, Available: 400, Retired: 100},
			InvestmentEstimate: 9000,
			DataSource:         projects.DataSourceEstimated,
		},
	}
}

func TestSummaryAggregatesPortfolio(t *testing.T) {
	mockProjects := new(MockProjectService)
	mockStats := new(MockStatsClient)

	mockProjects.On("GetProjects", mock.Anything).Return(sampleProjects(), nil).Once()
	mockStats.On("NetworkStats", mock.Anything).Return(&explorer.NetworkStats{TotalBlocks: "42"}, nil).Once()

	agg := NewAggregator(mockProjects, mockStats, 2*time.Minute, zap.NewNop())
	summary, err := agg.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalProjects)
	assert.Equal(t, 1, summary.OnChainProjects)
	assert.Equal(t, 1, summary.EstimatedProjects)
	assert.Equal(t, 1500.0, summary.TotalSupply)
	assert.Equal(t, 1200.0, summary.AvailableSupply)
	assert.Equal(t, 300.0, summary.RetiredSupply)
	assert.Equal(t, 21500.0, summary.TotalInvestment)
	assert.Equal(t, 1, summary.ProjectsByRegistry["Verra"])
	require.NotNil(t, summary.Network)
	assert.Equal(t, "42", summary.Network.TotalBlocks)
}

func TestSummaryToleratesNetworkFailure(t *testing.T) {
	mockProjects := new(MockProjectService)
	mockStats := new(MockStatsClient)

	mockProjects.On("GetProjects", mock.Anything).Return(sampleProjects(), nil)
	mockStats.On("NetworkStats", mock.Anything).Return(nil, errors.New("explorer down"))

	agg := NewAggregator(mockProjects, mockStats, 2*time.Minute, zap.NewNop())
	summary, err := agg.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalProjects)
	assert.Nil(t, summary.Network)
}

func TestSummaryFailsWithoutProjects(t *testing.T) {
	mockProjects := new(MockProjectService)
	mockStats := new(MockStatsClient)

	mockProjects.On("GetProjects", mock.Anything).Return(nil, errors.New("catalog down"))
	mockStats.On("NetworkStats", mock.Anything).Return(&explorer.NetworkStats{}, nil)

	agg := NewAggregator(mockProjects, mockStats, 2*time.Minute, zap.NewNop())
	_, err := agg.Summary(context.Background())
	assert.Error(t, err)
}

func TestSummaryIsCached(t *testing.T) {
	mockProjects := new(MockProjectService)
	mockStats := new(MockStatsClient)

	mockProjects.On("GetProjects", mock.Anything).Return(sampleProjects(), nil).Once()
	mockStats.On("NetworkStats", mock.Anything).Return(&explorer.NetworkStats{}, nil).Once()

	agg := NewAggregator(mockProjects, mockStats, 2*time.Minute, zap.NewNop())

	first, err := agg.Summary(context.Background())
	require.NoError(t, err)
	second, err := agg.Summary(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	mockProjects.AssertExpectations(t)
	mockStats.AssertExpectations(t)
}

func TestNetworkOverview(t *testing.T) {
	mockProjects := new(MockProjectService)
	mockStats := new(MockStatsClient)

	mockStats.On("NetworkStats", mock.Anything).Return(&explorer.NetworkStats{TotalTransactions: "99"}, nil)
	mockStats.On("MainPageTransactions", mock.Anything).Return([]explorer.MainPageTransaction{{Hash: "0x1"}}, nil)
	mockStats.On("MainPageBlocks", mock.Anything).Return(nil, errors.New("feed down"))

	agg := NewAggregator(mockProjects, mockStats, 2*time.Minute, zap.NewNop())
	overview, err := agg.NetworkStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "99", overview.Stats.TotalTransactions)
	require.Len(t, overview.RecentTransactions, 1)
	assert.Empty(t, overview.RecentBlocks)
}

func TestNetworkOverviewFailsWithoutStats(t *testing.T) {
	mockProjects := new(MockProjectService)
	mockStats := new(MockStatsClient)

	mockStats.On("NetworkStats", mock.Anything).Return(nil, errors.New("explorer down"))
	mockStats.On("MainPageTransactions", mock.Anything).Return([]explorer.MainPageTransaction{}, nil)
	mockStats.On("MainPageBlocks", mock.Anything).Return([]explorer.MainPageBlock{}, nil)

	agg := NewAggregator(mockProjects, mockStats, 2*time.Minute, zap.NewNop())
	_, err := agg.NetworkStats(context.Background())
	assert.Error(t, err)
}
