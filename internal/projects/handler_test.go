package projects

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blockedge/co2e-dashboard/dashboard-backend/internal/catalog"
)

// MockRawCatalogClient is a mock implementation of the RawCatalogClient interface
type MockRawCatalogClient struct {
	mock.Mock
}

func (m *MockRawCatalogClient) FetchRaw(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func newTestRouter(catalogClient *MockCatalogClient, explorerClient *MockExplorerClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewHandler(newTestService(catalogClient, explorerClient), new(MockRawCatalogClient), zap.NewNop())
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestListProjectsCatalogTransportError(t *testing.T) {
	mockCatalog := new(MockCatalogClient)
	mockExplorer := new(MockExplorerClient)

	mockCatalog.On("FetchCatalog", mock.Anything).
		Return(nil, errors.New("dial tcp: connection refused"))

	router := newTestRouter(mockCatalog, mockExplorer)
	w := doRequest(router, http.MethodGet, "/api/v1/projects")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestListProjectsCatalogStatusError(t *testing.T) {
	mockCatalog := new(MockCatalogClient)
	mockExplorer := new(MockExplorerClient)

	mockCatalog.On("FetchCatalog", mock.Anything).
		Return(nil, &catalog.StatusError{Code: http.StatusInternalServerError, Message: "boom"})

	router := newTestRouter(mockCatalog, mockExplorer)
	w := doRequest(router, http.MethodGet, "/api/v1/projects")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestGetProjectNotFoundStatus(t *testing.T) {
	mockCatalog := new(MockCatalogClient)
	mockExplorer := new(MockExplorerClient)

	mockCatalog.On("FetchCatalog", mock.Anything).Return(singleStandardCatalog(
		catalog.Project{ProjectID: "VCS1", ProjectName: "One", Token: "0x1"},
	), nil)
	mockExplorer.On("TokenInfo", mock.Anything, "0x1").Return(nil, nil)

	router := newTestRouter(mockCatalog, mockExplorer)

	w := doRequest(router, http.MethodGet, "/api/v1/projects/VCS9999")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/projects/VCS1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"VCS1"`)
}

func TestRefreshEndpointPropagatesUpstreamFailure(t *testing.T) {
	mockCatalog := new(MockCatalogClient)
	mockExplorer := new(MockExplorerClient)

	mockCatalog.On("FetchCatalog", mock.Anything).
		Return(nil, errors.New("unexpected end of JSON input"))

	router := newTestRouter(mockCatalog, mockExplorer)
	w := doRequest(router, http.MethodPost, "/api/v1/refresh")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
