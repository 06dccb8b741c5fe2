package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for dashboard rollups
type Handler struct {
	aggregator *Aggregator
	logger     *zap.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(aggregator *Aggregator, logger *zap.Logger) *Handler {
	return &Handler{
		aggregator: aggregator,
		logger:     logger,
	}
}

// RegisterRoutes registers dashboard routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	dash := router.Group("/dashboard")
	{
		dash.GET("/summary", h.getSummary)
		dash.GET("/network", h.getNetwork)
	}
}

// getSummary handles GET /api/v1/dashboard/summary
func (h *Handler) getSummary(c *gin.Context) {
	summary, err := h.aggregator.Summary(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to compute dashboard summary", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getNetwork handles GET /api/v1/dashboard/network
func (h *Handler) getNetwork(c *gin.Context) {
	overview, err := h.aggregator.NetworkStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to fetch network overview", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, overview)
}
