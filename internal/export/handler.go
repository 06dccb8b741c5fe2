package export

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blockedge/co2e-dashboard/dashboard-backend/internal/projects"
)

// Handler handles HTTP requests for project-table exports
type Handler struct {
	service projects.Service
	logger  *zap.Logger
}

// NewHandler creates a new export handler
func NewHandler(service projects.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers export routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/export/projects", h.exportProjects)
}

// exportProjects handles GET /api/v1/export/projects?format=csv|xlsx|pdf
func (h *Handler) exportProjects(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" && format != "pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported format %q", format)})
		return
	}

	list, err := h.service.GetProjects(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load projects for export", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("co2e-projects-%s.%s", time.Now().Format("2006-01-02"), format)

	var buf bytes.Buffer
	var contentType string
	switch format {
	case "csv":
		contentType = "text/csv"
		err = WriteCSV(&buf, list)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = WriteXLSX(&buf, list)
	case "pdf":
		contentType = "application/pdf"
		err = WritePDF(&buf, list)
	}
	if err != nil {
		h.logger.Error("Export failed", zap.String("format", format), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
