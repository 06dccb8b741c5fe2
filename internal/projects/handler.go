package projects

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RawCatalogClient forwards the static asset for the same-origin proxy route.
type RawCatalogClient interface {
	FetchRaw(ctx context.Context) ([]byte, error)
}

// Handler handles HTTP requests for project data
type Handler struct {
	service Service
	raw     RawCatalogClient
	logger  *zap.Logger
}

// NewHandler creates a new projects handler
func NewHandler(service Service, raw RawCatalogClient, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		raw:     raw,
		logger:  logger,
	}
}

// RegisterRoutes registers project routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	projects := router.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.GET("/:id/certificate", h.getCertificate)
	}

	router.POST("/refresh", h.refresh)
	router.POST("/cache/clear", h.clearCache)
	router.GET("/cache/status", h.cacheStatus)
	router.GET("/catalog/proxy", h.proxyCatalog)
}

// listProjects handles GET /api/v1/projects. Every service failure that is
// not a local not-found originates upstream, whether a bad status, a
// transport failure, or an undecodable body, so the handlers map them all to
// 502.
func (h *Handler) listProjects(c *gin.Context) {
	list, err := h.service.GetProjects(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load projects", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": list, "count": len(list)})
}

// getProject handles GET /api/v1/projects/:id
func (h *Handler) getProject(c *gin.Context) {
	project, err := h.service.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.logger.Error("Failed to load project", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, project)
}

// getCertificate handles GET /api/v1/projects/:id/certificate
func (h *Handler) getCertificate(c *gin.Context) {
	project, err := h.service.GetProjectByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if project.CertAddress == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "project has no certificate contract"})
		return
	}

	tokenID := c.DefaultQuery("token_id", "1")
	meta, err := h.service.GetCertificateMetadata(c.Request.Context(), project.CertAddress, tokenID)
	if err != nil {
		if errors.Is(err, ErrCertificateNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "certificate not found"})
			return
		}
		h.logger.Error("Failed to load certificate metadata",
			zap.String("cert", project.CertAddress), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, meta)
}

// refresh handles POST /api/v1/refresh
func (h *Handler) refresh(c *gin.Context) {
	list, err := h.service.Refresh(c.Request.Context())
	if err != nil {
		h.logger.Error("Refresh failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"refreshed": true, "count": len(list)})
}

// clearCache handles POST /api/v1/cache/clear
func (h *Handler) clearCache(c *gin.Context) {
	h.service.ClearCaches()
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// cacheStatus handles GET /api/v1/cache/status
func (h *Handler) cacheStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.CacheStatus())
}

// proxyCatalog handles GET /api/v1/catalog/proxy. It forwards the static
// asset unmodified; the permissive CORS headers come from the router-level
// middleware.
func (h *Handler) proxyCatalog(c *gin.Context) {
	body, err := h.raw.FetchRaw(c.Request.Context())
	if err != nil {
		h.logger.Error("Catalog proxy failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

