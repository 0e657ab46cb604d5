package dashboard

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the dashboard API over HTTP.
type Handler struct {
	service *Service
	logger  *zap.SugaredLogger
}

// NewHandler creates a new dashboard handler instance.
func NewHandler(service *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// respondError writes the API error envelope.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// GetMetrics handles GET /api/metrics requests.
func (h *Handler) GetMetrics(c *gin.Context) {
	timeRange := ParseTimeRange(c.Query("range"))

	metrics, err := h.service.DeveloperMetrics(c.Request.Context(), timeRange)
	if err != nil {
		h.logger.Errorw("failed to build developer metrics", "range", timeRange, "error", err)
		respondError(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "failed to fetch developer metrics")
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// GetGithubAnalytics handles GET /api/analytics/github requests.
func (h *Handler) GetGithubAnalytics(c *gin.Context) {
	analytics, err := h.service.GithubAnalytics(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to build github analytics", "error", err)
		respondError(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "failed to fetch github analytics")
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// GetJiraAnalytics handles GET /api/analytics/jira requests.
func (h *Handler) GetJiraAnalytics(c *gin.Context) {
	analytics, err := h.service.JiraAnalytics(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrJiraNotConfigured) {
			respondError(c, http.StatusNotFound, "JIRA_NOT_CONFIGURED", "jira integration is not configured")
			return
		}
		h.logger.Errorw("failed to build jira analytics", "error", err)
		respondError(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "failed to fetch jira analytics")
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// GetCopilotAnalytics handles GET /api/analytics/copilot requests.
func (h *Handler) GetCopilotAnalytics(c *gin.Context) {
	timeRange := ParseTimeRange(c.Query("range"))

	analytics, err := h.service.CopilotAnalytics(c.Request.Context(), timeRange)
	if err != nil {
		h.logger.Errorw("failed to build copilot analytics", "range", timeRange, "error", err)
		respondError(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "failed to fetch copilot analytics")
		return
	}

	c.JSON(http.StatusOK, analytics)
}

// GetDeveloperDetail handles GET /api/developers/:login requests.
func (h *Handler) GetDeveloperDetail(c *gin.Context) {
	login := c.Param("login")
	timeRange := ParseTimeRange(c.Query("range"))

	detail, err := h.service.DeveloperDetail(c.Request.Context(), login, timeRange)
	if err != nil {
		h.logger.Errorw("failed to build developer detail", "login", login, "range", timeRange, "error", err)
		respondError(c, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "failed to fetch developer detail")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GetCacheInfo handles GET /api/cache requests.
func (h *Handler) GetCacheInfo(c *gin.Context) {
	info, err := h.service.CacheInfo()
	if err != nil {
		h.logger.Errorw("failed to read cache info", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to read cache info")
		return
	}

	c.JSON(http.StatusOK, info)
}

// ClearCache handles DELETE /api/cache requests.
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.service.ClearCache(); err != nil {
		h.logger.Errorw("failed to clear cache", "error", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to clear cache")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
