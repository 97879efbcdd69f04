package api

import (
	"net/http"

	"example.com/westo/services/garment/internal/metrics"
	"example.com/westo/services/garment/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the dashboard summary and operational metrics
type DashboardHandler struct {
	dashboardService *service.DashboardService
	metrics          *metrics.Metrics
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService, m *metrics.Metrics) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		metrics:          m,
	}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/dashboard", h.GetSummary)
}

// GetSummary returns the aggregated dashboard counts
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetMetrics returns the in-process counters and gauges
func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, h.metrics.GetAllMetrics())
}

// GetHealth reports the health of the service dependencies. Any failed
// check turns the overall status to degraded with a 503.
func (h *DashboardHandler) GetHealth(c *gin.Context) {
	checks := h.metrics.GetHealthChecks()

	status := http.StatusOK
	overall := "ok"
	for _, healthy := range checks {
		if !healthy {
			status = http.StatusServiceUnavailable
			overall = "degraded"
			break
		}
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
	})
}
