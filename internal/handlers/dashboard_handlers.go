package handlers

import (
	"net/http"

	"opsdash/internal/common"
	"opsdash/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers serves the aggregated dashboard views
type DashboardHandlers struct {
	dashboardService services.DashboardService
}

func NewDashboardHandlers(dashboardService services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboardService: dashboardService}
}

// GetSummary handles GET /dashboard/summary
func (h *DashboardHandlers) GetSummary(c echo.Context) error {
	summary, err := h.dashboardService.Summary(c.Request().Context())
	if err != nil {
		return common.SendError(c, "dashboard", err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetAlerts handles GET /dashboard/alerts
func (h *DashboardHandlers) GetAlerts(c echo.Context) error {
	alerts, err := h.dashboardService.Alerts(c.Request().Context())
	if err != nil {
		return common.SendError(c, "dashboard", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": alerts})
}

// GetServices handles GET /dashboard/services?limit=
func (h *DashboardHandlers) GetServices(c echo.Context) error {
	limit, err := intParam(c, "limit")
	if err != nil {
		return common.SendError(c, "dashboard", err)
	}
	counts, err := h.dashboardService.Services(c.Request().Context(), limit)
	if err != nil {
		return common.SendError(c, "dashboard", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": counts})
}
