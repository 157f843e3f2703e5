package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cmdb-system/internal/services"
	"cmdb-system/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

// GetStats returns the aggregate snapshot as a bare JSON object, the wire
// format the dashboard client renders directly. Filter parameters are
// coerced permissively; a malformed value just drops that restriction.
func (c *DashboardController) GetStats(ctx echo.Context) error {
	filter := utils.ResolveIncidentFilter(ctx.QueryParams())

	stats, err := c.dashboardService.GetStats(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, stats)
}
