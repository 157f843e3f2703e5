package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cmdb-system/internal/services"
	"cmdb-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetReport serves the filtered incident report. With format=xlsx the
// response is a spreadsheet download; otherwise the rows come back as JSON.
func (c *ReportController) GetReport(ctx echo.Context) error {
	filter := utils.ResolveIncidentFilter(ctx.QueryParams())

	if ctx.QueryParam("format") != "xlsx" {
		report, err := c.reportService.GetReport(ctx.Request().Context(), filter)
		if err != nil {
			return utils.ErrorResponse(ctx, err, c.logger)
		}
		return utils.SuccessResponse(ctx, report, "Report fetched successfully", http.StatusOK)
	}

	buffer, err := c.reportService.ExportXLSX(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	filename := fmt.Sprintf("incidencias_%s.xlsx", time.Now().Format("20060102_150405"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buffer.Bytes())
}
