package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	"cmdb-system/internal/services"
	apperrors "cmdb-system/pkg/errors"
	"cmdb-system/pkg/utils"
)

type IncidentController struct {
	incidentService services.IncidentServiceInterface
	logger          *zap.Logger
}

func NewIncidentController(incidentService services.IncidentServiceInterface, logger *zap.Logger) *IncidentController {
	return &IncidentController{incidentService: incidentService, logger: logger}
}

func (c *IncidentController) GetIncidents(ctx echo.Context) error {
	filter := utils.ResolveListFilter(ctx.QueryParams())
	incidents, total, err := c.incidentService.GetIncidents(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListResponse(ctx, incidents, "Incidents fetched successfully", total, filter.Page, filter.Limit)
}

func (c *IncidentController) FindIncident(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	incident, err := c.incidentService.FindIncident(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, incident, "Incident fetched successfully", http.StatusOK)
}

func (c *IncidentController) CreateIncident(ctx echo.Context) error {
	var payload dto.CreateIncidentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	incident, err := c.incidentService.CreateIncident(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, incident, "Incident created successfully", http.StatusCreated)
}

func (c *IncidentController) UpdateIncident(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateIncidentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	incident, err := c.incidentService.UpdateIncident(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, incident, "Incident updated successfully", http.StatusOK)
}

func (c *IncidentController) DeleteIncident(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.incidentService.DeleteIncident(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Incident deleted successfully", http.StatusOK)
}
