package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	"cmdb-system/internal/repositories"
	"cmdb-system/internal/services"
	apperrors "cmdb-system/pkg/errors"
	"cmdb-system/pkg/utils"
)

type ApplicationController struct {
	applicationService services.ApplicationServiceInterface
	logger             *zap.Logger
}

func NewApplicationController(applicationService services.ApplicationServiceInterface, logger *zap.Logger) *ApplicationController {
	return &ApplicationController{applicationService: applicationService, logger: logger}
}

func (c *ApplicationController) GetApplications(ctx echo.Context) error {
	filter := repositories.ApplicationFilter{
		Name:        ctx.QueryParam("name"),
		Code:        ctx.QueryParam("code"),
		Criticality: ctx.QueryParam("criticality"),
		Limit:       utils.DefaultLimit,
	}
	page := uint64(1)
	if p, err := strconv.ParseUint(ctx.QueryParam("page"), 10, 64); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.ParseUint(ctx.QueryParam("limit"), 10, 64); err == nil && l > 0 && l <= utils.MaxLimit {
		filter.Limit = l
	}
	filter.Offset = (page - 1) * filter.Limit

	apps, total, err := c.applicationService.GetApplications(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListResponse(ctx, apps, "Applications fetched successfully", total, page, filter.Limit)
}

func (c *ApplicationController) FindApplication(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	app, err := c.applicationService.FindApplication(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, app, "Application fetched successfully", http.StatusOK)
}

func (c *ApplicationController) CreateApplication(ctx echo.Context) error {
	var payload dto.CreateApplicationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	app, err := c.applicationService.CreateApplication(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, app, "Application created successfully", http.StatusCreated)
}

func (c *ApplicationController) UpdateApplication(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateApplicationDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	app, err := c.applicationService.UpdateApplication(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, app, "Application updated successfully", http.StatusOK)
}

func (c *ApplicationController) DeleteApplication(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.applicationService.DeleteApplication(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Application deleted successfully", http.StatusOK)
}

func (c *ApplicationController) ListShort(ctx echo.Context) error {
	apps, err := c.applicationService.ListShort(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, apps, "Applications fetched successfully", http.StatusOK)
}

func parseIDParam(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewHttpError(http.StatusBadRequest, "Invalid ID format", err, nil)
	}
	return id, nil
}
