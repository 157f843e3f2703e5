package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cmdb-system/internal/services"
	"cmdb-system/pkg/utils"
)

type CatalogController struct {
	catalogService services.CatalogServiceInterface
	logger         *zap.Logger
}

func NewCatalogController(catalogService services.CatalogServiceInterface, logger *zap.Logger) *CatalogController {
	return &CatalogController{catalogService: catalogService, logger: logger}
}

func (c *CatalogController) GetSeverities(ctx echo.Context) error {
	severities, err := c.catalogService.GetSeverities(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, severities, "Severities fetched successfully", http.StatusOK)
}

func (c *CatalogController) GetResolverGroups(ctx echo.Context) error {
	groups, err := c.catalogService.GetResolverGroups(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, groups, "Resolver groups fetched successfully", http.StatusOK)
}

func (c *CatalogController) GetComponents(ctx echo.Context) error {
	applicationID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	components, err := c.catalogService.GetComponents(ctx.Request().Context(), applicationID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, components, "Components fetched successfully", http.StatusOK)
}
