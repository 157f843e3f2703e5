package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"cmdb-system/internal/dto"
	"cmdb-system/internal/services"
	apperrors "cmdb-system/pkg/errors"
	"cmdb-system/pkg/utils"
)

type ClosureCodeController struct {
	closureCodeService    services.ClosureCodeServiceInterface
	recommendationService services.RecommendationServiceInterface
	logger                *zap.Logger
}

func NewClosureCodeController(
	closureCodeService services.ClosureCodeServiceInterface,
	recommendationService services.RecommendationServiceInterface,
	logger *zap.Logger,
) *ClosureCodeController {
	return &ClosureCodeController{
		closureCodeService:    closureCodeService,
		recommendationService: recommendationService,
		logger:                logger,
	}
}

func (c *ClosureCodeController) GetClosureCodes(ctx echo.Context) error {
	applicationID := uint64(0)
	if id := utils.CoerceID(ctx.QueryParam("application_id")); id != nil {
		applicationID = *id
	}
	limit := uint64(utils.DefaultLimit)
	page := uint64(1)
	if l, err := strconv.ParseUint(ctx.QueryParam("limit"), 10, 64); err == nil && l > 0 && l <= utils.MaxLimit {
		limit = l
	}
	if p, err := strconv.ParseUint(ctx.QueryParam("page"), 10, 64); err == nil && p > 0 {
		page = p
	}

	codeSearch := ""
	if s := utils.CoerceString(ctx.QueryParam("code")); s != nil {
		codeSearch = *s
	}

	codes, total, err := c.closureCodeService.GetClosureCodes(ctx.Request().Context(), applicationID, codeSearch, limit, (page-1)*limit)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.ListResponse(ctx, codes, "Closure codes fetched successfully", total, page, limit)
}

func (c *ClosureCodeController) FindClosureCode(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	code, err := c.closureCodeService.FindClosureCode(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, code, "Closure code fetched successfully", http.StatusOK)
}

func (c *ClosureCodeController) CreateClosureCode(ctx echo.Context) error {
	var payload dto.CreateClosureCodeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	code, err := c.closureCodeService.CreateClosureCode(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	// A new code changes what the suggestion corpus may return.
	if err := c.recommendationService.InvalidateCorpus(ctx.Request().Context(), payload.ApplicationID); err != nil {
		c.logger.Warn("closure code: corpus invalidation failed", zap.Error(err))
	}
	return utils.SuccessResponse(ctx, code, "Closure code created successfully", http.StatusCreated)
}

func (c *ClosureCodeController) UpdateClosureCode(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	var payload dto.UpdateClosureCodeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	code, err := c.closureCodeService.UpdateClosureCode(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.recommendationService.InvalidateCorpus(ctx.Request().Context(), code.ApplicationID); err != nil {
		c.logger.Warn("closure code: corpus invalidation failed", zap.Error(err))
	}
	return utils.SuccessResponse(ctx, code, "Closure code updated successfully", http.StatusOK)
}

func (c *ClosureCodeController) DeleteClosureCode(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	code, err := c.closureCodeService.FindClosureCode(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.closureCodeService.DeleteClosureCode(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := c.recommendationService.InvalidateCorpus(ctx.Request().Context(), code.ApplicationID); err != nil {
		c.logger.Warn("closure code: corpus invalidation failed", zap.Error(err))
	}
	return utils.SuccessResponse(ctx, nil, "Closure code deleted successfully", http.StatusOK)
}

// Lookup serves the dependent selector of the dashboard filter form. The
// response is the bare {"codigos": [...]} object the selector consumes, not
// the standard envelope. An empty aplicativo_id widens the lookup to every
// application; anything non-numeric is rejected.
func (c *ClosureCodeController) Lookup(ctx echo.Context) error {
	raw := strings.TrimSpace(ctx.QueryParam("aplicativo_id"))

	var applicationID *uint64
	if raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.ErrorResponse(ctx,
				apperrors.NewHttpError(http.StatusBadRequest, "Parámetro aplicativo_id inválido", err, nil),
				c.logger)
		}
		applicationID = &id
	}

	lookup, err := c.closureCodeService.Lookup(ctx.Request().Context(), applicationID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, lookup)
}

// Recent returns the newest closure codes registered for an application.
func (c *ClosureCodeController) Recent(ctx echo.Context) error {
	applicationID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	codes, err := c.closureCodeService.Recent(ctx.Request().Context(), applicationID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, codes, "Recent closure codes fetched successfully", http.StatusOK)
}

// Recommend scores the application's closure codes against an incident
// description and returns the closest matches.
func (c *ClosureCodeController) Recommend(ctx echo.Context) error {
	var payload dto.RecommendClosureCodeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.ErrBadRequest, c.logger)
	}
	if err := ctx.Validate(payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	suggestions, err := c.recommendationService.Suggest(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return ctx.JSON(http.StatusOK, dto.ClosureCodeSuggestionsDTO{Status: true, Sugerencias: suggestions})
}
