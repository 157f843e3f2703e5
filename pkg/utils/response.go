package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "cmdb-system/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

func ListResponse(ctx echo.Context, list interface{}, message string, total, page, limit uint64) error {
	totalPages := uint64(0)
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	body := map[string]interface{}{
		"list": list,
		"pagination": map[string]interface{}{
			"total_count": total,
			"total_pages": totalPages,
			"page":        page,
			"limit":       limit,
		},
	}
	return ctx.JSON(http.StatusOK, &HTTPResponse{Status: true, Body: body, Message: message})
}

var sentinelStatus = map[error]int{
	apperrors.ErrNotFound:            http.StatusNotFound,
	apperrors.ErrApplicationNotFound: http.StatusNotFound,
	apperrors.ErrIncidentNotFound:    http.StatusNotFound,
	apperrors.ErrClosureCodeNotFound: http.StatusNotFound,
	apperrors.ErrNoClosureCodes:      http.StatusNotFound,
	apperrors.ErrConflict:            http.StatusConflict,
	apperrors.ErrClosureCodeInUse:    http.StatusConflict,
	apperrors.ErrApplicationInUse:    http.StatusConflict,
	apperrors.ErrBadRequest:          http.StatusBadRequest,
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("http error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("field '%s' failed on rule '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": "validation error: " + strings.Join(msgs, "; "),
		})
	}

	for sentinel, code := range sentinelStatus {
		if errors.Is(err, sentinel) {
			return c.JSON(code, map[string]interface{}{"status": false, "message": sentinel.Error()})
		}
	}

	logger.Error("unexpected error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "internal server error",
	})
}
