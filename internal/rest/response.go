package rest

import (
	"context"
	"errors"
	"net/http"

	"myDecisionCoach/domain"
	"myDecisionCoach/pkg/logger"

	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

// writeError maps service errors onto status codes.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrDecisionNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrOutcomeRecorded):
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, ResponseError{Message: "request timed out"})
	default:
		logger.Error("request failed", "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "internal server error"})
	}
}
