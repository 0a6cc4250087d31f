package middleware

import (
	"context"
	"errors"
	"net/http"

	"myDecisionCoach/domain"
	"myDecisionCoach/pkg/logger"

	jsonres "myDecisionCoach/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler maps errors that reach echo to the JSON error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, code, message := classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, jsonres.Error(code, message, nil))
}

func classify(err error) (int, string, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return he.Code, codeFor(he.Code), msg
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "BAD_REQUEST", err.Error()
	case errors.Is(err, domain.ErrDecisionNotFound):
		return http.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrOutcomeRecorded):
		return http.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "request timed out"
	default:
		return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error"
	}
}

func codeFor(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusConflict:
		return "CONFLICT"
	default:
		return "ERROR"
	}
}
