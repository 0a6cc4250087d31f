package middleware

import (
	"myDecisionCoach/business/bandit"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TraceID reuses the caller's X-Request-ID or mints one, echoes it back, and
// stores it on the request context for engine logs.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			tid := req.Header.Get(echo.HeaderXRequestID)
			if tid == "" {
				tid = uuid.NewString()
			}

			c.Response().Header().Set(echo.HeaderXRequestID, tid)
			c.SetRequest(req.WithContext(bandit.WithTraceID(req.Context(), tid)))

			return next(c)
		}
	}
}
