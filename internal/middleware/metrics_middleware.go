package middleware

import (
	"strconv"
	"time"

	"myDecisionCoach/pkg/metrics"

	"github.com/labstack/echo/v4"
)

func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			route := c.Path()
			method := c.Request().Method
			metrics.HTTPRequestLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			metrics.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()

			return err
		}
	}
}
