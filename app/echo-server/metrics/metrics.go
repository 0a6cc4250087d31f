package metrics

import (
	pkgmetrics "myDecisionCoach/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Register exposes the default Prometheus registry on GET /metrics.
// Engine counters register themselves in their packages' init.
func Register(e *echo.Echo) {
	pkgmetrics.Init()
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
