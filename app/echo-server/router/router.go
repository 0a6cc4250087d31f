package router

import (
	"myDecisionCoach/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupDecisionRoutes(api *echo.Group, handler *rest.DecisionHandler, authRequired echo.MiddlewareFunc, optionalAuth echo.MiddlewareFunc) {
	decisions := api.Group("/decisions")

	// stateless scoring is open to anonymous callers
	decisions.POST("/score", handler.Score, optionalAuth)
	decisions.POST("/random", handler.Random, optionalAuth)
	decisions.POST("/explain", handler.Explain, optionalAuth)

	decisions.POST("", handler.Create, authRequired)
	decisions.GET("", handler.List, authRequired)
	decisions.GET("/:id", handler.GetByID, authRequired)
	decisions.DELETE("/:id", handler.Delete, authRequired)
	decisions.PATCH("/:id/outcome", handler.RecordOutcome, authRequired)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.ArmHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin", authRequired, adminOnly)

	admin.GET("/arms", handler.List)
}
