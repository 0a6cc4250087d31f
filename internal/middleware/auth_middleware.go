package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"myDecisionCoach/pkg/logger"
	"myDecisionCoach/pkg/utils"

	jsonres "myDecisionCoach/pkg/response"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextToken  = "token"
)

// AuthMiddleware requires a valid HS256 bearer token.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			if status, body := authenticate(c, authHeader); status != 0 {
				return c.JSON(status, body)
			}

			return next(c)
		}
	}
}

// OptionalAuth authenticates when a bearer token is present and lets
// anonymous callers through otherwise. A present but invalid token is rejected.
func OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			if status, body := authenticate(c, authHeader); status != 0 {
				return c.JSON(status, body)
			}

			return next(c)
		}
	}
}

// authenticate validates the header and stores the claims on c.
// A zero status means success.
func authenticate(c echo.Context, authHeader string) (int, jsonres.ErrorBody) {
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Invalid authorization format", nil,
		)
	}

	tokenString := tokenParts[1]

	// expiry is enforced by the parser
	claims, err := utils.ParseJWT(tokenString)
	if err != nil {
		return http.StatusUnauthorized, jsonres.Error(
			"UNAUTHORIZED", "Invalid token", nil,
		)
	}

	userIDUint, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil {
		logger.Error("Invalid user ID in token", "error", err)
		return http.StatusForbidden, jsonres.Error(
			"FORBIDDEN", "Invalid user ID in token", nil,
		)
	}

	c.Set(ContextUserID, uint(userIDUint))
	c.Set(ContextRole, claims.Role)
	c.Set(ContextToken, tokenString)

	return 0, jsonres.ErrorBody{}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := c.Get(ContextRole)
			roleStr, ok := role.(string)
			if !ok || strings.ToUpper(roleStr) != "ADMIN" {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}

// UserIDFromContext returns the authenticated user, or 0 for anonymous callers.
func UserIDFromContext(c echo.Context) uint {
	if id, ok := c.Get(ContextUserID).(uint); ok {
		return id
	}
	return 0
}
