package middleware

import (
	"crypto/subtle"
	"net/http"

	"SmartCampus/internal/auth"

	"github.com/labstack/echo/v4"
)

// APIKey rejects requests that do not present the shared key. Pre-flight
// requests pass through untouched.
func APIKey(key string) echo.MiddlewareFunc {
	expected := []byte(key)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method == http.MethodOptions {
				return next(c)
			}
			got := []byte(c.Request().Header.Get(auth.APIKeyHeader))
			if len(expected) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			}
			return next(c)
		}
	}
}
