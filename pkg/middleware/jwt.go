package middleware

import (
	"net/http"
	"strings"

	"SmartCampus/internal/auth"

	"github.com/labstack/echo/v4"
)

// JWT authenticates the caller from the Authorization header or, for
// browser requests, the token cookie.
func JWT(signer *auth.Signer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := strings.TrimSpace(strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer "))
			if tokenString == "" {
				if cookie, err := c.Cookie(auth.TokenCookie); err == nil {
					tokenString = cookie.Value
				}
			}
			if tokenString == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing Token"})
			}
			claims, err := signer.ParseToken(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid Token"})
			}
			c.Set(auth.ContextKey, claims)
			return next(c)
		}
	}
}
