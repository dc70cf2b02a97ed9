package auth

import "github.com/labstack/echo/v4"

// ContextKey is where the JWT middleware stores the caller's *Claims.
const ContextKey = "user"

func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok && claims != nil
}

// Cookies set at login. SessionCookie only signals presence to the page
// guard; TokenCookie carries the access token for browser requests.
const (
	SessionCookie = "isLoggedIn"
	TokenCookie   = "token"
)

// APIKeyHeader carries the shared secret of the deployed frontend on every
// /api request.
const APIKeyHeader = "X-API-Key"
