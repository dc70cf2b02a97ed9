package middleware

import (
	"net/http"
	"strings"

	"SmartCampus/internal/auth"

	"github.com/labstack/echo/v4"
)

// GuardConfig names the page paths the navigation guard protects.
type GuardConfig struct {
	ProtectedPrefix string
	LoginPath       string
}

var DefaultGuardConfig = GuardConfig{
	ProtectedPrefix: "/dashboard",
	LoginPath:       "/login",
}

// Guard redirects page navigations based on the presence of the session
// cookie: protected pages need it, the login page is skipped with it. The
// cookie is not verified; API routes authenticate on their own.
func Guard(cfg GuardConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			loggedIn := false
			if cookie, err := c.Cookie(auth.SessionCookie); err == nil && cookie.Value != "" {
				loggedIn = true
			}
			switch {
			case isUnder(path, cfg.ProtectedPrefix) && !loggedIn:
				return c.Redirect(http.StatusFound, cfg.LoginPath)
			case path == cfg.LoginPath && loggedIn:
				return c.Redirect(http.StatusFound, cfg.ProtectedPrefix)
			}
			return next(c)
		}
	}
}

func isUnder(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/")
}
