package middleware

import (
	"net/http"

	"SmartCampus/internal/auth"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// rbacPolicy maps roles to route patterns and methods. Objects are echo
// route paths, e.g. /api/rooms/:id.
var rbacPolicy = [][]string{
	{string(auth.RoleTeacher), "/api/notifications*", "^(GET|PUT)$"},
	{string(auth.RoleTeacher), "/api/auth/me", "^GET$"},
	{string(auth.RoleAdmin), "/api/notifications*", "^(GET|PUT|POST)$"},
	{string(auth.RoleAdmin), "/api/auth/me", "^GET$"},
	{string(auth.RoleAdmin), "/api/rooms*", "^(POST|PUT|DELETE)$"},
	{string(auth.RoleAdmin), "/api/subjects*", "^(POST|PUT|DELETE)$"},
	{string(auth.RoleSuperAdmin), "/api/admins*", "^(GET|POST)$"},
}

// super_admin inherits everything admin may do.
var rbacGrouping = [][]string{
	{string(auth.RoleSuperAdmin), string(auth.RoleAdmin)},
}

// NewEnforcer builds the RBAC enforcer from the in-code model and policy.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	for _, p := range rbacPolicy {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}
	for _, g := range rbacGrouping {
		if _, err := enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}
	return enforcer, nil
}

// RBAC enforces the policy for the caller set by JWT.
func RBAC(enforcer *casbin.Enforcer, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := auth.ClaimsFrom(c)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Unauthorized: missing user claims"})
			}
			role, obj, act := string(claims.Role), c.Path(), c.Request().Method
			allowed, err := enforcer.Enforce(role, obj, act)
			if err != nil {
				logger.Error("casbin enforce", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "RBAC system error"})
			}
			if !allowed {
				logger.Debug("casbin denied", zap.String("role", role), zap.String("obj", obj), zap.String("act", act))
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Forbidden: insufficient permissions"})
			}
			return next(c)
		}
	}
}
