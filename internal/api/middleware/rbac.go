package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cityworks/complaints-api/internal/core/domain"
)

const msgForbidden = "Access forbidden: Insufficient permissions."

// RBAC permits the call only when the authenticated role is in the allowed
// set. It runs after Auth, so absence of a role means the chain is miswired
// and the call is refused.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, msgForbidden)
			}
			return next(c)
		}
	}
}

// MasterAdmin restricts a route to the single distinguished admin account.
// The role claim alone is not enough: identity must also equal "admin", so a
// misattributed admin claim on another account never passes. The message is
// route-specific and returned verbatim on refusal.
func MasterAdmin(message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, _ := c.Get(ContextUsername).(string)
			role, _ := c.Get(ContextRole).(string)
			if username != domain.MasterAdminUsername || role != domain.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, message)
			}
			return next(c)
		}
	}
}
