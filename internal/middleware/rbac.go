package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole rejects requests whose JWT does not carry the given role.
// It must run after JWT, which populates the role on the context.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			current, _ := c.Get(ContextKeyUserRole).(string)
			switch {
			case current == "":
				return c.JSON(http.StatusForbidden, map[string]string{"error": "missing role"})
			case current != role:
				return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
			}
			return next(c)
		}
	}
}
