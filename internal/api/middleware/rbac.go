package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jaidev3/notebook-llm/internal/core/domain"
)

// RequireRoles enforces role-based access control. It must run after Auth;
// a missing account in context is treated as forbidden, never as a pass.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account, _ := c.Get(AccountKey).(*domain.Account)
			if account == nil {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			if _, ok := allowed[account.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
