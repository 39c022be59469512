package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jaidev3/notebook-llm/internal/api/metrics"
	"github.com/jaidev3/notebook-llm/internal/core/domain"
	"github.com/jaidev3/notebook-llm/internal/core/ports"
)

// AccountKey is the echo context key under which Auth stores the
// authenticated *domain.Account.
const AccountKey = "account"

// AccountResolver looks up the account behind a validated token subject.
// Satisfied by the Mongo repository directly or by the Redis read-through
// cache in front of it.
type AccountResolver interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}

// Auth validates the bearer token, resolves it to an account, and enforces
// active status before the handler runs. Every authentication failure is a
// uniform 401 so unauthenticated callers learn nothing about which accounts
// or resources exist; only a valid but inactive account gets a 403.
func Auth(tokens ports.TokenService, accounts AccountResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()

			// Token subjects outlive their accounts: a deleted account's
			// token is still well signed, so the miss maps to 401. Any
			// other resolver error is a store failure, not an auth failure,
			// and goes to the central handler as a 500.
			account, err := accounts.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrAccountNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return fmt.Errorf("resolve account: %w", err)
			}

			if !account.Active {
				return echo.NewHTTPError(http.StatusForbidden, "account is inactive")
			}

			c.Set(AccountKey, account)
			return next(c)
		}
	}
}
