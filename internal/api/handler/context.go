package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jaidev3/notebook-llm/internal/api/middleware"
	"github.com/jaidev3/notebook-llm/internal/core/domain"
)

// ctxAccount extracts the account injected by the Auth middleware. Its
// presence proves the middleware ran; a nil account means the route was
// wired without it, which is rejected rather than trusted.
func ctxAccount(c echo.Context) (*domain.Account, error) {
	account, _ := c.Get(middleware.AccountKey).(*domain.Account)
	if account == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return account, nil
}
