package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jaidev3/notebook-llm/internal/core/ports"
)

// UserHandler bundles the admin-only account management endpoints. All of
// them sit behind the Auth and RequireRoles(admin) middleware, so by the time
// a handler runs the caller is a valid, active admin.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// List returns all accounts.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Account
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	accounts, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// UpdateRole changes a user's role.
//
// @Summary      Update a user's role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Target user id"
// @Param        body  body      updateRoleRequest  true  "New role"
// @Success      200   {object}  domain.Account
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/users/{id}/role [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	actor, err := ctxAccount(c)
	if err != nil {
		return err
	}

	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.userService.UpdateRole(c.Request().Context(), actor.ID, c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Deactivate marks a user's account inactive.
//
// @Summary      Deactivate a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Target user id"
// @Success      200  {object}  domain.Account
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/{id}/deactivate [patch]
func (h *UserHandler) Deactivate(c echo.Context) error {
	actor, err := ctxAccount(c)
	if err != nil {
		return err
	}

	account, err := h.userService.Deactivate(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Delete removes a user's account.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Target user id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	actor, err := ctxAccount(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), actor.ID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}
