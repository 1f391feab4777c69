// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"roster/internal/delivery/http/middleware"
	"roster/internal/delivery/http/response"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account lifecycle handlers.
// Authorization rules live in the use case layer; handlers only bind,
// resolve the caller identity and map errors.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles the account creation request.
func (h *AccountHandler) Create(c echo.Context) error {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "IDENTITY_MISSING", "Caller identity missing")
	}

	var input *usecase.CreateAccountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}

	view, err := h.uc.Create(c.Request().Context(), caller, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, view, "Account created successfully")
}

// Update handles the profile patch request.
func (h *AccountHandler) Update(c echo.Context) error {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "IDENTITY_MISSING", "Caller identity missing")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "Invalid account id format")
	}

	var input *usecase.UpdateAccountInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}

	view, err := h.uc.Update(c.Request().Context(), caller, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Account updated successfully")
}

// ChangePassword handles the password change request.
func (h *AccountHandler) ChangePassword(c echo.Context) error {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "IDENTITY_MISSING", "Caller identity missing")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "Invalid account id format")
	}

	var input *usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}

	if err := h.uc.ChangePassword(c.Request().Context(), caller, id, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password changed"}, "Password changed successfully")
}

// ChangeLogin handles the login rename request.
func (h *AccountHandler) ChangeLogin(c echo.Context) error {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "IDENTITY_MISSING", "Caller identity missing")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ACCOUNT_ID", "Invalid account id format")
	}

	var input *usecase.ChangeLoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := h.uc.ChangeLogin(c.Request().Context(), caller, id, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Login changed"}, "Login changed successfully")
}

// GetByLogin handles the single account lookup request.
func (h *AccountHandler) GetByLogin(c echo.Context) error {
	view, err := h.uc.GetByLogin(c.Request().Context(), c.Param("login"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Account retrieved successfully")
}

// ListActive handles the active accounts listing request.
func (h *AccountHandler) ListActive(c echo.Context) error {
	views, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, views, "Active accounts retrieved successfully")
}

// ListOlderThan handles the age query request.
func (h *AccountHandler) ListOlderThan(c echo.Context) error {
	years, err := strconv.Atoi(c.Param("years"))
	if err != nil || years < 0 {
		return response.BadRequest(c, "INVALID_AGE", "Age must be a non-negative integer")
	}

	views, err := h.uc.ListOlderThan(c.Request().Context(), years)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, views, "Accounts retrieved successfully")
}

// Delete handles both delete flavors: ?soft=true revokes the account,
// anything else removes the record.
func (h *AccountHandler) Delete(c echo.Context) error {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "IDENTITY_MISSING", "Caller identity missing")
	}

	login := c.Param("login")
	soft, _ := strconv.ParseBool(c.QueryParam("soft"))

	var err error
	if soft {
		err = h.uc.SoftDelete(c.Request().Context(), caller, login)
	} else {
		err = h.uc.HardDelete(c.Request().Context(), login)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account deleted"}, "Account deleted successfully")
}

// Restore handles the soft delete reversal request.
func (h *AccountHandler) Restore(c echo.Context) error {
	if err := h.uc.Restore(c.Request().Context(), c.Param("login")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Account restored"}, "Account restored successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
