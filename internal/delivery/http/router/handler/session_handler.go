package handler

import (
	"log/slog"
	"net/http"

	"roster/internal/delivery/http/middleware"
	"roster/internal/delivery/http/response"
	"roster/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionHandler holds dependencies for authentication handlers.
type SessionHandler struct {
	uc     usecase.SessionUsecase
	logger *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		uc:     uc,
		logger: logger,
	}
}

// Login handles the credential check and token issuance request.
func (h *SessionHandler) Login(c echo.Context) error {
	var input *usecase.CredentialsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// ValidateCredentials handles the own-credentials query.
func (h *SessionHandler) ValidateCredentials(c echo.Context) error {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		return response.Unauthorized(c, "IDENTITY_MISSING", "Caller identity missing")
	}

	var input *usecase.CredentialsInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid credentials input")
	}

	view, err := h.uc.ValidateCredentials(c.Request().Context(), caller, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Credentials validated successfully")
}
