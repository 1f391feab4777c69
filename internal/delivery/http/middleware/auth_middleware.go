package middleware

import (
	"strings"

	"roster/internal/delivery/http/response"
	"roster/internal/domain/entity"
	"roster/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// keyIdentity is the echo.Context key carrying the authenticated identity.
const keyIdentity = "identity"

// AuthMiddleware provides middleware for session token authentication and
// role-based authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and stores the caller identity
// on the request context for handlers downstream.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		identity := claims.Identity()
		if !identity.Role.IsValid() {
			return response.Unauthorized(c, "INVALID_TOKEN", "Token carries an unknown role")
		}

		c.Set(keyIdentity, identity)

		return next(c)
	}
}

// RequireAdmin rejects callers without the administrator role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := CallerIdentity(c)
		if !ok {
			return response.Forbidden(c, "IDENTITY_MISSING", "Permission denied: caller identity missing")
		}

		if !identity.IsAdmin() {
			return response.Forbidden(c, "ADMIN_REQUIRED", "Permission denied: administrator role required")
		}

		return next(c)
	}
}

// CallerIdentity returns the authenticated identity stored by Authenticate.
func CallerIdentity(c echo.Context) (entity.Identity, bool) {
	identity, ok := c.Get(keyIdentity).(entity.Identity)

	return identity, ok
}
