package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"roster/config"
	"roster/internal/domain/entity"
	"roster/internal/infra/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthMiddleware(t *testing.T) *AuthMiddleware {
	t.Helper()

	tokenSvc, err := auth.NewJWTService(&config.Config{
		Auth: &config.AuthConfig{TokenSecret: "integration-test-secret"},
	})
	require.NoError(t, err)

	return NewAuthMiddleware(tokenSvc)
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, entity.Identity, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users/active", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen entity.Identity
	var reached bool
	handler := mw(func(c echo.Context) error {
		seen, reached = CallerIdentity(c)

		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))

	return rec, seen, reached
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	m := newTestAuthMiddleware(t)

	t.Run("valid bearer token reaches the handler with the caller identity", func(t *testing.T) {
		token, err := m.tokenSvc.Issue(entity.Identity{Login: "petrov", Role: entity.RoleUser})
		require.NoError(t, err)

		rec, identity, reached := doRequest(t, m.Authenticate, "Bearer "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
		assert.Equal(t, "petrov", identity.Login)
		assert.Equal(t, entity.RoleUser, identity.Role)
	})

	t.Run("missing header", func(t *testing.T) {
		rec, _, reached := doRequest(t, m.Authenticate, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("non-bearer header", func(t *testing.T) {
		rec, _, reached := doRequest(t, m.Authenticate, "Basic abc")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, _, reached := doRequest(t, m.Authenticate, "Bearer not.a.token")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		otherSvc, err := auth.NewJWTService(&config.Config{
			Auth: &config.AuthConfig{TokenSecret: "some-other-secret"},
		})
		require.NoError(t, err)

		token, err := otherSvc.Issue(entity.Identity{Login: "petrov", Role: entity.RoleUser})
		require.NoError(t, err)

		rec, _, reached := doRequest(t, m.Authenticate, "Bearer "+token)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, reached)
	})
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	m := newTestAuthMiddleware(t)

	chain := func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.Authenticate(m.RequireAdmin(next))
	}

	t.Run("admin token passes", func(t *testing.T) {
		token, err := m.tokenSvc.Issue(entity.Identity{Login: "root", Role: entity.RoleAdmin})
		require.NoError(t, err)

		rec, identity, reached := doRequest(t, chain, "Bearer "+token)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
		assert.True(t, identity.IsAdmin())
	})

	t.Run("user token is rejected", func(t *testing.T) {
		token, err := m.tokenSvc.Issue(entity.Identity{Login: "petrov", Role: entity.RoleUser})
		require.NoError(t, err)

		rec, _, reached := doRequest(t, chain, "Bearer "+token)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, reached)
	})
}
