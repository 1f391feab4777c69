package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roster/internal/domain/entity"
	"roster/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAccountUsecase records the calls the handler dispatches.
type fakeAccountUsecase struct {
	usecase.AccountUsecase

	createdInput    *usecase.CreateAccountInput
	softDeleted     []string
	hardDeleted     []string
	olderThanYears  int
	olderThanCalled bool
}

func (f *fakeAccountUsecase) Create(_ context.Context, _ entity.Identity, input *usecase.CreateAccountInput) (*usecase.AccountView, error) {
	f.createdInput = input

	return &usecase.AccountView{ID: uuid.New(), Login: input.Login, Name: input.Name, Active: true}, nil
}

func (f *fakeAccountUsecase) SoftDelete(_ context.Context, _ entity.Identity, login string) error {
	f.softDeleted = append(f.softDeleted, login)

	return nil
}

func (f *fakeAccountUsecase) HardDelete(_ context.Context, login string) error {
	f.hardDeleted = append(f.hardDeleted, login)

	return nil
}

func (f *fakeAccountUsecase) ListOlderThan(_ context.Context, years int) ([]*usecase.AccountView, error) {
	f.olderThanCalled = true
	f.olderThanYears = years

	return []*usecase.AccountView{}, nil
}

func newHandlerContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func withCaller(c echo.Context, identity entity.Identity) {
	c.Set("identity", identity)
}

func TestAccountHandler_Create(t *testing.T) {
	uc := &fakeAccountUsecase{}
	h := NewAccountHandler(uc, testLogger())

	c, rec := newHandlerContext(http.MethodPost, "/users", `{"login":"petrov","password":"s3cret","name":"Petrov"}`)
	withCaller(c, entity.Identity{Login: "root", Role: entity.RoleAdmin})

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.createdInput)
	assert.Equal(t, "petrov", uc.createdInput.Login)
	assert.Contains(t, rec.Body.String(), `"login":"petrov"`)
	assert.NotContains(t, rec.Body.String(), "s3cret", "password must never echo back")
}

func TestAccountHandler_Create_MissingIdentity(t *testing.T) {
	uc := &fakeAccountUsecase{}
	h := NewAccountHandler(uc, testLogger())

	c, rec := newHandlerContext(http.MethodPost, "/users", `{"login":"petrov"}`)

	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.createdInput)
}

func TestAccountHandler_Delete_SoftFlag(t *testing.T) {
	t.Run("soft=true revokes", func(t *testing.T) {
		uc := &fakeAccountUsecase{}
		h := NewAccountHandler(uc, testLogger())

		c, rec := newHandlerContext(http.MethodDelete, "/users/petrov?soft=true", "")
		c.SetParamNames("login")
		c.SetParamValues("petrov")
		withCaller(c, entity.Identity{Login: "root", Role: entity.RoleAdmin})

		require.NoError(t, h.Delete(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"petrov"}, uc.softDeleted)
		assert.Empty(t, uc.hardDeleted)
	})

	t.Run("no flag removes the record", func(t *testing.T) {
		uc := &fakeAccountUsecase{}
		h := NewAccountHandler(uc, testLogger())

		c, rec := newHandlerContext(http.MethodDelete, "/users/petrov", "")
		c.SetParamNames("login")
		c.SetParamValues("petrov")
		withCaller(c, entity.Identity{Login: "root", Role: entity.RoleAdmin})

		require.NoError(t, h.Delete(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"petrov"}, uc.hardDeleted)
		assert.Empty(t, uc.softDeleted)
	})
}

func TestAccountHandler_ListOlderThan(t *testing.T) {
	t.Run("forwards the parsed age", func(t *testing.T) {
		uc := &fakeAccountUsecase{}
		h := NewAccountHandler(uc, testLogger())

		c, rec := newHandlerContext(http.MethodGet, "/users/older-than/30", "")
		c.SetParamNames("years")
		c.SetParamValues("30")

		require.NoError(t, h.ListOlderThan(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, uc.olderThanCalled)
		assert.Equal(t, 30, uc.olderThanYears)
	})

	t.Run("rejects a non-numeric age", func(t *testing.T) {
		uc := &fakeAccountUsecase{}
		h := NewAccountHandler(uc, testLogger())

		c, rec := newHandlerContext(http.MethodGet, "/users/older-than/thirty", "")
		c.SetParamNames("years")
		c.SetParamValues("thirty")

		require.NoError(t, h.ListOlderThan(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, uc.olderThanCalled)
	})
}
