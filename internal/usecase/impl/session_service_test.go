package impl

import (
	"context"
	"testing"

	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/entity"
	"roster/internal/domain/service"
	"roster/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService(repo *fakeAccountRepo) usecase.SessionUsecase {
	return NewSessionService(
		repo,
		fakeHasher{},
		&fakeTokenService{},
		service.NewAccessPolicy(),
		discardLogger(),
	)
}

func TestSessionService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the caller identity on valid credentials", func(t *testing.T) {
		repo := newFakeAccountRepo(accountFixture{login: "petrov", password: "s3cret", admin: true}.build())
		svc := newSessionService(repo)

		identity, err := svc.Authenticate(ctx, &usecase.CredentialsInput{Login: "petrov", Password: "s3cret"})
		require.NoError(t, err)
		assert.Equal(t, "petrov", identity.Login)
		assert.Equal(t, entity.RoleAdmin, identity.Role)
	})

	t.Run("unknown login and wrong password are indistinguishable", func(t *testing.T) {
		repo := newFakeAccountRepo(accountFixture{login: "petrov", password: "s3cret"}.build())
		svc := newSessionService(repo)

		_, unknownErr := svc.Authenticate(ctx, &usecase.CredentialsInput{Login: "ghost", Password: "s3cret"})
		_, wrongErr := svc.Authenticate(ctx, &usecase.CredentialsInput{Login: "petrov", Password: "nope"})

		assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, domainerrors.ErrInvalidCredentials)
	})

	t.Run("revoked account with valid credentials is rejected separately", func(t *testing.T) {
		repo := newFakeAccountRepo(accountFixture{login: "petrov", password: "s3cret", revoked: true}.build())
		svc := newSessionService(repo)

		_, err := svc.Authenticate(ctx, &usecase.CredentialsInput{Login: "petrov", Password: "s3cret"})
		assert.ErrorIs(t, err, domainerrors.ErrAccountRevoked)
	})

	t.Run("revoked account with wrong password reads as invalid credentials", func(t *testing.T) {
		// The revocation check runs after the password check, so the
		// revoked state leaks nothing to an unauthenticated caller.
		repo := newFakeAccountRepo(accountFixture{login: "petrov", password: "s3cret", revoked: true}.build())
		svc := newSessionService(repo)

		_, err := svc.Authenticate(ctx, &usecase.CredentialsInput{Login: "petrov", Password: "nope"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		svc := newSessionService(newFakeAccountRepo())

		_, err := svc.Authenticate(ctx, &usecase.CredentialsInput{Login: "pet rov", Password: "x"})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestSessionService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token carrying login and role", func(t *testing.T) {
		repo := newFakeAccountRepo(accountFixture{login: "petrov", password: "s3cret"}.build())
		svc := newSessionService(repo)

		out, err := svc.Login(ctx, &usecase.CredentialsInput{Login: "petrov", Password: "s3cret"})
		require.NoError(t, err)

		assert.Equal(t, "token:petrov:User", out.Token)
		require.NotNil(t, out.Account)
		assert.Equal(t, "petrov", out.Account.Login)
		assert.True(t, out.Account.Active)
	})

	t.Run("revoked account cannot open a session", func(t *testing.T) {
		repo := newFakeAccountRepo(accountFixture{login: "petrov", password: "s3cret", revoked: true}.build())
		svc := newSessionService(repo)

		_, err := svc.Login(ctx, &usecase.CredentialsInput{Login: "petrov", Password: "s3cret"})
		assert.ErrorIs(t, err, domainerrors.ErrAccountRevoked)
	})
}

func TestSessionService_ValidateCredentials(t *testing.T) {
	ctx := context.Background()

	t.Run("caller may validate their own credentials", func(t *testing.T) {
		repo := newFakeAccountRepo(accountFixture{login: "petrov", password: "s3cret"}.build())
		svc := newSessionService(repo)

		view, err := svc.ValidateCredentials(ctx, userIdentity("petrov"), &usecase.CredentialsInput{Login: "petrov", Password: "s3cret"})
		require.NoError(t, err)
		assert.Equal(t, "petrov", view.Login)
	})

	t.Run("admin may validate any login", func(t *testing.T) {
		repo := newFakeAccountRepo(accountFixture{login: "petrov", password: "s3cret"}.build())
		svc := newSessionService(repo)

		_, err := svc.ValidateCredentials(ctx, adminIdentity(), &usecase.CredentialsInput{Login: "petrov", Password: "s3cret"})
		assert.NoError(t, err)
	})

	t.Run("non-admin may not probe another login", func(t *testing.T) {
		repo := newFakeAccountRepo(accountFixture{login: "petrov", password: "s3cret"}.build())
		svc := newSessionService(repo)

		_, err := svc.ValidateCredentials(ctx, userIdentity("sidorov"), &usecase.CredentialsInput{Login: "petrov", Password: "s3cret"})
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("revoked account still validates, flagged inactive", func(t *testing.T) {
		repo := newFakeAccountRepo(accountFixture{login: "petrov", password: "s3cret", revoked: true}.build())
		svc := newSessionService(repo)

		view, err := svc.ValidateCredentials(ctx, adminIdentity(), &usecase.CredentialsInput{Login: "petrov", Password: "s3cret"})
		require.NoError(t, err)
		assert.False(t, view.Active)
	})
}
