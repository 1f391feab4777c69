package impl

import (
	"context"
	"log/slog"

	deliverycontext "roster/internal/delivery/context"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"
	"roster/internal/usecase"
	"roster/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	tokenSvc    service.TokenService
	policy      *service.AccessPolicy
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	accountRepo repository.AccountRepository,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
	policy *service.AccessPolicy,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		accountRepo: accountRepo,
		hasher:      hasher,
		tokenSvc:    tokenSvc,
		policy:      policy,
		validate:    validation.New(),
		logger:      logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// authenticateAccount resolves the login and checks the password. A missing
// account and a wrong password produce the same error so callers cannot
// probe which logins exist.
func (srv *sessionService) authenticateAccount(ctx context.Context, input *usecase.CredentialsInput) (*entity.Account, error) {
	if err := srv.validate.Struct(input); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	account, err := srv.accountRepo.FindByLogin(ctx, input.Login)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login or password is incorrect")
		}

		return nil, errors.Wrap(err, "failed to find account by login")
	}

	match, err := srv.hasher.Verify(input.Password, account.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored credential record could not be verified", slog.String("login", input.Login), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to verify password")
	}
	if !match {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login or password is incorrect")
	}

	return account, nil
}

// Authenticate verifies credentials and rejects revoked accounts after the
// password check, so a revoked account with wrong credentials still reads
// as invalid credentials.
func (srv *sessionService) Authenticate(ctx context.Context, input *usecase.CredentialsInput) (*entity.Identity, error) {
	account, err := srv.authenticateAccount(ctx, input)
	if err != nil {
		srv.log(ctx).Warn("Authentication failed", slog.String("login", input.Login))

		return nil, err
	}

	if !account.IsActive() {
		srv.log(ctx).Warn("Authentication rejected for revoked account", slog.String("login", input.Login))

		return nil, errors.Wrap(domainerrors.ErrAccountRevoked, "account has been revoked")
	}

	identity := account.Identity()

	return &identity, nil
}

// Login authenticates and issues a signed session token for the caller.
func (srv *sessionService) Login(ctx context.Context, input *usecase.CredentialsInput) (*usecase.LoginOutput, error) {
	account, err := srv.authenticateAccount(ctx, input)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("login", input.Login))

		return nil, err
	}

	if !account.IsActive() {
		srv.log(ctx).Warn("Login rejected for revoked account", slog.String("login", input.Login))

		return nil, errors.Wrap(domainerrors.ErrAccountRevoked, "account has been revoked")
	}

	token, err := srv.tokenSvc.Issue(account.Identity())
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.String("login", input.Login), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Info("Session opened", slog.String("login", input.Login), slog.String("role", string(account.Role())))

	return &usecase.LoginOutput{
		Token:   token,
		Account: usecase.NewAccountView(account),
	}, nil
}

// ValidateCredentials serves the "read own credentials" query. Non-admin
// callers may only ask about their own login; the result carries the
// account's active flag instead of rejecting revoked accounts outright.
func (srv *sessionService) ValidateCredentials(ctx context.Context, caller entity.Identity, input *usecase.CredentialsInput) (*usecase.AccountView, error) {
	if err := srv.policy.CanReadOwnCredentials(caller, input.Login); err != nil {
		srv.log(ctx).Warn("Credential read denied", slog.String("login", input.Login), slog.String("performedBy", caller.Login))

		return nil, errors.Wrap(err, "credential read denied")
	}

	account, err := srv.authenticateAccount(ctx, input)
	if err != nil {
		return nil, err
	}

	return usecase.NewAccountView(account), nil
}
