// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "roster/internal/delivery/context"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"
	"roster/internal/usecase"
	"roster/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accountService implements the AccountUsecase interface.
// Every mutation follows the same shape: load, gate through the access
// policy, validate, mutate, stamp audit fields, persist.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	policy      *service.AccessPolicy
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(
	txManager repository.TransactionManager,
	accountRepo repository.AccountRepository,
	hasher service.PasswordHasher,
	policy *service.AccessPolicy,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager:   txManager,
		accountRepo: accountRepo,
		hasher:      hasher,
		policy:      policy,
		validate:    validation.New(),
		logger:      logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create provisions a new account. The caller must already hold the admin
// role; the login uniqueness check and the insert run in one transaction so
// concurrent creates with the same login resolve to exactly one winner.
func (srv *accountService) Create(ctx context.Context, caller entity.Identity, input *usecase.CreateAccountInput) (*usecase.AccountView, error) {
	srv.log(ctx).Info("Creating account", slog.String("login", input.Login), slog.String("performedBy", caller.Login))

	if err := srv.validate.Struct(input); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during account creation", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password")
	}

	now := time.Now()
	account := &entity.Account{
		Login:        input.Login,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		Gender:       entity.Gender(input.Gender),
		Birthday:     input.Birthday,
		Admin:        input.Admin,
		CreatedAt:    now,
		CreatedBy:    caller.Login,
		ModifiedAt:   now,
		ModifiedBy:   caller.Login,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		_, findErr := accountRepo.FindByLogin(ctx, input.Login)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrLoginConflict, "login already exists")
		}
		if !errors.Is(findErr, repository.ErrAccountNotFound) {
			return errors.Wrap(findErr, "failed to check login uniqueness")
		}

		// The unique index backstops this check for concurrent writers.
		return accountRepo.Create(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create account", slog.String("login", input.Login), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account creation transaction")
	}

	srv.log(ctx).Debug("Account created", slog.Any("accountID", account.ID), slog.String("login", account.Login))

	return usecase.NewAccountView(account), nil
}

// Update applies a partial patch to the mutable profile fields.
// Nil patch fields leave the current values unchanged.
func (srv *accountService) Update(ctx context.Context, caller entity.Identity, id uuid.UUID, input *usecase.UpdateAccountInput) (*usecase.AccountView, error) {
	srv.log(ctx).Info("Updating account", slog.Any("accountID", id), slog.String("performedBy", caller.Login))

	if err := srv.validate.Struct(input); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	account, err := srv.loadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := srv.policy.CanMutate(caller, account); err != nil {
		srv.log(ctx).Warn("Account update denied", slog.Any("accountID", id), slog.String("performedBy", caller.Login), slog.Any("error", err))

		return nil, errors.Wrap(err, "account update denied")
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Gender != nil {
		account.Gender = entity.Gender(*input.Gender)
	}
	if input.Birthday != nil {
		account.Birthday = input.Birthday
	}

	srv.stampModified(account, caller.Login)

	if err := srv.persist(ctx, account, "failed to update account"); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Account updated", slog.Any("accountID", id))

	return usecase.NewAccountView(account), nil
}

// ChangePassword replaces the account password. Setting the current
// password again is rejected as a no-op change.
func (srv *accountService) ChangePassword(ctx context.Context, caller entity.Identity, id uuid.UUID, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Changing account password", slog.Any("accountID", id), slog.String("performedBy", caller.Login))

	if err := srv.validate.Struct(input); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	account, err := srv.loadByID(ctx, id)
	if err != nil {
		return err
	}

	if err := srv.policy.CanMutate(caller, account); err != nil {
		srv.log(ctx).Warn("Password change denied", slog.Any("accountID", id), slog.String("performedBy", caller.Login), slog.Any("error", err))

		return errors.Wrap(err, "password change denied")
	}

	same, err := srv.hasher.Verify(input.Password, account.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored credential record could not be verified", slog.Any("accountID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to verify current password")
	}
	if same {
		return errors.Wrap(domainerrors.ErrNoOpChange, "new password matches the current one")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	account.PasswordHash = hashedPassword
	srv.stampModified(account, caller.Login)

	if err := srv.persist(ctx, account, "failed to persist password change"); err != nil {
		return err
	}

	srv.log(ctx).Debug("Account password changed", slog.Any("accountID", id))

	return nil
}

// ChangeLogin renames the account login. The new login must differ from the
// current one and must not belong to any other account; the uniqueness check
// and the write share one transaction.
func (srv *accountService) ChangeLogin(ctx context.Context, caller entity.Identity, id uuid.UUID, input *usecase.ChangeLoginInput) error {
	srv.log(ctx).Info("Changing account login", slog.Any("accountID", id), slog.String("performedBy", caller.Login))

	if err := srv.validate.Struct(input); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrAccountNotFound, "account not found")
			}

			return errors.Wrap(err, "failed to find account by id")
		}

		if err := srv.policy.CanMutate(caller, account); err != nil {
			return errors.Wrap(err, "login change denied")
		}

		// Compare against the current login, not the stored credential.
		if input.Login == account.Login {
			return errors.Wrap(domainerrors.ErrNoOpChange, "new login matches the current one")
		}

		other, err := accountRepo.FindByLogin(ctx, input.Login)
		if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to check login uniqueness")
		}
		if other != nil && other.ID != account.ID {
			return errors.Wrap(domainerrors.ErrLoginConflict, "login already belongs to another account")
		}

		account.Login = input.Login
		srv.stampModified(account, caller.Login)

		return accountRepo.Update(ctx, account)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to change account login", slog.Any("accountID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute login change transaction")
	}

	srv.log(ctx).Debug("Account login changed", slog.Any("accountID", id))

	return nil
}

// SoftDelete marks the account revoked without removing its record.
func (srv *accountService) SoftDelete(ctx context.Context, caller entity.Identity, login string) error {
	srv.log(ctx).Info("Soft deleting account", slog.String("login", login), slog.String("performedBy", caller.Login))

	account, err := srv.loadByLogin(ctx, login)
	if err != nil {
		return err
	}

	if err := srv.policy.CanMutate(caller, account); err != nil {
		return errors.Wrap(err, "soft delete denied")
	}

	account.Revoke(time.Now(), caller.Login)
	srv.stampModified(account, caller.Login)

	if err := srv.persist(ctx, account, "failed to persist soft delete"); err != nil {
		return err
	}

	srv.log(ctx).Debug("Account revoked", slog.String("login", login))

	return nil
}

// HardDelete removes the account record entirely.
func (srv *accountService) HardDelete(ctx context.Context, login string) error {
	srv.log(ctx).Info("Hard deleting account", slog.String("login", login))

	account, err := srv.loadByLogin(ctx, login)
	if err != nil {
		return err
	}

	if err := srv.accountRepo.Delete(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrAccountNotFound, "account not found")
		}

		return errors.Wrap(err, "failed to delete account")
	}

	srv.log(ctx).Debug("Account removed", slog.String("login", login))

	return nil
}

// Restore returns a revoked account to the active state by clearing both
// revocation fields together.
func (srv *accountService) Restore(ctx context.Context, login string) error {
	srv.log(ctx).Info("Restoring account", slog.String("login", login))

	account, err := srv.loadByLogin(ctx, login)
	if err != nil {
		return err
	}

	account.Restore()

	if err := srv.persist(ctx, account, "failed to persist restore"); err != nil {
		return err
	}

	srv.log(ctx).Debug("Account restored", slog.String("login", login))

	return nil
}

// GetByLogin returns the outward view of a single account.
func (srv *accountService) GetByLogin(ctx context.Context, login string) (*usecase.AccountView, error) {
	account, err := srv.loadByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	return usecase.NewAccountView(account), nil
}

// ListActive returns every non-revoked account, oldest first.
func (srv *accountService) ListActive(ctx context.Context) ([]*usecase.AccountView, error) {
	accounts, err := srv.accountRepo.FindAllActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list active accounts")
	}

	return toViews(accounts), nil
}

// ListOlderThan returns accounts selected by the age query: the cutoff is
// today minus the given number of years, and the birthday comparison is
// inclusive on the boundary.
func (srv *accountService) ListOlderThan(ctx context.Context, years int) ([]*usecase.AccountView, error) {
	now := time.Now().UTC()
	cutoff := time.Date(now.Year()-years, now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	accounts, err := srv.accountRepo.FindBornOnOrAfter(ctx, cutoff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts by age")
	}

	return toViews(accounts), nil
}

func (srv *accountService) loadByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "account not found")
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return account, nil
}

func (srv *accountService) loadByLogin(ctx context.Context, login string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "account not found")
		}

		return nil, errors.Wrap(err, "failed to find account by login")
	}

	return account, nil
}

func (srv *accountService) stampModified(account *entity.Account, by string) {
	account.ModifiedAt = time.Now()
	account.ModifiedBy = by
}

func (srv *accountService) persist(ctx context.Context, account *entity.Account, msg string) error {
	if err := srv.accountRepo.Update(ctx, account); err != nil {
		srv.log(ctx).Error("Failed to persist account", slog.Any("accountID", account.ID), slog.Any("error", err))

		return errors.Wrap(err, msg)
	}

	return nil
}

func toViews(accounts []*entity.Account) []*usecase.AccountView {
	views := make([]*usecase.AccountView, 0, len(accounts))
	for _, account := range accounts {
		views = append(views, usecase.NewAccountView(account))
	}

	return views
}
