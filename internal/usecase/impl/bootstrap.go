package impl

import (
	"context"
	"log/slog"
	"time"

	"roster/config"
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/domain/service"

	"github.com/pkg/errors"
)

const (
	defaultBootstrapLogin    = "admin"
	defaultBootstrapPassword = "admin123"
)

// Bootstrapper seeds the directory with an initial administrator so the
// system is never left without one.
type Bootstrapper struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	cfg         *config.Config
	logger      *slog.Logger
}

// NewBootstrapper is the constructor for Bootstrapper.
func NewBootstrapper(
	accountRepo repository.AccountRepository,
	hasher service.PasswordHasher,
	cfg *config.Config,
	logger *slog.Logger,
) *Bootstrapper {
	return &Bootstrapper{
		accountRepo: accountRepo,
		hasher:      hasher,
		cfg:         cfg,
		logger:      logger,
	}
}

// EnsureAdminAccount creates the seed administrator when no admin account
// exists yet. Revoked admins still count, so a fresh seed is never created
// behind a soft-deleted one. Safe to run on every startup.
func (b *Bootstrapper) EnsureAdminAccount(ctx context.Context) error {
	exists, err := b.accountRepo.AnyAdminExists(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check for existing administrators")
	}
	if exists {
		b.logger.Debug("Administrator account already present, skipping bootstrap")

		return nil
	}

	login := defaultBootstrapLogin
	password := defaultBootstrapPassword
	if b.cfg.Auth != nil {
		if b.cfg.Auth.BootstrapLogin != "" {
			login = b.cfg.Auth.BootstrapLogin
		}
		if b.cfg.Auth.BootstrapPassword != "" {
			password = b.cfg.Auth.BootstrapPassword
		}
	}

	hashedPassword, err := b.hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash bootstrap password")
	}

	now := time.Now()
	account := &entity.Account{
		Login:        login,
		PasswordHash: hashedPassword,
		Name:         "Administrator",
		Gender:       entity.GenderUnknown,
		Admin:        true,
		CreatedAt:    now,
		CreatedBy:    "",
		ModifiedAt:   now,
		ModifiedBy:   "",
	}

	if err := b.accountRepo.Create(ctx, account); err != nil {
		// Another instance may have seeded concurrently; the unique index
		// turns the race into a conflict we can ignore.
		if errors.Is(err, domainerrors.ErrLoginConflict) {
			b.logger.Info("Bootstrap administrator created concurrently", slog.String("login", login))

			return nil
		}

		return errors.Wrap(err, "failed to create bootstrap administrator")
	}

	b.logger.Info("Bootstrap administrator created", slog.String("login", login))

	return nil
}
