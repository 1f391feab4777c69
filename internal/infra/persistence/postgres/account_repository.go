// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/repository"
	"roster/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, mapStoreError(err, "failed to find account by id")
	}

	return accountM.ToDomain(), nil
}

// FindByLogin retrieves a single account by its login. The lookup is
// case-sensitive; the column collation must not fold case.
func (repo *accountRepository) FindByLogin(ctx context.Context, login string) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).
		Where("login = ?", login).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, mapStoreError(err, "failed to find account by login")
	}

	return accountM.ToDomain(), nil
}

// FindAllActive retrieves every non-revoked account, oldest first.
func (repo *accountRepository) FindAllActive(ctx context.Context) ([]*entity.Account, error) {
	var models []model.AccountModel
	if err := repo.db.WithContext(ctx).
		Where("revoked_at IS NULL").
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, mapStoreError(err, "failed to list active accounts")
	}

	return toDomainSlice(models), nil
}

// FindBornOnOrAfter retrieves every account whose birthday is on or after the cutoff.
func (repo *accountRepository) FindBornOnOrAfter(ctx context.Context, cutoff time.Time) ([]*entity.Account, error) {
	var models []model.AccountModel
	if err := repo.db.WithContext(ctx).
		Where("birthday >= ?", cutoff).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, mapStoreError(err, "failed to list accounts by birthday")
	}

	return toDomainSlice(models), nil
}

// AnyAdminExists reports whether at least one admin account is present.
func (repo *accountRepository) AnyAdminExists(ctx context.Context) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("admin = ?", true).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, mapStoreError(err, "failed to count admin accounts")
	}

	return count > 0, nil
}

// Create persists a new account. A duplicate login surfaces as ErrLoginConflict:
// the unique index decides the winner between concurrent inserts.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := model.FromDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrLoginConflict.WrapMessage("login already exists")
		}

		return mapStoreError(err, "failed to create account")
	}

	// Propagate the generated ID back to the domain entity.
	account.ID = accountM.ID

	return nil
}

// Update modifies an existing account, writing every column so cleared
// optional fields (revocation) persist as NULL.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := model.FromDomain(account)

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", accountM.ID).
		Select("*").
		Updates(accountM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrLoginConflict.WrapMessage("login already exists")
		}

		return mapStoreError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// Delete removes an account record entirely.
func (repo *accountRepository) Delete(ctx context.Context, account *entity.Account) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", account.ID).
		Delete(&model.AccountModel{})
	if result.Error != nil {
		return mapStoreError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

func toDomainSlice(models []model.AccountModel) []*entity.Account {
	accounts := make([]*entity.Account, 0, len(models))
	for i := range models {
		accounts = append(accounts, models[i].ToDomain())
	}

	return accounts
}

// mapStoreError classifies a raw GORM error: transport failures become
// ErrStoreUnavailable, everything else a wrapped store execution error.
func mapStoreError(err error, details string) error {
	if isStoreUnavailable(err) {
		return domainerrors.ErrStoreUnavailable.WrapMessage(details)
	}

	return domainerrors.NewStoreExecuteError(err, details)
}
