// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"roster/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// The application layer will depend on this interface, not the concrete implementation.
// Implementations must enforce login uniqueness across all accounts,
// revoked ones included, and report duplicates as ErrLoginConflict.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByLogin retrieves a single account by its login (case-sensitive).
	FindByLogin(ctx context.Context, login string) (*entity.Account, error)

	// FindAllActive retrieves every account with no revocation timestamp,
	// ordered by creation time ascending.
	FindAllActive(ctx context.Context) ([]*entity.Account, error)

	// FindBornOnOrAfter retrieves every account whose birthday is on or
	// after the given cutoff date. Accounts without a birthday are excluded.
	FindBornOnOrAfter(ctx context.Context, cutoff time.Time) ([]*entity.Account, error)

	// AnyAdminExists reports whether at least one admin account is present.
	AnyAdminExists(ctx context.Context) (bool, error)

	// Create persists a new account entity to the storage.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account entity in the storage.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account record entirely (hard delete).
	Delete(ctx context.Context, account *entity.Account) error
}
