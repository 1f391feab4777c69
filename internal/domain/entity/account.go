// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the sole entity in the system, representing a directory
// entry for a single person. The password hash is an opaque encoded
// record owned by the hashing service; it must never be logged or
// serialized outward.
type Account struct {
	ID           uuid.UUID  // Unique identifier, assigned by the store at creation.
	Login        string     // Unique, case-sensitive login. Alphanumeric only.
	PasswordHash string     // Encoded salted hash of the account password.
	Name         string     // Display name. Latin and Cyrillic letters only.
	Gender       Gender     // Female, Male or Unknown.
	Birthday     *time.Time // Optional date of birth.
	Admin        bool       // Set at creation, immutable afterwards.
	CreatedAt    time.Time  // Set once when the account is created.
	CreatedBy    string     // Login of the creator; empty for the bootstrap account.
	ModifiedAt   time.Time  // Stamped on every successful mutation.
	ModifiedBy   string     // Login of the last modifier.
	RevokedAt    *time.Time // Set together with RevokedBy on soft delete.
	RevokedBy    *string    // Login of the revoker; nil while the account is active.
}

// IsActive reports whether the account has not been revoked.
// RevokedAt and RevokedBy always move together, so checking one suffices.
func (a *Account) IsActive() bool {
	return a.RevokedAt == nil
}

// Revoke marks the account as soft deleted by the given login.
func (a *Account) Revoke(at time.Time, by string) {
	a.RevokedAt = &at
	a.RevokedBy = &by
}

// Restore clears both revocation fields, returning the account to the
// active state.
func (a *Account) Restore() {
	a.RevokedAt = nil
	a.RevokedBy = nil
}

// Role derives the session role from the admin flag.
func (a *Account) Role() Role {
	if a.Admin {
		return RoleAdmin
	}

	return RoleUser
}

// Identity returns the caller identity this account authenticates as.
func (a *Account) Identity() Identity {
	return Identity{Login: a.Login, Role: a.Role()}
}
