// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"roster/internal/domain/entity"
)

// CredentialsInput defines the data required to authenticate.
type CredentialsInput struct {
	Login    string `json:"login" validate:"required,loginchars"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput returns the issued bearer token after a successful login.
type LoginOutput struct {
	Token   string       `json:"token"`
	Account *AccountView `json:"account"`
}

// SessionUsecase defines the interface for credential validation and
// session token derivation.
type SessionUsecase interface {
	// Authenticate validates credentials and returns the caller identity.
	// Unknown login and wrong password are indistinguishable; a verified
	// but revoked account is rejected separately.
	Authenticate(ctx context.Context, input *CredentialsInput) (*entity.Identity, error)

	// Login authenticates and issues a signed session token.
	Login(ctx context.Context, input *CredentialsInput) (*LoginOutput, error)

	// ValidateCredentials runs the "own credentials" query: non-admin
	// callers may only query their own login.
	ValidateCredentials(ctx context.Context, caller entity.Identity, input *CredentialsInput) (*AccountView, error)
}
