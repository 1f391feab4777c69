// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"roster/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateAccountInput defines the data required to create a new account.
// Admin is taken verbatim; reaching the create operation already requires
// an admin caller.
type CreateAccountInput struct {
	Login    string     `json:"login" validate:"required,loginchars"`
	Password string     `json:"password" validate:"required"`
	Name     string     `json:"name" validate:"required,personname"`
	Gender   int16      `json:"gender" validate:"min=0,max=2"`
	Birthday *time.Time `json:"birthday"`
	Admin    bool       `json:"admin"`
}

// UpdateAccountInput is a partial patch over the mutable profile fields.
// A nil field means "leave unchanged"; there is no way to clear a field
// through this patch (nil-is-unset semantics).
type UpdateAccountInput struct {
	Name     *string    `json:"name" validate:"omitempty,personname"`
	Gender   *int16     `json:"gender" validate:"omitempty,min=0,max=2"`
	Birthday *time.Time `json:"birthday"`
}

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	Password string `json:"password" validate:"required"`
}

// ChangeLoginInput defines the data required to change a login.
type ChangeLoginInput struct {
	Login string `json:"login" validate:"required,loginchars"`
}

// --- Output DTOs ---

// AccountView is the outward representation of an account.
// It never carries the credential hash.
type AccountView struct {
	ID        uuid.UUID  `json:"id"`
	Login     string     `json:"login"`
	Name      string     `json:"name"`
	Gender    int16      `json:"gender"`
	Birthday  *time.Time `json:"birthday,omitempty"`
	Admin     bool       `json:"admin"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NewAccountView maps a domain account to its outward representation.
func NewAccountView(account *entity.Account) *AccountView {
	return &AccountView{
		ID:        account.ID,
		Login:     account.Login,
		Name:      account.Name,
		Gender:    int16(account.Gender),
		Birthday:  account.Birthday,
		Admin:     account.Admin,
		Active:    account.IsActive(),
		CreatedAt: account.CreatedAt,
	}
}

// AccountUsecase defines the interface for account lifecycle operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
// Every mutation takes the authenticated caller and consults the access
// policy before touching the store.
type AccountUsecase interface {
	Create(ctx context.Context, caller entity.Identity, input *CreateAccountInput) (*AccountView, error)
	Update(ctx context.Context, caller entity.Identity, id uuid.UUID, input *UpdateAccountInput) (*AccountView, error)
	ChangePassword(ctx context.Context, caller entity.Identity, id uuid.UUID, input *ChangePasswordInput) error
	ChangeLogin(ctx context.Context, caller entity.Identity, id uuid.UUID, input *ChangeLoginInput) error
	SoftDelete(ctx context.Context, caller entity.Identity, login string) error
	HardDelete(ctx context.Context, login string) error
	Restore(ctx context.Context, login string) error
	GetByLogin(ctx context.Context, login string) (*AccountView, error)
	ListActive(ctx context.Context) ([]*AccountView, error)
	ListOlderThan(ctx context.Context, years int) ([]*AccountView, error)
}
