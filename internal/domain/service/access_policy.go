package service

import (
	"roster/internal/domain/entity"
	domainerrors "roster/internal/domain/errors"
)

// AccessPolicy is the single authorization decision point for account
// mutations and sensitive reads. Every gated use case consults it before
// touching the store, instead of scattering role checks per endpoint.
// It is a pure function holder: no state, no side effects.
type AccessPolicy struct{}

// NewAccessPolicy is the constructor for AccessPolicy.
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanMutate decides whether the caller may mutate the target account.
// Rules are evaluated in order; the first matching rule decides:
//  1. An admin caller is always permitted.
//  2. A non-admin caller may mutate their own account only while it is active.
//  3. A non-admin caller may never mutate another account.
func (p *AccessPolicy) CanMutate(caller entity.Identity, target *entity.Account) error {
	if caller.IsAdmin() {
		return nil
	}

	if caller.Login == target.Login {
		if !target.IsActive() {
			return domainerrors.ErrAccountNotActive
		}

		return nil
	}

	return domainerrors.ErrLoginMismatch
}

// CanReadOwnCredentials decides whether the caller may run a credential
// query for the requested login. Admins may query anyone; everyone else
// only themselves.
func (p *AccessPolicy) CanReadOwnCredentials(caller entity.Identity, requestedLogin string) error {
	if caller.IsAdmin() {
		return nil
	}

	if caller.Login != requestedLogin {
		return domainerrors.ErrForbidden
	}

	return nil
}
