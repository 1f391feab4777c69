package service

import (
	"roster/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the custom claims carried by a session token.
// Name is the account login; Role is "Admin" or "User".
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity converts the claims back into a domain identity.
func (c *Claims) Identity() entity.Identity {
	return entity.Identity{
		Login: c.Name,
		Role:  entity.Role(c.Role),
	}
}

// TokenService defines the interface for issuing and validating session tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed bearer token carrying the identity's login
	// and role, with a fixed short expiry.
	Issue(identity entity.Identity) (string, error)

	// Validate checks the signature and expiry of a token string and
	// returns the embedded claims.
	Validate(tokenString string) (*Claims, error)
}
