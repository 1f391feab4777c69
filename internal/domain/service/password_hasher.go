// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying key derivation scheme, keeping the domain pure.
// Implementations must be safe for concurrent use and must salt every hash
// independently, so hashing the same password twice yields different records.
type PasswordHasher interface {
	// Hash generates a salted, opaque credential record from a plaintext password.
	Hash(password string) (string, error)

	// Verify compares a plaintext password with a stored credential record
	// in constant time. It returns an error only when the record itself
	// cannot be decoded, never for a plain mismatch.
	Verify(password, encoded string) (bool, error)
}
