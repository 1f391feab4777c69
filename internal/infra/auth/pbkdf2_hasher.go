// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"

	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/service"
	"roster/internal/errors"
)

const (
	saltLength = 16    // salt length in bytes
	keyLength  = 32    // derived key length in bytes
	iterations = 20000 // PBKDF2 iteration count
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("password cannot be empty")

// pbkdf2Hasher is a concrete implementation of the PasswordHasher interface
// using PBKDF2-HMAC-SHA256. The stored record is base64(salt || key): the
// salt travels inside the record and is never stored separately.
type pbkdf2Hasher struct{}

// NewPBKDF2Hasher is the constructor for pbkdf2Hasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewPBKDF2Hasher() service.PasswordHasher {
	return &pbkdf2Hasher{}
}

// Hash derives a salted key from the plaintext password and encodes it as
// a single opaque string. Each call draws a fresh random salt, so hashing
// the same password twice yields different records.
func (h *pbkdf2Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)

	record := make([]byte, 0, saltLength+keyLength)
	record = append(record, salt...)
	record = append(record, key...)

	return base64.StdEncoding.EncodeToString(record), nil
}

// Verify re-derives the key with the salt extracted from the stored record
// and compares it to the stored key in constant time. A record that cannot
// be decoded to the expected lengths fails with ErrMalformedCredentialRecord.
func (h *pbkdf2Hasher) Verify(password, encoded string) (bool, error) {
	record, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false, domainerrors.ErrMalformedCredentialRecord.WrapMessage("credential record is not valid base64")
	}
	if len(record) != saltLength+keyLength {
		return false, domainerrors.ErrMalformedCredentialRecord.WrapMessage("credential record has unexpected length")
	}

	salt := record[:saltLength]
	expected := record[saltLength:]

	actual := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)

	return subtle.ConstantTimeCompare(expected, actual) == 1, nil
}
