package auth

import (
	"encoding/base64"
	"testing"

	domainerrors "roster/internal/domain/errors"
	"roster/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPBKDF2Hasher_HashAndVerify(t *testing.T) {
	hasher := NewPBKDF2Hasher()

	encoded, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, encoded)

	ok, err := hasher.Verify("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("wrong password", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPBKDF2Hasher_FreshSaltPerCall(t *testing.T) {
	hasher := NewPBKDF2Hasher()

	first, err := hasher.Hash("samepassword1")
	require.NoError(t, err)
	second, err := hasher.Hash("samepassword1")
	require.NoError(t, err)

	// Random salt: same plaintext, different records, both verifiable.
	assert.NotEqual(t, first, second)

	ok, err := hasher.Verify("samepassword1", first)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hasher.Verify("samepassword1", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPBKDF2Hasher_RecordShape(t *testing.T) {
	hasher := NewPBKDF2Hasher()

	encoded, err := hasher.Hash("pw1")
	require.NoError(t, err)

	record, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Len(t, record, saltLength+keyLength)
}

func TestPBKDF2Hasher_EmptyPassword(t *testing.T) {
	hasher := NewPBKDF2Hasher()

	_, err := hasher.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestPBKDF2Hasher_MalformedRecord(t *testing.T) {
	hasher := NewPBKDF2Hasher()

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "not base64", encoded: "%%%not-base64%%%"},
		{name: "too short", encoded: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "too long", encoded: base64.StdEncoding.EncodeToString(make([]byte, saltLength+keyLength+1))},
		{name: "empty", encoded: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := hasher.Verify("whatever", tt.encoded)
			assert.False(t, ok)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrMalformedCredentialRecord))
		})
	}
}

func TestPBKDF2Hasher_ConcurrentUse(t *testing.T) {
	hasher := NewPBKDF2Hasher()

	done := make(chan struct{})
	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()

			encoded, err := hasher.Hash("concurrent-pw")
			assert.NoError(t, err)

			ok, err := hasher.Verify("concurrent-pw", encoded)
			assert.NoError(t, err)
			assert.True(t, ok)
		}()
	}
	for range 8 {
		<-done
	}
}
