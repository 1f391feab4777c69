// Package validator adapts the shared validation rules to Echo's
// request validation hook.
package validator

import (
	"roster/internal/validation"

	"github.com/go-playground/validator/v10"
)

// EchoValidator wraps the shared validator so Echo can call it on bound
// request payloads.
type EchoValidator struct {
	validate *validator.Validate
}

// New creates the validator used by the HTTP server.
func New() *EchoValidator {
	return &EchoValidator{validate: validation.New()}
}

// Validate implements echo.Validator.
func (v *EchoValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
