// Package validation builds the shared validator instance with the
// project's custom rules registered.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// loginPattern restricts logins to ASCII letters and digits.
	loginPattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

	// namePattern restricts display names to Latin and Cyrillic letters.
	namePattern = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё]+$`)
)

// New creates a validator with the 'loginchars' and 'personname' rules
// used by the account DTOs.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for blank tags, which cannot happen here.
	_ = validate.RegisterValidation("loginchars", func(fl validator.FieldLevel) bool {
		return loginPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})

	return validate
}
