package auth

import (
	"strings"

	"github.com/mkhasa/admin-gateway/internal/errors"
)

// ValidateCredentials performs the client-side required-field checks on a
// login attempt before any backend call is made. Anything beyond
// "present and email-shaped" is the backend's job.
func ValidateCredentials(email, password string) error {
	fieldErrs := errors.FieldErrors{}

	email = strings.TrimSpace(email)
	if email == "" {
		fieldErrs["email"] = "email is required"
	} else if !strings.Contains(email, "@") {
		fieldErrs["email"] = "email is not valid"
	}

	if password == "" {
		fieldErrs["password"] = "password is required"
	}

	if len(fieldErrs) > 0 {
		return fieldErrs
	}
	return nil
}
