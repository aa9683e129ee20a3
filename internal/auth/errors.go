package auth

import (
	"errors"
	"fmt"
)

// Code categorizes authentication failures so callers can branch
// without string matching.
type Code string

const (
	// CodeInvalidCredentials indicates an unknown username or a wrong
	// password. The two cases are deliberately not distinguished.
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"

	// CodeBanned indicates the account exists, the password matched, and
	// the account is banned.
	CodeBanned Code = "BANNED"

	// CodeEmailTaken indicates a registration with an already-registered
	// email address.
	CodeEmailTaken Code = "EMAIL_TAKEN"

	// CodeUsernameTaken indicates a registration with an already-taken
	// username.
	CodeUsernameTaken Code = "USERNAME_TAKEN"
)

// Error is a validation failure surfaced to the user. It never wraps a
// storage failure; those propagate as plain errors.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the failure code, or "" for non-auth errors.
func CodeOf(err error) Code {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Code
	}
	return ""
}
