// internal/auth/validate.go
//
// Sign-up and login form checks.
// Responsibilities:
//   - Sentinel errors for every account failure; messages are shown to players as-is.
//   - Required fields first, in form order, then the format rules.
//
// Notes:
//   - Passwords are capped at 72 bytes because bcrypt ignores (and x/crypto rejects) anything longer.
package auth

import (
	"errors"
	"strings"
)

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

// Auth errors
var (
	ErrUsernameRequired   = errors.New("username is a required field")
	ErrPasswordRequired   = errors.New("password is a required field")
	ErrVerifyRequired     = errors.New("verify password is a required field")
	ErrPasswordMismatch   = errors.New("passwords don't match")
	ErrUsernameLength     = errors.New("username must be 3–24 chars")
	ErrUsernameChars      = errors.New("username: letters, numbers, underscore only")
	ErrPasswordLength     = errors.New("password must be 8–72 chars")
	ErrUsernameTaken      = errors.New("username taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// normalizeUsername trims whitespace; adjust here if you want stricter rules.
func normalizeUsername(u string) string {
	return strings.TrimSpace(u)
}

// ValidateSignup checks a sign-up form. Required fields are checked first,
// in form order, then the passwords must match, then the format rules apply.
func ValidateSignup(username, password, verify string) error {
	switch {
	case strings.TrimSpace(username) == "":
		return ErrUsernameRequired
	case strings.TrimSpace(password) == "":
		return ErrPasswordRequired
	case strings.TrimSpace(verify) == "":
		return ErrVerifyRequired
	case password != verify:
		return ErrPasswordMismatch
	}

	u := normalizeUsername(username)
	if len(u) < 3 || len(u) > 24 {
		return ErrUsernameLength
	}
	for _, r := range u {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return ErrUsernameChars
		}
	}
	if len(password) < 8 || len(password) > maxPasswordBytes {
		return ErrPasswordLength
	}
	return nil
}

// ValidateLogin checks that both login fields were filled in.
func ValidateLogin(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return ErrUsernameRequired
	}
	if strings.TrimSpace(password) == "" {
		return ErrPasswordRequired
	}
	return nil
}
