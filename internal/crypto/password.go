package crypto

import (
	"errors"
	"strings"
)

const (
	// PasswordSymbols is the set of accepted special characters.
	PasswordSymbols = "!@#$%^&*()_+="

	MinPasswordLength = 8
)

var ErrWeakPassword = errors.New("password is too weak")

// CheckPasswordStrength enforces the registration password policy: at least
// MinPasswordLength characters drawn only from ASCII letters, digits and
// PasswordSymbols, with at least one of each class.
func CheckPasswordStrength(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}

	var lower, upper, digit, symbol bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, c):
			symbol = true
		default:
			return ErrWeakPassword
		}
	}

	if !lower || !upper || !digit || !symbol {
		return ErrWeakPassword
	}
	return nil
}
