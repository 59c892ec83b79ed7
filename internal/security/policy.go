package security

import (
	"errors"
	"strings"
	"unicode"
)

// symbols accepted by the password policy
const passwordSymbols = "@$!%*?&"

var ErrWeakPassword = errors.New(
	"password must be at least 8 characters long, contain an uppercase letter, a number, and a special character",
)

// ValidatePassword enforces the registration password policy: minimum 8
// characters, at least one uppercase letter, one digit, one symbol from
// the allowed set, and nothing outside letters, digits and that set.
func ValidatePassword(plain string) error {
	if len(plain) < 8 {
		return ErrWeakPassword
	}

	var hasUpper, hasDigit, hasSymbol bool

	for _, r := range plain {
		switch {
		case unicode.IsUpper(r) && r <= unicode.MaxASCII:
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		case unicode.IsLower(r) && r <= unicode.MaxASCII:
			// allowed, contributes nothing on its own
		default:
			return ErrWeakPassword
		}
	}

	if !hasUpper || !hasDigit || !hasSymbol {
		return ErrWeakPassword
	}

	return nil
}
