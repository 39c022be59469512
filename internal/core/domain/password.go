package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const passwordMinLength = 8

// bcrypt ignores input past 72 bytes, so longer passwords are rejected
// up front rather than silently truncated at hash time.
const passwordMaxBytes = 72

const passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`

// PolicyViolation reports every composition rule a candidate password failed,
// in a fixed order so the message is deterministic for a given input.
type PolicyViolation struct {
	Failures []string
}

func (v *PolicyViolation) Error() string {
	return "password " + strings.Join(v.Failures, "; ")
}

// ValidatePassword checks a candidate password against the composition rules:
// at least 8 characters (counted as runes, not bytes), at most 72 bytes, one
// uppercase letter, one lowercase letter, one digit, and one special
// character. Returns nil when all rules hold.
func ValidatePassword(password string) error {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(passwordSpecialChars, r) {
			hasSpecial = true
		}
	}

	var failures []string
	if utf8.RuneCountInString(password) < passwordMinLength {
		failures = append(failures, "must be at least 8 characters")
	}
	if len(password) > passwordMaxBytes {
		failures = append(failures, "must be at most 72 bytes")
	}
	if !hasUpper {
		failures = append(failures, "must contain an uppercase letter")
	}
	if !hasLower {
		failures = append(failures, "must contain a lowercase letter")
	}
	if !hasDigit {
		failures = append(failures, "must contain a digit")
	}
	if !hasSpecial {
		failures = append(failures, "must contain a special character")
	}

	if len(failures) > 0 {
		return &PolicyViolation{Failures: failures}
	}
	return nil
}
