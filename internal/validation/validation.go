// Package validation implements the field-level input constraints shared by
// registration and profile updates.
package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// FieldError annotates a validation failure with the offending field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is a set of field-level validation failures.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(parts, "; ")
}

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10,20}$`)
)

// NormalizeEmail lowercases and trims an address so lookups and the unique
// index are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckName requires 2-100 characters after trimming. Lengths are counted
// in runes so multibyte names are bounded the same as ASCII ones.
func CheckName(errs *Errors, field, value string) {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < 2 || n > 100 {
		errs.Add(field, "must be between 2 and 100 characters")
	}
}

func CheckEmail(errs *Errors, email string) {
	if !emailPattern.MatchString(email) {
		errs.Add("email", "must be a valid email address")
	}
}

// CheckPassword requires at least 6 characters with one lowercase letter,
// one uppercase letter and one digit.
func CheckPassword(errs *Errors, password string) {
	if len(password) < 6 {
		errs.Add("password", "must be at least 6 characters")
		return
	}
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		errs.Add("password", "must contain at least one lowercase letter, one uppercase letter and one digit")
	}
}

func CheckPhone(errs *Errors, phone string) {
	if !phonePattern.MatchString(phone) {
		errs.Add("phone", "must contain between 10 and 20 digits")
	}
}
