package helper

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors carries every failing rule of a request, not just the
// first one.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, " ")
}

// ValidatePassword checks the registration password rules and returns the
// full list of violations.
func ValidatePassword(password string) []string {
	var errorsList []string

	if !hasUpperCase(password) {
		errorsList = append(errorsList, "Password must contain at least one uppercase letter.")
	}
	if len(password) < 8 {
		errorsList = append(errorsList, "Password must be at least 8 characters long.")
	}
	if !hasSpecialCharacter(password) {
		errorsList = append(errorsList, "Password must have at least 1 special character(ex: !$%*<).")
	}

	return errorsList
}

func hasUpperCase(password string) bool {
	for _, r := range password {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func hasSpecialCharacter(password string) bool {
	for _, r := range password {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// FieldErrors flattens validator tag failures into readable messages.
func FieldErrors(err error) []string {
	var errorsList []string
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return []string{err.Error()}
	}
	for _, fieldErr := range invalid {
		switch fieldErr.Tag() {
		case "required":
			errorsList = append(errorsList, fieldErr.Field()+" is required.")
		case "email":
			errorsList = append(errorsList, "Enter a valid email address.")
		default:
			errorsList = append(errorsList, fieldErr.Field()+" is invalid.")
		}
	}
	return errorsList
}
