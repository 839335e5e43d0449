// Package validate provides shared validation functions.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/dueline/internal/core/todo"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 4

// NotBlank rejects strings that are empty after trimming whitespace.
func NotBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be empty")
	}
	return nil
}

// UserID accepts non-empty ids without whitespace.
func UserID(id string) error {
	if id == "" {
		return errors.New("cannot be empty")
	}
	if strings.ContainsAny(id, " \t\r\n") {
		return errors.New("cannot contain whitespace")
	}
	return nil
}

// Password enforces MinPasswordLength.
func Password(pw string) error {
	if len(pw) < MinPasswordLength {
		return fmt.Errorf("must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// Date accepts "" or a YYYY-MM-DD calendar date.
func Date(s string) error {
	if _, err := todo.ParseDate(s); err != nil {
		return fmt.Errorf("must be a YYYY-MM-DD date")
	}
	return nil
}

// Between returns a validator for lo <= n <= hi.
func Between(lo, hi int) func(int) error {
	return func(n int) error {
		if n < lo || n > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

// UserIDField returns a criterio validator for user ids.
func UserIDField(field, id string) error {
	return criterio.Run(field, id, UserID)
}

// PasswordField returns a criterio validator for passwords.
func PasswordField(field, pw string) error {
	return criterio.Run(field, pw, Password)
}
