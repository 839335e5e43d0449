// Package user implements registration and the single authenticated session
// that gates todo operations.
package user

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotFound is returned when a user id is not registered.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyRegistered is returned when registering an id that exists.
	ErrAlreadyRegistered = errors.New("user already registered")
	// ErrAlreadyLoggedIn is returned when logging in while a session is active.
	ErrAlreadyLoggedIn = errors.New("a user is already logged in")
	// ErrNotLoggedIn is returned when an operation needs an active session.
	ErrNotLoggedIn = errors.New("no user is logged in")
	// ErrInvalidCredentials is returned when the id or password do not match.
	ErrInvalidCredentials = errors.New("invalid user id or password")
)

// User is a registered account.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"-"`
}

func (u User) String() string {
	return fmt.Sprintf("User: %s %s %s", u.Name, u.ID, u.Email)
}

// CheckPassword reports whether password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}

// Session is the currently authenticated user.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
}

// Factory builds users, hashing passwords with the configured bcrypt cost.
type Factory struct {
	cost int
}

// NewFactory returns a factory using bcrypt.DefaultCost.
func NewFactory() *Factory {
	return &Factory{cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (f *Factory) WithCost(cost int) *Factory {
	f.cost = cost
	return f
}

// New creates a user with a hashed password.
func (f *Factory) New(name, id, password, email string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), f.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return &User{
		ID:           id,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}, nil
}
