package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/colonyops/dueline/pkg/kv"
)

// Manager holds registered users and the current session.
type Manager struct {
	users   *kv.Store[string, *User]
	admin   string
	current *Session
	now     func() time.Time
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		users: kv.New[string, *User](),
		now:   time.Now,
	}
}

// SetAdmin grants admin listing rights to the user id.
func (m *Manager) SetAdmin(id string) {
	m.admin = id
}

// IsAdmin reports whether id is the admin.
func (m *Manager) IsAdmin(id string) bool {
	return m.admin != "" && m.admin == id
}

// Register adds u. Returns ErrAlreadyRegistered when the id is taken.
func (m *Manager) Register(u *User) error {
	if !m.users.SetIfAbsent(u.ID, u) {
		return ErrAlreadyRegistered
	}
	return nil
}

// Get returns the user with the given id.
func (m *Manager) Get(id string) (*User, bool) {
	return m.users.Get(id)
}

// Login starts a session for id when password matches.
func (m *Manager) Login(id, password string) (Session, error) {
	if m.current != nil {
		return Session{}, ErrAlreadyLoggedIn
	}

	u, ok := m.users.Get(id)
	if !ok || !u.CheckPassword(password) {
		return Session{}, ErrInvalidCredentials
	}

	m.current = &Session{
		Token:     uuid.NewString(),
		UserID:    u.ID,
		StartedAt: m.now(),
	}
	return *m.current, nil
}

// Logout ends the current session.
func (m *Manager) Logout() (Session, error) {
	if m.current == nil {
		return Session{}, ErrNotLoggedIn
	}
	s := *m.current
	m.current = nil
	return s, nil
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.current != nil
}

// Current returns the active session and its user.
func (m *Manager) Current() (Session, *User, bool) {
	if m.current == nil {
		return Session{}, nil, false
	}
	u, ok := m.users.Get(m.current.UserID)
	if !ok {
		return Session{}, nil, false
	}
	return *m.current, u, true
}

// Update replaces the user registered under id with replacement. The
// replacement may carry a new id as long as it is free.
func (m *Manager) Update(id string, replacement *User) error {
	if _, ok := m.users.Get(id); !ok {
		return ErrNotFound
	}
	if !m.users.Replace(id, replacement.ID, replacement) {
		return ErrAlreadyRegistered
	}

	if m.admin == id {
		m.admin = replacement.ID
	}
	if m.current != nil && m.current.UserID == id {
		m.current.UserID = replacement.ID
	}
	return nil
}

// Delete removes the user. Deleting the logged-in user ends the session.
func (m *Manager) Delete(id string) error {
	if !m.users.Delete(id) {
		return ErrNotFound
	}
	if m.current != nil && m.current.UserID == id {
		m.current = nil
	}
	return nil
}

// Info returns the users requester may see: every user for the admin,
// otherwise only the requester. Results are sorted by id.
func (m *Manager) Info(requester string) ([]User, error) {
	if m.IsAdmin(requester) {
		users := kv.SortedValues(m.users)
		out := make([]User, 0, len(users))
		for _, u := range users {
			out = append(out, *u)
		}
		return out, nil
	}

	u, ok := m.users.Get(requester)
	if !ok {
		return nil, ErrNotFound
	}
	return []User{*u}, nil
}

// Len returns the number of registered users.
func (m *Manager) Len() int {
	return m.users.Len()
}

