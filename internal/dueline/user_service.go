package dueline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/colonyops/dueline/internal/core/eventbus"
	"github.com/colonyops/dueline/internal/core/logging"
	"github.com/colonyops/dueline/internal/core/user"
	"github.com/colonyops/dueline/internal/core/validate"
)

// ErrForbidden is returned when the current user may not act on another user.
var ErrForbidden = errors.New("only the admin can manage other users")

// RegisterInput describes a new account.
type RegisterInput struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// ProfileInput lists the profile fields to change. Nil fields are kept.
type ProfileInput struct {
	ID       *string
	Name     *string
	Email    *string
	Password *string
}

// UserService wraps the user manager with validation, password hashing and
// event publishing.
type UserService struct {
	manager *user.Manager
	factory *user.Factory
	bus     *eventbus.EventBus
	log     zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(manager *user.Manager, factory *user.Factory, bus *eventbus.EventBus, log zerolog.Logger) *UserService {
	return &UserService{
		manager: manager,
		factory: factory,
		bus:     bus,
		log:     log.With().Str("component", "user-service").Logger(),
	}
}

// Register validates in and creates the account.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	in.ID = strings.TrimSpace(in.ID)
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		in.Name = in.ID
	}

	err := criterio.ValidateStruct(
		validate.UserIDField("id", in.ID),
		validate.PasswordField("password", in.Password),
	)
	if err != nil {
		return user.User{}, err
	}

	u, err := s.factory.New(in.Name, in.ID, in.Password, strings.TrimSpace(in.Email))
	if err != nil {
		return user.User{}, err
	}
	if err := user.NewRegisterCommand(u, s.manager).Execute(); err != nil {
		return user.User{}, err
	}

	s.log.Info().Ctx(ctx).Str("user", u.ID).Msg("user registered")
	s.bus.PublishUserRegistered(eventbus.UserRegisteredPayload{UserID: u.ID, Name: u.Name})

	return *u, nil
}

// Login starts a session and returns ctx annotated with the session fields.
func (s *UserService) Login(ctx context.Context, id, password string) (context.Context, user.Session, error) {
	if err := user.NewLoginCommand(id, password, s.manager).Execute(); err != nil {
		s.log.Warn().Ctx(ctx).Str("user", id).Err(err).Msg("login failed")
		return ctx, user.Session{}, err
	}

	session, _, _ := s.manager.Current()
	ctx = s.SessionContext(ctx)

	s.log.Info().Ctx(ctx).Msg("user logged in")
	s.bus.PublishUserLoggedIn(eventbus.UserLoggedInPayload{UserID: session.UserID, Token: session.Token})

	return ctx, session, nil
}

// Logout ends the current session.
func (s *UserService) Logout(ctx context.Context) (user.Session, error) {
	session, _, ok := s.manager.Current()
	if !ok {
		return user.Session{}, user.ErrNotLoggedIn
	}
	if err := user.NewLogoutCommand(s.manager).Execute(); err != nil {
		return user.Session{}, err
	}

	s.log.Info().Ctx(ctx).Msg("user logged out")
	s.bus.PublishUserLoggedOut(eventbus.UserLoggedOutPayload{UserID: session.UserID})

	return session, nil
}

// IsAuthenticated reports whether a session is active.
func (s *UserService) IsAuthenticated() bool {
	return s.manager.IsAuthenticated()
}

// Current returns the active session and user.
func (s *UserService) Current() (user.Session, user.User, bool) {
	session, u, ok := s.manager.Current()
	if !ok {
		return user.Session{}, user.User{}, false
	}
	return session, *u, true
}

// SessionContext returns ctx carrying the current session's log fields, or
// ctx unchanged when nobody is logged in.
func (s *UserService) SessionContext(ctx context.Context) context.Context {
	session, _, ok := s.manager.Current()
	if !ok {
		return ctx
	}
	ctx = logging.WithSessionID(ctx, session.Token)
	return logging.WithUserID(ctx, session.UserID)
}

// UpdateProfile changes the logged-in user's profile. A new password is
// re-hashed.
func (s *UserService) UpdateProfile(ctx context.Context, in ProfileInput) (user.User, error) {
	_, current, ok := s.manager.Current()
	if !ok {
		return user.User{}, user.ErrNotLoggedIn
	}

	replacement := *current
	var checks []error
	if in.ID != nil {
		replacement.ID = strings.TrimSpace(*in.ID)
		checks = append(checks, validate.UserIDField("id", replacement.ID))
	}
	if in.Name != nil {
		replacement.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		replacement.Email = strings.TrimSpace(*in.Email)
	}
	if in.Password != nil {
		checks = append(checks, validate.PasswordField("password", *in.Password))
	}
	if err := criterio.ValidateStruct(checks...); err != nil {
		return user.User{}, err
	}

	if in.Password != nil {
		hashed, err := s.factory.New(replacement.Name, replacement.ID, *in.Password, replacement.Email)
		if err != nil {
			return user.User{}, err
		}
		replacement.PasswordHash = hashed.PasswordHash
	}

	if err := user.NewUpdateCommand(current.ID, &replacement, s.manager).Execute(); err != nil {
		return user.User{}, err
	}

	s.log.Info().Ctx(ctx).Str("user", replacement.ID).Msg("profile updated")
	return replacement, nil
}

// Unregister removes id. Users may remove themselves; the admin may remove
// anyone.
func (s *UserService) Unregister(ctx context.Context, id string) error {
	_, current, ok := s.manager.Current()
	if !ok {
		return user.ErrNotLoggedIn
	}
	if id != current.ID && !s.manager.IsAdmin(current.ID) {
		return ErrForbidden
	}

	if err := user.NewDeleteCommand(id, s.manager).Execute(); err != nil {
		return fmt.Errorf("unregister %s: %w", id, err)
	}

	s.log.Info().Ctx(ctx).Str("user", id).Msg("user unregistered")
	if id == current.ID {
		s.bus.PublishUserLoggedOut(eventbus.UserLoggedOutPayload{UserID: id})
	}
	return nil
}

// Users lists the accounts visible to the logged-in user.
func (s *UserService) Users(_ context.Context) ([]user.User, error) {
	_, current, ok := s.manager.Current()
	if !ok {
		return nil, user.ErrNotLoggedIn
	}
	return s.manager.Info(current.ID)
}
