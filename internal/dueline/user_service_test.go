package dueline

import (
	"context"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/colonyops/dueline/internal/core/eventbus"
	"github.com/colonyops/dueline/internal/core/eventbus/testbus"
	"github.com/colonyops/dueline/internal/core/logging"
	"github.com/colonyops/dueline/internal/core/user"
)

func newUserFixture(t *testing.T, admin string) (*UserService, *testbus.Bus) {
	t.Helper()
	m := user.NewManager()
	m.SetAdmin(admin)
	bus := testbus.New(t)
	svc := NewUserService(m, user.NewFactory().WithCost(bcrypt.MinCost), bus.EventBus, zerolog.Nop())
	return svc, bus
}

func register(t *testing.T, svc *UserService, id string) {
	t.Helper()
	_, err := svc.Register(context.Background(), RegisterInput{ID: id, Password: id + "-pw"})
	require.NoError(t, err)
}

func TestUserService_Register(t *testing.T) {
	svc, bus := newUserFixture(t, "")

	u, err := svc.Register(context.Background(), RegisterInput{ID: "alice", Email: "a@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Name, "name defaults to id")
	assert.True(t, u.CheckPassword("secret"))

	bus.AssertPublished(t, eventbus.EventUserRegistered)

	_, err = svc.Register(context.Background(), RegisterInput{ID: "alice", Password: "secret"})
	require.ErrorIs(t, err, user.ErrAlreadyRegistered)
}

func TestUserService_Register_Validation(t *testing.T) {
	svc, _ := newUserFixture(t, "")

	_, err := svc.Register(context.Background(), RegisterInput{ID: "bad id", Password: "pw"})

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Len(t, fieldErrs, 2)
}

func TestUserService_LoginLogout(t *testing.T) {
	svc, bus := newUserFixture(t, "")
	register(t, svc, "alice")

	assert.False(t, svc.IsAuthenticated())

	_, _, err := svc.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, user.ErrInvalidCredentials)

	ctx, session, err := svc.Login(context.Background(), "alice", "alice-pw")
	require.NoError(t, err)
	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, "alice", logging.GetUserID(ctx))
	assert.Equal(t, session.Token, logging.GetSessionID(ctx))
	bus.AssertPublished(t, eventbus.EventUserLoggedIn)

	_, _, err = svc.Login(context.Background(), "alice", "alice-pw")
	require.ErrorIs(t, err, user.ErrAlreadyLoggedIn)

	ended, err := svc.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.Token, ended.Token)
	bus.AssertPublished(t, eventbus.EventUserLoggedOut)

	_, err = svc.Logout(context.Background())
	require.ErrorIs(t, err, user.ErrNotLoggedIn)

	assert.Empty(t, logging.GetUserID(svc.SessionContext(context.Background())))
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, _ := newUserFixture(t, "")
	register(t, svc, "alice")

	_, err := svc.UpdateProfile(context.Background(), ProfileInput{})
	require.ErrorIs(t, err, user.ErrNotLoggedIn)

	_, _, err = svc.Login(context.Background(), "alice", "alice-pw")
	require.NoError(t, err)

	name, pw := "Alice A.", "new-secret"
	u, err := svc.UpdateProfile(context.Background(), ProfileInput{Name: &name, Password: &pw})
	require.NoError(t, err)
	assert.Equal(t, "Alice A.", u.Name)
	assert.True(t, u.CheckPassword("new-secret"))
	assert.False(t, u.CheckPassword("alice-pw"))

	_, current, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "Alice A.", current.Name)

	short := "x"
	_, err = svc.UpdateProfile(context.Background(), ProfileInput{Password: &short})
	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
}

func TestUserService_UpdateProfile_Rename(t *testing.T) {
	svc, _ := newUserFixture(t, "")
	register(t, svc, "alice")
	register(t, svc, "bob")
	_, _, err := svc.Login(context.Background(), "alice", "alice-pw")
	require.NoError(t, err)

	taken := "bob"
	_, err = svc.UpdateProfile(context.Background(), ProfileInput{ID: &taken})
	require.ErrorIs(t, err, user.ErrAlreadyRegistered)

	newID := "alicia"
	_, err = svc.UpdateProfile(context.Background(), ProfileInput{ID: &newID})
	require.NoError(t, err)

	session, _, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "alicia", session.UserID)
}

func TestUserService_Unregister(t *testing.T) {
	svc, bus := newUserFixture(t, "root")
	register(t, svc, "root")
	register(t, svc, "alice")
	register(t, svc, "bob")

	_, _, err := svc.Login(context.Background(), "alice", "alice-pw")
	require.NoError(t, err)

	require.ErrorIs(t, svc.Unregister(context.Background(), "bob"), ErrForbidden)
	require.NoError(t, svc.Unregister(context.Background(), "alice"))
	assert.False(t, svc.IsAuthenticated(), "removing yourself ends the session")
	bus.AssertPublished(t, eventbus.EventUserLoggedOut)

	_, _, err = svc.Login(context.Background(), "root", "root-pw")
	require.NoError(t, err)
	require.NoError(t, svc.Unregister(context.Background(), "bob"))
	require.ErrorIs(t, svc.Unregister(context.Background(), "bob"), user.ErrNotFound)
}

func TestUserService_Users(t *testing.T) {
	svc, _ := newUserFixture(t, "root")
	register(t, svc, "root")
	register(t, svc, "bob")
	register(t, svc, "alice")

	_, err := svc.Users(context.Background())
	require.ErrorIs(t, err, user.ErrNotLoggedIn)

	_, _, err = svc.Login(context.Background(), "bob", "bob-pw")
	require.NoError(t, err)
	users, err := svc.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].ID)

	_, err = svc.Logout(context.Background())
	require.NoError(t, err)
	_, _, err = svc.Login(context.Background(), "root", "root-pw")
	require.NoError(t, err)
	users, err = svc.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].ID)
}
