package user

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUser(t *testing.T, id, password string) *User {
	t.Helper()
	u, err := NewFactory().WithCost(bcrypt.MinCost).New("Name "+id, id, password, id+"@example.com")
	require.NoError(t, err)
	return u
}

func TestFactory_HashesPassword(t *testing.T) {
	u := newUser(t, "kim", "secret")

	assert.NotEqual(t, []byte("secret"), u.PasswordHash)
	assert.True(t, u.CheckPassword("secret"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.NotContains(t, u.String(), "secret")
}

func TestManager_Register(t *testing.T) {
	m := NewManager()
	require.NoError(t, NewRegisterCommand(newUser(t, "kim", "pw"), m).Execute())

	err := NewRegisterCommand(newUser(t, "kim", "other"), m).Execute()
	require.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Equal(t, 1, m.Len())
}

func TestManager_LoginLogout(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Register(newUser(t, "kim", "pw")))
	require.NoError(t, m.Register(newUser(t, "lee", "pw")))
	assert.False(t, m.IsAuthenticated())

	t.Run("wrong password", func(t *testing.T) {
		err := NewLoginCommand("kim", "nope", m).Execute()
		require.ErrorIs(t, err, ErrInvalidCredentials)
		assert.False(t, m.IsAuthenticated())
	})

	t.Run("unknown user", func(t *testing.T) {
		err := NewLoginCommand("ghost", "pw", m).Execute()
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, NewLoginCommand("kim", "pw", m).Execute())
		assert.True(t, m.IsAuthenticated())

		sess, u, ok := m.Current()
		require.True(t, ok)
		assert.Equal(t, "kim", u.ID)
		assert.Equal(t, "kim", sess.UserID)
		_, err := uuid.Parse(sess.Token)
		assert.NoError(t, err)
	})

	t.Run("second login rejected", func(t *testing.T) {
		err := NewLoginCommand("lee", "pw", m).Execute()
		require.ErrorIs(t, err, ErrAlreadyLoggedIn)
	})

	t.Run("logout", func(t *testing.T) {
		require.NoError(t, NewLogoutCommand(m).Execute())
		assert.False(t, m.IsAuthenticated())

		err := NewLogoutCommand(m).Execute()
		require.ErrorIs(t, err, ErrNotLoggedIn)
	})
}

func TestManager_Update(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Register(newUser(t, "kim", "pw")))
	require.NoError(t, m.Register(newUser(t, "lee", "pw")))
	_, err := m.Login("kim", "pw")
	require.NoError(t, err)

	t.Run("missing", func(t *testing.T) {
		err := NewUpdateCommand("ghost", newUser(t, "ghost", "pw"), m).Execute()
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("id collision", func(t *testing.T) {
		err := NewUpdateCommand("kim", newUser(t, "lee", "pw"), m).Execute()
		require.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("rename follows session", func(t *testing.T) {
		require.NoError(t, NewUpdateCommand("kim", newUser(t, "kim2", "pw2"), m).Execute())

		_, ok := m.Get("kim")
		assert.False(t, ok)
		_, u, ok := m.Current()
		require.True(t, ok)
		assert.Equal(t, "kim2", u.ID)
	})
}

func TestManager_Delete(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Register(newUser(t, "kim", "pw")))
	_, err := m.Login("kim", "pw")
	require.NoError(t, err)

	require.NoError(t, NewDeleteCommand("kim", m).Execute())
	assert.False(t, m.IsAuthenticated(), "deleting the current user ends the session")
	assert.Equal(t, 0, m.Len())

	require.ErrorIs(t, NewDeleteCommand("kim", m).Execute(), ErrNotFound)
}

func TestManager_Info(t *testing.T) {
	m := NewManager()
	for _, id := range []string{"lee", "admin", "kim"} {
		require.NoError(t, m.Register(newUser(t, id, "pw")))
	}
	m.SetAdmin("admin")

	all, err := m.Info("admin")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "admin", all[0].ID)
	assert.Equal(t, "kim", all[1].ID)
	assert.Equal(t, "lee", all[2].ID)

	self, err := m.Info("kim")
	require.NoError(t, err)
	require.Len(t, self, 1)
	assert.Equal(t, "kim", self[0].ID)

	_, err = m.Info("ghost")
	require.ErrorIs(t, err, ErrNotFound)

	assert.False(t, m.IsAdmin("kim"))
	assert.False(t, NewManager().IsAdmin(""))
}
