package user

// Command is a single-shot user operation bound to a manager. The set of
// commands is closed.
type Command interface {
	Execute() error
	command()
}

var (
	_ Command = (*RegisterCommand)(nil)
	_ Command = (*LoginCommand)(nil)
	_ Command = (*LogoutCommand)(nil)
	_ Command = (*UpdateCommand)(nil)
	_ Command = (*DeleteCommand)(nil)
)

type RegisterCommand struct {
	user    *User
	manager *Manager
}

func NewRegisterCommand(u *User, m *Manager) *RegisterCommand {
	return &RegisterCommand{user: u, manager: m}
}

func (c *RegisterCommand) command()       {}
func (c *RegisterCommand) Execute() error { return c.manager.Register(c.user) }

// LoginCommand starts a session. The session is available from
// Manager.Current after a successful Execute.
type LoginCommand struct {
	id       string
	password string
	manager  *Manager
}

func NewLoginCommand(id, password string, m *Manager) *LoginCommand {
	return &LoginCommand{id: id, password: password, manager: m}
}

func (c *LoginCommand) command() {}

func (c *LoginCommand) Execute() error {
	_, err := c.manager.Login(c.id, c.password)
	return err
}

type LogoutCommand struct {
	manager *Manager
}

func NewLogoutCommand(m *Manager) *LogoutCommand {
	return &LogoutCommand{manager: m}
}

func (c *LogoutCommand) command() {}

func (c *LogoutCommand) Execute() error {
	_, err := c.manager.Logout()
	return err
}

type UpdateCommand struct {
	id          string
	replacement *User
	manager     *Manager
}

func NewUpdateCommand(id string, replacement *User, m *Manager) *UpdateCommand {
	return &UpdateCommand{id: id, replacement: replacement, manager: m}
}

func (c *UpdateCommand) command()       {}
func (c *UpdateCommand) Execute() error { return c.manager.Update(c.id, c.replacement) }

type DeleteCommand struct {
	id      string
	manager *Manager
}

func NewDeleteCommand(id string, m *Manager) *DeleteCommand {
	return &DeleteCommand{id: id, manager: m}
}

func (c *DeleteCommand) command()       {}
func (c *DeleteCommand) Execute() error { return c.manager.Delete(c.id) }
