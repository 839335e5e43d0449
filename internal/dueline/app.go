// Package dueline wires the todo and user engines to the event bus and
// exposes them as services for the shell.
package dueline

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/dueline/internal/core/config"
	"github.com/colonyops/dueline/internal/core/eventbus"
	"github.com/colonyops/dueline/internal/core/notify"
	"github.com/colonyops/dueline/internal/core/todo"
	"github.com/colonyops/dueline/internal/core/user"
)

// App is the central entry point for all dueline operations.
// Commands and the shell consume App instead of raw managers.
type App struct {
	Todos         *TodoService
	Users         *UserService
	Bus           *eventbus.EventBus
	Config        *config.Config
	Notifications *notify.Buffer
}

// NewApp constructs an App from cfg. The returned bus is not started; the
// caller owns its Start goroutine.
func NewApp(cfg *config.Config, bus *eventbus.EventBus, log zerolog.Logger) *App {
	clock := cfg.Clock()

	users := user.NewManager()
	users.SetAdmin(cfg.Admin)

	app := &App{
		Todos: NewTodoService(
			todo.NewManager(clock),
			todo.NewFactory(clock, cfg.IDLength),
			bus,
			cfg.SweepOnListEnabled(),
			log,
		),
		Users:         NewUserService(users, user.NewFactory(), bus, log),
		Bus:           bus,
		Config:        cfg,
		Notifications: notify.NewBuffer(),
	}

	eventbus.NewNotificationRouter(bus).Register()
	bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
		app.Notifications.Push(notify.Notification{Level: p.Level, Message: p.Message})
	})

	return app
}
