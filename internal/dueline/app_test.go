package dueline

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/dueline/internal/core/config"
	"github.com/colonyops/dueline/internal/core/eventbus"
	"github.com/colonyops/dueline/internal/core/notify"
)

func TestNewApp_RoutesNotifications(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Today = "2023-11-01"

	bus := eventbus.New(cfg.EventBuffer)
	app := NewApp(&cfg, bus, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go bus.Start(ctx)

	item, err := app.Todos.Add(ctx, AddInput{Title: "pay rent", Due: "2023-10-31"})
	require.NoError(t, err)
	assert.Len(t, item.ID, cfg.IDLength)

	require.Eventually(t, func() bool { return app.Notifications.Len() > 0 }, time.Second, 5*time.Millisecond)

	got := app.Notifications.Drain()
	require.Len(t, got, 1)
	assert.Equal(t, notify.LevelInfo, got[0].Level)
	assert.Equal(t, `todo "pay rent" completed`, got[0].Message)
}
