package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/dueline/internal/core/notify"
)

func TestCtx_FallsBackToDefault(t *testing.T) {
	p := Ctx(context.Background())
	require.NotNil(t, p)
}

func TestCtx_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := New(&buf)

	got := Ctx(NewContext(context.Background(), want))
	assert.Same(t, want, got)
}

func TestPrinter_Plain(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf).Plain()

	p.Successf("added %q", "milk")
	p.Success("logged in", "alice")
	p.Warnf("careful")
	p.WarnItem("Users", "no admin")
	p.Errorf("boom")
	p.Printf("  %d. done", 1)

	assert.Equal(t,
		"✓ added \"milk\"\n"+
			"✓ logged in alice\n"+
			"! careful\n"+
			"! Users: no admin\n"+
			"x boom\n"+
			"  1. done\n",
		buf.String())
}

func TestPrinter_Notification(t *testing.T) {
	tests := []struct {
		level notify.Level
		want  string
	}{
		{notify.LevelInfo, "• hello\n"},
		{notify.LevelWarning, "! hello\n"},
		{notify.LevelError, "x hello\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf).Plain().Notification(notify.Notification{Level: tt.level, Message: "hello"})
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
