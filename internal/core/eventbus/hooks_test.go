package eventbus

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHooks_ConcurrentRegisterAndPublish(t *testing.T) {
	bus := New(1024)

	var fired atomic.Int64
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 50 {
				bus.OnPublish(func(Event, any) { fired.Add(1) })
			}
		}()
		go func() {
			defer wg.Done()
			for range 50 {
				bus.PublishUserLoggedOut(UserLoggedOutPayload{UserID: "alice"})
			}
		}()
	}
	wg.Wait()

	fired.Store(0)
	bus.PublishUserLoggedOut(UserLoggedOutPayload{UserID: "bob"})
	assert.Equal(t, int64(200), fired.Load(), "every registered hook runs once")
}

func TestHooks_DropWhenFull(t *testing.T) {
	bus := New(1)

	var dropped []Event
	bus.OnDrop(func(e Event, _ any) { dropped = append(dropped, e) })

	bus.PublishUserLoggedIn(UserLoggedInPayload{UserID: "alice"})
	bus.PublishUserLoggedOut(UserLoggedOutPayload{UserID: "alice"})

	assert.Equal(t, []Event{EventUserLoggedOut}, dropped)
}
