package theatre

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdown(t *testing.T) {
	th := New()
	assert.False(t, th.ShutdownRequested())

	events := make(chan interface{}, 2)
	th.AddEventListener(EventShutdown, func(_ *Theatre, data interface{}) {
		events <- data
	})

	th.RequestShutdown("escape pressed")
	th.RequestShutdown("again")
	assert.True(t, th.ShutdownRequested())

	select {
	case data := <-events:
		assert.Equal(t, EventData{Event: EventShutdown, Reason: "escape pressed"}, data)
	case <-time.After(time.Second):
		t.Fatal("shutdown listener was not called")
	}

	select {
	case <-events:
		t.Fatal("a second shutdown request must not notify again")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestReload(t *testing.T) {
	th := New()
	assert.False(t, th.TakeReload())

	th.RequestReload("file changed")
	th.RequestReload("file changed again")
	assert.True(t, th.TakeReload())
	assert.False(t, th.TakeReload(), "a request is consumed once")

	th.RequestReload("api")
	assert.True(t, th.TakeReload())
}

func TestProgramReloaded(t *testing.T) {
	th := New()
	events := make(chan interface{}, 1)
	th.AddEventListener(EventProgramReloaded, func(_ *Theatre, data interface{}) {
		events <- data
	})

	th.ProgramReloaded(0, errors.New("link failed"))

	select {
	case data := <-events:
		ev, ok := data.(EventData)
		require.True(t, ok)
		assert.Equal(t, "link failed", ev.Error)
	case <-time.After(time.Second):
		t.Fatal("listener was not called")
	}
}
