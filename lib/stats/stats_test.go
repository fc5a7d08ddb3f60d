package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	clock := time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)
	tr := New()
	tr.now = func() time.Time { return clock }
	tr.start = clock
	tr.frameTimer = clock

	for range 30 {
		clock = clock.Add(20 * time.Millisecond)
		tr.FrameDrawn()
	}
	s := tr.Snapshot()
	assert.Equal(t, uint64(30), s.FramesDrawn)
	assert.Equal(t, uint64(0), s.FPS, "no full second has passed yet")

	for range 20 {
		clock = clock.Add(20 * time.Millisecond)
		tr.FrameDrawn()
	}
	s = tr.Snapshot()
	assert.Equal(t, uint64(50), s.FramesDrawn)
	assert.Equal(t, uint64(50), s.FPS)
	assert.InDelta(t, 1.0, s.Uptime, 1e-9)
}

func TestTrackerProgram(t *testing.T) {
	tr := New()
	tr.ProgramChanged(3, false)
	tr.ProgramChanged(7, true)
	tr.SetWsClients(2)

	s := tr.Snapshot()
	assert.Equal(t, uint32(7), s.Program)
	assert.Equal(t, uint64(1), s.ProgramReloads)
	assert.Equal(t, 2, s.WsClients)
}
