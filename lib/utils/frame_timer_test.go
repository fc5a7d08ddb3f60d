package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.t = c.t.Add(d)
}

func newTestTimer() (*FrameTimer, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)}
	return NewFrameTimerWithClock(clock.now, clock.sleep), clock
}

func TestFrameTimerNext(t *testing.T) {
	timer, clock := newTestTimer()

	assert.Equal(t, time.Duration(0), timer.Next())
	clock.t = clock.t.Add(16 * time.Millisecond)
	assert.Equal(t, 16*time.Millisecond, timer.Next())
	assert.Equal(t, time.Duration(0), timer.Next())
}

func TestFrameTimerPace(t *testing.T) {
	timer, clock := newTestTimer()

	timer.Pace(500 * time.Millisecond)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, clock.slept)

	timer.Next()
	clock.t = clock.t.Add(200 * time.Millisecond)
	timer.Pace(500 * time.Millisecond)
	assert.Equal(t, 300*time.Millisecond, clock.slept[1])

	timer.Next()
	clock.t = clock.t.Add(time.Second)
	timer.Pace(500 * time.Millisecond)
	assert.Len(t, clock.slept, 2, "overrunning frames don't sleep")
}

func TestFrameTimerHold(t *testing.T) {
	timer, clock := newTestTimer()

	timer.Next()
	clock.t = clock.t.Add(300 * time.Millisecond)
	timer.Hold(500 * time.Millisecond)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, clock.slept)
}
