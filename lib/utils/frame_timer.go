package utils

import "time"

// FrameTimer measures the time between frames and paces a loop to a fixed
// interval.
type FrameTimer struct {
	last  time.Time
	sleep func(time.Duration)
	now   func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return NewFrameTimerWithClock(time.Now, time.Sleep)
}

func NewFrameTimerWithClock(now func() time.Time, sleep func(time.Duration)) *FrameTimer {
	return &FrameTimer{sleep: sleep, now: now}
}

// Next returns the time since the previous call, or 0 on the first call.
func (f *FrameTimer) Next() time.Duration {
	// acquire timestamp exactly once to ensure we're not accumulating error
	now := f.now()

	defer func() { f.last = now }()
	if f.last.IsZero() {
		return 0
	}
	return now.Sub(f.last)
}

// Pace sleeps for whatever is left of interval since the last Next call.
func (f *FrameTimer) Pace(interval time.Duration) {
	if f.last.IsZero() {
		f.sleep(interval)
		return
	}
	remaining := interval - f.now().Sub(f.last)
	if remaining > 0 {
		f.sleep(remaining)
	}
}

// Hold sleeps for the whole interval regardless of how long the frame took.
func (f *FrameTimer) Hold(interval time.Duration) {
	f.sleep(interval)
}
