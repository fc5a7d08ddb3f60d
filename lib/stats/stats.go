package stats

import (
	"sync"
	"time"
)

type Stats struct {
	FramesDrawn    uint64  `json:"frames_drawn"`
	FPS            uint64  `json:"fps"`
	Uptime         float64 `json:"uptime"`
	ProgramReloads uint64  `json:"program_reloads"`
	Program        uint32  `json:"program"`
	WsClients      int     `json:"ws_clients"`
}

// Tracker collects Stats from the render thread and hands out copies to
// the API goroutines.
type Tracker struct {
	mu sync.Mutex
	s  Stats

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
	now          func() time.Time
}

func New() *Tracker {
	t := &Tracker{now: time.Now}
	t.start = t.now()
	t.frameTimer = t.start
	return t
}

// FrameDrawn is called once per presented frame.
func (t *Tracker) FrameDrawn() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.s.FramesDrawn++
	t.frameCounter++
	if now.Sub(t.frameTimer) >= 1*time.Second {
		t.s.FPS = t.frameCounter
		t.frameCounter = 0
		t.frameTimer = now
	}
}

func (t *Tracker) ProgramChanged(program uint32, reloaded bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s.Program = program
	if reloaded {
		t.s.ProgramReloads++
	}
}

func (t *Tracker) SetWsClients(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.s.WsClients = n
}

func (t *Tracker) Snapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.s
	s.Uptime = float64(t.now().Sub(t.start).Nanoseconds()) / 1e9
	return s
}
