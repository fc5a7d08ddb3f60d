package theatre

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Theatre is the control state shared between the render thread and the
// goroutines that steer it (key handler, API, shader watcher). The render
// thread polls it once per frame; nothing here touches GL.
type Theatre struct {
	shutdownRequested atomic.Bool
	reloadRequested   atomic.Bool

	listenerMutex sync.Mutex
	listener      map[string][]EventListener
}

func New() *Theatre {
	return &Theatre{
		listener: make(map[string][]EventListener),
	}
}

// RequestShutdown asks the draw loop to stop after the current frame.
func (t *Theatre) RequestShutdown(reason string) {
	if t.shutdownRequested.Swap(true) {
		return
	}
	log("Shutdown requested: %s", reason)
	t.invoke(EventShutdown, EventData{Event: EventShutdown, Reason: reason})
}

func (t *Theatre) ShutdownRequested() bool {
	return t.shutdownRequested.Load()
}

// RequestReload asks the draw loop to rebuild the shader program.
func (t *Theatre) RequestReload(reason string) {
	if t.reloadRequested.Swap(true) {
		return
	}
	log("Shader reload requested: %s", reason)
	t.invoke(EventReloadRequested, EventData{Event: EventReloadRequested, Reason: reason})
}

// TakeReload reports whether a reload was requested and clears the request.
func (t *Theatre) TakeReload() bool {
	return t.reloadRequested.Swap(false)
}

// ProgramReloaded announces the outcome of a reload to listeners.
func (t *Theatre) ProgramReloaded(program uint32, err error) {
	data := EventData{Event: EventProgramReloaded, Program: program}
	if err != nil {
		data.Error = err.Error()
	}
	t.invoke(EventProgramReloaded, data)
}

func log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "theatre"))
}
