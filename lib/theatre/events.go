package theatre

const (
	EventShutdown        = "shutdown"
	EventReloadRequested = "reload-requested"
	EventProgramReloaded = "program-reloaded"
)

type EventListener func(theatre *Theatre, data interface{})

type EventData struct {
	Event   string `json:"event"`
	Reason  string `json:"reason,omitempty"`
	Program uint32 `json:"program,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (t *Theatre) AddEventListener(event string, callback EventListener) {
	t.listenerMutex.Lock()
	defer t.listenerMutex.Unlock()
	t.listener[event] = append(t.listener[event], callback)
}

func (t *Theatre) invoke(event string, data interface{}) {
	t.listenerMutex.Lock()
	defer t.listenerMutex.Unlock()
	for _, listener := range t.listener[event] {
		go listener(t, data)
	}
}
