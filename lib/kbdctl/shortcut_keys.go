package kbdctl

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	gopointer "github.com/mattn/go-pointer"

	"github.com/fosdem/gltriangle/lib/theatre"
)

type Command int

const (
	None Command = iota
	Quit
	Reload
)

// CommandFor maps a key event onto the command it triggers.
func CommandFor(key glfw.Key, action glfw.Action) Command {
	if action != glfw.Press {
		return None
	}
	switch key {
	case glfw.KeyEscape:
		return Quit
	case glfw.KeyR:
		return Reload
	default:
		return None
	}
}

// SetupShortcutKeys installs the key callback on w. The theatre travels
// through the window's user pointer; call the returned function once the
// window is gone to release it.
func SetupShortcutKeys(t *theatre.Theatre, w *glfw.Window) (release func()) {
	ptr := gopointer.Save(t)
	w.SetUserPointer(ptr)
	w.SetKeyCallback(keyCallback)

	return func() {
		gopointer.Unref(ptr)
	}
}

func Poll() {
	glfw.PollEvents()
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	slog.Debug(fmt.Sprintf("key %d scancode %d action %d mods %d", key, scancode, action, mods), slog.String("module", "kbdctl"))

	t := theatreOf(w.GetUserPointer())
	switch CommandFor(key, action) {
	case Quit:
		w.SetShouldClose(true)
		if t != nil {
			t.RequestShutdown("escape pressed")
		}
	case Reload:
		if t != nil {
			t.RequestReload("R pressed")
		}
	}
}

func theatreOf(ptr unsafe.Pointer) *theatre.Theatre {
	if ptr == nil {
		return nil
	}
	t, _ := gopointer.Restore(ptr).(*theatre.Theatre)
	return t
}
