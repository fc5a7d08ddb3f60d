package window

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/fosdem/gltriangle/lib/config"
)

var (
	ErrInit   = errors.New("could not initialise GLFW")
	ErrCreate = errors.New("could not create GLFW window")
)

// Init initialises GLFW. It must be called from the main thread, which must
// stay locked to its OS thread until Terminate.
func Init() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("%w: %s", ErrInit, err)
	}
	return nil
}

func Terminate() {
	glfw.Terminate()
}

// New creates a window whose GL context is current on the calling thread.
func New(cfg *config.WindowCfg) (*glfw.Window, error) {
	log("Starting GLFW context, OpenGL %d.%d", cfg.GLMajor, cfg.GLMinor)

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Maximized, glfw.False)
	glfw.WindowHint(glfw.Resizable, boolHint(cfg.Resizable))

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCreate, err)
	}

	window.MakeContextCurrent()
	return window, nil
}

// FramebufferSize is the size in pixels to use for the viewport, which
// differs from the window size on high-DPI displays.
func FramebufferSize(w *glfw.Window) (int, int) {
	return w.GetFramebufferSize()
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "window"))
}
