package app

import "errors"

var (
	ErrGLFWInit = errors.New("could not initialise GLFW")
	ErrWindow   = errors.New("could not open window")
	ErrContext  = errors.New("could not initialise OpenGL")
	ErrShader   = errors.New("could not load shader program")
	ErrBuffer   = errors.New("could not create vertex buffer")
	ErrConfig   = errors.New("invalid configuration")
)

// ExitCode maps an error returned by MakeWindowAndDraw onto the process exit
// status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrGLFWInit):
		return 2
	case errors.Is(err, ErrWindow), errors.Is(err, ErrContext):
		return -1
	default:
		return 1
	}
}
