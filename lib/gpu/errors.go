package gpu

import "fmt"

const NoError uint32 = 0

const (
	InvalidEnum                 uint32 = 0x0500
	InvalidValue                uint32 = 0x0501
	InvalidOperation            uint32 = 0x0502
	StackOverflow               uint32 = 0x0503
	StackUnderflow              uint32 = 0x0504
	OutOfMemory                 uint32 = 0x0505
	InvalidFramebufferOperation uint32 = 0x0506
)

// GLError is a non-zero value returned by glGetError.
type GLError uint32

func (e GLError) Error() string {
	switch uint32(e) {
	case InvalidEnum:
		return "GL_INVALID_ENUM"
	case InvalidValue:
		return "GL_INVALID_VALUE"
	case InvalidOperation:
		return "GL_INVALID_OPERATION"
	case StackOverflow:
		return "GL_STACK_OVERFLOW"
	case StackUnderflow:
		return "GL_STACK_UNDERFLOW"
	case OutOfMemory:
		return "GL_OUT_OF_MEMORY"
	case InvalidFramebufferOperation:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	default:
		return fmt.Sprintf("OpenGL error 0x%04x", uint32(e))
	}
}

// CheckError returns the oldest pending GL error and drains the rest,
// or nil if there is none.
func CheckError(dev Device) error {
	first := dev.GetError()
	if first == NoError {
		return nil
	}
	// the error queue is bounded, but don't trust a broken driver forever
	for range 16 {
		if dev.GetError() == NoError {
			break
		}
	}
	return GLError(first)
}
