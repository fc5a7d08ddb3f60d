// Package gpu describes the small slice of OpenGL that gltriangle needs,
// so that shader and buffer handling can run against a fake in tests.
package gpu

import "unsafe"

type ShaderStage int

const (
	VertexStage ShaderStage = iota
	FragmentStage
)

func (s ShaderStage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return "unknown"
	}
}

// Device is implemented by gldevice.Device on top of a current GL context.
// All methods must be called from the thread that owns the context.
// Handles are GL object names; 0 is never a valid object.
type Device interface {
	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	ActiveAttributes(program uint32) int32
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GenBuffer() uint32
	BindArrayBuffer(buffer uint32)
	ArrayBufferData(size int, data unsafe.Pointer)
	DeleteBuffer(buffer uint32)

	GenVertexArray() uint32
	BindVertexArray(array uint32)
	DeleteVertexArray(array uint32)
	// VertexAttribPointer describes a float attribute in the bound array buffer.
	VertexAttribPointer(index uint32, size int32, stride int32, offset uintptr)
	EnableVertexAttribArray(index uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawTriangles(first, count int32)

	GetError() uint32
}
