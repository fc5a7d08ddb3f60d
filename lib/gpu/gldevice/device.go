package gldevice

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/fosdem/gltriangle/lib/gpu"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// Device issues GL calls on the context current on the calling thread.
type Device struct {
	Vendor   string
	Renderer string
	Version  string
}

// Init loads the GL function pointers for the current context.
func Init() (*Device, error) {
	err := gl.Init()
	if err != nil {
		return nil, fmt.Errorf("could not initialise OpenGL context: %w", err)
	}

	d := &Device{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
	}
	slog.Info(fmt.Sprintf("OpenGL version %s / %s / %s", d.Vendor, d.Renderer, d.Version), slog.String("module", "gl"))

	return d, nil
}

func glStage(stage gpu.ShaderStage) uint32 {
	switch stage {
	case gpu.VertexStage:
		return gl.VERTEX_SHADER
	case gpu.FragmentStage:
		return gl.FRAGMENT_SHADER
	default:
		panic(fmt.Sprintf("unknown shader stage %d", stage))
	}
}

func (d *Device) CreateShader(stage gpu.ShaderStage) uint32 {
	return gl.CreateShader(glStage(stage))
}

func (d *Device) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source)
	size := int32(len(source))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
}

func (d *Device) CompileShader(shader uint32) {
	gl.CompileShader(shader)
}

func (d *Device) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	clog := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(clog))
	return strings.TrimRight(clog, "\x00")
}

func (d *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Device) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Device) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (d *Device) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (d *Device) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ProgramInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}

	logmsg := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logmsg))
	return strings.TrimRight(logmsg, "\x00")
}

func (d *Device) ActiveAttributes(program uint32) int32 {
	var n int32
	gl.GetProgramiv(program, gl.ACTIVE_ATTRIBUTES, &n)
	return n
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) GenBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (d *Device) BindArrayBuffer(buffer uint32) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
}

func (d *Device) ArrayBufferData(size int, data unsafe.Pointer) {
	gl.BufferData(gl.ARRAY_BUFFER, size, data, gl.STATIC_DRAW)
}

func (d *Device) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d *Device) GenVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (d *Device) BindVertexArray(array uint32) {
	gl.BindVertexArray(array)
}

func (d *Device) DeleteVertexArray(array uint32) {
	gl.DeleteVertexArrays(1, &array)
}

func (d *Device) VertexAttribPointer(index uint32, size int32, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, stride, offset)
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *Device) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (d *Device) GetError() uint32 {
	return gl.GetError()
}

var _ gpu.Device = (*Device)(nil)
