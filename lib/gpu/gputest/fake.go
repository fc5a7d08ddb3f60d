// Package gputest provides an in-memory gpu.Device for tests.
package gputest

import (
	"strings"
	"unsafe"

	"github.com/fosdem/gltriangle/lib/gpu"
)

type Shader struct {
	Stage    gpu.ShaderStage
	Source   string
	Compiled bool
	Log      string
}

type Program struct {
	Shaders []uint32
	Linked  bool
	Log     string
}

type Attrib struct {
	Size    int32
	Stride  int32
	Offset  uintptr
	Enabled bool
}

// Draw records one DrawTriangles call together with the state it used.
type Draw struct {
	Program     uint32
	VertexArray uint32
	First       int32
	Count       int32
}

// FakeDevice implements gpu.Device without a GL context. A shader compiles
// when its source contains "void main"; everything else gets a syntax error
// log. Tests can override that with CompileFunc and make linking fail with
// LinkFailure.
type FakeDevice struct {
	CompileFunc func(stage gpu.ShaderStage, source string) (log string, ok bool)
	LinkFailure string
	// NoPrograms makes CreateProgram return 0.
	NoPrograms bool
	// PendingErrors are handed out by GetError, oldest first.
	PendingErrors []uint32

	Shaders      map[uint32]*Shader
	Programs     map[uint32]*Program
	Buffers      map[uint32][]byte
	VertexArrays map[uint32]map[uint32]*Attrib

	BoundBuffer      uint32
	BoundVertexArray uint32
	CurrentProgram   uint32
	ClearedWith      [4]float32
	Clears           int
	ViewportRect     [4]int32
	Draws            []Draw

	nextName uint32
}

func New() *FakeDevice {
	return &FakeDevice{
		Shaders:      make(map[uint32]*Shader),
		Programs:     make(map[uint32]*Program),
		Buffers:      make(map[uint32][]byte),
		VertexArrays: make(map[uint32]map[uint32]*Attrib),
	}
}

func (d *FakeDevice) name() uint32 {
	d.nextName++
	return d.nextName
}

func (d *FakeDevice) CreateShader(stage gpu.ShaderStage) uint32 {
	id := d.name()
	d.Shaders[id] = &Shader{Stage: stage}
	return id
}

func (d *FakeDevice) ShaderSource(shader uint32, source string) {
	d.Shaders[shader].Source = source
}

func (d *FakeDevice) CompileShader(shader uint32) {
	s := d.Shaders[shader]
	compile := d.CompileFunc
	if compile == nil {
		compile = defaultCompile
	}
	s.Log, s.Compiled = compile(s.Stage, s.Source)
}

func defaultCompile(_ gpu.ShaderStage, source string) (string, bool) {
	if strings.Contains(source, "void main") {
		return "", true
	}
	return "0:1(1): error: syntax error, unexpected end of file\n", false
}

func (d *FakeDevice) ShaderCompiled(shader uint32) bool {
	return d.Shaders[shader].Compiled
}

func (d *FakeDevice) ShaderInfoLog(shader uint32) string {
	return d.Shaders[shader].Log
}

func (d *FakeDevice) DeleteShader(shader uint32) {
	delete(d.Shaders, shader)
}

func (d *FakeDevice) CreateProgram() uint32 {
	if d.NoPrograms {
		return 0
	}
	id := d.name()
	d.Programs[id] = &Program{}
	return id
}

func (d *FakeDevice) AttachShader(program, shader uint32) {
	p := d.Programs[program]
	p.Shaders = append(p.Shaders, shader)
}

func (d *FakeDevice) DetachShader(program, shader uint32) {
	p := d.Programs[program]
	for i, s := range p.Shaders {
		if s == shader {
			p.Shaders = append(p.Shaders[:i], p.Shaders[i+1:]...)
			return
		}
	}
}

func (d *FakeDevice) LinkProgram(program uint32) {
	p := d.Programs[program]
	if d.LinkFailure != "" {
		p.Linked = false
		p.Log = d.LinkFailure
		return
	}
	stages := make(map[gpu.ShaderStage]bool)
	for _, id := range p.Shaders {
		s, ok := d.Shaders[id]
		if !ok || !s.Compiled {
			p.Linked = false
			p.Log = "error: program contains uncompiled shaders\n"
			return
		}
		stages[s.Stage] = true
	}
	if !stages[gpu.VertexStage] || !stages[gpu.FragmentStage] {
		p.Linked = false
		p.Log = "error: program lacks a vertex or fragment shader\n"
		return
	}
	p.Linked = true
	p.Log = ""
}

func (d *FakeDevice) ProgramLinked(program uint32) bool {
	return d.Programs[program].Linked
}

func (d *FakeDevice) ProgramInfoLog(program uint32) string {
	return d.Programs[program].Log
}

func (d *FakeDevice) ActiveAttributes(program uint32) int32 {
	if d.Programs[program].Linked {
		return 1
	}
	return 0
}

func (d *FakeDevice) UseProgram(program uint32) {
	d.CurrentProgram = program
}

func (d *FakeDevice) DeleteProgram(program uint32) {
	delete(d.Programs, program)
	if d.CurrentProgram == program {
		d.CurrentProgram = 0
	}
}

func (d *FakeDevice) GenBuffer() uint32 {
	id := d.name()
	d.Buffers[id] = nil
	return id
}

func (d *FakeDevice) BindArrayBuffer(buffer uint32) {
	d.BoundBuffer = buffer
}

func (d *FakeDevice) ArrayBufferData(size int, data unsafe.Pointer) {
	if d.BoundBuffer == 0 {
		d.PendingErrors = append(d.PendingErrors, gpu.InvalidOperation)
		return
	}
	if size < 0 {
		d.PendingErrors = append(d.PendingErrors, gpu.InvalidValue)
		return
	}
	d.Buffers[d.BoundBuffer] = append([]byte(nil), unsafe.Slice((*byte)(data), size)...)
}

func (d *FakeDevice) DeleteBuffer(buffer uint32) {
	delete(d.Buffers, buffer)
	if d.BoundBuffer == buffer {
		d.BoundBuffer = 0
	}
}

func (d *FakeDevice) GenVertexArray() uint32 {
	id := d.name()
	d.VertexArrays[id] = make(map[uint32]*Attrib)
	return id
}

func (d *FakeDevice) BindVertexArray(array uint32) {
	d.BoundVertexArray = array
}

func (d *FakeDevice) DeleteVertexArray(array uint32) {
	delete(d.VertexArrays, array)
	if d.BoundVertexArray == array {
		d.BoundVertexArray = 0
	}
}

func (d *FakeDevice) VertexAttribPointer(index uint32, size int32, stride int32, offset uintptr) {
	vao, ok := d.VertexArrays[d.BoundVertexArray]
	if !ok || d.BoundBuffer == 0 {
		d.PendingErrors = append(d.PendingErrors, gpu.InvalidOperation)
		return
	}
	vao[index] = &Attrib{Size: size, Stride: stride, Offset: offset}
}

func (d *FakeDevice) EnableVertexAttribArray(index uint32) {
	vao, ok := d.VertexArrays[d.BoundVertexArray]
	if !ok {
		d.PendingErrors = append(d.PendingErrors, gpu.InvalidOperation)
		return
	}
	if a, ok := vao[index]; ok {
		a.Enabled = true
		return
	}
	vao[index] = &Attrib{Enabled: true}
}

func (d *FakeDevice) Viewport(x, y, width, height int32) {
	d.ViewportRect = [4]int32{x, y, width, height}
}

func (d *FakeDevice) ClearColor(r, g, b, a float32) {
	d.ClearedWith = [4]float32{r, g, b, a}
}

func (d *FakeDevice) Clear() {
	d.Clears++
}

func (d *FakeDevice) DrawTriangles(first, count int32) {
	d.Draws = append(d.Draws, Draw{
		Program:     d.CurrentProgram,
		VertexArray: d.BoundVertexArray,
		First:       first,
		Count:       count,
	})
}

func (d *FakeDevice) GetError() uint32 {
	if len(d.PendingErrors) == 0 {
		return gpu.NoError
	}
	err := d.PendingErrors[0]
	d.PendingErrors = d.PendingErrors[1:]
	return err
}

var _ gpu.Device = (*FakeDevice)(nil)
