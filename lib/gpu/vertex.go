package gpu

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex encapsulates the data for a single vertex.
// It must match the vertex shader's input: layout(location = 0) in vec2.
type Vertex struct {
	Position mgl32.Vec2
}

const VertexSize = int32(unsafe.Sizeof(Vertex{}))

// PositionIndex is the attribute location of Vertex.Position.
const PositionIndex uint32 = 0

const (
	positionSize   int32   = 2
	positionOffset uintptr = unsafe.Offsetof(Vertex{}.Position)
)

// Triangle is the triangle drawn when nothing else is configured.
func Triangle() []Vertex {
	return []Vertex{
		{Position: mgl32.Vec2{1.0, -1.0}},
		{Position: mgl32.Vec2{1.0, 1.0}},
		{Position: mgl32.Vec2{-1.0, 1.0}},
	}
}

// BindVertexLayout points attribute PositionIndex at the currently bound
// array buffer using the Vertex layout.
func BindVertexLayout(dev Device) {
	dev.VertexAttribPointer(PositionIndex, positionSize, VertexSize, positionOffset)
	dev.EnableVertexAttribArray(PositionIndex)
}
