package rendering

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/gltriangle/lib/gpu"
	"github.com/fosdem/gltriangle/lib/metrics"
	"github.com/fosdem/gltriangle/lib/rendering/shaders"
	"github.com/fosdem/gltriangle/lib/utils"
)

// GLVars owns the GL objects needed to draw the vertex list: the program,
// the vertex array and the vertex buffer.
type GLVars struct {
	Program  uint32
	Vertices []gpu.Vertex
	BGColour utils.Colour

	Width  int32
	Height int32

	// GL IDs
	VAO uint32
	VBO uint32

	dev gpu.Device
}

func NewGLVars(dev gpu.Device, program uint32, vertices []gpu.Vertex, bgColour utils.Colour) *GLVars {
	g := &GLVars{}

	g.dev = dev
	g.Program = program
	g.Vertices = vertices
	g.BGColour = bgColour

	return g
}

// Start uploads the vertices and prepares the state DrawFrame relies on.
func (g *GLVars) Start(width, height int) error {
	err := g.allocate()
	if err != nil {
		return err
	}

	g.Resize(width, height)
	g.dev.ClearColor(g.BGColour.R, g.BGColour.G, g.BGColour.B, g.BGColour.A)
	g.dev.UseProgram(g.Program)

	err = gpu.CheckError(g.dev)
	if err != nil {
		metrics.GLErrors.WithLabelValues("start").Inc()
		return fmt.Errorf("could not set up draw state: %w", err)
	}
	return nil
}

func (g *GLVars) Resize(width, height int) {
	g.Width = int32(width)
	g.Height = int32(height)
	g.dev.Viewport(0, 0, g.Width, g.Height)
}

func (g *GLVars) allocate() error {
	g.VAO = g.dev.GenVertexArray()
	g.dev.BindVertexArray(g.VAO)

	vbo, err := gpu.CreateVBO(g.dev, g.Vertices)
	if err != nil {
		g.dev.BindVertexArray(0)
		g.dev.DeleteVertexArray(g.VAO)
		g.VAO = 0
		return fmt.Errorf("could not create vertex buffer: %w", err)
	}
	g.VBO = vbo

	// Set up for rendering the triangle (activate the VBO)
	g.dev.BindArrayBuffer(g.VBO)
	gpu.BindVertexLayout(g.dev)

	return nil
}

// DrawFrame clears the colour buffer and draws every vertex as triangles.
func (g *GLVars) DrawFrame() {
	g.dev.BindVertexArray(g.VAO)
	g.dev.Clear()
	g.dev.DrawTriangles(0, int32(len(g.Vertices)))
	metrics.FramesDrawn.Inc()
}

// SwapProgram makes program current and destroys the previous one.
func (g *GLVars) SwapProgram(program uint32) {
	old := g.Program
	g.Program = program
	g.dev.UseProgram(program)
	if old != program {
		shaders.DestroyProgram(g.dev, old)
	}
	slog.Info(fmt.Sprintf("Switched to shader program %d", program), slog.String("module", "rendering"))
}

// Delete frees the buffer, the vertex array and the program. It is safe to
// call more than once.
func (g *GLVars) Delete() {
	gpu.FreeVBO(g.dev, g.VBO)
	g.VBO = 0
	if g.VAO != 0 {
		g.dev.BindVertexArray(0)
		g.dev.DeleteVertexArray(g.VAO)
		g.VAO = 0
	}
	shaders.DestroyProgram(g.dev, g.Program)
	g.Program = 0
}
