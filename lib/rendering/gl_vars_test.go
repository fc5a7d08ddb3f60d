package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fosdem/gltriangle/lib/gpu"
	"github.com/fosdem/gltriangle/lib/gpu/gputest"
	"github.com/fosdem/gltriangle/lib/rendering/shaders"
	"github.com/fosdem/gltriangle/lib/utils"
)

const (
	vert = "#version 410 core\nlayout(location = 0) in vec2 position;\nvoid main() { gl_Position = vec4(position, 0.0, 1.0); }\n"
	frag = "#version 410 core\nout vec4 c;\nvoid main() { c = vec4(1.0); }\n"
)

func newTestVars(t *testing.T) (*GLVars, *gputest.FakeDevice) {
	t.Helper()
	dev := gputest.New()
	program, err := shaders.NewProgram(dev, vert, frag)
	require.NoError(t, err)
	return NewGLVars(dev, program, gpu.Triangle(), utils.ColourParse("#1a4d4dff")), dev
}

func TestGLVarsStartAndDraw(t *testing.T) {
	g, dev := newTestVars(t)

	require.NoError(t, g.Start(800, 600))
	assert.NotZero(t, g.VAO)
	assert.NotZero(t, g.VBO)
	assert.Equal(t, [4]int32{0, 0, 800, 600}, dev.ViewportRect)
	assert.InDelta(t, 0.1, dev.ClearedWith[0], 0.01)
	assert.InDelta(t, 0.3, dev.ClearedWith[1], 0.01)
	assert.Equal(t, float32(1), dev.ClearedWith[3])
	assert.Equal(t, g.Program, dev.CurrentProgram)

	attrib := dev.VertexArrays[g.VAO][gpu.PositionIndex]
	require.NotNil(t, attrib)
	assert.True(t, attrib.Enabled)
	assert.Equal(t, gpu.VertexSize, attrib.Stride)

	g.DrawFrame()
	assert.Equal(t, 1, dev.Clears)
	require.Len(t, dev.Draws, 1)
	assert.Equal(t, gputest.Draw{Program: g.Program, VertexArray: g.VAO, First: 0, Count: 3}, dev.Draws[0])
}

func TestGLVarsBufferFailure(t *testing.T) {
	g, dev := newTestVars(t)
	dev.PendingErrors = []uint32{gpu.OutOfMemory}

	err := g.Start(800, 600)
	require.Error(t, err)
	assert.ErrorIs(t, err, gpu.GLError(gpu.OutOfMemory))
	assert.Zero(t, g.VAO)
	assert.Zero(t, g.VBO)
	assert.Empty(t, dev.VertexArrays)
	assert.Empty(t, dev.Buffers)
}

func TestGLVarsSwapProgram(t *testing.T) {
	g, dev := newTestVars(t)
	require.NoError(t, g.Start(800, 600))
	old := g.Program

	program, err := shaders.NewProgram(dev, vert, frag)
	require.NoError(t, err)
	g.SwapProgram(program)

	assert.Equal(t, program, dev.CurrentProgram)
	assert.NotContains(t, dev.Programs, old)
	assert.Contains(t, dev.Programs, program)
}

func TestGLVarsDelete(t *testing.T) {
	g, dev := newTestVars(t)
	require.NoError(t, g.Start(800, 600))

	g.Delete()
	assert.Empty(t, dev.Buffers)
	assert.Empty(t, dev.VertexArrays)
	assert.Empty(t, dev.Programs)

	g.Delete()
}
