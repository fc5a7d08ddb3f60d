package gpu_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fosdem/gltriangle/lib/gpu"
	"github.com/fosdem/gltriangle/lib/gpu/gputest"
)

func TestVertexLayout(t *testing.T) {
	assert.Equal(t, int32(8), gpu.VertexSize)
	assert.Equal(t, uint32(0), gpu.PositionIndex)
}

func TestCreateVBO(t *testing.T) {
	dev := gputest.New()
	vertices := gpu.Triangle()

	vbo, err := gpu.CreateVBO(dev, vertices)
	require.NoError(t, err)
	require.NotZero(t, vbo)

	assert.Equal(t, uint32(0), dev.BoundBuffer, "array buffer should be unbound again")
	assert.Equal(t, gpu.NoError, dev.GetError())

	data := dev.Buffers[vbo]
	require.Len(t, data, 3*8)
	x := math.Float32frombits(binary.LittleEndian.Uint32(data[16:]))
	y := math.Float32frombits(binary.LittleEndian.Uint32(data[20:]))
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)
}

func TestCreateVBOManyVertices(t *testing.T) {
	dev := gputest.New()
	vertices := make([]gpu.Vertex, 300)

	vbo, err := gpu.CreateVBO(dev, vertices)
	require.NoError(t, err)
	assert.Len(t, dev.Buffers[vbo], 300*8)
}

func TestCreateVBOEmpty(t *testing.T) {
	dev := gputest.New()

	vbo, err := gpu.CreateVBO(dev, nil)
	assert.Error(t, err)
	assert.Zero(t, vbo)
	assert.Empty(t, dev.Buffers)
}

func TestCreateVBOGLError(t *testing.T) {
	dev := gputest.New()
	dev.PendingErrors = []uint32{gpu.OutOfMemory, gpu.InvalidValue}

	vbo, err := gpu.CreateVBO(dev, gpu.Triangle())
	require.Error(t, err)
	assert.Zero(t, vbo)
	assert.ErrorIs(t, err, gpu.GLError(gpu.OutOfMemory))
	assert.Contains(t, err.Error(), "GL_OUT_OF_MEMORY")
	assert.Empty(t, dev.Buffers, "failed buffer must be released")
	assert.Empty(t, dev.PendingErrors, "error queue should be drained")
}

func TestFreeVBO(t *testing.T) {
	dev := gputest.New()
	vbo, err := gpu.CreateVBO(dev, gpu.Triangle())
	require.NoError(t, err)

	gpu.FreeVBO(dev, vbo)
	assert.NotContains(t, dev.Buffers, vbo)

	// never-created handles are ignored
	gpu.FreeVBO(dev, 0)
}

func TestBindVertexLayout(t *testing.T) {
	dev := gputest.New()
	vao := dev.GenVertexArray()
	dev.BindVertexArray(vao)
	vbo, err := gpu.CreateVBO(dev, gpu.Triangle())
	require.NoError(t, err)
	dev.BindArrayBuffer(vbo)

	gpu.BindVertexLayout(dev)
	require.NoError(t, gpu.CheckError(dev))

	attrib := dev.VertexArrays[vao][gpu.PositionIndex]
	require.NotNil(t, attrib)
	assert.Equal(t, int32(2), attrib.Size)
	assert.Equal(t, gpu.VertexSize, attrib.Stride)
	assert.Equal(t, uintptr(0), attrib.Offset)
	assert.True(t, attrib.Enabled)
}

func TestGLErrorString(t *testing.T) {
	assert.Equal(t, "GL_INVALID_OPERATION", gpu.GLError(gpu.InvalidOperation).Error())
	assert.Equal(t, "OpenGL error 0x1234", gpu.GLError(0x1234).Error())
	assert.NoError(t, gpu.CheckError(gputest.New()))
}

func TestShaderStageString(t *testing.T) {
	assert.Equal(t, "vertex", gpu.VertexStage.String())
	assert.Equal(t, "fragment", gpu.FragmentStage.String())
}
