package shaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fosdem/gltriangle/lib/gpu/gputest"
	"github.com/fosdem/gltriangle/lib/utils"
)

func TestShadererTemplates(t *testing.T) {
	s, err := NewShaderer()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{BuiltinVertex, BuiltinFragment}, s.TemplateNames())
}

func TestGetShaderSource(t *testing.T) {
	s, err := NewShaderer()
	require.NoError(t, err)

	data := &ShaderData{GLSLVersion: 410, Colour: utils.Colour{R: 1, G: 0.5, B: 0, A: 1}}

	vert, err := s.GetShaderSource(BuiltinVertex, data)
	require.NoError(t, err)
	assert.Contains(t, vert, "#version 410 core")
	assert.Contains(t, vert, "layout(location = 0) in vec2 position;")

	frag, err := s.GetShaderSource(BuiltinFragment, data)
	require.NoError(t, err)
	assert.Contains(t, frag, "vec4(1.000000, 0.500000, 0.000000, 1.000000)")

	_, err = s.GetShaderSource("missing.frag", data)
	assert.Error(t, err)
}

func TestGLSLVersion(t *testing.T) {
	assert.Equal(t, 410, GLSLVersion(4, 1))
	assert.Equal(t, 460, GLSLVersion(4, 6))
	assert.Equal(t, 330, GLSLVersion(3, 3))
}

func TestBuildBuiltinProgram(t *testing.T) {
	dev := gputest.New()
	dir := t.TempDir()

	program, err := BuildBuiltinProgram(dev, &ShaderData{GLSLVersion: 410, Colour: utils.ColourParse("#ff8000ff")}, dir)
	require.NoError(t, err)
	assert.NotZero(t, program)
	assert.Empty(t, dev.Shaders)

	dumped, err := os.ReadFile(filepath.Join(dir, BuiltinFragment))
	require.NoError(t, err)
	assert.Contains(t, string(dumped), "void main()")
}
