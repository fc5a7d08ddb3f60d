package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/fosdem/gltriangle/lib/gpu"
	"github.com/fosdem/gltriangle/lib/utils"
)

//go:embed *.frag *.vert
var templateDir embed.FS

const (
	BuiltinVertex   = "builtin.vert"
	BuiltinFragment = "builtin.frag"
)

type Shaderer struct {
	templates *template.Template
}

func NewShaderer() (*Shaderer, error) {
	s := &Shaderer{}

	var err error

	s.templates, err = template.ParseFS(templateDir, "*.frag", "*.vert")

	return s, err
}

// ShaderData contains stuff that gets passed to the shader templates
type ShaderData struct {
	GLSLVersion int
	Colour      utils.Colour
}

// GLSLVersion maps a GL context version (3.3 or later) onto its #version
// number.
func GLSLVersion(major, minor int) int {
	return major*100 + minor*10
}

func (s *Shaderer) GetShaderSource(name string, data *ShaderData) (string, error) {
	var b bytes.Buffer
	err := s.templates.ExecuteTemplate(&b, name, data)
	if err != nil {
		return "", fmt.Errorf("error while rendering template: %s", err)
	}

	return b.String(), nil
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for _, t := range s.templates.Templates() {
		names = append(names, t.Name())
	}
	return names
}

// BuildBuiltinProgram renders the embedded shaders and links them. When
// dumpDir is set the rendered sources are written there too.
func BuildBuiltinProgram(dev gpu.Device, data *ShaderData, dumpDir string) (uint32, error) {
	shaderer, err := NewShaderer()
	if err != nil {
		return 0, fmt.Errorf("could not get shaders: %w", err)
	}

	vertexShader, err := shaderer.GetShaderSource(BuiltinVertex, data)
	if err != nil {
		return 0, fmt.Errorf("could not get vertex shader: %w", err)
	}

	fragmentShader, err := shaderer.GetShaderSource(BuiltinFragment, data)
	if err != nil {
		return 0, fmt.Errorf("could not get fragment shader: %w", err)
	}

	if dumpDir != "" {
		writeFileDebug(filepath.Join(dumpDir, BuiltinVertex), vertexShader)
		writeFileDebug(filepath.Join(dumpDir, BuiltinFragment), fragmentShader)
	}

	program, err := newProgram(dev, BuiltinVertex, vertexShader, BuiltinFragment, fragmentShader)
	if err != nil {
		return 0, fmt.Errorf("could not init shader: %w", err)
	}

	return program, nil
}

func writeFileDebug(filename string, content string) {
	err := os.WriteFile(filename, []byte(content), 0o644)
	if err != nil {
		logError("Could not write to debug file: %s", err)
	}
}
