package shaders

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/fosdem/gltriangle/lib/gpu"
	"github.com/fosdem/gltriangle/lib/metrics"
)

// CompileError carries the compiler's info log for one shader stage.
type CompileError struct {
	Stage gpu.ShaderStage
	Name  string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compilation of %s shader %s failed: %s", e.Stage, e.Name, e.Log)
}

// LinkError carries the linker's info log for a program.
type LinkError struct {
	Vertex           string
	Fragment         string
	Log              string
	ActiveAttributes int32
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("linking shader failed (vert. shader: %s, frag. shader: %s): %s", e.Vertex, e.Fragment, e.Log)
}

var ErrNoProgram = errors.New("could not create shader program")

// LoadProgram loads a vertex and fragment shader from disk and compiles and
// links them into a program. Errors are logged as well as returned; the
// returned handle is 0 on failure and no shader object is left behind.
func LoadProgram(dev gpu.Device, vertFilename, fragFilename string) (uint32, error) {
	return loadProgram(dev, os.ReadFile, vertFilename, fragFilename)
}

// LoadProgramFS is LoadProgram reading from fsys.
func LoadProgramFS(dev gpu.Device, fsys fs.FS, vertFilename, fragFilename string) (uint32, error) {
	return loadProgram(dev, func(name string) ([]byte, error) {
		return fs.ReadFile(fsys, name)
	}, vertFilename, fragFilename)
}

func loadProgram(dev gpu.Device, readFile func(string) ([]byte, error), vertFilename, fragFilename string) (uint32, error) {
	vertSource, err := readSource(readFile, vertFilename)
	if err != nil {
		logError("Couldn't load vertex shader %s: %s", vertFilename, err)
		return 0, err
	}
	fragSource, err := readSource(readFile, fragFilename)
	if err != nil {
		logError("Couldn't load fragment shader %s: %s", fragFilename, err)
		return 0, err
	}

	return newProgram(dev, vertFilename, vertSource, fragFilename, fragSource)
}

func readSource(readFile func(string) ([]byte, error), filename string) (string, error) {
	b, err := readFile(filename)
	if err != nil {
		return "", fmt.Errorf("can't open file %s: %w", filename, err)
	}
	if len(b) == 0 {
		return "", fmt.Errorf("shader file %s is empty", filename)
	}
	return string(b), nil
}

// NewProgram compiles and links a program from in-memory sources.
func NewProgram(dev gpu.Device, vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	return newProgram(dev, "<vertex>", vertexShaderSource, "<fragment>", fragmentShaderSource)
}

func newProgram(dev gpu.Device, vertName, vertSource, fragName, fragSource string) (uint32, error) {
	vertexShader, err := compileShader(dev, vertName, vertSource, gpu.VertexStage)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(dev, fragName, fragSource, gpu.FragmentStage)
	if err != nil {
		dev.DeleteShader(vertexShader)
		return 0, err
	}

	// shader objects are released on every path below
	defer dev.DeleteShader(vertexShader)
	defer dev.DeleteShader(fragmentShader)

	program := dev.CreateProgram()
	if program == 0 {
		logError("Couldn't create shader program")
		return 0, ErrNoProgram
	}

	dev.AttachShader(program, vertexShader)
	dev.AttachShader(program, fragmentShader)
	dev.LinkProgram(program)
	dev.DetachShader(program, vertexShader)
	dev.DetachShader(program, fragmentShader)

	if !dev.ProgramLinked(program) {
		linkErr := &LinkError{
			Vertex:           vertName,
			Fragment:         fragName,
			Log:              dev.ProgramInfoLog(program),
			ActiveAttributes: dev.ActiveAttributes(program),
		}
		dev.DeleteProgram(program)

		metrics.ProgramLinkFailures.Inc()
		logError("Linking shader failed (vert. shader: %s, frag. shader: %s), %d active attributes\n%s",
			vertName, fragName, linkErr.ActiveAttributes, linkErr.Log)
		return 0, linkErr
	}

	metrics.ProgramsLoaded.Inc()
	slog.Debug(fmt.Sprintf("Linking succeeded for %s + %s, program %d", vertName, fragName, program), slog.String("module", "shaders"))
	return program, nil
}

func compileShader(dev gpu.Device, name, source string, stage gpu.ShaderStage) (uint32, error) {
	shader := dev.CreateShader(stage)
	if shader == 0 {
		logError("Couldn't create %s shader object for %s", stage, name)
		return 0, fmt.Errorf("could not create %s shader object", stage)
	}

	dev.ShaderSource(shader, source)
	dev.CompileShader(shader)

	if !dev.ShaderCompiled(shader) {
		compileErr := &CompileError{
			Stage: stage,
			Name:  name,
			Log:   dev.ShaderInfoLog(shader),
		}
		dev.DeleteShader(shader)

		metrics.ShaderCompileFailures.WithLabelValues(stage.String()).Inc()
		logError("Compilation of %s shader failed - %s\n%s", stage, name, compileErr.Log)
		return 0, compileErr
	}

	return shader, nil
}

// DestroyProgram deletes a program created by this package. It ignores 0.
func DestroyProgram(dev gpu.Device, program uint32) {
	if program == 0 {
		return
	}
	dev.DeleteProgram(program)
}

func logError(msg string, args ...interface{}) {
	slog.Error(fmt.Sprintf(msg, args...), slog.String("module", "shaders"))
}
