package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fosdem/gltriangle/lib/gpu"
	"github.com/fosdem/gltriangle/lib/utils"
	"github.com/go-gl/mathgl/mgl32"
	yaml "github.com/goccy/go-yaml"
)

type Config struct {
	LogLevel    string      `yaml:"log_level"`
	ClearColour string      `yaml:"clear_colour"`
	Window      WindowCfg   `yaml:"window"`
	Shaders     ShaderCfg   `yaml:"shaders"`
	Vertices    [][]float32 `yaml:"vertices"`
	Loop        LoopCfg     `yaml:"loop"`
	Api         *ApiCfg     `yaml:"api"`
}

type WindowCfg struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	GLMajor   int `yaml:"gl_major"`
	GLMinor   int `yaml:"gl_minor"`
}

// ShaderCfg names the shader pair to load. With both paths empty the
// built-in shaders are used.
type ShaderCfg struct {
	Vertex   CfgPath
	Fragment CfgPath
	Watch    bool
	DumpDir  CfgPath `yaml:"dump_dir"`
	Colour   string
}

type LoopCfg struct {
	Enabled    bool
	IntervalMs *int `yaml:"interval_ms"`
}

type ApiCfg struct {
	Bind           string
	EnableProfiler bool `yaml:"enable_profiler"`
}

const (
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultIntervalMs = 500
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	interval := DefaultIntervalMs
	return &Config{
		LogLevel:    "info",
		ClearColour: "#1a4d4dff",
		Window: WindowCfg{
			Title:   "Test",
			Width:   DefaultWidth,
			Height:  DefaultHeight,
			GLMajor: 4,
			GLMinor: 1,
		},
		Shaders: ShaderCfg{
			Vertex:   "Simple2D.vert",
			Fragment: "Simple2D.frag",
			Colour:   "#ff8000ff",
		},
		Vertices: [][]float32{
			{1.0, -1.0},
			{1.0, 1.0},
			{-1.0, 1.0},
		},
		Loop: LoopCfg{
			IntervalMs: &interval,
		},
	}
}

// Parse reads a config file on top of Default and validates it.
func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			slog.Warn(fmt.Sprintf("could not close %s: %s", filename, err), slog.String("module", "config"))
		}
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}
	unmarshalBase = filepath.Dir(absFilename)

	m := yaml.NewDecoder(f)
	cfg := Default()
	// a config file without shader paths gets the built-in shaders
	cfg.Shaders.Vertex = ""
	cfg.Shaders.Fragment = ""
	cfg.Vertices = nil
	err = m.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", filename, err)
	}
	if cfg.Vertices == nil {
		cfg.Vertices = Default().Vertices
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	if c.ClearColour == "" {
		return fmt.Errorf("please set clear_colour in the config")
	}
	if !utils.ColourValidate(c.ClearColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.ClearColour)
	}

	err := c.Window.Validate()
	if err != nil {
		return fmt.Errorf("window is invalid: %w", err)
	}
	err = c.Shaders.Validate(c.Loop.Enabled)
	if err != nil {
		return fmt.Errorf("shaders are invalid: %w", err)
	}
	err = c.Loop.Validate()
	if err != nil {
		return fmt.Errorf("loop is invalid: %w", err)
	}

	if len(c.Vertices) == 0 || len(c.Vertices)%3 != 0 {
		return fmt.Errorf("the number of vertices must be a positive multiple of 3, got %d", len(c.Vertices))
	}
	for i, v := range c.Vertices {
		if len(v) != 2 {
			return fmt.Errorf("vertex %d must have exactly 2 components, got %d", i, len(v))
		}
	}

	if c.Api != nil && c.Api.Bind == "" {
		return fmt.Errorf("api bind address must be specified")
	}
	return nil
}

func (w *WindowCfg) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", w.Width, w.Height)
	}
	// explicit attribute locations need GLSL 3.30
	if w.GLMajor < 3 || (w.GLMajor == 3 && w.GLMinor < 3) {
		return fmt.Errorf("OpenGL 3.3 or later is required, got %d.%d", w.GLMajor, w.GLMinor)
	}
	return nil
}

func (s *ShaderCfg) Validate(looping bool) error {
	if (s.Vertex == "") != (s.Fragment == "") {
		return fmt.Errorf("vertex and fragment must be specified together")
	}
	if s.Builtin() {
		if s.Watch {
			return fmt.Errorf("cannot watch the built-in shaders")
		}
		if !utils.ColourValidate(s.Colour) {
			return fmt.Errorf("%s is not a valid RGBA hex colour", s.Colour)
		}
	} else if s.DumpDir != "" {
		return fmt.Errorf("dump_dir only applies to the built-in shaders")
	}
	if s.Watch && !looping {
		return fmt.Errorf("watching shaders requires loop.enabled")
	}
	return nil
}

func (s *ShaderCfg) Builtin() bool {
	return s.Vertex == "" && s.Fragment == ""
}

func (l *LoopCfg) Validate() error {
	if l.IntervalMs == nil {
		return fmt.Errorf("interval_ms must be specified")
	} else if *l.IntervalMs < 0 {
		return fmt.Errorf("interval_ms must be nonnegative")
	}
	return nil
}

func (l *LoopCfg) Interval() time.Duration {
	if l.IntervalMs == nil {
		return DefaultIntervalMs * time.Millisecond
	}
	return time.Duration(*l.IntervalMs) * time.Millisecond
}

// VertexList converts the configured vertices; call it on a validated config.
func (c *Config) VertexList() []gpu.Vertex {
	vertices := make([]gpu.Vertex, len(c.Vertices))
	for i, v := range c.Vertices {
		vertices[i].Position = mgl32.Vec2{v[0], v[1]}
	}
	return vertices
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %q %dx%d, OpenGL %d.%d core\n", c.Window.Title, c.Window.Width, c.Window.Height, c.Window.GLMajor, c.Window.GLMinor))

	b.WriteString("\nShaders:\n")
	if c.Shaders.Builtin() {
		b.WriteString(fmt.Sprintf("  built-in (%s)\n", c.Shaders.Colour))
	} else {
		b.WriteString(fmt.Sprintf("  %s\n  %s\n", c.Shaders.Vertex, c.Shaders.Fragment))
	}

	b.WriteString(fmt.Sprintf("\nVertices: %d\n", len(c.Vertices)))

	if c.Loop.Enabled {
		b.WriteString(fmt.Sprintf("\nLoop: every %s\n", c.Loop.Interval()))
	} else {
		b.WriteString("\nLoop: single frame\n")
	}

	if c.Api != nil {
		b.WriteString(fmt.Sprintf("\nApi: %s\n", c.Api.Bind))
	}

	return b.String()
}
