package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/fosdem/gltriangle/lib/config"
	"github.com/fosdem/gltriangle/lib/gpu"
	"github.com/fosdem/gltriangle/lib/metrics"
	"github.com/fosdem/gltriangle/lib/rendering"
	"github.com/fosdem/gltriangle/lib/rendering/shaders"
	"github.com/fosdem/gltriangle/lib/stats"
	"github.com/fosdem/gltriangle/lib/theatre"
	"github.com/fosdem/gltriangle/lib/utils"
)

// Surface is the window being drawn to. *glfw.Window satisfies it.
type Surface interface {
	SwapBuffers()
	ShouldClose() bool
}

// Renderer runs the draw loop on the thread owning the GL context.
type Renderer struct {
	cfg     *config.Config
	dev     gpu.Device
	surface Surface
	theatre *theatre.Theatre
	stats   *stats.Tracker
	glvars  *rendering.GLVars
	timer   *utils.FrameTimer

	// Poll processes pending window events; Size reports the framebuffer
	// size. Both may be nil.
	Poll func()
	Size func() (int, int)
	// Progress receives a dot after every presented frame.
	Progress io.Writer
}

func NewRenderer(cfg *config.Config, dev gpu.Device, surface Surface, t *theatre.Theatre, tracker *stats.Tracker) *Renderer {
	return &Renderer{
		cfg:      cfg,
		dev:      dev,
		surface:  surface,
		theatre:  t,
		stats:    tracker,
		timer:    utils.NewFrameTimer(),
		Progress: io.Discard,
	}
}

// LoadProgram builds the configured shader program: the files named in the
// config, or the built-in shaders when there are none.
func LoadProgram(dev gpu.Device, cfg *config.Config) (uint32, error) {
	var program uint32
	var err error
	if cfg.Shaders.Builtin() {
		data := &shaders.ShaderData{
			GLSLVersion: shaders.GLSLVersion(cfg.Window.GLMajor, cfg.Window.GLMinor),
			Colour:      utils.ColourParse(cfg.Shaders.Colour),
		}
		program, err = shaders.BuildBuiltinProgram(dev, data, string(cfg.Shaders.DumpDir))
	} else {
		program, err = shaders.LoadProgram(dev, string(cfg.Shaders.Vertex), string(cfg.Shaders.Fragment))
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrShader, err)
	}
	return program, nil
}

// Start loads the program, uploads the vertices and sets the viewport to
// width x height.
func (r *Renderer) Start(width, height int) error {
	program, err := LoadProgram(r.dev, r.cfg)
	if err != nil {
		return err
	}

	r.glvars = rendering.NewGLVars(r.dev, program, r.cfg.VertexList(), utils.ColourParse(r.cfg.ClearColour))
	err = r.glvars.Start(width, height)
	if err != nil {
		r.glvars.Delete()
		r.glvars = nil
		return fmt.Errorf("%w: %w", ErrBuffer, err)
	}

	r.stats.ProgramChanged(program, false)
	log("Drawing %d vertices with program %d", len(r.cfg.Vertices), program)
	return nil
}

// Frame performs one poll, clear, draw and swap.
func (r *Renderer) Frame() {
	r.timer.Next()
	if r.Poll != nil {
		r.Poll()
	}

	if r.theatre.TakeReload() {
		r.reload()
	}
	if r.Size != nil {
		w, h := r.Size()
		if int32(w) != r.glvars.Width || int32(h) != r.glvars.Height {
			r.glvars.Resize(w, h)
		}
	}

	r.glvars.DrawFrame()
	r.surface.SwapBuffers()
	r.stats.FrameDrawn()
}

// Run draws one frame, or keeps drawing until the window should close or a
// shutdown is requested when the loop is enabled. A single frame is followed
// by the full interval; in the loop the interval is the frame period. Every
// frame ends with a progress dot.
func (r *Renderer) Run() {
	interval := r.cfg.Loop.Interval()
	for {
		r.Frame()
		if r.cfg.Loop.Enabled {
			r.timer.Pace(interval)
		} else {
			r.timer.Hold(interval)
		}
		_, _ = fmt.Fprint(r.Progress, ".")

		if !r.cfg.Loop.Enabled || r.surface.ShouldClose() || r.theatre.ShutdownRequested() {
			return
		}
	}
}

func (r *Renderer) reload() {
	program, err := LoadProgram(r.dev, r.cfg)
	if err != nil {
		metrics.ProgramReloads.WithLabelValues("failure").Inc()
		slog.Error(fmt.Sprintf("Keeping shader program %d: %s", r.glvars.Program, err), slog.String("module", "app"))
		r.theatre.ProgramReloaded(r.glvars.Program, err)
		return
	}

	r.glvars.SwapProgram(program)
	metrics.ProgramReloads.WithLabelValues("success").Inc()
	r.stats.ProgramChanged(program, true)
	r.theatre.ProgramReloaded(program, nil)
}

// Program is the handle currently used for drawing, or 0 before Start.
func (r *Renderer) Program() uint32 {
	if r.glvars == nil {
		return 0
	}
	return r.glvars.Program
}

// Close releases the buffer, the vertex array and the program.
func (r *Renderer) Close() {
	if r.glvars != nil {
		r.glvars.Delete()
	}
}

func log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "app"))
}
