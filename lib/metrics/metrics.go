package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesDrawn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gltriangle_frames_drawn_total",
		Help: "Total number of frames drawn and presented",
	})
	ShaderCompileFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gltriangle_shader_compile_failures_total",
		Help: "Total number of shaders that failed to compile, by stage",
	}, []string{"stage"})
	ProgramLinkFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gltriangle_program_link_failures_total",
		Help: "Total number of shader programs that failed to link",
	})
	ProgramsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gltriangle_programs_loaded_total",
		Help: "Total number of shader programs successfully linked",
	})
	ProgramReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gltriangle_program_reloads_total",
		Help: "Total number of shader program reload attempts, by result",
	}, []string{"result"})
	BufferUploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gltriangle_buffer_upload_bytes_total",
		Help: "Total number of bytes uploaded into vertex buffers",
	})
	GLErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gltriangle_gl_errors_total",
		Help: "Total number of OpenGL errors observed, by operation",
	}, []string{"op"})
)

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
