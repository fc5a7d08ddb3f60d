package gpu

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/fosdem/gltriangle/lib/metrics"
)

// CreateVBO creates a vertex buffer containing the given vertices and leaves
// no array buffer bound. A buffer that could not be filled is released and
// 0 is returned together with the GL error.
func CreateVBO(dev Device, vertices []Vertex) (uint32, error) {
	if len(vertices) == 0 {
		return 0, fmt.Errorf("cannot create a vertex buffer without vertices")
	}

	buffer := dev.GenBuffer()
	if buffer == 0 {
		return 0, fmt.Errorf("could not generate buffer name")
	}

	size := int(VertexSize) * len(vertices)
	dev.BindArrayBuffer(buffer)
	dev.ArrayBufferData(size, unsafe.Pointer(&vertices[0]))
	dev.BindArrayBuffer(0)

	err := CheckError(dev)
	if err != nil {
		metrics.GLErrors.WithLabelValues("buffer_data").Inc()
		dev.DeleteBuffer(buffer)
		return 0, fmt.Errorf("could not upload %d vertices: %w", len(vertices), err)
	}

	metrics.BufferUploadBytes.Add(float64(size))
	slog.Debug(fmt.Sprintf("Uploaded %d vertices (%d bytes) into buffer %d", len(vertices), size, buffer), slog.String("module", "gpu"))
	return buffer, nil
}

// FreeVBO releases a buffer created by CreateVBO. It ignores 0.
func FreeVBO(dev Device, buffer uint32) {
	if buffer == 0 {
		return
	}
	dev.DeleteBuffer(buffer)
}
