package shaders

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type changeRecorder struct {
	mu      sync.Mutex
	changed []string
}

func (r *changeRecorder) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changed = append(r.changed, path)
}

func (r *changeRecorder) saw(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.changed {
		if p == path {
			return true
		}
	}
	return false
}

func TestWatch(t *testing.T) {
	vertPath, fragPath := writeShaders(t, vertSource, fragSource)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &changeRecorder{}
	require.NoError(t, Watch(ctx, []string{vertPath, fragPath}, rec.record))

	require.NoError(t, os.WriteFile(fragPath, []byte(fragSource+"\n"), 0o644))

	assert.Eventually(t, func() bool { return rec.saw(fragPath) }, 5*time.Second, 20*time.Millisecond,
		"the callback gets the watched path itself")
	assert.False(t, rec.saw(vertPath))
	assert.False(t, rec.saw(""))
}

func TestWatchReplacedFile(t *testing.T) {
	vertPath, fragPath := writeShaders(t, vertSource, fragSource)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &changeRecorder{}
	require.NoError(t, Watch(ctx, []string{vertPath, fragPath}, rec.record))

	tmp := filepath.Join(filepath.Dir(vertPath), ".Simple2D.vert.swp")
	require.NoError(t, os.WriteFile(tmp, []byte(vertSource+"\n"), 0o644))
	require.NoError(t, os.Rename(tmp, vertPath))
	assert.Eventually(t, func() bool { return rec.saw(vertPath) }, 5*time.Second, 20*time.Millisecond)

	rec.mu.Lock()
	rec.changed = nil
	rec.mu.Unlock()

	// the new file is watched as well
	require.NoError(t, os.WriteFile(vertPath, []byte(vertSource), 0o644))
	assert.Eventually(t, func() bool { return rec.saw(vertPath) }, 5*time.Second, 20*time.Millisecond)
}

func TestWatchStopsOnCancel(t *testing.T) {
	vertPath, fragPath := writeShaders(t, vertSource, fragSource)

	ctx, cancel := context.WithCancel(context.Background())
	rec := &changeRecorder{}
	require.NoError(t, Watch(ctx, []string{vertPath, fragPath}, rec.record))
	cancel()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(fragPath, []byte(fragSource), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.False(t, rec.saw(fragPath))
}

func TestWatchMissingFile(t *testing.T) {
	err := Watch(context.Background(), []string{filepath.Join(t.TempDir(), "gone.vert")}, func(string) {})
	assert.Error(t, err)
}
