package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fosdem/gltriangle/lib/api"
	"github.com/fosdem/gltriangle/lib/config"
	"github.com/fosdem/gltriangle/lib/gpu/gldevice"
	"github.com/fosdem/gltriangle/lib/kbdctl"
	"github.com/fosdem/gltriangle/lib/rendering/shaders"
	"github.com/fosdem/gltriangle/lib/stats"
	"github.com/fosdem/gltriangle/lib/theatre"
	"github.com/fosdem/gltriangle/lib/window"
)

// MakeWindowAndDraw opens a window, draws the configured triangles and tears
// everything down again. It must run on the main thread.
func MakeWindowAndDraw(cfg *config.Config) error {
	err := window.Init()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGLFWInit, err)
	}
	defer window.Terminate()

	win, err := window.New(&cfg.Window)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWindow, err)
	}
	defer win.Destroy()

	dev, err := gldevice.Init()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrContext, err)
	}

	t := theatre.New()
	tracker := stats.New()

	release := kbdctl.SetupShortcutKeys(t, win)
	defer release()

	theApi := api.ServeInBackground(t, tracker, cfg.Api)
	if theApi != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			err := theApi.Shutdown(ctx)
			if err != nil {
				slog.Warn(fmt.Sprintf("could not stop web server: %s", err), slog.String("module", "app"))
			}
		}()
	}

	r := NewRenderer(cfg, dev, win, t, tracker)
	r.Poll = kbdctl.Poll
	r.Size = func() (int, int) { return window.FramebufferSize(win) }
	r.Progress = os.Stdout

	err = r.Start(window.FramebufferSize(win))
	if err != nil {
		return err
	}
	defer r.Close()

	if cfg.Shaders.Watch {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		paths := []string{string(cfg.Shaders.Vertex), string(cfg.Shaders.Fragment)}
		err = shaders.Watch(ctx, paths, func(path string) {
			t.RequestReload(fmt.Sprintf("%s changed", path))
		})
		if err != nil {
			slog.Warn(fmt.Sprintf("shader hot reload disabled: %s", err), slog.String("module", "app"))
		}
	}

	r.Run()
	fmt.Println()
	return nil
}
