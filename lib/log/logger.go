package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/fosdem/gltriangle/lib/utils"
)

// LogHandler prints records as "15:04:05.000 LEVEL [module] message".
// Attributes are rendered through a JSON sub-handler so that groups and
// WithAttrs behave like they do in the standard handlers.
type LogHandler struct {
	subHandler  slog.Handler
	buffer      *bytes.Buffer
	bufferMutex *sync.Mutex

	out    io.Writer
	colour bool
}

const (
	reset = "\033[0m"

	cyan         = 36
	lightGray    = 37
	darkGray     = 90
	lightRed     = 91
	lightYellow  = 93
	lightMagenta = 95
)

func (h *LogHandler) colorize(colorCode int, v string) string {
	if !h.colour {
		return v
	}
	return fmt.Sprintf("\033[%sm%s%s", strconv.Itoa(colorCode), v, reset)
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.subHandler.Enabled(ctx, level)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.subHandler = h.subHandler.WithAttrs(attrs)
	return &c
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.subHandler = h.subHandler.WithGroup(name)
	return &c
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + " "

	switch {
	case r.Level < slog.LevelInfo:
		level = h.colorize(darkGray, level)
	case r.Level < slog.LevelWarn:
		level = h.colorize(cyan, level)
	case r.Level < slog.LevelError:
		level = h.colorize(lightYellow, level)
	default:
		level = h.colorize(lightRed, level)
	}

	attrs, err := h.parseAttributes(ctx, r)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(h.colorize(lightGray, r.Time.Format("15:04:05.000 ")))
	b.WriteString(level)
	if attrs["module"] != nil {
		b.WriteString(h.colorize(lightMagenta, fmt.Sprintf("[%s] ", attrs["module"])))
	}
	b.WriteString(r.Message)
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		switch k {
		case "module", slog.TimeKey, slog.LevelKey, slog.MessageKey:
			continue
		}
		b.WriteString(h.colorize(darkGray, fmt.Sprintf(" %s=%v", k, attrs[k])))
	}
	b.WriteString("\n")

	h.bufferMutex.Lock()
	defer h.bufferMutex.Unlock()
	_, err = io.WriteString(h.out, b.String())
	return err
}

func (h *LogHandler) parseAttributes(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.bufferMutex.Lock()
	defer func() {
		h.buffer.Reset()
		h.bufferMutex.Unlock()
	}()
	if err := h.subHandler.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any
	err := json.Unmarshal(h.buffer.Bytes(), &attrs)
	if err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}
	return attrs, nil
}

// NewHandler returns a handler writing to out. Colours are used when out is
// a terminal.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *LogHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	colour := false
	if f, ok := out.(*os.File); ok {
		colour = utils.IsTerminal(f)
	}
	b := &bytes.Buffer{}
	return &LogHandler{
		buffer: b,
		subHandler: slog.NewJSONHandler(b, &slog.HandlerOptions{
			Level:       opts.Level,
			AddSource:   opts.AddSource,
			ReplaceAttr: opts.ReplaceAttr,
		}),
		bufferMutex: &sync.Mutex{},
		out:         out,
		colour:      colour,
	}
}

// ParseLevel maps the config's log_level onto a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// Setup installs a LogHandler on stdout as the default logger.
func Setup(level slog.Level) {
	slog.SetDefault(slog.New(NewHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}
