package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerFormat(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("Linking succeeded", slog.String("module", "shaders"), slog.Int("program", 3))

	line := out.String()
	assert.Regexp(t, `^\d\d:\d\d:\d\d\.\d\d\d INFO \[shaders\] Linking succeeded program=3\n$`, line)
	assert.NotContains(t, line, "\033[", "no colours when not writing to a terminal")
}

func TestHandlerAttributeOrder(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, nil))

	for i := 0; i < 20; i++ {
		logger.Info("frame", slog.Int("width", 800), slog.Int("count", 3), slog.String("stage", "vertex"), slog.Int("height", 600))
	}

	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		assert.True(t, strings.HasSuffix(line, "frame count=3 height=600 stage=vertex width=800"), line)
	}
}

func TestHandlerLevel(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Info("hidden")
	logger.Debug("hidden too")
	assert.Empty(t, out.String())

	logger.Error("shown")
	assert.Contains(t, out.String(), "ERROR shown")
}

func TestHandlerWithAttrs(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(NewHandler(&out, nil)).With(slog.String("module", "window"))

	logger.Warn("Failed to create GLFW window")
	assert.Contains(t, out.String(), "WARN [window] Failed to create GLFW window")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}
