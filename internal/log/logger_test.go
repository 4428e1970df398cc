package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wallpick/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("Starting browser")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "Starting browser")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	buf.Reset()

	l.Infof("Scanned %d images", 9)
	assert.Contains(t, buf.String(), "Scanned 9 images")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	SetDebug(false)
	l.Debug("Decode finished")
	assert.Empty(t, buf.String())

	SetDebug(true)
	defer SetDebug(false)
	l.Debug("Decode finished")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "Decode finished")
	buf.Reset()

	l.Debugf("queue length %d", 2)
	assert.Contains(t, buf.String(), "queue length 2")
}

func TestLevelOption(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithLevel("warn"))

	l.Info("dropped")
	assert.Empty(t, buf.String())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")

	buf.Reset()
	l = NewLogger(WithOutput(&buf), WithLevel("nonsense"))
	l.Info("falls back to info")
	assert.Contains(t, buf.String(), "falls back to info")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("monitor", "DP-1"), F("cols", 38)).Info("Wallpaper set")
	output := buf.String()
	assert.Contains(t, output, "Wallpaper set")
	assert.Contains(t, output, "monitor=DP-1")
	assert.Contains(t, output, "cols=38")
	buf.Reset()

	l.With(F("monitor", "DP-1")).With(F("rows", 26)).Info("Resized")
	output = buf.String()
	assert.Contains(t, output, "monitor=DP-1")
	assert.Contains(t, output, "rows=26")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("path", "/walls/a.png"), F("count", 3)).Info("json message")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "json message", entry["message"])
	assert.Equal(t, "/walls/a.png", entry["path"])
	assert.Equal(t, float64(3), entry["count"])
	assert.Contains(t, entry, "timestamp")
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	original := logger
	require.NoError(t, Configure(WithOutput(&buf)))
	defer func() { logger = original }()

	LogWithError(fmt.Errorf("exec: hyprctl not found")).Error("Apply failed")
	assert.Contains(t, buf.String(), "hyprctl not found")
	assert.Contains(t, buf.String(), "error_kind=unknown")
	buf.Reset()

	decodeErr := errors.NewDecodeError("/walls/broken.png", errors.CorruptImage, nil)
	LogWithError(decodeErr).Error("decode failed")
	output := buf.String()
	assert.Contains(t, output, "decode failed")
	assert.Contains(t, output, "path=/walls/broken.png")
	assert.Contains(t, output, `error_kind="corrupt image"`)
	buf.Reset()

	configErr := errors.NewConfigError("config error", "ui.tick_ms", errors.InvalidConfig, nil)
	LogWithError(configErr).Error("config error occurred")
	assert.Contains(t, buf.String(), "param=ui.tick_ms")
	buf.Reset()

	compErr := errors.NewCompositorError("hyprpaper", "preload", "", errors.CompositorFailed, nil)
	LogError(compErr, "apply failed")
	assert.Contains(t, buf.String(), "backend=hyprpaper")
	assert.Contains(t, buf.String(), "apply failed")
}

func TestNilErrorHandling(t *testing.T) {
	var buf bytes.Buffer
	original := logger
	require.NoError(t, Configure(WithOutput(&buf)))
	defer func() { logger = original }()

	LogWithError(nil).Error("No cause")
	assert.Contains(t, buf.String(), "No cause")
	assert.Contains(t, buf.String(), "error=\"<nil>\"")
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.WithContext(context.Background()).Info("context message")
	assert.Contains(t, buf.String(), "context message")
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wallpick.log")

	original := logger
	require.NoError(t, Configure(WithFile(path)))
	defer func() {
		_ = Close()
		logger = original
	}()

	Info("Browser closed")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Browser closed")
}

func TestConfigureFileError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	original := logger
	err := Configure(WithFile(filepath.Join(blocker, "sub", "wallpick.log")))
	assert.Error(t, err)
	assert.Same(t, original, logger, "failed Configure must keep the previous logger")
}
