package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wallpick/internal/errors"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isPNG(name string) bool { return strings.HasSuffix(name, ".png") }

// waitFor reads events until one satisfies pred. Other events are skipped.
func waitFor(t *testing.T, ch <-chan Event, what string, pred func(Event) bool) Event {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case event, ok := <-ch:
			require.True(t, ok, "event channel closed while waiting for %s", what)
			t.Logf("Received event: %+v", event)
			if pred(event) {
				return event
			}
		case <-timeout:
			t.Fatalf("Timeout waiting for %s", what)
		}
	}
}

func TestWatcherFsnotify(t *testing.T) {
	tempDir := t.TempDir()

	w, err := New(WithMatcher(isPNG))
	require.NoError(t, err, "New watcher creation failed")
	require.NoError(t, w.AddDirectory(tempDir), "Failed to add directory to watcher")
	require.NoError(t, w.Start(context.Background()), "Failed to start watcher")
	defer w.Stop()

	evChan := w.Events()
	assert.True(t, w.Running())
	assert.Equal(t, []string{tempDir}, w.Directories())

	// Allow a brief moment for fsnotify to initialize watches
	time.Sleep(100 * time.Millisecond)

	// Ignored by the matcher.
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("x"), 0644))

	wallpaper := filepath.Join(tempDir, "sunset.png")
	require.NoError(t, os.WriteFile(wallpaper, []byte("png"), 0644))

	event := waitFor(t, evChan, "create", func(e Event) bool {
		return e.Op.Has(fsnotify.Create) || e.Op.Has(fsnotify.Write)
	})
	assert.Equal(t, wallpaper, event.Path)
	require.NotNil(t, event.Info)
	assert.Equal(t, "sunset.png", event.Info.Name())
	assert.False(t, event.Removed())

	require.NoError(t, os.Remove(wallpaper))
	event = waitFor(t, evChan, "remove", func(e Event) bool { return e.Removed() })
	assert.Equal(t, wallpaper, event.Path)
	assert.Nil(t, event.Info)

	w.Stop()
	assert.False(t, w.Running())

	// The channel is closed once the loop has exited; drain leftovers first.
	for {
		select {
		case _, ok := <-evChan:
			if !ok {
				return
			}
		case <-time.After(time.Second):
			t.Fatal("Event channel should be closed after stop")
		}
	}
}

func TestWatcherContextCancel(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.AddDirectory(t.TempDir()))

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()

	select {
	case _, ok := <-w.Events():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("cancelling the context should close the channel")
	}
	w.Stop()
}

func TestWatcherStartTwice(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	assert.Error(t, w.Start(context.Background()))

	w.Stop()
	w.Stop()
	assert.Error(t, w.Start(context.Background()), "a stopped watcher cannot restart")
}

func TestAddDirectoryErrors(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Close()

	err = w.AddDirectory(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.IsFileNotFound(err))

	file := filepath.Join(t.TempDir(), "file.png")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	err = w.AddDirectory(file)
	assert.Equal(t, errors.InvalidPath, errors.KindOf(err))
	assert.Empty(t, w.Directories())
}

func TestCloseWithoutStart(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	assert.False(t, w.Running())

	w.Close()
	w.Close()

	err = w.AddDirectory(t.TempDir())
	require.Error(t, err, "the fsnotify handle is released")
	assert.Equal(t, errors.IOError, errors.KindOf(err))
}

func TestDroppedEvents(t *testing.T) {
	w, err := New(WithBuffer(1))
	require.NoError(t, err)

	w.send(Event{Path: "a"})
	w.send(Event{Path: "b"})
	assert.Equal(t, 1, w.Dropped())
}
