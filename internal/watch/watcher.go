// Package watch reports changes to the wallpaper directory so the browser
// can rescan it and drop stale previews.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"wallpick/internal/errors"
	"wallpick/internal/log"

	"github.com/fsnotify/fsnotify"
)

const defaultBuffer = 32

// Event is a change to one image file.
type Event struct {
	Path string
	Info os.FileInfo // nil for removals and renames
	At   time.Time
	Op   fsnotify.Op
}

// Removed reports whether the file is gone from its old path.
func (e Event) Removed() bool {
	return e.Op.Has(fsnotify.Remove) || e.Op.Has(fsnotify.Rename)
}

// Matcher decides which file names are interesting. A nil Matcher accepts
// everything.
type Matcher func(name string) bool

// Watcher turns fsnotify events for a set of directories into Events.
type Watcher struct {
	fs     *fsnotify.Watcher
	match  Matcher
	events chan Event
	logger *log.Logger

	mu      sync.RWMutex
	dirs    []string
	running bool
	dropped int
	cancel  context.CancelFunc
	done    chan struct{}

	closeOnce sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithMatcher only reports files whose base name satisfies m.
func WithMatcher(m Matcher) Option {
	return func(w *Watcher) { w.match = m }
}

// WithBuffer sets how many events may wait for a reader before new ones are
// dropped. The default is 32.
func WithBuffer(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.events = make(chan Event, n)
		}
	}
}

func New(opts ...Option) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create fsnotify watcher")
	}

	w := &Watcher{
		fs:     fs,
		events: make(chan Event, defaultBuffer),
		logger: log.LogWithFields(log.F("component", "watch")),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// AddDirectory starts watching dir. Adding the same directory twice is a
// no-op.
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewFileError("directory not found", dir, errors.FileNotFound, nil)
		}
		return errors.NewFileError("cannot watch directory", dir, errors.IOError, err)
	}
	if !info.IsDir() {
		return errors.NewFileError("not a directory", dir, errors.InvalidPath, nil)
	}
	if err := w.fs.Add(dir); err != nil {
		return errors.NewFileError("cannot watch directory", dir, errors.IOError, err)
	}

	w.mu.Lock()
	if !slices.Contains(w.dirs, dir) {
		w.dirs = append(w.dirs, dir)
	}
	w.mu.Unlock()

	w.logger.With(log.F("dir", dir)).Debug("Watching directory")
	return nil
}

// Events delivers file changes. It is closed once the watcher has stopped.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins delivering events. The watcher stops when ctx is cancelled
// or Stop is called. A watcher cannot be restarted.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.running:
		return errors.New("watcher already running")
	case w.done != nil:
		return errors.New("watcher already stopped")
	}
	w.running = true

	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if e, ok := w.translate(ev); ok {
				w.send(e)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Error("fsnotify error")
		}
	}
}

func (w *Watcher) translate(ev fsnotify.Event) (Event, bool) {
	if w.match != nil && !w.match(filepath.Base(ev.Name)) {
		return Event{}, false
	}
	e := Event{Path: ev.Name, At: time.Now(), Op: ev.Op}

	if e.Removed() {
		return e, true
	}
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
		// Chmod only.
		return Event{}, false
	}

	info, err := os.Stat(ev.Name)
	if err != nil {
		// Gone again before we looked.
		if !os.IsNotExist(err) {
			w.logger.With(log.F("path", ev.Name)).WithError(err).Warn("Cannot stat changed file")
		}
		return Event{}, false
	}
	if info.IsDir() {
		return Event{}, false
	}
	e.Info = info
	return e, true
}

// send never blocks; events are dropped when nobody keeps up.
func (w *Watcher) send(e Event) {
	select {
	case w.events <- e:
	default:
		w.mu.Lock()
		w.dropped++
		w.mu.Unlock()
		w.logger.With(log.F("path", e.Path)).Warn("Event channel full, dropped event")
	}
}

// Stop halts the watcher and waits for its event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	cancel()
	<-done
	w.closeFS()
}

// Close stops the watcher if it runs and releases the fsnotify handle. It
// is safe to call on a watcher that was never started, and more than once.
func (w *Watcher) Close() {
	w.Stop()
	w.closeFS()
}

func (w *Watcher) closeFS() {
	w.closeOnce.Do(func() {
		if err := w.fs.Close(); err != nil {
			w.logger.WithError(err).Warn("Closing fsnotify watcher failed")
		}
	})
}

func (w *Watcher) Running() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// Dropped counts events discarded because the channel was full.
func (w *Watcher) Dropped() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.dropped
}

// Directories returns a copy of the watched directories.
func (w *Watcher) Directories() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.dirs)
}
