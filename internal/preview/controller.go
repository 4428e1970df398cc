package preview

import (
	"wallpick/internal/errors"
	"wallpick/internal/log"
	"wallpick/internal/protocol"
)

// Controller decides which images to decode and keeps the decoded ones.
//
// It must be used from a single goroutine (the UI loop). Nothing in it
// blocks: Select pushes onto an unbounded queue and Drain polls the results
// channel.
type Controller struct {
	current    string
	pending    string
	hasPending bool

	cache    *Cache
	requests Requester
	results  <-chan Result
	failures map[string]error
	// stale holds in-flight paths whose file changed after the request.
	stale map[string]bool

	disconnected bool
	logger       *log.Logger
}

// NewController wires a controller to the request side of a worker and to
// its results.
func NewController(cache *Cache, requests Requester, results <-chan Result) *Controller {
	return &Controller{
		cache:    cache,
		requests: requests,
		results:  results,
		failures: make(map[string]error),
		stale:    make(map[string]bool),
		logger:   log.LogWithFields(log.F("component", "preview")),
	}
}

// Select makes path the current selection. An empty path clears the
// selection. A decode is requested when path is neither cached nor already
// pending; reselecting the current path does nothing.
//
// The returned error is non-nil only when the worker is gone. Cached
// previews keep working in that case.
func (c *Controller) Select(path string) error {
	if path == c.current {
		return nil
	}
	c.current = path

	if path == "" || c.cache.Contains(path) {
		return nil
	}
	if c.hasPending && c.pending == path {
		return nil
	}
	return c.request(path)
}

func (c *Controller) request(path string) error {
	delete(c.failures, path)

	if err := c.requests.Push(path); err != nil {
		c.disconnect(err)
		return err
	}
	c.pending, c.hasPending = path, true
	c.logger.With(log.F("path", path)).Debug("Preview requested")
	return nil
}

// Drain handles every result that is ready without waiting for more and
// returns how many there were.
func (c *Controller) Drain() int {
	n := 0
	for {
		select {
		case res, ok := <-c.results:
			if !ok {
				c.results = nil
				c.disconnect(errors.ErrWorkerStopped)
				return n
			}
			c.handle(res)
			n++
		default:
			return n
		}
	}
}

func (c *Controller) handle(res Result) {
	if c.stale[res.Path] {
		delete(c.stale, res.Path)
		if c.hasPending && c.pending == res.Path {
			c.pending, c.hasPending = "", false
		}
		c.logger.With(log.F("path", res.Path)).Debug("Dropped preview of changed file")
		if res.Path == c.current && !c.disconnected {
			_ = c.request(res.Path)
		}
		return
	}

	if res.Err == nil && res.Protocol != nil {
		c.cache.Put(res.Path, res.Protocol)
		delete(c.failures, res.Path)
	} else {
		err := res.Err
		if err == nil {
			err = errors.NewDecodeError(res.Path, errors.ProtocolBuildFailed, nil)
		}
		c.failures[res.Path] = err
		c.logger.WithError(err).Warn("Preview failed")
	}

	if c.hasPending && c.pending == res.Path {
		c.pending, c.hasPending = "", false
	}
}

// disconnect records that the worker is gone. Only the first call logs.
func (c *Controller) disconnect(err error) {
	if c.disconnected {
		return
	}
	c.disconnected = true
	c.logger.WithError(err).Error("Preview worker unavailable, new previews disabled")
}

// Current returns the preview of the current selection if it is cached.
func (c *Controller) Current() (protocol.Protocol, bool) {
	if c.current == "" {
		return nil, false
	}
	return c.cache.Get(c.current)
}

// Failure returns the last decode error for path, if any. It is cleared
// when path is requested again or decodes successfully.
func (c *Controller) Failure(path string) error {
	return c.failures[path]
}

// Invalidate forgets the preview of path, for example after the file
// changed on disk. The current selection is requested again right away.
// A decode of path that is already in flight may have read the old file:
// its result is dropped and, if path is still current, requested again.
func (c *Controller) Invalidate(path string) error {
	if path == "" {
		return nil
	}
	c.cache.Remove(path)
	delete(c.failures, path)

	if c.hasPending && c.pending == path {
		c.stale[path] = true
		return nil
	}
	if path != c.current {
		return nil
	}
	return c.request(path)
}

// Pending returns the path of the outstanding request, if any.
func (c *Controller) Pending() (string, bool) {
	return c.pending, c.hasPending
}

// CurrentPath returns the current selection.
func (c *Controller) CurrentPath() string { return c.current }

// Disconnected reports whether the worker is known to be gone.
func (c *Controller) Disconnected() bool { return c.disconnected }

// Cache exposes the preview cache.
func (c *Controller) Cache() *Cache { return c.cache }
