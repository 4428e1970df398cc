// Package preview decodes wallpaper previews in the background and keeps a
// small cache of them for the UI.
//
// The UI goroutine owns a Controller. A single Worker goroutine decodes
// requests in FIFO order. They talk only through a request Queue and a
// results channel, so the cache needs no locking.
package preview

import (
	"context"

	"wallpick/internal/errors"
	"wallpick/internal/protocol"

	"golang.org/x/sync/errgroup"
)

// resultBuffer bounds how many finished previews may wait for the UI.
const resultBuffer = 32

// Pipeline is a running worker plus the controller that feeds it.
type Pipeline struct {
	*Controller

	queue  *Queue
	cancel context.CancelFunc
	group  *errgroup.Group
}

// Start launches the decode worker and returns the pipeline around it.
// Cancelling ctx or calling Stop shuts the worker down.
func Start(ctx context.Context, decoder Decoder, builder Builder, surface protocol.Surface, capacity int) *Pipeline {
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)

	queue := NewQueue()
	results := make(chan Result, resultBuffer)
	worker := NewWorker(queue, results, decoder, builder, surface)

	// Wake a worker idle in Pop when ctx ends.
	stopWake := context.AfterFunc(ctx, queue.Close)

	g.Go(func() error {
		defer stopWake()
		return worker.Run(ctx)
	})

	return &Pipeline{
		Controller: NewController(NewCache(capacity), queue, results),
		queue:      queue,
		cancel:     cancel,
		group:      g,
	}
}

// Stop closes the request queue, cancels the worker and waits for it. It
// returns nil for a normal shutdown.
func (p *Pipeline) Stop() error {
	p.queue.Close()
	p.cancel()
	err := p.group.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Queue exposes the request queue.
func (p *Pipeline) Queue() *Queue { return p.queue }
