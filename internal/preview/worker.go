package preview

import (
	"context"
	"fmt"
	"time"

	"wallpick/internal/errors"
	"wallpick/internal/log"
	"wallpick/internal/protocol"
)

// Worker decodes requested images one at a time, in request order, and
// posts a Result for each. It never touches the cache.
type Worker struct {
	queue   *Queue
	results chan<- Result
	decoder Decoder
	builder Builder
	surface protocol.Surface
	logger  *log.Logger
}

// NewWorker creates a worker reading from queue and writing to results.
// Protocols are built for surface.
func NewWorker(queue *Queue, results chan<- Result, decoder Decoder, builder Builder, surface protocol.Surface) *Worker {
	return &Worker{
		queue:   queue,
		results: results,
		decoder: decoder,
		builder: builder,
		surface: surface,
		logger:  log.LogWithFields(log.F("component", "preview-worker")),
	}
}

// Run processes requests until the queue is closed, which is the normal way
// to stop it and returns nil. If ctx is cancelled Run stops before the next
// request, and a result it was blocked sending is dropped with an error
// log; Run then returns ctx's error. Either way the results channel is
// closed and the queue refuses further requests when Run returns.
func (w *Worker) Run(ctx context.Context) error {
	defer close(w.results)
	defer w.queue.Close()

	w.logger.Debug("Preview worker started")
	for {
		path, ok := w.queue.Pop()
		if !ok {
			w.logger.Debug("Request queue closed, preview worker exiting")
			return nil
		}
		if err := ctx.Err(); err != nil {
			w.logger.Debug("Preview worker cancelled")
			return err
		}

		res := w.process(path)

		select {
		case w.results <- res:
		case <-ctx.Done():
			w.logger.With(log.F("path", path)).Error("Preview result could not be delivered, stopping worker")
			return ctx.Err()
		}
	}
}

// process never panics; a panic in the decoder or builder is reported as a
// failure for path.
func (w *Worker) process(path string) (res Result) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = Result{Path: path, Err: errors.NewDecodeError(path, errors.CorruptImage, fmt.Errorf("panic: %v", r))}
		}
		logger := w.logger.With(log.F("path", path), log.F("elapsed", time.Since(start).String()))
		if res.Err != nil {
			logger.WithError(res.Err).Debug("Decode failed")
		} else {
			logger.Debug("Decode finished")
		}
	}()

	img, err := w.decoder.Decode(path)
	if err != nil {
		if !errors.IsDecodeError(err) {
			kind := errors.KindOf(err)
			if kind == errors.Unknown {
				kind = errors.IOError
			}
			err = errors.NewDecodeError(path, kind, err)
		}
		return Result{Path: path, Err: err}
	}

	p, err := w.builder.Build(img, w.surface)
	if err != nil {
		return Result{Path: path, Err: errors.NewDecodeError(path, errors.ProtocolBuildFailed, err)}
	}
	if p == nil {
		return Result{Path: path, Err: errors.NewDecodeError(path, errors.ProtocolBuildFailed, nil)}
	}
	return Result{Path: path, Protocol: p}
}
