package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type task struct {
	name string
	fn   func(ctx context.Context) error
}

// Dispatcher runs fire-and-forget work on a small worker pool instead of
// untracked goroutines. Task errors are logged, never propagated to the
// request that queued them. Used for notification fan-out from mutating
// handlers that should not wait on delivery.
type Dispatcher struct {
	tasks   chan task
	wg      sync.WaitGroup
	timeout time.Duration

	mu     sync.Mutex
	closed bool
}

// NewDispatcher starts workers goroutines draining a queue of queueSize.
func NewDispatcher(workers, queueSize int, timeout time.Duration) *Dispatcher {
	if workers <= 0 {
		workers = 2
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	d := &Dispatcher{
		tasks:   make(chan task, queueSize),
		timeout: timeout,
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}

	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for t := range d.tasks {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := t.fn(ctx); err != nil {
			log.Error().Err(err).Str("task", t.name).Msg("background task failed")
		}
		cancel()
	}
}

// Dispatch queues fn. If the queue is full or the dispatcher is closed, fn
// runs inline on the caller so work is never silently dropped.
func (d *Dispatcher) Dispatch(name string, fn func(ctx context.Context) error) {
	if d.enqueue(task{name: name, fn: fn}) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error().Err(err).Str("task", name).Msg("background task failed")
	}
}

// enqueue attempts the channel send while holding the mutex. Close sets
// closed and closes the channel under the same mutex, so a send can never
// race the close.
func (d *Dispatcher) enqueue(t task) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}

	select {
	case d.tasks <- t:
		return true
	default:
		log.Warn().Str("task", t.name).Msg("dispatcher queue full, running inline")
		return false
	}
}

// Close stops accepting tasks and waits for queued work to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.tasks)
	d.mu.Unlock()

	d.wg.Wait()
}
