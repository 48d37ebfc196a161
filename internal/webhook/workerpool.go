package webhook

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrDispatcherClosed is returned when a job is submitted after Close
	ErrDispatcherClosed = errors.New("webhook dispatcher closed")
	// ErrQueueFull is returned when every worker is busy and the queue has no room
	ErrQueueFull = errors.New("webhook queue full")
)

// Job is a unit of work run by the WorkerPool. Its error is only logged.
type Job func(ctx context.Context) error

// WorkerPool runs jobs on a fixed number of goroutines
type WorkerPool struct {
	jobs    chan Job
	wg      sync.WaitGroup
	workers int
	onError func(error)

	closeMu sync.Mutex
	closed  bool
}

// NewWorkerPool creates a pool with the given number of workers and queue capacity
func NewWorkerPool(workers, queue int, onError func(error)) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queue <= 0 {
		queue = workers * 2
	}
	if onError == nil {
		onError = func(error) {}
	}
	return &WorkerPool{
		jobs:    make(chan Job, queue),
		workers: workers,
		onError: onError,
	}
}

// Start launches the workers. They stop when ctx is done or after Close drains the queue.
func (p *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case job, ok := <-p.jobs:
					if !ok {
						return
					}
					if err := job(ctx); err != nil {
						p.onError(err)
					}
				}
			}
		}()
	}
}

// Submit enqueues a job without blocking
func (p *WorkerPool) Submit(job Job) error {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return ErrDispatcherClosed
	}

	select {
	case p.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting jobs and waits for the workers to finish
func (p *WorkerPool) Close() {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.closeMu.Unlock()
	p.wg.Wait()
}
