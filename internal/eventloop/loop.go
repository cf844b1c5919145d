// Package eventloop runs posted functions one at a time on a single
// goroutine.
package eventloop

import (
	"context"
	"sync"
)

// Loop is a FIFO queue of functions. Post may be called from any goroutine;
// RunPending and Run must be called from the goroutine that owns the loop.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}
}

// New creates an empty loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post schedules fn to run on a later turn of the loop.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued functions.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// RunPending runs queued functions until the queue is empty, including those
// posted while running, and returns how many ran.
func (l *Loop) RunPending() int {
	ran := 0
	for {
		fn := l.next()
		if fn == nil {
			return ran
		}
		fn()
		ran++
	}
}

// Run processes posted functions until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.RunPending()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}
