package watcher

import (
	"sync"
	"time"
)

// BatchDebouncer collects events and emits them as one batch once no new
// event arrived for the configured delay. Repeated events of the same type
// for the same path are collapsed.
type BatchDebouncer struct {
	delay  time.Duration
	emit   func([]Event)
	mu     sync.Mutex
	timer  *time.Timer
	events []Event
}

// NewBatchDebouncer creates a batch debouncer that calls emit on its own goroutine.
func NewBatchDebouncer(delay time.Duration, emit func([]Event)) *BatchDebouncer {
	return &BatchDebouncer{
		delay: delay,
		emit:  emit,
	}
}

// Add records an event and restarts the quiet period.
func (b *BatchDebouncer) Add(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n := len(b.events); n == 0 || b.events[n-1].Type != event.Type || b.events[n-1].Path != event.Path {
		b.events = append(b.events, event)
	}

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.delay, b.fire)
}

func (b *BatchDebouncer) fire() {
	b.mu.Lock()
	events := b.events
	b.events = nil
	b.timer = nil
	b.mu.Unlock()

	if len(events) > 0 && b.emit != nil {
		b.emit(events)
	}
}

// Cancel drops pending events without emitting them.
func (b *BatchDebouncer) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.events = nil
}
