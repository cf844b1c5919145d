package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		eventType EventType
		expected  string
	}{
		{EventCreate, "create"},
		{EventModify, "modify"},
		{EventDelete, "delete"},
		{EventRename, "rename"},
		{EventType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.eventType.String())
		})
	}
}

func TestEventTypeFromOp(t *testing.T) {
	tests := []struct {
		op   fsnotify.Op
		want EventType
		ok   bool
	}{
		{fsnotify.Create, EventCreate, true},
		{fsnotify.Write, EventModify, true},
		{fsnotify.Write | fsnotify.Chmod, EventModify, true},
		{fsnotify.Remove, EventDelete, true},
		{fsnotify.Rename, EventRename, true},
		{fsnotify.Chmod, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got, ok := eventType(tt.op)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	handler := func(string, []Event) {}

	w, err := New("testdata/file.go", DefaultConfig(), nil, handler)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(w.Path()))

	_, err = New("file.go", DefaultConfig(), nil, nil)
	assert.Error(t, err, "nil handler")

	_, err = New("file.go", Config{DebounceMs: -1}, nil, handler)
	assert.Error(t, err, "negative debounce")
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.go")
	sibling := filepath.Join(dir, "other.go")
	require.NoError(t, os.WriteFile(target, []byte("package main\n"), 0644))

	batches := make(chan []Event, 4)
	w, err := New(target, Config{DebounceMs: 20}, nil, func(path string, events []Event) {
		assert.Equal(t, target, path)
		batches <- events
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(sibling, []byte("package main\n"), 0644))
	require.NoError(t, os.WriteFile(target, []byte("package main\n\nfunc main() {}\n"), 0644))

	select {
	case events := <-batches:
		require.NotEmpty(t, events)
		for _, ev := range events {
			assert.Equal(t, target, ev.Path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "gone", "main.go"), DefaultConfig(), nil, func(string, []Event) {})
	require.NoError(t, err)
	assert.Error(t, w.Run(context.Background()))
}

// pendingEvents returns the number of events waiting for the quiet period.
func pendingEvents(b *BatchDebouncer) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

func TestBatchDebouncerAdd(t *testing.T) {
	var received []Event
	var mu sync.Mutex

	b := NewBatchDebouncer(50*time.Millisecond, func(events []Event) {
		mu.Lock()
		received = events
		mu.Unlock()
	})

	b.Add(Event{Type: EventCreate, Path: "file1.go"})
	b.Add(Event{Type: EventModify, Path: "file2.go"})
	b.Add(Event{Type: EventDelete, Path: "file3.go"})
	assert.Equal(t, 3, pendingEvents(b))

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	assert.Len(t, received, 3)
	mu.Unlock()
}

func TestBatchDebouncerCollapsesRepeats(t *testing.T) {
	b := NewBatchDebouncer(time.Hour, nil)

	b.Add(Event{Type: EventModify, Path: "a.go"})
	b.Add(Event{Type: EventModify, Path: "a.go"})
	b.Add(Event{Type: EventModify, Path: "a.go"})
	assert.Equal(t, 1, pendingEvents(b))

	b.Add(Event{Type: EventRename, Path: "a.go"})
	b.Add(Event{Type: EventModify, Path: "a.go"})
	assert.Equal(t, 3, pendingEvents(b))

	b.Cancel()
}

func TestBatchDebouncerCancel(t *testing.T) {
	var called bool
	var mu sync.Mutex

	b := NewBatchDebouncer(50*time.Millisecond, func([]Event) {
		mu.Lock()
		called = true
		mu.Unlock()
	})
	b.Add(Event{Type: EventCreate, Path: "file.go"})
	b.Cancel()

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	assert.False(t, called, "emit should not be called after cancel")
	mu.Unlock()
	assert.Equal(t, 0, pendingEvents(b))
}

func TestBatchDebouncerFire(t *testing.T) {
	var received []Event

	b := NewBatchDebouncer(time.Hour, func(events []Event) {
		received = events
	})
	b.Add(Event{Type: EventCreate, Path: "file.go"})
	b.Cancel()
	b.Add(Event{Type: EventModify, Path: "file.go"})
	b.timer.Stop()
	b.fire()

	assert.Len(t, received, 1)
	assert.Equal(t, 0, pendingEvents(b))
}

func TestBatchDebouncerNoEmitWithNoEvents(t *testing.T) {
	called := false
	b := NewBatchDebouncer(10*time.Millisecond, func([]Event) { called = true })
	b.fire()
	assert.False(t, called, "emit should not be called with no events")
}
