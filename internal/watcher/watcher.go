// Package watcher reports debounced changes to a single source file.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"nodelens/internal/slogutil"
)

// EventType represents the type of file system event
type EventType int

const (
	EventCreate EventType = iota
	EventModify
	EventDelete
	EventRename
)

// String returns a string representation of the event type
func (e EventType) String() string {
	switch e {
	case EventCreate:
		return "create"
	case EventModify:
		return "modify"
	case EventDelete:
		return "delete"
	case EventRename:
		return "rename"
	default:
		return "unknown"
	}
}

// Event represents a file system event
type Event struct {
	Type      EventType
	Path      string
	Timestamp time.Time
}

// ChangeHandler is called with each debounced batch of events for the file.
type ChangeHandler func(path string, events []Event)

// Config contains watcher configuration
type Config struct {
	DebounceMs int `json:"debounceMs" mapstructure:"debounceMs"`
}

// DefaultConfig returns the default watcher configuration
func DefaultConfig() Config {
	return Config{DebounceMs: 200}
}

// Watcher watches one file. The parent directory is watched so that editors
// replacing the file through a rename are still observed.
type Watcher struct {
	path    string
	config  Config
	logger  *slog.Logger
	handler ChangeHandler
}

// New creates a watcher for path. A nil logger discards output.
func New(path string, config Config, logger *slog.Logger, handler ChangeHandler) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watcher: nil change handler")
	}
	if config.DebounceMs < 0 {
		return nil, fmt.Errorf("watcher: negative debounce %dms", config.DebounceMs)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &Watcher{
		path:    abs,
		config:  config,
		logger:  logger,
		handler: handler,
	}, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	delay := time.Duration(w.config.DebounceMs) * time.Millisecond
	batch := NewBatchDebouncer(delay, func(events []Event) {
		w.logger.Debug("File changed", "path", w.path, "events", len(events))
		w.handler(w.path, events)
	})
	defer batch.Cancel()

	w.logger.Info("Watching file", "path", w.path, "debounce_ms", w.config.DebounceMs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			typ, ok := eventType(ev.Op)
			if !ok {
				continue
			}
			batch.Add(Event{Type: typ, Path: w.path, Timestamp: time.Now()})
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", "error", err)
		}
	}
}

// eventType maps an fsnotify operation to an event type. Permission changes
// are not reported.
func eventType(op fsnotify.Op) (EventType, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return EventCreate, true
	case op.Has(fsnotify.Write):
		return EventModify, true
	case op.Has(fsnotify.Remove):
		return EventDelete, true
	case op.Has(fsnotify.Rename):
		return EventRename, true
	default:
		return 0, false
	}
}
