package slogutil

import (
	"io"
	"log/slog"
)

// Options selects where and how a command logs.
type Options struct {
	Level  slog.Level
	Format string

	// File, when set, also receives records at FileLevel or above. The file
	// is rotated at MaxSize (see ParseSize), keeping MaxBackups old files.
	File       string
	FileLevel  slog.Level
	MaxSize    string
	MaxBackups int
}

// Open builds a logger writing to w and, if configured, to a log file. The
// returned closer is nil when no file was opened.
func Open(w io.Writer, opts Options) (*slog.Logger, io.Closer, error) {
	console := newFormatHandler(w, opts.Level, opts.Format)
	if opts.File == "" {
		return slog.New(console), nil, nil
	}

	rf, err := OpenRotatingFile(opts.File, ParseSize(opts.MaxSize), opts.MaxBackups)
	if err != nil {
		return nil, nil, err
	}
	file := NewHandler(rf, &slog.HandlerOptions{Level: opts.FileLevel})
	return slog.New(NewTeeHandler(console, file)), rf, nil
}
