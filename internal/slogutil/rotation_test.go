package slogutil

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"", 0},
		{"invalid", 0},
		{"-5MB", 0},
		{"100", 100},
		{"100B", 100},
		{"1kb", 1024},
		{"10KB", 10240},
		{"10 MB", 10 * 1024 * 1024},
		{"1GB", 1024 * 1024 * 1024},
		{"1.5MB", int64(1.5 * 1024 * 1024)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseSize(tt.input); got != tt.expected {
				t.Errorf("ParseSize(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRotatingFile_Rotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nodelens.log")

	rf, err := OpenRotatingFile(path, 50, 2)
	if err != nil {
		t.Fatalf("OpenRotatingFile failed: %v", err)
	}

	line := []byte(strings.Repeat("a", 29) + "\n")
	for i := 0; i < 5; i++ {
		if _, err := rf.Write(line); err != nil {
			t.Fatalf("Write %d failed: %v", i, err)
		}
	}
	if err := rf.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	for _, p := range []string{path, path + ".1", path + ".2"} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s should exist: %v", filepath.Base(p), err)
		}
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Error("only two backups should be kept")
	}
}

func TestRotatingFile_NoRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.log")
	rf, err := OpenRotatingFile(path, 0, 2)
	if err != nil {
		t.Fatalf("OpenRotatingFile failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		_, _ = rf.Write([]byte("0123456789\n"))
	}
	_ = rf.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 110 {
		t.Errorf("expected 110 bytes, got %d", info.Size())
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Error("no backup expected without rotation")
	}
}

func TestOpen(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "watch.log")

	logger, closer, err := Open(&console, Options{
		Level:     slog.LevelWarn,
		File:      path,
		FileLevel: slog.LevelDebug,
		MaxSize:   "1MB",
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	logger.Debug("detail")
	logger.Warn("problem")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if strings.Contains(console.String(), "detail") || !strings.Contains(console.String(), "problem") {
		t.Errorf("unexpected console output: %s", console.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "detail") || !strings.Contains(string(data), "problem") {
		t.Errorf("unexpected file output: %s", data)
	}
}

func TestOpen_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	logger, closer, err := Open(&console, Options{Level: slog.LevelInfo})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if closer != nil {
		t.Error("expected no closer without a file")
	}
	logger.Info("hi")
	if !strings.Contains(console.String(), "hi") {
		t.Errorf("unexpected console output: %s", console.String())
	}
}
