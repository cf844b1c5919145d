package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLayout(t *testing.T) {
	root := filepath.Join("/work", "project")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"dir", Dir(root), filepath.Join(root, ".nodelens")},
		{"config", ConfigPath(root), filepath.Join(root, ".nodelens", "config.json")},
		{"database", DatabasePath(root), filepath.Join(root, ".nodelens", "nodelens.db")},
		{"logs", LogsDir(root), filepath.Join(root, ".nodelens", "logs")},
		{"log", LogPath(root), filepath.Join(root, ".nodelens", "logs", "nodelens.log")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, tt.got, tt.want)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	root := t.TempDir()

	dir, err := EnsureDir(root)
	if err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected %s to be a directory: %v", dir, err)
	}

	// Second call is a no-op.
	if _, err := EnsureDir(root); err != nil {
		t.Fatalf("EnsureDir again failed: %v", err)
	}
}

func TestFindRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	// Without markers the start directory is the root.
	if got := FindRoot(nested); got != nested {
		t.Errorf("FindRoot without marker = %s, want %s", got, nested)
	}

	if err := os.Mkdir(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatal(err)
	}
	if got := FindRoot(nested); got != root {
		t.Errorf("FindRoot with .git = %s, want %s", got, root)
	}

	if _, err := EnsureDir(filepath.Join(root, "a")); err != nil {
		t.Fatal(err)
	}
	if got := FindRoot(nested); got != filepath.Join(root, "a") {
		t.Errorf("FindRoot with .nodelens = %s, want %s", got, filepath.Join(root, "a"))
	}
}

func TestCanonicalizePath(t *testing.T) {
	root := t.TempDir()
	testFile := filepath.Join(root, "subdir", "test.go")
	if err := os.MkdirAll(filepath.Dir(testFile), 0755); err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}
	if err := os.WriteFile(testFile, []byte("package test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	canonical, err := CanonicalizePath(testFile, root)
	if err != nil {
		t.Fatalf("CanonicalizePath failed: %v", err)
	}
	if canonical != "subdir/test.go" {
		t.Errorf("Expected subdir/test.go, got %s", canonical)
	}

	if got := DisplayPath(testFile, root); got != "subdir/test.go" {
		t.Errorf("DisplayPath inside root = %s", got)
	}
	outside := filepath.Join(filepath.Dir(root), "elsewhere.go")
	if got := DisplayPath(outside, root); got != filepath.ToSlash(outside) {
		t.Errorf("DisplayPath outside root = %s", got)
	}
}
