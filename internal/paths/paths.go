// Package paths locates the files nodelens keeps under a project root.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DirName is the per-project state directory.
	DirName = ".nodelens"
	// ConfigFile is the config file name inside DirName.
	ConfigFile = "config.json"
	// DatabaseFile is the settings database name inside DirName.
	DatabaseFile = "nodelens.db"
	// LogFile is the watch log name inside the logs directory.
	LogFile = "nodelens.log"
)

// Dir returns <root>/.nodelens.
func Dir(root string) string {
	return filepath.Join(root, DirName)
}

// ConfigPath returns <root>/.nodelens/config.json.
func ConfigPath(root string) string {
	return filepath.Join(Dir(root), ConfigFile)
}

// DatabasePath returns <root>/.nodelens/nodelens.db.
func DatabasePath(root string) string {
	return filepath.Join(Dir(root), DatabaseFile)
}

// LogsDir returns <root>/.nodelens/logs.
func LogsDir(root string) string {
	return filepath.Join(Dir(root), "logs")
}

// LogPath returns <root>/.nodelens/logs/nodelens.log.
func LogPath(root string) string {
	return filepath.Join(LogsDir(root), LogFile)
}

// EnsureDir creates <root>/.nodelens if needed and returns its path.
func EnsureDir(root string) (string, error) {
	dir := Dir(root)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// FindRoot walks up from start to the nearest directory holding .nodelens or
// .git. It returns start when neither is found.
func FindRoot(start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	for dir := abs; ; {
		for _, marker := range []string{DirName, ".git"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		dir = parent
	}
}

// CanonicalizePath converts an absolute path to a root-relative path with
// forward slashes, resolving symlinks on both sides.
func CanonicalizePath(absolutePath string, root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		resolved = absolutePath
	}

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		rootResolved = root
	}

	relativePath, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(relativePath), nil
}

// DisplayPath returns path relative to root when it lies inside root, and
// path unchanged otherwise.
func DisplayPath(path, root string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := CanonicalizePath(abs, root)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return filepath.ToSlash(path)
	}
	return rel
}
