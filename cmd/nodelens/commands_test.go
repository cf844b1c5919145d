package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nodelens/internal/config"
	nlerrors "nodelens/internal/errors"
	"nodelens/internal/paths"
	"nodelens/internal/storage"
)

// executeCommand runs the root command with args and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSettingsCommands(t *testing.T) {
	root := t.TempDir()

	out, err := executeCommand(t, "--root", root, "-q", "settings", "get", "showAllAttributes", "--format", "json")
	require.NoError(t, err)
	var resp SettingsResponseCLI
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Settings, 1)
	assert.Equal(t, "false", resp.Settings[0].Value)
	assert.Equal(t, "default", resp.Settings[0].Source)

	_, err = executeCommand(t, "--root", root, "-q", "settings", "set", "showAllAttributes", "true", "--format", "json")
	require.NoError(t, err)

	out, err = executeCommand(t, "--root", root, "-q", "settings", "list", "--format", "json")
	require.NoError(t, err)
	resp = SettingsResponseCLI{}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Settings, 1)
	assert.Equal(t, "true", resp.Settings[0].Value)
	assert.Equal(t, "persisted", resp.Settings[0].Source)
	assert.NotEmpty(t, resp.Settings[0].UpdatedAt)
}

func TestSettingsList_IncludesStoredKeys(t *testing.T) {
	root := t.TempDir()

	db, err := storage.Open(root, nil)
	require.NoError(t, err)
	require.NoError(t, storage.NewSettings(db).Set(context.Background(), "archivedToggle", "on"))
	require.NoError(t, db.Close())

	out, err := executeCommand(t, "--root", root, "-q", "settings", "list", "--format", "json")
	require.NoError(t, err)

	var resp SettingsResponseCLI
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Settings, 2)
	assert.Equal(t, "archivedToggle", resp.Settings[0].Key)
	assert.Equal(t, "on", resp.Settings[0].Value)
	assert.Equal(t, "persisted", resp.Settings[0].Source)
	assert.Equal(t, "showAllAttributes", resp.Settings[1].Key)
	assert.Equal(t, "default", resp.Settings[1].Source)
}

func TestSettingsCommands_InvalidInput(t *testing.T) {
	root := t.TempDir()

	_, err := executeCommand(t, "--root", root, "-q", "settings", "get", "colour")
	assert.Equal(t, nlerrors.InvalidArgument, nlerrors.CodeOf(err))

	_, err = executeCommand(t, "--root", root, "-q", "settings", "set", "showAllAttributes", "maybe")
	assert.Equal(t, nlerrors.InvalidArgument, nlerrors.CodeOf(err))
}

func TestInspectCommand_FileNotFound(t *testing.T) {
	root := t.TempDir()

	_, err := executeCommand(t, "--root", root, "-q", "inspect", root+"/missing.go", "--line", "1", "--col", "1")
	assert.Equal(t, nlerrors.FileNotFound, nlerrors.CodeOf(err))
}

func TestInspectCommand_BadFormat(t *testing.T) {
	root := t.TempDir()

	_, err := executeCommand(t, "--root", root, "-q", "inspect", "x.go", "--line", "1", "--col", "1", "--format", "xml")
	assert.Equal(t, nlerrors.InvalidArgument, nlerrors.CodeOf(err))
}

func TestLanguagesCommand(t *testing.T) {
	out, err := executeCommand(t, "--root", t.TempDir(), "-q", "languages", "--format", "json")
	require.NoError(t, err)

	var resp LanguagesResponseCLI
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	var names []string
	for _, l := range resp.Languages {
		names = append(names, l.Name)
	}
	assert.Contains(t, names, "Ruby")
	assert.Contains(t, names, "Go")
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand(t, "--root", t.TempDir(), "-q", "version", "--format", "json")
	require.NoError(t, err)

	var resp VersionResponseCLI
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotEmpty(t, resp.Version)
	assert.NotEmpty(t, resp.GoVersion)
}

func TestInitCommand(t *testing.T) {
	root := t.TempDir()

	out, err := executeCommand(t, "--root", root, "-q", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration written to: .nodelens/config.json")
	assert.FileExists(t, paths.ConfigPath(root))
	assert.FileExists(t, paths.DatabasePath(root))

	loaded, err := config.LoadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	// A second run keeps a customized config.
	custom := config.DefaultConfig()
	custom.Watch.DebounceMs = 900
	require.NoError(t, custom.Save(root))

	out, err = executeCommand(t, "--root", root, "-q", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already initialized")
	loaded, err = config.LoadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, 900, loaded.Watch.DebounceMs)

	_, err = executeCommand(t, "--root", root, "-q", "init", "--force")
	require.NoError(t, err)
	loaded, err = config.LoadConfig(root)
	require.NoError(t, err)
	assert.Equal(t, 200, loaded.Watch.DebounceMs)

	data, err := os.ReadFile(paths.ConfigPath(root))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"debounceMs\": 200")
}
