package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	nlerrors "nodelens/internal/errors"
	"nodelens/internal/inspect"
	"nodelens/internal/storage"
)

var settingsFormat string

// knownSettings lists the settings nodelens persists, with the configured
// default used when a setting was never saved.
var knownSettings = map[string]func() bool{
	inspect.ShowAllAttributesProperty: func() bool { return cfg.Inspector.ShowAllAttributes },
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change persisted settings",
	Long: `Persisted settings are stored in .nodelens/nodelens.db and override the
defaults from .nodelens/config.json.

Examples:
  nodelens settings list
  nodelens settings get showAllAttributes
  nodelens settings set showAllAttributes true`,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <true|false>",
	Short: "Persist a setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print all settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsList,
}

func init() {
	settingsCmd.PersistentFlags().StringVar(&settingsFormat, "format", "human", "Output format (human, json, yaml)")
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsListCmd)
	rootCmd.AddCommand(settingsCmd)
}

// SettingsResponseCLI lists settings and where their values come from
type SettingsResponseCLI struct {
	Settings []SettingCLI `json:"settings"`
}

type SettingCLI struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Source    string `json:"source"` // persisted or default
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if err := checkSettingKey(key); err != nil {
		return err
	}
	settings, closeDB, err := openSettings()
	if err != nil {
		return err
	}
	defer closeDB()

	s, err := lookupSetting(cmd, settings, key)
	if err != nil {
		return err
	}
	return printSettings(cmd, []SettingCLI{s})
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if err := checkSettingKey(key); err != nil {
		return err
	}
	value, err := strconv.ParseBool(args[1])
	if err != nil {
		return nlerrors.New(nlerrors.InvalidArgument, fmt.Sprintf("%s expects true or false, got %q", key, args[1]), nil)
	}

	settings, closeDB, err := openSettings()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := settings.SaveBool(cmd.Context(), key, value); err != nil {
		return nlerrors.New(nlerrors.StorageUnavailable, "failed to save "+key, err)
	}
	logger.Info("Setting saved", "key", key, "value", value)

	s, err := lookupSetting(cmd, settings, key)
	if err != nil {
		return err
	}
	return printSettings(cmd, []SettingCLI{s})
}

func runSettingsList(cmd *cobra.Command, args []string) error {
	settings, closeDB, err := openSettings()
	if err != nil {
		return err
	}
	defer closeDB()

	persisted, err := settings.List(cmd.Context())
	if err != nil {
		return nlerrors.New(nlerrors.StorageUnavailable, "failed to list settings", err)
	}

	// Persisted rows come first in key order; known settings that were never
	// saved are listed with their defaults.
	byKey := make(map[string]SettingCLI, len(persisted)+len(knownSettings))
	for _, st := range persisted {
		byKey[st.Key] = persistedSetting(st)
	}
	for _, key := range sortedSettingKeys() {
		if _, ok := byKey[key]; !ok {
			byKey[key] = defaultSetting(key)
		}
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]SettingCLI, 0, len(keys))
	for _, k := range keys {
		out = append(out, byKey[k])
	}
	return printSettings(cmd, out)
}

func checkSettingKey(key string) error {
	if _, ok := knownSettings[key]; !ok {
		return nlerrors.New(nlerrors.InvalidArgument, "unknown setting: "+key, nil).
			WithDetails(map[string][]string{"known": sortedSettingKeys()})
	}
	return nil
}

func sortedSettingKeys() []string {
	keys := make([]string, 0, len(knownSettings))
	for k := range knownSettings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func openSettings() (*storage.Settings, func(), error) {
	db, err := storage.Open(repoRoot, logger)
	if err != nil {
		return nil, nil, nlerrors.New(nlerrors.StorageUnavailable, "failed to open settings database", err)
	}
	logger.Debug("Settings database opened", "path", db.Path())
	return storage.NewSettings(db), func() { _ = db.Close() }, nil
}

func lookupSetting(cmd *cobra.Command, settings *storage.Settings, key string) (SettingCLI, error) {
	st, err := settings.Get(cmd.Context(), key)
	if errors.Is(err, storage.ErrSettingNotFound) {
		return defaultSetting(key), nil
	}
	if err != nil {
		return SettingCLI{}, nlerrors.New(nlerrors.StorageUnavailable, "failed to read "+key, err)
	}
	return persistedSetting(*st), nil
}

func defaultSetting(key string) SettingCLI {
	return SettingCLI{
		Key:    key,
		Value:  strconv.FormatBool(knownSettings[key]()),
		Source: "default",
	}
}

func persistedSetting(st storage.Setting) SettingCLI {
	return SettingCLI{
		Key:       st.Key,
		Value:     st.Value,
		Source:    "persisted",
		UpdatedAt: st.UpdatedAt.Format(time.RFC3339),
	}
}

func printSettings(cmd *cobra.Command, settings []SettingCLI) error {
	format, err := resolveFormat(cmd, settingsFormat)
	if err != nil {
		return err
	}
	out, err := FormatResponse(&SettingsResponseCLI{Settings: settings}, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
