package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"nodelens/internal/config"
	nlerrors "nodelens/internal/errors"
	"nodelens/internal/paths"
	"nodelens/internal/storage"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize nodelens configuration",
	Long: `Creates .nodelens/ in the repository root with a default config.json and
the settings database. Running init again keeps the existing configuration
unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config.json with defaults")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configPath := paths.ConfigPath(repoRoot)

	_, statErr := os.Stat(configPath)
	exists := statErr == nil
	if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
		return nlerrors.New(nlerrors.InternalError, "failed to stat "+configPath, statErr)
	}

	if exists && !initForce {
		// Already initialized is success
		fmt.Fprintln(out, "nodelens already initialized.")
		fmt.Fprintf(out, "Configuration at: %s\n", paths.DisplayPath(configPath, repoRoot))
		fmt.Fprintln(out, "\nRun 'nodelens init --force' to reset it to defaults.")
		return nil
	}

	if err := config.DefaultConfig().Save(repoRoot); err != nil {
		return nlerrors.New(nlerrors.InternalError, "failed to write config", err)
	}

	db, err := storage.Open(repoRoot, logger)
	if err != nil {
		return nlerrors.New(nlerrors.StorageUnavailable, "failed to create settings database", err)
	}
	dbPath := db.Path()
	_ = db.Close()

	logger.Info("Initialized", "root", repoRoot, "reset", exists)
	fmt.Fprintf(out, "Configuration written to: %s\n", paths.DisplayPath(configPath, repoRoot))
	fmt.Fprintf(out, "Settings database: %s\n", paths.DisplayPath(dbPath, repoRoot))
	return nil
}
