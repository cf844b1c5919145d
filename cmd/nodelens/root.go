package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"nodelens/internal/config"
	nlerrors "nodelens/internal/errors"
	"nodelens/internal/paths"
	"nodelens/internal/slogutil"
	"nodelens/internal/version"
)

var (
	verbosity int
	quiet     bool
	rootFlag  string

	// Set by the root pre-run for every command.
	repoRoot string
	cfg      *config.Config
	logger   = slogutil.NewDiscardLogger()
)

var rootCmd = &cobra.Command{
	Use:   "nodelens",
	Short: "nodelens - inspect syntax tree nodes",
	Long: `nodelens focuses a node of a parsed source file and shows its attributes,
complexity metrics and the scopes and declarations enclosing it.

Settings live in .nodelens/ under the project root, which is the nearest
directory holding .nodelens or .git.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.SetVersionTemplate("nodelens version {{.Version}}\n")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all logs")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Project root (default: nearest directory with .nodelens or .git)")
}

// setup resolves the project root, loads its configuration and builds the
// console logger.
func setup(cmd *cobra.Command, args []string) error {
	if rootFlag != "" {
		repoRoot = rootFlag
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nlerrors.New(nlerrors.InternalError, "failed to get working directory", err)
		}
		repoRoot = paths.FindRoot(wd)
	}

	loaded, err := config.LoadConfig(repoRoot)
	if err != nil {
		return nlerrors.New(nlerrors.InvalidArgument, "failed to load "+paths.ConfigPath(repoRoot), err)
	}
	if err := loaded.Validate(); err != nil {
		return nlerrors.New(nlerrors.InvalidArgument, "invalid configuration", err)
	}
	cfg = loaded

	logger = slogutil.NewFormatLogger(os.Stderr, consoleLevel(cmd), cfg.Logging.Format)
	logger.Debug("Configuration loaded", "root", repoRoot, "version", cfg.Version)
	return nil
}

// consoleLevel applies -v/-q over the configured level.
func consoleLevel(cmd *cobra.Command) slog.Level {
	flags := cmd.Flags()
	if flags.Changed("verbose") || flags.Changed("quiet") {
		return slogutil.LevelFromVerbosity(verbosity, quiet)
	}
	return slogutil.LevelFromString(cfg.Logging.Level)
}

// resolveFormat returns the --format flag when set and the configured output
// format otherwise.
func resolveFormat(cmd *cobra.Command, flagValue string) (OutputFormat, error) {
	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format = flagValue
	}
	switch f := OutputFormat(format); f {
	case FormatJSON, FormatHuman, FormatYAML:
		return f, nil
	default:
		return "", nlerrors.New(nlerrors.InvalidArgument, fmt.Sprintf("unsupported format: %s", format), nil)
	}
}
