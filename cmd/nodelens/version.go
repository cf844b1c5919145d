package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nodelens/internal/version"
)

var versionFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(versionCmd)
}

// VersionResponseCLI describes the running binary
type VersionResponseCLI struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

func runVersion(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd, versionFormat)
	if err != nil {
		return err
	}
	info := version.Get()
	out, err := FormatResponse(&VersionResponseCLI{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		GoVersion: info.GoVersion,
		Platform:  info.Platform,
	}, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
