package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nodelens/internal/ast"
)

var languagesFormat string

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages",
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func init() {
	languagesCmd.Flags().StringVar(&languagesFormat, "format", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(languagesCmd)
}

// LanguagesResponseCLI lists the language registry
type LanguagesResponseCLI struct {
	ParsingAvailable bool               `json:"parsingAvailable"`
	Languages        []ast.LanguageInfo `json:"languages"`
}

func runLanguages(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(cmd, languagesFormat)
	if err != nil {
		return err
	}
	out, err := FormatResponse(&LanguagesResponseCLI{
		ParsingAvailable: ast.IsAvailable(),
		Languages:        ast.Languages(),
	}, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
