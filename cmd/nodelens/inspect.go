package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"nodelens/internal/ast"
	"nodelens/internal/eventloop"
)

var (
	inspectLine    int
	inspectCol     int
	inspectShowAll bool
	inspectSelect  string
	inspectFormat  string
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Inspect the syntax node at a position",
	Long: `Parse a source file, focus the innermost named node at --line/--col and print
its attributes, complexity metrics and enclosing scope tree.

Positional attributes (lines, columns, boundaries) are hidden unless
--show-all is given or the persisted showAllAttributes setting is on.

--select NAME selects a declaration or scope of the tree by name. Selecting a
declaration moves the focus to the node that declares it.

Examples:
  nodelens inspect main.go --line 12 --col 5
  nodelens inspect pkg/calc.py --line 3 --col 9 --show-all
  nodelens inspect main.go --line 12 --col 5 --select total --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectLine, "line", 0, "1-based line of the node")
	inspectCmd.Flags().IntVar(&inspectCol, "col", 0, "1-based column of the node")
	inspectCmd.Flags().BoolVar(&inspectShowAll, "show-all", false, "Show positional attributes too")
	inspectCmd.Flags().StringVar(&inspectSelect, "select", "", "Select the scope tree item with this name")
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "human", "Output format (human, json, yaml)")
	_ = inspectCmd.MarkFlagRequired("line")
	_ = inspectCmd.MarkFlagRequired("col")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := cmd.Context()
	filePath := args[0]

	format, err := resolveFormat(cmd, inspectFormat)
	if err != nil {
		return err
	}

	tree, err := parseFile(ctx, ast.NewParser(), filePath)
	if err != nil {
		return err
	}
	node, err := nodeAt(tree, inspectLine, inspectCol)
	if err != nil {
		return err
	}

	showAll := resolveShowAll(ctx, cmd.Flags().Changed("show-all"), inspectShowAll)
	s, err := newSession(eventloop.New(), showAll, logger)
	if err != nil {
		return err
	}

	s.focus(node, false)
	if inspectSelect != "" {
		if err := s.selectByName(inspectSelect); err != nil {
			return err
		}
	}

	out, err := FormatResponse(newInspectResponse(tree, inspectLine, inspectCol, s), format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)

	logger.Debug("Inspection completed",
		"file", filePath,
		"node", node.Kind(),
		"attributeRounds", s.recorder.AttributeRounds,
		"duration", time.Since(start).Milliseconds(),
	)
	return nil
}
