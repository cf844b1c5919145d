package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/jedib0t/go-pretty/v6/table"

	"nodelens/internal/ast"
	"nodelens/internal/inspect"
	"nodelens/internal/output"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
	FormatYAML  OutputFormat = "yaml"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := output.DeterministicEncodeIndented(resp, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatYAML(resp interface{}) (string, error) {
	data, err := output.DeterministicEncodeYAML(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *InspectResponseCLI:
		return formatInspectHuman(v), nil
	case *SettingsResponseCLI:
		return formatSettingsHuman(v), nil
	case *LanguagesResponseCLI:
		return formatLanguagesHuman(v), nil
	case *VersionResponseCLI:
		return formatVersionHuman(v), nil
	default:
		return formatJSON(resp)
	}
}

func formatInspectHuman(resp *InspectResponseCLI) string {
	var b strings.Builder

	if resp.Node != nil {
		b.WriteString(fmt.Sprintf("%s  %s [%d:%d-%d:%d]\n", resp.File, resp.Node.Kind,
			resp.Node.StartLine, resp.Node.StartColumn, resp.Node.EndLine, resp.Node.EndColumn))
	} else {
		b.WriteString(fmt.Sprintf("%s  (no focus)\n", resp.File))
	}
	if info, ok := ast.Lookup(ast.Language(resp.Language)); ok {
		b.WriteString("Language: " + info.Name + "\n")
	}
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	// Attributes
	if len(resp.Attributes) == 0 {
		b.WriteString(inspect.NoAttributesPlaceholder + "\n\n")
	} else {
		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		title := "Attributes"
		if resp.ShowAllAttributes {
			title += " (all)"
		}
		t.SetTitle(title)
		for _, a := range resp.Attributes {
			t.AppendRow(table.Row{a})
		}
		b.WriteString(t.Render() + "\n\n")
	}

	// Metrics
	pane := strings.ReplaceAll(resp.Badge.PaneTitle, "\t", " ")
	if len(resp.Metrics) == 0 {
		b.WriteString(pane + "\n\n")
	} else {
		t := table.NewWriter()
		t.SetStyle(table.StyleLight)
		t.SetTitle(pane)
		t.AppendHeader(table.Row{"Metric", "Value"})
		for _, m := range resp.Metrics {
			t.AppendRow(table.Row{m.Name, m.Display})
		}
		b.WriteString(t.Render() + "\n\n")
	}

	// Scopes
	b.WriteString("Scopes:\n")
	if len(resp.Scopes) == 0 {
		b.WriteString("  (none)\n")
	} else {
		b.WriteString(renderScopeList(resp.Scopes) + "\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// renderScopeList draws the scope lines as a tree. Selected items are
// marked with an asterisk.
func renderScopeList(lines []ScopeLineCLI) string {
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedLight)

	level := 0
	for _, line := range lines {
		for level < line.Level {
			l.Indent()
			level++
		}
		for level > line.Level {
			l.UnIndent()
			level--
		}
		label := line.Label
		if line.Selected {
			label += " *"
		}
		l.AppendItem(label)
	}
	return l.Render()
}

func formatSettingsHuman(resp *SettingsResponseCLI) string {
	if len(resp.Settings) == 0 {
		return "No settings saved."
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Value", "Source"})
	for _, s := range resp.Settings {
		t.AppendRow(table.Row{s.Key, s.Value, s.Source})
	}
	return t.Render()
}

func formatLanguagesHuman(resp *LanguagesResponseCLI) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "ID", "Extensions", "Comment"})
	for _, lang := range resp.Languages {
		t.AppendRow(table.Row{lang.Name, lang.ID, strings.Join(lang.Extensions, " "), lang.LineComment})
	}
	out := t.Render()
	if !resp.ParsingAvailable {
		out += "\n\nParsing is unavailable: this binary was built without cgo."
	}
	return out
}

func formatVersionHuman(resp *VersionResponseCLI) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("nodelens version %s\n", resp.Version))
	b.WriteString(fmt.Sprintf("  Commit:     %s\n", resp.Commit))
	b.WriteString(fmt.Sprintf("  Built:      %s\n", resp.BuildDate))
	b.WriteString(fmt.Sprintf("  Go version: %s\n", resp.GoVersion))
	b.WriteString(fmt.Sprintf("  Platform:   %s", resp.Platform))
	return b.String()
}

// outputLine encodes resp as a single line of JSON.
func outputLine(resp interface{}) ([]byte, error) {
	data, err := output.DeterministicEncode(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return data, nil
}
