package main

import (
	"nodelens/internal/ast"
	"nodelens/internal/complexity"
	"nodelens/internal/inspect"
	"nodelens/internal/output"
	"nodelens/internal/paths"
	"nodelens/internal/scopes"
)

// InspectResponseCLI is the published state of one inspection round
type InspectResponseCLI struct {
	File              string         `json:"file"`
	Language          string         `json:"language"`
	Position          PositionCLI    `json:"position"`
	Node              *NodeCLI       `json:"node,omitempty"`
	ShowAllAttributes bool           `json:"showAllAttributes"`
	Attributes        []string       `json:"attributes"`
	Metrics           []MetricCLI    `json:"metrics"`
	Badge             BadgeCLI       `json:"badge"`
	Scopes            []ScopeLineCLI `json:"scopes"`
	Selected          string         `json:"selected,omitempty"`
}

type PositionCLI struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type NodeCLI struct {
	Kind        string `json:"kind"`
	StartLine   int    `json:"startLine"`
	StartColumn int    `json:"startColumn"`
	EndLine     int    `json:"endLine"`
	EndColumn   int    `json:"endColumn"`
}

type MetricCLI struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Value   *float64 `json:"value,omitempty"`
	Display string   `json:"display"`
}

type BadgeCLI struct {
	Available int    `json:"available"`
	TabTitle  string `json:"tabTitle"`
	PaneTitle string `json:"paneTitle"`
	Disabled  bool   `json:"disabled"`
}

// ScopeLineCLI is one item of the scope tree in pre-order. Level 0 is the
// outermost scope.
type ScopeLineCLI struct {
	Level    int    `json:"level"`
	Kind     string `json:"kind"` // scope or declaration
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// newInspectResponse converts the recorded views of s into a response.
func newInspectResponse(tree *ast.Tree, line, col int, s *session) *InspectResponseCLI {
	view := s.recorder.View
	resp := &InspectResponseCLI{
		File:              paths.DisplayPath(tree.Path, repoRoot),
		Language:          string(tree.Language),
		Position:          PositionCLI{Line: line, Column: col},
		ShowAllAttributes: s.tracker.ShowAllAttributes(),
		Attributes:        inspect.RenderAttributes(view.Attributes),
		Metrics:           convertMetrics(view.Metrics),
		Badge: BadgeCLI{
			Available: view.Badge.Available,
			TabTitle:  view.Badge.TabTitle(),
			PaneTitle: view.Badge.PaneTitle(),
			Disabled:  view.Badge.Disabled(),
		},
		Scopes: convertScopes(view.ScopeRoot, view.Selected),
	}
	if n, ok := s.tracker.Focused().(*ast.SyntaxNode); ok && n != nil {
		resp.Node = &NodeCLI{
			Kind:        n.Kind(),
			StartLine:   int(n.Start().Row) + 1,
			StartColumn: int(n.Start().Column) + 1,
			EndLine:     int(n.End().Row) + 1,
			EndColumn:   int(n.End().Column),
		}
	}
	if view.Selected != nil {
		resp.Selected = view.Selected.String()
	}
	return resp
}

func convertMetrics(results []complexity.MetricResult) []MetricCLI {
	if len(results) == 0 {
		return nil
	}
	names := make(map[string]string)
	for _, m := range complexity.Metrics() {
		names[m.ID] = m.Name
	}

	out := make([]MetricCLI, 0, len(results))
	for _, r := range results {
		name := names[r.ID]
		if name == "" {
			name = r.ID
		}
		out = append(out, MetricCLI{
			ID:      r.ID,
			Name:    name,
			Value:   output.MetricValue(r.Value),
			Display: output.FormatMetric(r.Value),
		})
	}
	return out
}

func convertScopes(root, selected *inspect.ScopeItem) []ScopeLineCLI {
	if root == nil {
		return nil
	}
	var out []ScopeLineCLI
	root.Walk(func(item *inspect.ScopeItem, level int) bool {
		kind := "scope"
		if _, ok := item.Value.(scopes.Declared); ok {
			kind = "declaration"
		}
		out = append(out, ScopeLineCLI{
			Level:    level,
			Kind:     kind,
			Label:    item.String(),
			Selected: item == selected,
		})
		return true
	})
	return out
}
