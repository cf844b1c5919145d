package inspect

import (
	"sort"

	"nodelens/internal/ast"
)

// NoAttributesPlaceholder is shown in place of an empty attribute view.
const NoAttributesPlaceholder = "No available attributes"

// typeEntryName names the entry carrying a node's declared type.
const typeEntryName = "typeIs()"

// hiddenAttributes are the positional and structural attributes dropped
// unless all attributes are shown.
var hiddenAttributes = map[string]bool{
	"BeginLine":    true,
	"EndLine":      true,
	"BeginColumn":  true,
	"EndColumn":    true,
	"FindBoundary": true,
	"SingleLine":   true,
}

// IsHiddenAttribute reports whether name is filtered out when not all
// attributes are shown.
func IsHiddenAttribute(name string) bool {
	return hiddenAttributes[name]
}

// AttributeEntry is one rendered attribute of a node. A nil Value is an
// absent value.
type AttributeEntry struct {
	Name  string  `json:"name" yaml:"name"`
	Value *string `json:"value" yaml:"value"`
}

// String renders the entry as "name = value", with absent values as "null".
func (e AttributeEntry) String() string {
	if e.Value == nil {
		return e.Name + " = null"
	}
	return e.Name + " = " + *e.Value
}

// ProjectAttributes lists the attributes of node sorted by their rendered
// form. Positional attributes are omitted unless showAll is set. Nodes with a
// declared type get an extra typeIs() entry. A nil node has no attributes.
func ProjectAttributes(node ast.Node, showAll bool) []AttributeEntry {
	if isNil(node) {
		return nil
	}

	var entries []AttributeEntry
	for attr := range node.AttributeAxis() {
		if !showAll && IsHiddenAttribute(attr.Name) {
			continue
		}
		entry := AttributeEntry{Name: attr.Name}
		if !attr.Absent() {
			v := attr.StringValue()
			entry.Value = &v
		}
		entries = append(entries, entry)
	}

	if typed, ok := node.(ast.TypedNode); ok {
		if t, ok := typed.DeclaredType(); ok {
			entries = append(entries, AttributeEntry{Name: typeEntryName, Value: &t})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].String() < entries[j].String()
	})
	return entries
}

// RenderAttributes returns the rendered form of each entry.
func RenderAttributes(entries []AttributeEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.String()
	}
	return out
}
