package inspect

import (
	"iter"

	"nodelens/internal/ast"
	"nodelens/internal/complexity"
	"nodelens/internal/scopes"
)

type fakeNode struct {
	kind     string
	attrs    []ast.Attribute
	declType string
}

func newFakeNode(kind string, attrs ...ast.Attribute) *fakeNode {
	return &fakeNode{kind: kind, attrs: attrs}
}

func (n *fakeNode) Kind() string { return n.kind }

func (n *fakeNode) AttributeAxis() iter.Seq[ast.Attribute] {
	return func(yield func(ast.Attribute) bool) {
		for _, a := range n.attrs {
			if !yield(a) {
				return
			}
		}
	}
}

func (n *fakeNode) DeclaredType() (string, bool) {
	return n.declType, n.declType != ""
}

func attr(name string, value any) ast.Attribute {
	return ast.Attribute{Name: name, Value: value}
}

// fakeScope compares by name only, like scopes from different resolutions
// of the same source.
type fakeScope struct{ name string }

func (s fakeScope) Equal(other scopes.Value) bool {
	o, ok := other.(fakeScope)
	return ok && o.name == s.name
}

func (s fakeScope) String() string { return "scope " + s.name }

type fakeDecl struct {
	name string
	node ast.Node
}

func (d fakeDecl) Equal(other scopes.Value) bool {
	o, ok := other.(fakeDecl)
	return ok && o.name == d.name
}

func (d fakeDecl) String() string { return "decl " + d.name }

func (d fakeDecl) DeclaringNode() ast.Node { return d.node }

type fakeResolver map[ast.Node][]scopes.Level

func (r fakeResolver) Resolve(node ast.Node) []scopes.Level {
	return r[node]
}

type fakeEvaluator struct {
	results map[ast.Node][]complexity.MetricResult
	errs    map[ast.Node]error
	calls   int
}

func (e *fakeEvaluator) EvaluateAll(node ast.Node) ([]complexity.MetricResult, error) {
	e.calls++
	if err := e.errs[node]; err != nil {
		return nil, err
	}
	if r, ok := e.results[node]; ok {
		return r, nil
	}
	return nil, complexity.ErrUnsupportedNode
}

// level builds a scope level from a scope name and declarations.
func level(scope string, decls ...scopes.Value) scopes.Level {
	return scopes.Level{Scope: fakeScope{name: scope}, Declarations: decls}
}

func decl(name string) fakeDecl {
	return fakeDecl{name: name}
}

// labels lists the items of a scope tree in pre-order, indented by level.
func labels(root *ScopeItem) []string {
	if root == nil {
		return nil
	}
	var out []string
	root.Walk(func(item *ScopeItem, level int) bool {
		prefix := ""
		for i := 0; i < level; i++ {
			prefix += "  "
		}
		out = append(out, prefix+item.String())
		return true
	})
	return out
}
