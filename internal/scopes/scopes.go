// Package scopes resolves the lexical scopes enclosing a syntax node and the
// declarations visible in each of them.
package scopes

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"nodelens/internal/ast"
)

// Value is a scope or a declaration. Values compare by content, not identity,
// so values resolved from different nodes of the same tree can be matched.
type Value interface {
	Equal(other Value) bool
	String() string
}

// Declared is a Value bound to the node that declares it.
type Declared interface {
	Value
	DeclaringNode() ast.Node
}

// Level is one enclosing scope and the declarations it binds.
type Level struct {
	Scope        Value
	Declarations []Value
}

// Scope is a lexical region of a source file.
type Scope struct {
	Kind     string    `json:"kind"`
	Name     string    `json:"name,omitempty"`
	NodeKind string    `json:"nodeKind"`
	Path     string    `json:"path,omitempty"`
	Start    ast.Point `json:"start"`
	End      ast.Point `json:"end"`
	node     *ast.SyntaxNode
}

// Node returns the node that opens the scope.
func (s *Scope) Node() *ast.SyntaxNode {
	return s.node
}

// Equal reports whether other is a scope over the same region.
func (s *Scope) Equal(other Value) bool {
	o, ok := other.(*Scope)
	if !ok || s == nil || o == nil {
		return false
	}
	return s.Kind == o.Kind &&
		s.NodeKind == o.NodeKind &&
		s.Name == o.Name &&
		s.Path == o.Path &&
		s.Start == o.Start &&
		s.End == o.End
}

func (s *Scope) String() string {
	if s.Name != "" {
		return s.Kind + " " + s.Name
	}
	return fmt.Sprintf("%s [%d:%d]", s.Kind, s.Start.Row+1, s.Start.Column+1)
}

// Declaration is a name bound within a scope.
type Declaration struct {
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Path     string    `json:"path,omitempty"`
	Position ast.Point `json:"position"`
	node     *ast.SyntaxNode
}

// DeclaringNode returns the node holding the declared name.
func (d *Declaration) DeclaringNode() ast.Node {
	return d.node
}

// Equal reports whether other declares the same name at the same position.
func (d *Declaration) Equal(other Value) bool {
	o, ok := other.(*Declaration)
	if !ok || d == nil || o == nil {
		return false
	}
	return d.Name == o.Name &&
		d.Kind == o.Kind &&
		d.Path == o.Path &&
		d.Position == o.Position
}

func (d *Declaration) String() string {
	return d.Kind + " " + d.Name
}

// Resolver computes scope chains for nodes of parsed trees.
type Resolver struct{}

// NewResolver creates a scope resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve returns the scopes enclosing node, innermost first. A node that
// opens a scope is its own innermost scope. Nodes that are not part of a
// parsed tree have no scopes.
func (r *Resolver) Resolve(node ast.Node) []Level {
	sn, ok := node.(*ast.SyntaxNode)
	if !ok || sn == nil {
		return nil
	}

	g := grammarFor(sn.Language())
	path := ""
	if t := sn.Tree(); t != nil {
		path = t.Path
	}

	var levels []Level
	chain := append([]*ast.SyntaxNode{sn}, slices.Collect(sn.Ancestors())...)
	for _, n := range chain {
		kind, ok := g.scopes[n.Kind()]
		if !ok || !n.IsNamed() {
			continue
		}
		levels = append(levels, Level{
			Scope:        g.newScope(n, kind, path),
			Declarations: g.declarationsIn(n, path),
		})
	}
	return levels
}

func (g grammar) newScope(n *ast.SyntaxNode, kind, path string) *Scope {
	s := &Scope{
		Kind:     kind,
		NodeKind: n.Kind(),
		Path:     path,
		Start:    n.Start(),
		End:      n.End(),
		node:     n,
	}
	switch {
	case kind == KindFile:
		if path != "" {
			s.Name = filepath.Base(path)
		}
	case g.declarations[n.Kind()] != "":
		if names := g.names(n); len(names) > 0 {
			s.Name = names[0].Text()
		}
	}
	return s
}

// declarationsIn collects the declarations bound directly by scope, sorted by
// name. Nested scopes are not entered, but a nested scope that is itself a
// declaration (a function inside a file) is recorded.
func (g grammar) declarationsIn(scope *ast.SyntaxNode, path string) []Value {
	var decls []*Declaration
	add := func(name *ast.SyntaxNode, kind string) {
		text := name.Text()
		if kind == DeclImport {
			text = strings.Trim(text, "\"`'")
		}
		decls = append(decls, &Declaration{
			Name:     text,
			Kind:     kind,
			Path:     path,
			Position: name.Start(),
			node:     name,
		})
	}

	var visit func(n *ast.SyntaxNode)
	visit = func(n *ast.SyntaxNode) {
		for _, c := range n.Children() {
			if !c.IsNamed() {
				continue
			}
			if kind, ok := g.declarations[c.Kind()]; ok {
				for _, name := range g.names(c) {
					add(name, kind)
				}
				continue
			}
			if g.isParameterList(c.Kind()) {
				for _, p := range c.Children() {
					if !p.IsNamed() {
						continue
					}
					if ast.IsIdentifier(p.Kind()) {
						add(p, DeclParameter)
						continue
					}
					for _, name := range g.names(p) {
						add(name, DeclParameter)
					}
				}
				continue
			}
			if _, isScope := g.scopes[c.Kind()]; isScope {
				continue
			}
			visit(c)
		}
	}
	visit(scope)

	sort.SliceStable(decls, func(i, j int) bool {
		if decls[i].Name != decls[j].Name {
			return decls[i].Name < decls[j].Name
		}
		return decls[i].Position.Before(decls[j].Position)
	})

	out := make([]Value, len(decls))
	for i, d := range decls {
		out[i] = d
	}
	return out
}

// names returns the identifier nodes bound by a declaration node.
func (g grammar) names(n *ast.SyntaxNode) []*ast.SyntaxNode {
	if ids := identifiers(n.ChildrenByField("name")); len(ids) > 0 {
		return ids
	}

	for _, field := range []string{"left", "pattern", "declarator"} {
		var out []*ast.SyntaxNode
		for _, c := range n.ChildrenByField(field) {
			out = append(out, bindingNames(c)...)
		}
		if len(out) > 0 {
			return out
		}
	}

	if id := g.firstIdentifier(n); id != nil {
		return []*ast.SyntaxNode{id}
	}

	// Imports without an alias are named after their path.
	if p := n.ChildByField("path"); p != nil {
		return []*ast.SyntaxNode{p}
	}
	return nil
}

// bindingNames returns the identifiers bound by the target of an assignment
// or declarator.
func bindingNames(n *ast.SyntaxNode) []*ast.SyntaxNode {
	if ast.IsIdentifier(n.Kind()) {
		return []*ast.SyntaxNode{n}
	}
	if ids := identifiers(n.ChildrenByField("name")); len(ids) > 0 {
		return ids
	}
	return identifiers(n.Children())
}

func identifiers(nodes []*ast.SyntaxNode) []*ast.SyntaxNode {
	var out []*ast.SyntaxNode
	for _, n := range nodes {
		if ast.IsIdentifier(n.Kind()) {
			out = append(out, n)
		}
	}
	return out
}

// firstIdentifier finds the first identifier of n in pre-order, without
// entering bodies, values or nested scopes.
func (g grammar) firstIdentifier(n *ast.SyntaxNode) *ast.SyntaxNode {
	for _, c := range n.Children() {
		switch c.Field() {
		case "body", "value", "right", "parameters", "result":
			continue
		}
		if _, isScope := g.scopes[c.Kind()]; isScope {
			continue
		}
		if ast.IsIdentifier(c.Kind()) {
			return c
		}
		if id := g.firstIdentifier(c); id != nil {
			return id
		}
	}
	return nil
}
