package inspect

import (
	"nodelens/internal/ast"
	"nodelens/internal/scopes"
)

// ScopeResolver supplies the scopes enclosing a node, innermost first.
type ScopeResolver interface {
	Resolve(node ast.Node) []scopes.Level
}

// ScopeItem is a node of a scope tree. It holds either a scope or a
// declaration.
type ScopeItem struct {
	Value    scopes.Value
	parent   *ScopeItem
	children []*ScopeItem
}

func newScopeItem(v scopes.Value) *ScopeItem {
	return &ScopeItem{Value: v}
}

func (it *ScopeItem) add(child *ScopeItem) {
	child.parent = it
	it.children = append(it.children, child)
}

// Parent returns the enclosing item, or nil for the root.
func (it *ScopeItem) Parent() *ScopeItem {
	return it.parent
}

// Children returns the item's children. The slice must not be modified.
func (it *ScopeItem) Children() []*ScopeItem {
	return it.children
}

// Root returns the outermost ancestor of the item.
func (it *ScopeItem) Root() *ScopeItem {
	for it.parent != nil {
		it = it.parent
	}
	return it
}

// Depth counts the items from it up to the root, both included. The root
// has depth 1.
func (it *ScopeItem) Depth() int {
	depth := 0
	for p := it; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Declaration returns the held declaration, if the item holds one.
func (it *ScopeItem) Declaration() (scopes.Declared, bool) {
	d, ok := it.Value.(scopes.Declared)
	return d, ok
}

// Walk visits the subtree of it in pre-order with each item's level below
// it. Returning false from fn skips the item's children.
func (it *ScopeItem) Walk(fn func(item *ScopeItem, level int) bool) {
	var walk func(*ScopeItem, int)
	walk = func(n *ScopeItem, level int) {
		if !fn(n, level) {
			return
		}
		for _, c := range n.children {
			walk(c, level+1)
		}
	}
	walk(it, 0)
}

func (it *ScopeItem) String() string {
	if it.Value == nil {
		return ""
	}
	return it.Value.String()
}

// ScopeBuilder turns the scope chain of a node into a scope tree.
type ScopeBuilder struct {
	resolver ScopeResolver
}

// NewScopeBuilder creates a builder resolving scopes with resolver.
func NewScopeBuilder(resolver ScopeResolver) *ScopeBuilder {
	return &ScopeBuilder{resolver: resolver}
}

// Build returns the root of the scope tree of node, or nil when node has no
// enclosing scope. The root is the outermost scope. Each scope item lists its
// declarations followed by the item of the next inner scope.
func (b *ScopeBuilder) Build(node ast.Node) *ScopeItem {
	if isNil(node) || b.resolver == nil {
		return nil
	}
	return BuildScopeTree(b.resolver.Resolve(node))
}

// BuildScopeTree builds a scope tree from levels ordered innermost first.
func BuildScopeTree(levels []scopes.Level) *ScopeItem {
	var inner *ScopeItem
	for _, level := range levels {
		item := newScopeItem(level.Scope)
		for _, d := range level.Declarations {
			item.add(newScopeItem(d))
		}
		if inner != nil {
			item.add(inner)
		}
		inner = item
	}
	return inner
}

// Locate finds the first item, in pre-order, whose value equals target and
// whose level below root is at most maxDepth. The root is at level 0.
func Locate(root *ScopeItem, target scopes.Value, maxDepth int) *ScopeItem {
	if root == nil || target == nil {
		return nil
	}

	var found *ScopeItem
	root.Walk(func(item *ScopeItem, level int) bool {
		if found != nil || level > maxDepth {
			return false
		}
		if item.Value != nil && item.Value.Equal(target) {
			found = item
			return false
		}
		return true
	})
	return found
}
