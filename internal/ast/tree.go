package ast

// Tree is a parsed source file.
type Tree struct {
	Path     string
	Language Language
	Root     *SyntaxNode
}

// NewTree wraps a hand-built root node into a tree for lang.
func NewTree(path string, lang Language, root *SyntaxNode) *Tree {
	t := &Tree{Path: path, Language: lang, Root: root}
	if root != nil {
		adopt(t, root)
	}
	return t
}

func adopt(t *Tree, n *SyntaxNode) {
	n.tree = t
	for _, c := range n.children {
		adopt(t, c)
	}
}

// NodeAt returns the innermost named node containing the 1-based line and
// column, or nil when the position lies outside the tree.
func (t *Tree) NodeAt(line, column int) *SyntaxNode {
	if t == nil || t.Root == nil || line < 1 || column < 1 {
		return nil
	}
	p := Point{Row: uint32(line - 1), Column: uint32(column - 1)}
	if !t.Root.contains(p) {
		return nil
	}

	current := t.Root
	for {
		next := (*SyntaxNode)(nil)
		for _, c := range current.children {
			if c.contains(p) {
				next = c
				break
			}
		}
		if next == nil {
			break
		}
		current = next
	}

	for current != nil && !current.named {
		current = current.parent
	}
	return current
}

// Walk visits every node of the tree in pre-order. Returning false from fn
// skips the children of the visited node.
func (t *Tree) Walk(fn func(*SyntaxNode) bool) {
	if t == nil || t.Root == nil {
		return
	}
	walk(t.Root, fn)
}

func walk(n *SyntaxNode, fn func(*SyntaxNode) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		walk(c, fn)
	}
}

// FindAll returns every named node in the subtree of root whose kind is in
// kinds. Anonymous tokens are skipped: some grammars name keyword tokens after
// the statement they open (Ruby's "if" token inside an "if" node).
func FindAll(root *SyntaxNode, kinds []string) []*SyntaxNode {
	var result []*SyntaxNode
	if root == nil {
		return nil
	}
	walk(root, func(n *SyntaxNode) bool {
		if n.named && contains(kinds, n.kind) {
			result = append(result, n)
		}
		return true
	})
	return result
}
