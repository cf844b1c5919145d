package ast

import (
	"fmt"
	"iter"
	"reflect"
)

// Node is an AST node that can be focused for inspection.
//
// Implementations must be comparable; two values are the same node only when
// they compare equal with ==. Pointer receivers satisfy this.
type Node interface {
	// Kind returns the grammar kind of the node.
	Kind() string
	// AttributeAxis yields the node's exposed attributes in declaration order.
	AttributeAxis() iter.Seq[Attribute]
}

// TypedNode is a Node that may carry a declared or resolved type.
type TypedNode interface {
	Node
	// DeclaredType returns the node's type and whether it has one.
	DeclaredType() (string, bool)
}

// Attribute is a single name/value pair on the attribute axis of a node.
// A nil Value, typed or not, stands for an absent value.
type Attribute struct {
	Name  string
	Value any
}

// Absent reports whether the attribute has no value.
func (a Attribute) Absent() bool {
	if a.Value == nil {
		return true
	}
	v := reflect.ValueOf(a.Value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// StringValue renders the value of the attribute.
func (a Attribute) StringValue() string {
	if a.Absent() {
		return "null"
	}
	return fmt.Sprint(a.Value)
}

// Point is a zero-based row/column position in a source file.
type Point struct {
	Row    uint32 `json:"row"`
	Column uint32 `json:"column"`
}

// Before reports whether p is strictly before o.
func (p Point) Before(o Point) bool {
	return p.Row < o.Row || (p.Row == o.Row && p.Column < o.Column)
}

// SyntaxNode is a node of a parsed syntax tree.
type SyntaxNode struct {
	kind     string
	field    string
	named    bool
	hasError bool
	start    Point
	end      Point
	text     string
	parent   *SyntaxNode
	children []*SyntaxNode
	tree     *Tree
}

// NewNode creates a detached named node. It is mostly useful for building
// trees by hand; parsed trees are produced by Parser.
func NewNode(kind string, start, end Point) *SyntaxNode {
	return &SyntaxNode{kind: kind, named: true, start: start, end: end}
}

// NewToken creates a detached anonymous leaf holding text, such as an operator.
func NewToken(kind, text string, start, end Point) *SyntaxNode {
	return &SyntaxNode{kind: kind, text: text, start: start, end: end}
}

// NewLeaf creates a detached named leaf holding text, such as an identifier.
func NewLeaf(kind, text string, start, end Point) *SyntaxNode {
	return &SyntaxNode{kind: kind, named: true, text: text, start: start, end: end}
}

// Append attaches child under field (which may be empty) and returns n.
func (n *SyntaxNode) Append(field string, child *SyntaxNode) *SyntaxNode {
	child.field = field
	child.parent = n
	child.tree = n.tree
	n.children = append(n.children, child)
	return n
}

// WithText sets the source text covered by n and returns n.
func (n *SyntaxNode) WithText(text string) *SyntaxNode {
	n.text = text
	return n
}

func (n *SyntaxNode) Kind() string { return n.kind }
func (n *SyntaxNode) Field() string { return n.field }
func (n *SyntaxNode) IsNamed() bool { return n.named }
func (n *SyntaxNode) HasError() bool { return n.hasError }
func (n *SyntaxNode) Start() Point { return n.start }
func (n *SyntaxNode) End() Point { return n.end }
func (n *SyntaxNode) Text() string { return n.text }
func (n *SyntaxNode) Parent() *SyntaxNode { return n.parent }
func (n *SyntaxNode) Tree() *Tree { return n.tree }
func (n *SyntaxNode) ChildCount() int { return len(n.children) }
func (n *SyntaxNode) Child(i int) *SyntaxNode {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns the node's children. The slice must not be modified.
func (n *SyntaxNode) Children() []*SyntaxNode {
	return n.children
}

// Language returns the language of the owning tree, or "" for detached nodes.
func (n *SyntaxNode) Language() Language {
	if n.tree == nil {
		return ""
	}
	return n.tree.Language
}

// ChildByField returns the first child attached under field.
func (n *SyntaxNode) ChildByField(field string) *SyntaxNode {
	for _, c := range n.children {
		if c.field == field {
			return c
		}
	}
	return nil
}

// ChildrenByField returns all children attached under field.
func (n *SyntaxNode) ChildrenByField(field string) []*SyntaxNode {
	var out []*SyntaxNode
	for _, c := range n.children {
		if c.field == field {
			out = append(out, c)
		}
	}
	return out
}

// IsFindBoundary reports whether n delimits a function or type body.
// Searches for enclosed nodes conventionally stop at such boundaries.
func (n *SyntaxNode) IsFindBoundary() bool {
	if !n.named {
		return false
	}
	lang := n.Language()
	return IsFunction(lang, n.kind) || IsType(lang, n.kind)
}

// AttributeAxis yields the attributes of the node.
func (n *SyntaxNode) AttributeAxis() iter.Seq[Attribute] {
	return func(yield func(Attribute) bool) {
		var image, field any
		if len(n.children) == 0 {
			image = n.text
		}
		if n.field != "" {
			field = n.field
		}
		attrs := []Attribute{
			{Name: "Kind", Value: n.kind},
			{Name: "Image", Value: image},
			{Name: "Field", Value: field},
			{Name: "Named", Value: n.named},
			{Name: "ChildCount", Value: len(n.children)},
			{Name: "HasError", Value: n.hasError},
			{Name: "BeginLine", Value: int(n.start.Row) + 1},
			{Name: "BeginColumn", Value: int(n.start.Column) + 1},
			{Name: "EndLine", Value: int(n.end.Row) + 1},
			{Name: "EndColumn", Value: int(n.end.Column)},
			{Name: "FindBoundary", Value: n.IsFindBoundary()},
			{Name: "SingleLine", Value: n.start.Row == n.end.Row},
		}
		for _, a := range attrs {
			if !yield(a) {
				return
			}
		}
	}
}

// DeclaredType returns the text of the node's "type" field, if present.
func (n *SyntaxNode) DeclaredType() (string, bool) {
	t := n.ChildByField("type")
	if t == nil || t.text == "" {
		return "", false
	}
	return t.text, true
}

// String returns a short description such as "identifier [3:5]".
func (n *SyntaxNode) String() string {
	return fmt.Sprintf("%s [%d:%d]", n.kind, n.start.Row+1, n.start.Column+1)
}

// Ancestors yields the parents of n from innermost to outermost.
func (n *SyntaxNode) Ancestors() iter.Seq[*SyntaxNode] {
	return func(yield func(*SyntaxNode) bool) {
		for p := n.parent; p != nil; p = p.parent {
			if !yield(p) {
				return
			}
		}
	}
}

// contains reports whether p lies within [start, end).
func (n *SyntaxNode) contains(p Point) bool {
	return !p.Before(n.start) && p.Before(n.end)
}
