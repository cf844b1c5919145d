package complexity

import (
	"math"

	"nodelens/internal/ast"
)

// unit is a node under evaluation together with its category.
type unit struct {
	node     *ast.SyntaxNode
	lang     ast.Language
	category Category
}

var registry = []Metric{
	{
		ID:          "lines",
		Name:        "Lines",
		Description: "Number of source lines spanned by the unit",
		Categories:  []Category{CategoryFunction, CategoryType},
		compute:     lines,
	},
	{
		ID:          "cyclomatic",
		Name:        "Cyclomatic complexity",
		Description: "Decision points plus one",
		Categories:  []Category{CategoryFunction},
		compute:     func(u unit) float64 { return float64(cyclomatic(u.node, u.lang)) },
	},
	{
		ID:          "cognitive",
		Name:        "Cognitive complexity",
		Description: "Decision points weighted by nesting depth",
		Categories:  []Category{CategoryFunction},
		compute:     func(u unit) float64 { return float64(cognitive(u.node, u.lang, 0)) },
	},
	{
		ID:          "max_nesting",
		Name:        "Maximum nesting",
		Description: "Deepest nesting of control structures",
		Categories:  []Category{CategoryFunction},
		compute:     func(u unit) float64 { return float64(maxNesting(u.node, u.lang, 0)) },
	},
	{
		ID:          "parameters",
		Name:        "Parameters",
		Description: "Number of declared parameters",
		Categories:  []Category{CategoryFunction},
		compute:     func(u unit) float64 { return float64(parameters(u.node, u.lang)) },
	},
	{
		ID:          "methods",
		Name:        "Methods",
		Description: "Number of functions declared directly in the type",
		Categories:  []Category{CategoryType},
		compute:     func(u unit) float64 { return float64(len(methods(u.node, u.lang))) },
	},
	{
		ID:          "wmc",
		Name:        "Weighted methods",
		Description: "Sum of the cyclomatic complexity of the type's methods",
		Categories:  []Category{CategoryType},
		compute:     weightedMethods,
	},
}

// Metrics returns the registered metrics in evaluation order.
func Metrics() []Metric {
	out := make([]Metric, len(registry))
	copy(out, registry)
	return out
}

func (m Metric) evaluate(u unit) float64 {
	if !m.AppliesTo(u.category) {
		return math.NaN()
	}
	return m.compute(u)
}

func lines(u unit) float64 {
	return float64(u.node.End().Row-u.node.Start().Row) + 1
}

// cyclomatic counts decision points + 1.
func cyclomatic(n *ast.SyntaxNode, lang ast.Language) int {
	complexity := 1
	for _, dn := range ast.FindAll(n, decisionKinds(lang)) {
		if isBinary(dn.Kind()) && !isBooleanOperator(dn) {
			continue
		}
		complexity++
	}
	return complexity
}

// cognitive adds weight for nesting depth to every decision point.
func cognitive(n *ast.SyntaxNode, lang ast.Language, nestingLevel int) int {
	if !n.IsNamed() {
		return 0
	}
	complexity := 0
	kind := n.Kind()

	if contains(decisionKinds(lang), kind) {
		if !isBinary(kind) || isBooleanOperator(n) {
			complexity += 1 + nestingLevel
		}
	}

	childNesting := nestingLevel
	if contains(nestingKinds(lang), kind) {
		childNesting++
	}
	for _, c := range n.Children() {
		complexity += cognitive(c, lang, childNesting)
	}
	return complexity
}

func maxNesting(n *ast.SyntaxNode, lang ast.Language, depth int) int {
	deepest := depth
	for _, c := range n.Children() {
		d := depth
		if c.IsNamed() && contains(nestingKinds(lang), c.Kind()) {
			d++
		}
		if got := maxNesting(c, lang, d); got > deepest {
			deepest = got
		}
	}
	return deepest
}

// parameters counts the names in the unit's own parameter list. A Go
// declaration such as "a, b int" counts twice.
func parameters(n *ast.SyntaxNode, lang ast.Language) int {
	list := n.ChildByField("parameters")
	if list == nil {
		for _, c := range n.Children() {
			if contains(parameterListKinds(lang), c.Kind()) {
				list = c
				break
			}
		}
	}
	if list == nil {
		return 0
	}

	count := 0
	for _, p := range list.Children() {
		if !p.IsNamed() || p.Kind() == "comment" {
			continue
		}
		if names := p.ChildrenByField("name"); len(names) > 1 {
			count += len(names)
			continue
		}
		count++
	}
	return count
}

// methods returns the functions declared in a type, excluding functions
// nested inside other functions.
func methods(n *ast.SyntaxNode, lang ast.Language) []*ast.SyntaxNode {
	var out []*ast.SyntaxNode
	var visit func(*ast.SyntaxNode)
	visit = func(p *ast.SyntaxNode) {
		for _, c := range p.Children() {
			if c.IsNamed() && ast.IsFunction(lang, c.Kind()) {
				out = append(out, c)
				continue
			}
			visit(c)
		}
	}
	visit(n)
	return out
}

func weightedMethods(u unit) float64 {
	total := 0
	for _, m := range methods(u.node, u.lang) {
		total += cyclomatic(m, u.lang)
	}
	return float64(total)
}

func isBinary(kind string) bool {
	return kind == "binary_expression" || kind == "boolean_operator" || kind == "binary"
}
