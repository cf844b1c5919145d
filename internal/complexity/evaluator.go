package complexity

import (
	"fmt"

	"nodelens/internal/ast"
)

// Evaluator runs the registered metrics against syntax nodes.
type Evaluator struct {
	metrics []Metric
}

// NewEvaluator creates an evaluator over every registered metric.
func NewEvaluator() *Evaluator {
	return &Evaluator{metrics: Metrics()}
}

// EvaluateAll computes every registered metric for node, in registry order.
// Metrics that do not apply to the node's category are reported as NaN.
// Nodes that are neither function-like nor type-like yield ErrUnsupportedNode.
func (e *Evaluator) EvaluateAll(node ast.Node) ([]MetricResult, error) {
	u, err := unitOf(node)
	if err != nil {
		return nil, err
	}

	results := make([]MetricResult, 0, len(e.metrics))
	for _, m := range e.metrics {
		results = append(results, MetricResult{ID: m.ID, Value: m.evaluate(u)})
	}
	return results, nil
}

func unitOf(node ast.Node) (unit, error) {
	sn, ok := node.(*ast.SyntaxNode)
	if !ok || sn == nil || !sn.IsNamed() {
		return unit{}, ErrUnsupportedNode
	}

	lang := sn.Language()
	switch {
	case ast.IsFunction(lang, sn.Kind()):
		return unit{node: sn, lang: lang, category: CategoryFunction}, nil
	case ast.IsType(lang, sn.Kind()):
		return unit{node: sn, lang: lang, category: CategoryType}, nil
	default:
		return unit{}, fmt.Errorf("%w: %s", ErrUnsupportedNode, sn.Kind())
	}
}
