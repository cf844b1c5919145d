package inspect

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"nodelens/internal/ast"
	"nodelens/internal/complexity"
	"nodelens/internal/slogutil"
)

// MetricEvaluator runs every registered metric against a node. It returns
// complexity.ErrUnsupportedNode when no metric applies to the node.
type MetricEvaluator interface {
	EvaluateAll(node ast.Node) ([]complexity.MetricResult, error)
}

// MetricAdapter evaluates metrics for the focused node without ever failing.
type MetricAdapter struct {
	evaluator MetricEvaluator
	logger    *slog.Logger
}

// NewMetricAdapter wraps evaluator. A nil logger discards output.
func NewMetricAdapter(evaluator MetricEvaluator, logger *slog.Logger) *MetricAdapter {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &MetricAdapter{evaluator: evaluator, logger: logger}
}

// Evaluate returns the metric results for node, NaN values included.
// Unsupported nodes and evaluation failures yield an empty result.
func (a *MetricAdapter) Evaluate(node ast.Node) []complexity.MetricResult {
	if isNil(node) || a.evaluator == nil {
		return nil
	}

	results, err := a.evaluator.EvaluateAll(node)
	switch {
	case errors.Is(err, complexity.ErrUnsupportedNode):
		return nil
	case err != nil:
		a.logger.Warn("Metric evaluation failed", "node", node.Kind(), "error", err)
		return nil
	}
	return results
}

// AvailableCount returns the number of results holding a number.
func AvailableCount(results []complexity.MetricResult) int {
	n := 0
	for _, r := range results {
		if !math.IsNaN(r.Value) {
			n++
		}
	}
	return n
}

// Badge labels the metrics view from the number of available metrics.
type Badge struct {
	Available int `json:"available" yaml:"available"`
}

// TabTitle returns the short label, e.g. "Metrics\t(3)".
func (b Badge) TabTitle() string {
	if b.Available == 0 {
		return "Metrics\t(none)"
	}
	return fmt.Sprintf("Metrics\t(%d)", b.Available)
}

// PaneTitle returns the long label, e.g. "Metrics\t(3 available)".
func (b Badge) PaneTitle() string {
	if b.Available == 0 {
		return "Metrics\t(none available)"
	}
	return fmt.Sprintf("Metrics\t(%d available)", b.Available)
}

// Disabled reports whether the metrics view has nothing to show.
func (b Badge) Disabled() bool {
	return b.Available == 0
}
