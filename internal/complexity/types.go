// Package complexity evaluates code metrics against function-like and
// type-like syntax nodes.
package complexity

import "errors"

// ErrUnsupportedNode is returned when no metric applies to a node's category.
var ErrUnsupportedNode = errors.New("metrics are not supported for this node")

// Category is the kind of unit a metric is computed for.
type Category string

const (
	CategoryFunction Category = "function"
	CategoryType     Category = "type"
)

// Metric describes a registered metric.
type Metric struct {
	// ID is the stable identifier of the metric
	ID string `json:"id" yaml:"id"`

	// Name is the human-readable name
	Name string `json:"name" yaml:"name"`

	// Description explains what the metric measures
	Description string `json:"description" yaml:"description"`

	// Categories lists the node categories the metric applies to
	Categories []Category `json:"categories" yaml:"categories"`

	compute func(u unit) float64
}

// AppliesTo reports whether the metric is computed for category c.
func (m Metric) AppliesTo(c Category) bool {
	for _, cat := range m.Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// MetricResult is the value of one metric for one node. Value is NaN when
// the metric does not apply to the node.
type MetricResult struct {
	ID    string  `json:"id" yaml:"id"`
	Value float64 `json:"value" yaml:"value"`
}
