package inspect

import "nodelens/internal/complexity"

// Sink receives the views derived from the focused node. A cleared view is
// published as nil.
type Sink interface {
	PublishAttributes(entries []AttributeEntry)
	PublishMetrics(results []complexity.MetricResult, badge Badge)
	PublishScopes(root, selected *ScopeItem)
}

// View is the last published state of every view.
type View struct {
	Attributes []AttributeEntry          `json:"attributes" yaml:"attributes"`
	Metrics    []complexity.MetricResult `json:"metrics" yaml:"metrics"`
	Badge      Badge                     `json:"badge" yaml:"badge"`
	ScopeRoot  *ScopeItem                `json:"-" yaml:"-"`
	Selected   *ScopeItem                `json:"-" yaml:"-"`
}

// Recorder is a Sink that keeps the latest view and counts publications.
type Recorder struct {
	View View

	AttributeRounds int
	MetricRounds    int
	ScopeRounds     int
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// PublishAttributes records the attribute view.
func (r *Recorder) PublishAttributes(entries []AttributeEntry) {
	r.View.Attributes = entries
	r.AttributeRounds++
}

// PublishMetrics records the metric view and its badge.
func (r *Recorder) PublishMetrics(results []complexity.MetricResult, badge Badge) {
	r.View.Metrics = results
	r.View.Badge = badge
	r.MetricRounds++
}

// PublishScopes records the scope tree and its selection.
func (r *Recorder) PublishScopes(root, selected *ScopeItem) {
	r.View.ScopeRoot = root
	r.View.Selected = selected
	r.ScopeRounds++
}
