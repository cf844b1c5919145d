package inspect

import (
	"errors"
	"log/slog"
	"reflect"

	"nodelens/internal/ast"
	"nodelens/internal/scopes"
	"nodelens/internal/slogutil"
)

// ShowAllAttributesProperty is the name under which the show-all mode is
// persisted.
const ShowAllAttributesProperty = "showAllAttributes"

// Scheduler runs posted functions on a later turn of the goroutine that owns
// the Tracker.
type Scheduler interface {
	Post(fn func())
}

// Config holds the collaborators of a Tracker. Sink and Scheduler are
// required.
type Config struct {
	Resolver  ScopeResolver
	Evaluator MetricEvaluator
	Sink      Sink
	Scheduler Scheduler
	Logger    *slog.Logger

	// ShowAllAttributes is the initial show-all mode.
	ShowAllAttributes bool
}

// Tracker owns the focused node and keeps the published views consistent
// with it.
type Tracker struct {
	metrics   *MetricAdapter
	scopes    *ScopeBuilder
	sink      Sink
	scheduler Scheduler
	logger    *slog.Logger

	focused    ast.Node
	showAll    bool
	root       *ScopeItem
	selected   *ScopeItem
	publishing bool

	// OnDeclarationSelected, if set, is called when a declaration is
	// selected in the scope tree, before focus moves to it.
	OnDeclarationSelected func(decl scopes.Declared)
}

// NewTracker creates a tracker with nothing focused.
func NewTracker(cfg Config) (*Tracker, error) {
	if cfg.Sink == nil {
		return nil, errors.New("inspect: tracker requires a sink")
	}
	if cfg.Scheduler == nil {
		return nil, errors.New("inspect: tracker requires a scheduler")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	return &Tracker{
		metrics:   NewMetricAdapter(cfg.Evaluator, logger),
		scopes:    NewScopeBuilder(cfg.Resolver),
		sink:      cfg.Sink,
		scheduler: cfg.Scheduler,
		logger:    logger,
		showAll:   cfg.ShowAllAttributes,
	}, nil
}

// Focused returns the focused node, or nil.
func (t *Tracker) Focused() ast.Node {
	return t.focused
}

// ShowAllAttributes returns the show-all mode.
func (t *Tracker) ShowAllAttributes() bool {
	return t.showAll
}

// ScopeTree returns the current scope tree and its selected item.
func (t *Tracker) ScopeTree() (root, selected *ScopeItem) {
	return t.root, t.selected
}

// SetFocus makes node the focused node and publishes its attributes, metrics
// and scope tree, in that order. Focusing the focused node again does
// nothing. A nil node clears every view.
//
// With preserveScopeSelection set, an item equal to the selected item of the
// previous scope tree is selected in the new tree when one exists no deeper
// than the previous selection.
func (t *Tracker) SetFocus(node ast.Node, preserveScopeSelection bool) {
	if t.publishing {
		t.scheduler.Post(func() { t.SetFocus(node, preserveScopeSelection) })
		return
	}
	t.publishing = true
	defer func() { t.publishing = false }()

	if isNil(node) {
		t.clear()
		return
	}
	if node == t.focused {
		return
	}

	t.logger.Debug("Focus changed", "node", node.Kind())
	t.focused = node

	t.sink.PublishAttributes(ProjectAttributes(node, t.showAll))

	results := t.metrics.Evaluate(node)
	t.sink.PublishMetrics(results, Badge{Available: AvailableCount(results)})

	var previous *ScopeItem
	depth := 0
	if preserveScopeSelection && t.selected != nil {
		previous = t.selected
		depth = previous.Depth()
	}
	t.root = t.scopes.Build(node)
	t.selected = nil
	if previous != nil {
		t.selected = Locate(t.root, previous.Value, depth)
	}
	t.sink.PublishScopes(t.root, t.selected)
}

// SetShowAllAttributes changes the show-all mode. When the mode changes and
// a node is focused, only its attributes are republished.
func (t *Tracker) SetShowAllAttributes(showAll bool) {
	if t.publishing {
		t.scheduler.Post(func() { t.SetShowAllAttributes(showAll) })
		return
	}
	if showAll == t.showAll {
		return
	}
	t.showAll = showAll
	if t.focused == nil {
		return
	}

	t.publishing = true
	defer func() { t.publishing = false }()
	t.sink.PublishAttributes(ProjectAttributes(t.focused, showAll))
}

// SelectScopeItem records item as the selection of the current scope tree.
// Selecting a declaration moves focus to its declaring node on the next turn
// of the scheduler. Items of other trees are ignored.
//
// A selection made while views are being published is applied on the next
// turn, once the tree being built is current. An item of the replaced tree is
// then ignored.
func (t *Tracker) SelectScopeItem(item *ScopeItem) {
	if t.publishing {
		t.scheduler.Post(func() { t.SelectScopeItem(item) })
		return
	}
	if item != nil && item.Root() != t.root {
		t.logger.Debug("Ignoring selection outside the scope tree", "item", item.String())
		return
	}
	t.selected = item
	if item == nil {
		return
	}

	decl, ok := item.Declaration()
	if !ok {
		return
	}
	if t.OnDeclarationSelected != nil {
		t.OnDeclarationSelected(decl)
	}
	node := decl.DeclaringNode()
	if isNil(node) {
		return
	}
	t.scheduler.Post(func() { t.SetFocus(node, true) })
}

func (t *Tracker) clear() {
	t.focused = nil
	t.root = nil
	t.selected = nil
	t.sink.PublishAttributes(nil)
	t.sink.PublishMetrics(nil, Badge{})
	t.sink.PublishScopes(nil, nil)
}

// isNil reports whether node is nil or a nil pointer.
func isNil(node ast.Node) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
