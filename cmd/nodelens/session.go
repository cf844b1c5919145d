package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"nodelens/internal/ast"
	"nodelens/internal/complexity"
	nlerrors "nodelens/internal/errors"
	"nodelens/internal/eventloop"
	"nodelens/internal/inspect"
	"nodelens/internal/scopes"
	"nodelens/internal/storage"
)

// session is one tracker wired to the real collaborators. All of its methods
// must run on the goroutine draining loop.
type session struct {
	loop     *eventloop.Loop
	recorder *inspect.Recorder
	tracker  *inspect.Tracker
}

func newSession(loop *eventloop.Loop, showAll bool, log *slog.Logger) (*session, error) {
	recorder := inspect.NewRecorder()
	tracker, err := inspect.NewTracker(inspect.Config{
		Resolver:          scopes.NewResolver(),
		Evaluator:         complexity.NewEvaluator(),
		Sink:              recorder,
		Scheduler:         loop,
		Logger:            log,
		ShowAllAttributes: showAll,
	})
	if err != nil {
		return nil, nlerrors.New(nlerrors.InternalError, "failed to create tracker", err)
	}
	tracker.OnDeclarationSelected = func(decl scopes.Declared) {
		log.Debug("Declaration selected", "declaration", decl.String())
	}
	return &session{loop: loop, recorder: recorder, tracker: tracker}, nil
}

// focus focuses node and runs every task it deferred.
func (s *session) focus(node ast.Node, preserveScopeSelection bool) {
	s.tracker.SetFocus(node, preserveScopeSelection)
	s.loop.RunPending()
}

// selectByName selects the first scope tree item named name and runs the
// refocus it schedules. Declarations match on their name, scopes on their
// label.
func (s *session) selectByName(name string) error {
	root, _ := s.tracker.ScopeTree()
	item := findScopeItem(root, name)
	if item == nil {
		return nlerrors.New(nlerrors.InvalidArgument, fmt.Sprintf("no scope or declaration named %q", name), nil)
	}
	s.tracker.SelectScopeItem(item)
	s.loop.RunPending()
	return nil
}

func findScopeItem(root *inspect.ScopeItem, name string) *inspect.ScopeItem {
	if root == nil {
		return nil
	}
	var found *inspect.ScopeItem
	root.Walk(func(item *inspect.ScopeItem, _ int) bool {
		if found != nil {
			return false
		}
		if matchesName(item.Value, name) {
			found = item
			return false
		}
		return true
	})
	return found
}

func matchesName(v scopes.Value, name string) bool {
	switch v := v.(type) {
	case *scopes.Declaration:
		return v.Name == name
	case *scopes.Scope:
		return v.Name == name || v.String() == name
	default:
		return v.String() == name
	}
}

// parseFile parses path and maps failures to coded errors.
func parseFile(ctx context.Context, parser *ast.Parser, path string) (*ast.Tree, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nlerrors.New(nlerrors.FileNotFound, "file not found: "+path, nil)
		}
		return nil, nlerrors.New(nlerrors.InternalError, "failed to stat "+path, err)
	}

	tree, err := parser.ParseFile(ctx, path)
	switch {
	case err == nil:
		return tree, nil
	case errors.Is(err, ast.ErrNoCGO):
		return nil, nlerrors.New(nlerrors.CGORequired, "parsing requires a cgo build", err)
	case errors.Is(err, ast.ErrUnsupportedLanguage):
		return nil, nlerrors.New(nlerrors.UnsupportedLanguage, "no grammar for "+path, err)
	case errors.Is(err, fs.ErrNotExist):
		return nil, nlerrors.New(nlerrors.FileNotFound, "file not found: "+path, err)
	default:
		return nil, nlerrors.New(nlerrors.ParseFailed, "failed to parse "+path, err)
	}
}

// nodeAt returns the node at a 1-based position.
func nodeAt(tree *ast.Tree, line, col int) (*ast.SyntaxNode, error) {
	if line < 1 || col < 1 {
		return nil, nlerrors.New(nlerrors.InvalidArgument, "--line and --col are 1-based and required", nil)
	}
	node := tree.NodeAt(line, col)
	if node == nil {
		return nil, nlerrors.New(nlerrors.NodeNotFound, fmt.Sprintf("no node at %d:%d", line, col), nil).
			WithDetails(map[string]int{"line": line, "column": col})
	}
	return node, nil
}

// resolveShowAll applies the precedence --show-all flag, persisted setting,
// configured default. The flag value is not persisted.
func resolveShowAll(ctx context.Context, flagSet bool, flagValue bool) bool {
	if flagSet {
		return flagValue
	}
	fallback := cfg.Inspector.ShowAllAttributes

	db, err := storage.Open(repoRoot, logger)
	if err != nil {
		logger.Warn("Settings database unavailable, using configured default", "error", err)
		return fallback
	}
	defer func() { _ = db.Close() }()

	showAll, err := storage.NewSettings(db).LoadBoolOr(ctx, inspect.ShowAllAttributesProperty, fallback)
	if err != nil {
		logger.Warn("Failed to load persisted setting, using configured default",
			"key", inspect.ShowAllAttributesProperty,
			"error", err,
		)
		return fallback
	}
	return showAll
}
