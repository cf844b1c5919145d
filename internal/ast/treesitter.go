//go:build cgo

package ast

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Parser wraps tree-sitter for multi-language parsing.
// A Parser is not safe for concurrent use.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new tree-sitter parser.
func NewParser() *Parser {
	return &Parser{
		parser: sitter.NewParser(),
	}
}

// ParseFile reads path and parses it with the grammar matching its extension.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Tree, error) {
	lang, ok := LanguageFromExtension(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, filepath.Ext(path))
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	tree, err := p.Parse(ctx, source, lang)
	if err != nil {
		return nil, err
	}
	tree.Path = path
	return tree, nil
}

// Parse parses source code and converts the result into a Tree.
func (p *Parser) Parse(ctx context.Context, source []byte, lang Language) (*Tree, error) {
	tsLang, err := getLanguage(lang)
	if err != nil {
		return nil, err
	}

	p.parser.SetLanguage(tsLang)
	st, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	tree := &Tree{Language: lang}
	// Node text is sliced from a single string so that all nodes share it.
	text := string(source)
	tree.Root = convert(tree, st.RootNode(), "", text)
	return tree, nil
}

func convert(tree *Tree, n *sitter.Node, field, text string) *SyntaxNode {
	sp, ep := n.StartPoint(), n.EndPoint()
	sn := &SyntaxNode{
		kind:     n.Type(),
		field:    field,
		named:    n.IsNamed(),
		hasError: n.HasError(),
		start:    Point{Row: sp.Row, Column: sp.Column},
		end:      Point{Row: ep.Row, Column: ep.Column},
		text:     text[n.StartByte():n.EndByte()],
		tree:     tree,
	}

	count := int(n.ChildCount())
	if count > 0 {
		sn.children = make([]*SyntaxNode, 0, count)
	}
	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		c := convert(tree, child, n.FieldNameForChild(i), text)
		c.parent = sn
		sn.children = append(sn.children, c)
	}
	return sn
}

// getLanguage returns the tree-sitter Language for a given language identifier.
func getLanguage(lang Language) (*sitter.Language, error) {
	switch lang {
	case LangGo:
		return golang.GetLanguage(), nil
	case LangJavaScript:
		return javascript.GetLanguage(), nil
	case LangTypeScript:
		return typescript.GetLanguage(), nil
	case LangTSX:
		return tsx.GetLanguage(), nil
	case LangPython:
		return python.GetLanguage(), nil
	case LangRust:
		return rust.GetLanguage(), nil
	case LangJava:
		return java.GetLanguage(), nil
	case LangKotlin:
		return kotlin.GetLanguage(), nil
	case LangRuby:
		return ruby.GetLanguage(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
}

// IsAvailable returns whether parsing is available.
// Returns true when CGO is enabled.
func IsAvailable() bool {
	return true
}
