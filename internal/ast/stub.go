//go:build !cgo

package ast

import (
	"context"
)

// Parser wraps tree-sitter parsing functionality.
// This is a stub implementation for non-CGO builds.
type Parser struct{}

// NewParser creates a new parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile always fails in non-CGO builds.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Tree, error) {
	return nil, ErrNoCGO
}

// Parse always fails in non-CGO builds.
func (p *Parser) Parse(ctx context.Context, source []byte, lang Language) (*Tree, error) {
	return nil, ErrNoCGO
}

// IsAvailable returns whether parsing is available.
// Returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
