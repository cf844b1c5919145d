// Package ast provides the syntax trees inspected by nodelens.
//
// Trees are parsed with tree-sitter and converted into plain Go SyntaxNode
// values, so everything downstream of parsing works without cgo.
package ast

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnsupportedLanguage is returned when no grammar is registered for a language.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrNoCGO is returned when parsing is unavailable due to missing CGO.
	ErrNoCGO = errors.New("parsing requires CGO (tree-sitter)")
)

// Language represents a supported programming language.
type Language string

const (
	LangGo         Language = "go"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangTSX        Language = "tsx"
	LangPython     Language = "python"
	LangRust       Language = "rust"
	LangJava       Language = "java"
	LangKotlin     Language = "kotlin"
	LangRuby       Language = "ruby"
)

// LanguageInfo describes a registered language.
type LanguageInfo struct {
	ID          Language `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Extensions  []string `json:"extensions" yaml:"extensions"`
	LineComment string   `json:"lineComment" yaml:"lineComment"`
}

var registry = []LanguageInfo{
	{ID: LangGo, Name: "Go", Extensions: []string{".go"}, LineComment: "//"},
	{ID: LangJavaScript, Name: "JavaScript", Extensions: []string{".js", ".mjs", ".cjs", ".jsx"}, LineComment: "//"},
	{ID: LangTypeScript, Name: "TypeScript", Extensions: []string{".ts", ".mts", ".cts"}, LineComment: "//"},
	{ID: LangTSX, Name: "TSX", Extensions: []string{".tsx"}, LineComment: "//"},
	{ID: LangPython, Name: "Python", Extensions: []string{".py", ".pyw"}, LineComment: "#"},
	{ID: LangRust, Name: "Rust", Extensions: []string{".rs"}, LineComment: "//"},
	{ID: LangJava, Name: "Java", Extensions: []string{".java"}, LineComment: "//"},
	{ID: LangKotlin, Name: "Kotlin", Extensions: []string{".kt", ".kts"}, LineComment: "//"},
	{ID: LangRuby, Name: "Ruby", Extensions: []string{".rb", ".cgi", ".class"}, LineComment: "#"},
}

// Languages returns the registered languages sorted by name.
func Languages() []LanguageInfo {
	out := make([]LanguageInfo, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Lookup returns the registry entry for a language id.
func Lookup(lang Language) (LanguageInfo, bool) {
	for _, info := range registry {
		if info.ID == lang {
			return info, true
		}
	}
	return LanguageInfo{}, false
}

// LanguageFromExtension returns the Language for a file extension.
func LanguageFromExtension(ext string) (Language, bool) {
	ext = strings.ToLower(ext)
	for _, info := range registry {
		for _, e := range info.Extensions {
			if e == ext {
				return info.ID, true
			}
		}
	}
	return "", false
}
