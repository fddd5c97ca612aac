// Package adapter contains infrastructure adapters for the shsplit CLI.
package adapter

import (
	"errors"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	m "shsplit.dev/pkg/shsplit/internal/model"
)

// ShellFileAdapter encapsulates shell-specific parsing so the domain layer
// can focus on split decisions while delegating dialect details to an
// infrastructure component.
type ShellFileAdapter interface {
	// Parse builds a syntax tree for the provided path/source pair. Syntax
	// errors are non-fatal: the returned document keeps every top-level
	// statement that resolved before the first error and records the error
	// itself as a diagnostic.
	Parse(path m.Path, src string) m.SourceDocument
}

// LocalShellFileAdapter provides a concrete ShellFileAdapter backed by
// mvdan.cc/sh. A real parser is required here: brace counting breaks on
// string literals containing braces, multi-line parameter lists, heredocs
// and nested function bodies.
type LocalShellFileAdapter struct{}

// NewLocalShellFileAdapter constructs a LocalShellFileAdapter.
func NewLocalShellFileAdapter() *LocalShellFileAdapter {
	return &LocalShellFileAdapter{}
}

// Parse parses src as bash and returns the document with any diagnostics.
func (a *LocalShellFileAdapter) Parse(path m.Path, src string) m.SourceDocument {
	file, err := newParser().Parse(strings.NewReader(src), string(path))
	if err == nil {
		return m.SourceDocument{Origin: path, Text: src, File: file}
	}

	doc := m.SourceDocument{
		Origin:      path,
		Text:        src,
		Diagnostics: toDiagnostics(err),
	}
	doc.File = partialParse(path, src)

	return doc
}

// partialParse re-reads the source statement by statement, keeping every
// top-level statement that resolved before the error. Functions inside the
// malformed tail are silently absent, which is the documented best-effort
// trade-off.
func partialParse(path m.Path, src string) *syntax.File {
	file := &syntax.File{Name: string(path)}

	_ = newParser().Stmts(strings.NewReader(src), func(stmt *syntax.Stmt) bool {
		file.Stmts = append(file.Stmts, stmt)
		return true
	})

	return file
}

func newParser() *syntax.Parser {
	return syntax.NewParser(
		syntax.KeepComments(true),
		syntax.Variant(syntax.LangBash),
	)
}

func toDiagnostics(err error) []m.Diagnostic {
	var parseErr syntax.ParseError
	if errors.As(err, &parseErr) {
		return []m.Diagnostic{{
			Message: parseErr.Text,
			Line:    parseErr.Pos.Line(),
			Column:  parseErr.Pos.Col(),
		}}
	}

	return []m.Diagnostic{{Message: err.Error()}}
}
