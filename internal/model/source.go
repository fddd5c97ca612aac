// Package model defines the data structures for the module split pipeline.
package model

import "mvdan.cc/sh/v3/syntax"

// Path represents a file system path.
type Path string

// Diagnostic is a non-fatal parser finding, ordered by source position.
type Diagnostic struct {
	Message string
	Line    uint
	Column  uint
}

// SourceDocument holds the original module text together with its syntax
// tree. The text is never mutated; every edit operates on a copy so node
// offsets stay valid for the lifetime of the run.
type SourceDocument struct {
	Origin      Path
	Text        string
	File        *syntax.File
	Diagnostics []Diagnostic
}

// FunctionNode is a top-level function definition located in a module.
// Start and End are byte offsets into SourceDocument.Text; Text is the
// verbatim span between them.
type FunctionNode struct {
	Name  string
	Start int
	End   int
	Text  string

	// ReservedWord marks `function name { ... }` declarations as opposed to
	// the `name() { ... }` form. Both are extracted identically.
	ReservedWord bool
}

// Span marks a node's exact extent in the original text.
type Span struct {
	Start int
	End   int
}

// Span returns the node's source extent.
func (n FunctionNode) Span() Span {
	return Span{Start: n.Start, End: n.End}
}
