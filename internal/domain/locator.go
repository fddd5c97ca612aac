// Package domain contains the core module splitting workflow and logic.
package domain

import (
	"mvdan.cc/sh/v3/syntax"

	m "shsplit.dev/pkg/shsplit/internal/model"
)

// TopLevelFunctions returns the function definitions that are direct
// children of the module's outermost statement list, in document order.
// The tree is deliberately not traversed transitively: a helper defined
// inside another function stays embedded in its parent's span and is never
// surfaced on its own.
func TopLevelFunctions(doc m.SourceDocument) []m.FunctionNode {
	if doc.File == nil {
		return nil
	}

	var nodes []m.FunctionNode

	for _, stmt := range doc.File.Stmts {
		decl, ok := stmt.Cmd.(*syntax.FuncDecl)
		if !ok {
			continue
		}

		start := int(stmt.Pos().Offset())

		end := int(stmt.End().Offset())
		if end > len(doc.Text) {
			end = len(doc.Text)
		}

		nodes = append(nodes, m.FunctionNode{
			Name:         decl.Name.Value,
			Start:        start,
			End:          end,
			Text:         doc.Text[start:end],
			ReservedWord: decl.RsrvWord,
		})
	}

	return nodes
}
