package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mvdan.cc/sh/v3/syntax"
)

func TestLocalShellFileAdapter_Parse(t *testing.T) {
	a := NewLocalShellFileAdapter()

	t.Run("clean module parses without diagnostics", func(t *testing.T) {
		src := "#!/usr/bin/env bash\n\ngreet() {\n\techo \"hi $1\"\n}\n"

		doc := a.Parse("mod.sh", src)

		require.NotNil(t, doc.File)
		assert.Empty(t, doc.Diagnostics)
		assert.Equal(t, src, doc.Text)
		assert.Len(t, doc.File.Stmts, 1)
	})

	t.Run("braces inside strings do not break statement boundaries", func(t *testing.T) {
		src := "fancy() {\n\techo \"open { close } done\"\n}\nplain() { echo ok; }\n"

		doc := a.Parse("mod.sh", src)

		require.NotNil(t, doc.File)
		assert.Empty(t, doc.Diagnostics)
		assert.Len(t, doc.File.Stmts, 2)
	})

	t.Run("syntax error keeps earlier statements and records a diagnostic", func(t *testing.T) {
		src := "good() { echo ok; }\nfor broken in 1 2; do\necho $broken\n"

		doc := a.Parse("mod.sh", src)

		require.NotNil(t, doc.File)
		require.NotEmpty(t, doc.Diagnostics)
		assert.NotZero(t, doc.Diagnostics[0].Line)

		require.NotEmpty(t, doc.File.Stmts)

		decl, ok := doc.File.Stmts[0].Cmd.(*syntax.FuncDecl)
		require.True(t, ok)
		assert.Equal(t, "good", decl.Name.Value)
	})
}
