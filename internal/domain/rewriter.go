package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	m "shsplit.dev/pkg/shsplit/internal/model"
)

// ErrSkippedExtraction guards plan construction: a rewrite plan only exists
// for a module whose extractions all confirmed.
var ErrSkippedExtraction = errors.New("rewrite plan requires zero skipped extractions")

// loaderBlock is appended to the rewritten module. At load time it sources
// every file under private/ and then public/, and re-exports the base name
// of each public file. The export list is therefore dynamic: adding or
// removing a file under public/ changes what the module publishes without
// touching this block.
const loaderBlock = `# --- shsplit loader (generated) ---
# Sources split-out function files and exports the public set.
# Manage files under private/ and public/ instead of editing this block.
__shsplit_dir="$(cd "$(dirname "${BASH_SOURCE[0]}")" && pwd)"
for __shsplit_file in "$__shsplit_dir"/private/*.sh "$__shsplit_dir"/public/*.sh; do
	[ -e "$__shsplit_file" ] || continue
	. "$__shsplit_file"
done
for __shsplit_file in "$__shsplit_dir"/public/*.sh; do
	[ -e "$__shsplit_file" ] || continue
	export -f "$(basename "$__shsplit_file" .sh)"
done
unset __shsplit_dir __shsplit_file
# --- end shsplit loader ---
`

// LoaderBlock returns the generated block appended to rewritten modules.
func LoaderBlock() string {
	return loaderBlock
}

// BuildRewritePlan turns confirmed extraction outcomes into a rewrite plan
// with spans sorted descending by start offset. It refuses to build a plan
// when any outcome is a skip.
func BuildRewritePlan(outcomes m.Outcomes) (m.RewritePlan, error) {
	if outcomes.AnySkip() {
		return m.RewritePlan{}, ErrSkippedExtraction
	}

	writes := outcomes.Writes()

	spans := make([]m.Span, 0, len(writes))
	for _, outcome := range writes {
		spans = append(spans, outcome.Node.Span())
	}

	sort.Slice(spans, func(i, j int) bool {
		return spans[i].Start > spans[j].Start
	})

	return m.RewritePlan{Spans: spans, Loader: loaderBlock}, nil
}

// RemoveSpans deletes each span's character range from text. Spans must be
// non-overlapping and sorted descending by start offset: a removal then
// never sits at or before an offset consumed by an earlier one, so the
// remaining offsets stay valid without recomputation.
func RemoveSpans(text string, spans []m.Span) string {
	for _, span := range spans {
		start, end := span.Start, span.End
		if start < 0 {
			start = 0
		}

		if end > len(text) {
			end = len(text)
		}

		if start >= end {
			continue
		}

		text = text[:start] + text[end:]
	}

	return text
}

// CollapseBlankLines rewrites runs of three or more consecutive blank lines
// into a single blank line and trims trailing whitespace from the result.
// This is the only lossy step in the pipeline, and it only loses blank-line
// formatting, never content.
func CollapseBlankLines(text string) string {
	lines := strings.Split(text, "\n")

	var (
		out   []string
		blank int
	)

	flush := func() {
		if blank >= 3 {
			out = append(out, "")
		} else {
			for i := 0; i < blank; i++ {
				out = append(out, "")
			}
		}

		blank = 0
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blank++
			continue
		}

		flush()

		out = append(out, line)
	}

	// Trailing blank lines are dropped entirely.
	return strings.Join(out, "\n")
}

// ExportDirectives scans the non-function statements for existing
// `export -f` directives. They cannot be merged into the generated loader:
// syntax alone cannot tell an exhaustive export list from a deliberately
// partial one, so the caller warns and leaves them in place.
func ExportDirectives(doc m.SourceDocument) []string {
	if doc.File == nil {
		return nil
	}

	var found []string

	syntax.Walk(doc.File, func(node syntax.Node) bool {
		if node == nil {
			return true
		}

		switch x := node.(type) {
		case *syntax.FuncDecl:
			// Function bodies are extracted wholesale; directives inside
			// them move with the function.
			return false
		case *syntax.DeclClause:
			if x.Variant == nil || x.Variant.Value != "export" {
				return true
			}

			snippet := sliceNode(doc.Text, x)
			if exportsFunctions(snippet) {
				found = append(found, fmt.Sprintf("line %d: %s", x.Pos().Line(), snippet))
			}
		}

		return true
	})

	return found
}

// Rewrite applies the plan to the original text: remove the confirmed
// spans, normalize whitespace, append the loader block.
func Rewrite(text string, plan m.RewritePlan) string {
	remaining := CollapseBlankLines(RemoveSpans(text, plan.Spans))
	if remaining == "" {
		return plan.Loader
	}

	return remaining + "\n\n" + plan.Loader
}

// exportsFunctions reports whether an export statement carries the -f
// option (possibly combined, e.g. -fx), i.e. publishes functions rather
// than environment variables.
func exportsFunctions(snippet string) bool {
	for _, field := range strings.Fields(snippet) {
		if strings.HasPrefix(field, "-") && strings.ContainsRune(field, 'f') {
			return true
		}
	}

	return false
}

func sliceNode(text string, node syntax.Node) string {
	start := int(node.Pos().Offset())

	end := int(node.End().Offset())
	if end > len(text) {
		end = len(text)
	}

	if start < 0 || start >= end {
		return ""
	}

	return text[start:end]
}
