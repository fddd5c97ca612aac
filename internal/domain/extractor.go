package domain

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"shsplit.dev/pkg/shsplit/internal/adapter"
	m "shsplit.dev/pkg/shsplit/internal/model"
)

// Fixed layout around a split module: extracted functions are published
// under public/, hand-written helpers live under private/. The loader block
// sources private/ first because public functions may call those helpers.
const (
	PublicDirName  = "public"
	PrivateDirName = "private"
	ScriptExt      = ".sh"
)

// TargetPath derives the extraction path for a function: the function name
// becomes the file's base name under the public/ directory next to the
// module.
func TargetPath(moduleDir m.Path, name string) m.Path {
	return m.Path(filepath.Join(string(moduleDir), PublicDirName, name+ScriptExt))
}

// PlanExtractions decides a Write or Skip outcome for every node against an
// existence snapshot. It is a pure function of (nodes, snapshot): the only
// side channel is the exists callback, so tests can drive it with a plain
// map.
func PlanExtractions(nodes []m.FunctionNode, moduleDir m.Path, exists func(m.Path) (bool, error)) (m.Outcomes, error) {
	outcomes := make(m.Outcomes, 0, len(nodes))

	for _, node := range nodes {
		target := TargetPath(moduleDir, node.Name)

		taken, err := exists(target)
		if err != nil {
			return nil, fmt.Errorf("check extraction target %s: %w", target, err)
		}

		outcome := m.ExtractionOutcome{Node: node, Kind: m.OutcomeWrite, Target: target}
		if taken {
			outcome.Kind = m.OutcomeSkip
			outcome.Reason = m.SkipAlreadyExists
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// Extractor writes confirmed extractions to disk.
type Extractor struct {
	fs adapter.SourceFSAdapter
}

// NewExtractor constructs an Extractor backed by the provided filesystem
// adapter.
func NewExtractor(fs adapter.SourceFSAdapter) *Extractor {
	return &Extractor{fs: fs}
}

// ApplyExtractions writes the verbatim source span of every confirmed
// outcome, creating the public/ directory on demand. A failed write aborts
// immediately; files written in earlier iterations are not rolled back.
func (e *Extractor) ApplyExtractions(outcomes m.Outcomes) error {
	writes := outcomes.Writes()
	if len(writes) == 0 {
		return nil
	}

	publicDir := e.fs.Dir(writes[0].Target)
	if err := e.fs.MkdirAll(publicDir, 0o750); err != nil {
		return fmt.Errorf("create %s directory: %w", PublicDirName, err)
	}

	for _, outcome := range writes {
		if err := e.fs.WriteFile(outcome.Target, []byte(outcome.Node.Text), 0o640); err != nil {
			slog.Error("failed to write extracted function", "function", outcome.Node.Name, "target", outcome.Target, "error", err)
			return fmt.Errorf("write extracted function %s: %w", outcome.Node.Name, err)
		}

		slog.Debug("extracted function", "function", outcome.Node.Name, "target", outcome.Target)
	}

	return nil
}
