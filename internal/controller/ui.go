// Package controller provides output adapters for displaying split results.
package controller

import (
	"context"

	m "shsplit.dev/pkg/shsplit/internal/model"
)

// UI defines the interface for rendering pipeline output. Implementations
// can use different output methods (plain text, styled terminal output).
type UI interface {
	DisplayDiagnostics(ctx context.Context, diags []m.Diagnostic)
	DisplayOutcomes(ctx context.Context, outcomes m.Outcomes) error
	DisplayDryRunDiff(ctx context.Context, module m.Path, original, rewritten string) error
	DisplayWarnings(ctx context.Context, warnings []string)
	DisplaySummary(ctx context.Context, report m.SplitReport)
}
