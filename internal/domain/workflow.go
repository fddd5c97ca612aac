package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"shsplit.dev/pkg/shsplit/internal/adapter"
	"shsplit.dev/pkg/shsplit/internal/controller"
	m "shsplit.dev/pkg/shsplit/internal/model"
)

// ErrNotRegularFile is returned when the module path points at a directory
// or other non-regular file.
var ErrNotRegularFile = errors.New("not a regular file")

// SplitArgs contains the arguments for splitting a module.
type SplitArgs struct {
	Module  m.Path
	DryRun  bool
	Reports m.Path
}

// ListArgs contains the arguments for listing a module's functions.
type ListArgs struct {
	Module m.Path
}

// ViewArgs contains the arguments for viewing a saved split report.
type ViewArgs struct {
	Module  m.Path
	Reports m.Path
}

// Workflow drives the split pipeline: Parse, Locate, Plan, Guard, Apply,
// Rewrite, Backup, Overwrite, Summarize. Strictly single-threaded; each
// destructive step is gated by an up-front, side-effect-free decision.
type Workflow interface {
	Split(ctx context.Context, args SplitArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	shell       adapter.ShellFileAdapter
	fs          adapter.SourceFSAdapter
	reportStore adapter.ReportStore
	ui          controller.UI
	extractor   *Extractor
	backup      *BackupManager
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	shell adapter.ShellFileAdapter,
	fs adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		shell:       shell,
		fs:          fs,
		reportStore: reportStore,
		ui:          ui,
		extractor:   NewExtractor(fs),
		backup:      NewBackupManager(fs),
	}
}

// analysis is the side-effect-free front half of the pipeline, shared by
// split (real and dry-run) and list.
type analysis struct {
	doc      m.SourceDocument
	nodes    []m.FunctionNode
	outcomes m.Outcomes
	warnings []string
	mode     os.FileMode
}

func (w *workflow) analyze(module m.Path) (analysis, error) {
	info, err := w.fs.FileInfo(module)
	if err != nil {
		return analysis{}, fmt.Errorf("module file: %w", err)
	}

	if !info.Mode().IsRegular() {
		return analysis{}, fmt.Errorf("module file %s: %w", module, ErrNotRegularFile)
	}

	content, err := w.fs.ReadFile(module)
	if err != nil {
		return analysis{}, fmt.Errorf("read module file: %w", err)
	}

	doc := w.shell.Parse(module, string(content))
	nodes := TopLevelFunctions(doc)

	outcomes, err := PlanExtractions(nodes, w.fs.Dir(module), w.fs.FileExists)
	if err != nil {
		return analysis{}, err
	}

	var warnings []string

	for _, diag := range doc.Diagnostics {
		warnings = append(warnings, fmt.Sprintf("parse: line %d col %d: %s (splitting whatever resolved before the error)", diag.Line, diag.Column, diag.Message))
	}

	for _, directive := range ExportDirectives(doc) {
		warnings = append(warnings, fmt.Sprintf("existing export -f directive left in place, cannot merge safely (%s)", directive))
	}

	slog.Debug("analyzed module", "module", module, "functions", len(nodes), "warnings", len(warnings))

	return analysis{
		doc:      doc,
		nodes:    nodes,
		outcomes: outcomes,
		warnings: warnings,
		mode:     info.Mode(),
	}, nil
}

func newReport(module m.Path, an analysis, dryRun bool) m.SplitReport {
	report := m.SplitReport{
		Module:   module,
		DryRun:   dryRun,
		Warnings: an.warnings,
	}

	for _, outcome := range an.outcomes {
		report.Functions = append(report.Functions, m.FunctionReport{
			Name:    outcome.Node.Name,
			Outcome: outcome.Kind,
			Target:  outcome.Target,
			Reason:  outcome.Reason,
		})

		if outcome.Kind == m.OutcomeSkip {
			report.Skipped++
		} else {
			report.Extracted++
		}
	}

	return report
}

// Split runs the full pipeline against one module file.
func (w *workflow) Split(ctx context.Context, args SplitArgs) error {
	an, err := w.analyze(args.Module)
	if err != nil {
		return err
	}

	w.ui.DisplayDiagnostics(ctx, an.doc.Diagnostics)

	report := newReport(args.Module, an, args.DryRun)

	// A module with no top-level functions (typically one already split)
	// yields zero writes and zero backups.
	if len(an.nodes) == 0 {
		w.ui.DisplayWarnings(ctx, an.warnings)
		w.ui.DisplaySummary(ctx, report)

		return nil
	}

	if err := w.ui.DisplayOutcomes(ctx, an.outcomes); err != nil {
		return err
	}

	if args.DryRun {
		return w.finishDryRun(ctx, args, an, report)
	}

	if an.outcomes.AnySkip() {
		// The guard: one collision withholds every write and the rewrite.
		report.Withheld = true
		report.Extracted = 0

		w.ui.DisplayWarnings(ctx, append(an.warnings,
			"extraction targets already exist; module left untouched"))
		w.ui.DisplaySummary(ctx, report)

		return nil
	}

	if err := w.extractor.ApplyExtractions(an.outcomes); err != nil {
		return err
	}

	plan, err := BuildRewritePlan(an.outcomes)
	if err != nil {
		return err
	}

	rewritten := Rewrite(an.doc.Text, plan)

	backupPath, err := w.backup.Backup(args.Module)
	if err != nil {
		return err
	}

	report.Backup = backupPath

	if err := w.fs.WriteFile(args.Module, []byte(rewritten), an.mode.Perm()); err != nil {
		slog.Error("failed to write rewritten module", "module", args.Module, "error", err)
		return fmt.Errorf("write rewritten module: %w", err)
	}

	if _, err := w.reportStore.SaveReport(args.Reports, report); err != nil {
		slog.Warn("failed to save split report", "module", args.Module, "error", err)
	}

	w.ui.DisplayWarnings(ctx, an.warnings)
	w.ui.DisplaySummary(ctx, report)

	return nil
}

// finishDryRun describes what a real run would do, with zero filesystem
// mutation.
func (w *workflow) finishDryRun(ctx context.Context, args SplitArgs, an analysis, report m.SplitReport) error {
	if !an.outcomes.AnySkip() {
		plan, err := BuildRewritePlan(an.outcomes)
		if err != nil {
			return err
		}

		rewritten := Rewrite(an.doc.Text, plan)
		if err := w.ui.DisplayDryRunDiff(ctx, args.Module, an.doc.Text, rewritten); err != nil {
			return err
		}
	} else {
		report.Withheld = true
	}

	w.ui.DisplayWarnings(ctx, an.warnings)
	w.ui.DisplaySummary(ctx, report)

	return nil
}

// List renders the analysis-only view: located functions, their targets and
// collision status. Pure read path.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	an, err := w.analyze(args.Module)
	if err != nil {
		return err
	}

	w.ui.DisplayDiagnostics(ctx, an.doc.Diagnostics)

	if err := w.ui.DisplayOutcomes(ctx, an.outcomes); err != nil {
		return err
	}

	w.ui.DisplayWarnings(ctx, an.warnings)

	return nil
}

// View loads and renders a previously saved split report.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.reportStore.LoadReport(args.Reports, args.Module)
	if err != nil {
		return err
	}

	w.ui.DisplaySummary(ctx, report)

	return nil
}
