package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	m "shsplit.dev/pkg/shsplit/internal/model"
)

var (
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	skipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	writeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	withheldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// SimpleUI implements UI using the cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayDiagnostics prints parser diagnostics as warnings. Diagnostics do
// not stop the run.
func (s *SimpleUI) DisplayDiagnostics(ctx context.Context, diags []m.Diagnostic) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, diag := range diags {
		s.cmd.Printf("%s parse error at %d:%d: %s\n", warnStyle.Render("warning:"), diag.Line, diag.Column, diag.Message)
	}
}

// DisplayOutcomes renders the per-function extraction plan as a table.
func (s *SimpleUI) DisplayOutcomes(ctx context.Context, outcomes m.Outcomes) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if len(outcomes) == 0 {
		return nil
	}

	s.cmd.Printf("\n%s", renderOutcomeTable(outcomes))

	return nil
}

func renderOutcomeTable(outcomes m.Outcomes) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Function", "Style", "Outcome", "Target"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	writes := 0

	for _, outcome := range outcomes {
		style := "posix"
		if outcome.Node.ReservedWord {
			style = "function"
		}

		status := string(outcome.Kind)
		if outcome.Kind == m.OutcomeSkip {
			status = fmt.Sprintf("%s (%s)", outcome.Kind, outcome.Reason)
		} else {
			writes++
		}

		table.Append([]string{outcome.Node.Name, style, status, string(outcome.Target)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(outcomes)),
		"",
		fmt.Sprintf("%d writable", writes),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

// DisplayDryRunDiff prints a unified diff between the module as it is and
// as it would be after the rewrite.
func (s *SimpleUI) DisplayDryRunDiff(ctx context.Context, module m.Path, original, rewritten string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(rewritten),
		FromFile: string(module),
		ToFile:   string(module) + " (rewritten)",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("render dry-run diff: %w", err)
	}

	s.cmd.Printf("\nDry run: the module would be rewritten as follows:\n\n%s\n", diff)

	return nil
}

// DisplayWarnings prints accumulated warnings.
func (s *SimpleUI) DisplayWarnings(ctx context.Context, warnings []string) {
	if err := ctx.Err(); err != nil {
		return
	}

	for _, warning := range warnings {
		s.cmd.Printf("%s %s\n", warnStyle.Render("warning:"), warning)
	}
}

// DisplaySummary prints the final run summary.
func (s *SimpleUI) DisplaySummary(ctx context.Context, report m.SplitReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	switch {
	case report.Withheld:
		s.cmd.Printf("\n%s %d collision(s); no files written, module untouched\n",
			withheldStyle.Render("withheld:"), report.Skipped)
	case report.DryRun:
		s.cmd.Printf("\ndry run: %s function(s) would be extracted from %s\n",
			writeStyle.Render(fmt.Sprintf("%d", report.Extracted)), report.Module)
	case len(report.Functions) == 0:
		s.cmd.Printf("\nno top-level functions in %s; nothing to do\n", report.Module)
	default:
		s.cmd.Printf("\n%s extracted, %s skipped",
			writeStyle.Render(fmt.Sprintf("%d", report.Extracted)),
			skipStyle.Render(fmt.Sprintf("%d", report.Skipped)))

		if report.Backup != "" {
			s.cmd.Printf(", backup at %s", report.Backup)
		}

		s.cmd.Println()
	}
}
