package domain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shsplit.dev/pkg/shsplit/internal/adapter"
	"shsplit.dev/pkg/shsplit/internal/controller"
	m "shsplit.dev/pkg/shsplit/internal/model"
)

const scenarioModule = "get-widget() { echo \"hi $1\"; }\nset-widget() { get-widget \"$1\"; }\n"

func newTestWorkflow(t *testing.T) (Workflow, *bytes.Buffer) {
	t.Helper()

	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)

	wf := NewWorkflow(
		adapter.NewLocalShellFileAdapter(),
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewReportStore(),
		controller.NewSimpleUI(cmd),
	)

	return wf, out
}

func writeModule(t *testing.T, dir, content string) m.Path {
	t.Helper()

	module := filepath.Join(dir, "mymod.sh")
	require.NoError(t, os.WriteFile(module, []byte(content), 0o640))

	return m.Path(module)
}

func TestWorkflowSplit(t *testing.T) {
	ctx := context.Background()

	t.Run("scenario: two functions split into two files plus loader", func(t *testing.T) {
		dir := t.TempDir()
		module := writeModule(t, dir, scenarioModule)
		wf, _ := newTestWorkflow(t)

		require.NoError(t, wf.Split(ctx, SplitArgs{
			Module:  module,
			Reports: m.Path(filepath.Join(dir, "reports")),
		}))

		getContent, err := os.ReadFile(filepath.Join(dir, PublicDirName, "get-widget.sh"))
		require.NoError(t, err)
		assert.Equal(t, "get-widget() { echo \"hi $1\"; }", string(getContent))

		setContent, err := os.ReadFile(filepath.Join(dir, PublicDirName, "set-widget.sh"))
		require.NoError(t, err)
		assert.Equal(t, "set-widget() { get-widget \"$1\"; }", string(setContent))

		rewritten, err := os.ReadFile(string(module))
		require.NoError(t, err)
		assert.Equal(t, LoaderBlock(), string(rewritten))
		assert.NotContains(t, string(rewritten), "get-widget() {")

		backup, err := os.ReadFile(string(module) + BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, scenarioModule, string(backup))

		report, err := adapter.NewReportStore().LoadReport(m.Path(filepath.Join(dir, "reports")), module)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Extracted)
		assert.Equal(t, 0, report.Skipped)
	})

	t.Run("scenario: one collision withholds everything", func(t *testing.T) {
		dir := t.TempDir()
		module := writeModule(t, dir, scenarioModule)
		wf, out := newTestWorkflow(t)

		unrelated := "totally unrelated content\n"
		require.NoError(t, os.MkdirAll(filepath.Join(dir, PublicDirName), 0o750))
		require.NoError(t, os.WriteFile(filepath.Join(dir, PublicDirName, "get-widget.sh"), []byte(unrelated), 0o640))

		require.NoError(t, wf.Split(ctx, SplitArgs{
			Module:  module,
			Reports: m.Path(filepath.Join(dir, "reports")),
		}))

		// The module is byte-identical to its pre-run state.
		after, err := os.ReadFile(string(module))
		require.NoError(t, err)
		assert.Equal(t, scenarioModule, string(after))

		// The non-colliding write was withheld too.
		_, err = os.Stat(filepath.Join(dir, PublicDirName, "set-widget.sh"))
		assert.True(t, os.IsNotExist(err))

		// The colliding file is untouched and no backup was made.
		existing, err := os.ReadFile(filepath.Join(dir, PublicDirName, "get-widget.sh"))
		require.NoError(t, err)
		assert.Equal(t, unrelated, string(existing))

		_, err = os.Stat(string(module) + BackupSuffix)
		assert.True(t, os.IsNotExist(err))

		assert.Contains(t, out.String(), "withheld")
	})

	t.Run("module without top-level functions is a successful no-op", func(t *testing.T) {
		dir := t.TempDir()
		content := "#!/usr/bin/env bash\necho hello\n"
		module := writeModule(t, dir, content)
		wf, out := newTestWorkflow(t)

		require.NoError(t, wf.Split(ctx, SplitArgs{Module: module, Reports: m.Path(filepath.Join(dir, "reports"))}))

		after, err := os.ReadFile(string(module))
		require.NoError(t, err)
		assert.Equal(t, content, string(after))

		_, err = os.Stat(string(module) + BackupSuffix)
		assert.True(t, os.IsNotExist(err))

		_, err = os.Stat(filepath.Join(dir, PublicDirName))
		assert.True(t, os.IsNotExist(err))

		assert.Contains(t, out.String(), "nothing to do")
	})

	t.Run("running twice is idempotent", func(t *testing.T) {
		dir := t.TempDir()
		module := writeModule(t, dir, scenarioModule)
		wf, _ := newTestWorkflow(t)
		args := SplitArgs{Module: module, Reports: m.Path(filepath.Join(dir, "reports"))}

		require.NoError(t, wf.Split(ctx, args))

		first, err := os.ReadFile(string(module))
		require.NoError(t, err)

		// The rewritten module has no top-level functions left, so a second
		// run changes nothing and creates no new backup.
		require.NoError(t, os.Remove(string(module) + BackupSuffix))
		require.NoError(t, wf.Split(ctx, args))

		second, err := os.ReadFile(string(module))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))

		_, err = os.Stat(string(module) + BackupSuffix)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("dry run mutates nothing and prints a diff", func(t *testing.T) {
		dir := t.TempDir()
		module := writeModule(t, dir, scenarioModule)
		wf, out := newTestWorkflow(t)

		require.NoError(t, wf.Split(ctx, SplitArgs{
			Module:  module,
			DryRun:  true,
			Reports: m.Path(filepath.Join(dir, "reports")),
		}))

		after, err := os.ReadFile(string(module))
		require.NoError(t, err)
		assert.Equal(t, scenarioModule, string(after))

		_, err = os.Stat(filepath.Join(dir, PublicDirName))
		assert.True(t, os.IsNotExist(err))

		_, err = os.Stat(string(module) + BackupSuffix)
		assert.True(t, os.IsNotExist(err))

		_, err = os.Stat(filepath.Join(dir, "reports"))
		assert.True(t, os.IsNotExist(err))

		assert.Contains(t, out.String(), "Dry run")
		assert.Contains(t, out.String(), "get-widget")
	})

	t.Run("missing module file is a fatal input error", func(t *testing.T) {
		wf, _ := newTestWorkflow(t)

		err := wf.Split(ctx, SplitArgs{Module: m.Path(filepath.Join(t.TempDir(), "nope.sh"))})
		require.Error(t, err)
	})

	t.Run("directory module path is rejected", func(t *testing.T) {
		wf, _ := newTestWorkflow(t)

		err := wf.Split(ctx, SplitArgs{Module: m.Path(t.TempDir())})
		require.ErrorIs(t, err, ErrNotRegularFile)
	})

	t.Run("leftover export -f directive produces a warning, not a failure", func(t *testing.T) {
		dir := t.TempDir()
		content := "greet() { echo hi; }\nexport -f greet\n"
		module := writeModule(t, dir, content)
		wf, out := newTestWorkflow(t)

		require.NoError(t, wf.Split(ctx, SplitArgs{Module: module, Reports: m.Path(filepath.Join(dir, "reports"))}))

		rewritten, err := os.ReadFile(string(module))
		require.NoError(t, err)
		assert.Contains(t, string(rewritten), "export -f greet")

		assert.Contains(t, out.String(), "export -f")
	})
}

func TestWorkflowList(t *testing.T) {
	ctx := context.Background()

	t.Run("shows functions without touching the filesystem", func(t *testing.T) {
		dir := t.TempDir()
		module := writeModule(t, dir, scenarioModule)
		wf, out := newTestWorkflow(t)

		require.NoError(t, wf.List(ctx, ListArgs{Module: module}))

		assert.Contains(t, out.String(), "get-widget")
		assert.Contains(t, out.String(), "set-widget")

		_, err := os.Stat(filepath.Join(dir, PublicDirName))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestWorkflowView(t *testing.T) {
	ctx := context.Background()

	t.Run("renders a previously saved report", func(t *testing.T) {
		dir := t.TempDir()
		module := writeModule(t, dir, scenarioModule)
		reports := m.Path(filepath.Join(dir, "reports"))
		wf, out := newTestWorkflow(t)

		require.NoError(t, wf.Split(ctx, SplitArgs{Module: module, Reports: reports}))
		require.NoError(t, wf.View(ctx, ViewArgs{Module: module, Reports: reports}))

		assert.Contains(t, out.String(), "2 extracted")
	})

	t.Run("fails for a module that was never split", func(t *testing.T) {
		wf, _ := newTestWorkflow(t)

		err := wf.View(ctx, ViewArgs{Module: "never.sh", Reports: m.Path(t.TempDir())})
		require.Error(t, err)
	})
}
