package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "shsplit.dev/pkg/shsplit/internal/model"
)

func TestReportStore(t *testing.T) {
	store := NewReportStore()

	t.Run("SaveReport then LoadReport round-trips", func(t *testing.T) {
		dir := m.Path(t.TempDir())

		report := m.SplitReport{
			Module:    "lib/mymod.sh",
			Extracted: 2,
			Functions: []m.FunctionReport{
				{Name: "get-widget", Outcome: m.OutcomeWrite, Target: "lib/public/get-widget.sh"},
				{Name: "set-widget", Outcome: m.OutcomeWrite, Target: "lib/public/set-widget.sh"},
			},
			Backup: "lib/mymod.sh.bak",
		}

		path, err := store.SaveReport(dir, report)
		require.NoError(t, err)
		assert.Contains(t, string(path), "mymod.yaml")

		loaded, err := store.LoadReport(dir, "mymod.sh")
		require.NoError(t, err)
		assert.Equal(t, report, loaded)
	})

	t.Run("LoadReport fails for a module that was never split", func(t *testing.T) {
		_, err := store.LoadReport(m.Path(t.TempDir()), "never.sh")
		require.Error(t, err)
	})
}
