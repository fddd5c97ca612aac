package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "shsplit.dev/pkg/shsplit/internal/model"
)

// ReportStore persists split run summaries.
type ReportStore interface {
	SaveReport(dir m.Path, report m.SplitReport) (m.Path, error)
	LoadReport(dir m.Path, module m.Path) (m.SplitReport, error)
}

type localReportStore struct{}

// NewReportStore constructs a ReportStore writing YAML files to a reports
// directory.
func NewReportStore() ReportStore {
	return &localReportStore{}
}

// SaveReport writes the report as <reports>/<module-base>.yaml and returns
// the path it wrote.
func (s *localReportStore) SaveReport(dir m.Path, report m.SplitReport) (m.Path, error) {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	target := reportPath(dir, report.Module)
	if err := os.WriteFile(string(target), data, 0o600); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	return target, nil
}

// LoadReport reads a previously saved report for the given module.
func (s *localReportStore) LoadReport(dir m.Path, module m.Path) (m.SplitReport, error) {
	data, err := os.ReadFile(string(reportPath(dir, module)))
	if err != nil {
		return m.SplitReport{}, fmt.Errorf("read report: %w", err)
	}

	var report m.SplitReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.SplitReport{}, fmt.Errorf("decode report: %w", err)
	}

	return report, nil
}

func reportPath(dir m.Path, module m.Path) m.Path {
	base := filepath.Base(string(module))
	base = strings.TrimSuffix(base, filepath.Ext(base))

	return m.Path(filepath.Join(string(dir), base+".yaml"))
}
