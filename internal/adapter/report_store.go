package adapter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "github.com/agoda-com/muter/internal/model"
)

// reportFileName is the file written inside the reports output directory.
const reportFileName = "muter-report.yaml"

// ReportStore persists session reports so they can be viewed later without
// re-running mutation testing.
type ReportStore interface {
	SaveReport(dir m.Path, report m.SessionReport) error
	LoadReport(dir m.Path) (m.SessionReport, error)
}

// YAMLReportStore stores one session report per directory as YAML.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport writes the report to dir, creating the directory if needed.
func (s *YAMLReportStore) SaveReport(dir m.Path, report m.SessionReport) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		slog.Error("failed to create reports directory", "dir", dir, "error", err)
		return fmt.Errorf("create reports directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	target := filepath.Join(string(dir), reportFileName)
	if err := os.WriteFile(target, data, 0o600); err != nil {
		slog.Error("failed to write report", "path", target, "error", err)
		return fmt.Errorf("write report %s: %w", target, err)
	}

	return nil
}

// LoadReport reads a previously saved report from dir.
func (s *YAMLReportStore) LoadReport(dir m.Path) (m.SessionReport, error) {
	target := filepath.Join(string(dir), reportFileName)

	data, err := os.ReadFile(target)
	if err != nil {
		return m.SessionReport{}, fmt.Errorf("read report %s: %w", target, err)
	}

	var report m.SessionReport
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.SessionReport{}, fmt.Errorf("decode report %s: %w", target, err)
	}

	return report, nil
}
