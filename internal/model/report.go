package model

import "time"

// ReportEntry is the persisted record of one tested mutation.
type ReportEntry struct {
	ID       string `yaml:"id"`
	Type     string `yaml:"type"`
	File     string `yaml:"file"`
	Line     int    `yaml:"line"`
	Column   int    `yaml:"column"`
	Original string `yaml:"original"`
	Mutated  string `yaml:"mutated"`
	Outcome  string `yaml:"outcome"`
	Killed   bool   `yaml:"killed"`
}

// FileReport is the persisted per-file breakdown.
type FileReport struct {
	File     string `yaml:"file"`
	Total    int    `yaml:"total"`
	Killed   int    `yaml:"killed"`
	Survived int    `yaml:"survived"`
}

// SessionReport is the serializable form of a completed session, written to
// the reports directory and rendered by the view command.
type SessionReport struct {
	StartedAt  time.Time     `yaml:"started_at"`
	FinishedAt time.Time     `yaml:"finished_at"`
	Baseline   string        `yaml:"baseline"`
	Score      int           `yaml:"score"`
	Scored     bool          `yaml:"scored"`
	Mutations  []ReportEntry `yaml:"mutations"`
	Files      []FileReport  `yaml:"files"`
}

// NewSessionReport converts a session result into its persisted form.
func NewSessionReport(result SessionResult, startedAt, finishedAt time.Time) SessionReport {
	report := SessionReport{
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Baseline:   result.Baseline.String(),
		Score:      result.Score,
		Scored:     result.Scored,
	}

	for _, mo := range result.Outcomes {
		report.Mutations = append(report.Mutations, ReportEntry{
			ID:       mo.Mutation.ID,
			Type:     string(mo.Mutation.Type),
			File:     string(mo.Mutation.FilePath),
			Line:     mo.Mutation.Line,
			Column:   mo.Mutation.Column,
			Original: mo.Mutation.Original,
			Mutated:  mo.Mutation.Mutated,
			Outcome:  mo.Outcome.String(),
			Killed:   mo.Outcome == Failed,
		})
	}

	for _, summary := range SummarizeByFile(result.Outcomes) {
		report.Files = append(report.Files, FileReport{
			File:     string(summary.Path),
			Total:    summary.Total,
			Killed:   summary.Killed,
			Survived: summary.Survived,
		})
	}

	return report
}
