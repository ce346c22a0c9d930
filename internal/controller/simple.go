package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/agoda-com/muter/internal/model"
)

// SimpleUI implements UI using cobra Command's Printf. It is used when
// stdout is not a terminal (CI, redirected output).
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// SessionStarted announces the number of mutants about to be tested.
func (s *SimpleUI) SessionStarted(ctx context.Context, total int) {
	if ctx.Err() != nil {
		return
	}

	s.cmd.Printf("Testing %d mutant(s)\n", total)
}

// BaselineCompleted reports the unmutated baseline run.
func (s *SimpleUI) BaselineCompleted(ctx context.Context, outcome m.TestOutcome) {
	if ctx.Err() != nil {
		return
	}

	if outcome == m.Failed {
		s.cmd.Println("Baseline run: failed (the test suite fails before any mutation is applied)")
		return
	}

	s.cmd.Println("Baseline run: passed")
}

// MutationTested reports one completed mutation cycle.
func (s *SimpleUI) MutationTested(ctx context.Context, index, total int, mutation m.Mutation, outcome m.TestOutcome) {
	if ctx.Err() != nil {
		return
	}

	s.cmd.Printf("[%d/%d] %s %s:%d %s -> %s ... %s\n",
		index, total,
		mutation.ID,
		mutation.FilePath, mutation.Line,
		mutation.Original, mutation.Mutated,
		verdict(outcome),
	)
}

// SessionFinished renders the per-file breakdown and final score.
func (s *SimpleUI) SessionFinished(ctx context.Context, result m.SessionResult) {
	if ctx.Err() != nil {
		return
	}

	s.cmd.Printf("\n%s", renderSummaryTable(m.SummarizeByFile(result.Outcomes)))

	if !result.Scored {
		s.cmd.Println("Mutation score: undefined (no mutations tested)")
		return
	}

	s.cmd.Printf("Mutation score: %d%%\n", result.Score)
}

// DisplayEstimation renders per-file mutation counts.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, mutations []m.Mutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Printf("\n%s", renderEstimationTable(mutations))

	return nil
}

// DisplayReport renders a stored session report.
func (s *SimpleUI) DisplayReport(ctx context.Context, report m.SessionReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.cmd.Printf("\n%s", renderReportTable(report))

	if !report.Scored {
		s.cmd.Println("Mutation score: undefined (no mutations tested)")
		return nil
	}

	s.cmd.Printf("Mutation score: %d%%\n", report.Score)

	return nil
}

func verdict(outcome m.TestOutcome) string {
	if outcome == m.Failed {
		return "killed"
	}

	return "survived"
}

func renderSummaryTable(summaries []m.FileSummary) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Mutants", "Killed", "Survived"})

	total := m.FileSummary{}

	for _, summary := range summaries {
		table.Append([]string{
			string(summary.Path),
			strconv.Itoa(summary.Total),
			strconv.Itoa(summary.Killed),
			strconv.Itoa(summary.Survived),
		})

		total.Total += summary.Total
		total.Killed += summary.Killed
		total.Survived += summary.Survived
	}

	table.SetFooter([]string{
		"Total",
		strconv.Itoa(total.Total),
		strconv.Itoa(total.Killed),
		strconv.Itoa(total.Survived),
	})
	table.Render()

	return buf.String()
}

func renderEstimationTable(mutations []m.Mutation) string {
	counts := make(map[m.Path]int)

	var paths []m.Path

	for _, mutation := range mutations {
		if _, ok := counts[mutation.FilePath]; !ok {
			paths = append(paths, mutation.FilePath)
		}

		counts[mutation.FilePath]++
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Mutations"})

	for _, path := range paths {
		table.Append([]string{string(path), strconv.Itoa(counts[path])})
	}

	table.SetFooter([]string{fmt.Sprintf("%d file(s)", len(paths)), strconv.Itoa(len(mutations))})
	table.Render()

	return buf.String()
}

func renderReportTable(report m.SessionReport) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Mutants", "Killed", "Survived"})

	for _, file := range report.Files {
		table.Append([]string{
			file.File,
			strconv.Itoa(file.Total),
			strconv.Itoa(file.Killed),
			strconv.Itoa(file.Survived),
		})
	}

	table.Render()

	return buf.String()
}
