package controller

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	m "github.com/agoda-com/muter/internal/model"
)

func newCapturedUI() (*SimpleUI, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	return NewSimpleUI(cmd), buf
}

func TestSimpleUI_SessionStarted(t *testing.T) {
	ui, buf := newCapturedUI()

	ui.SessionStarted(context.Background(), 7)
	require.Equal(t, "Testing 7 mutant(s)\n", buf.String())
}

func TestSimpleUI_BaselineOutcomes(t *testing.T) {
	ui, buf := newCapturedUI()

	ui.BaselineCompleted(context.Background(), m.Passed)
	require.Contains(t, buf.String(), "Baseline run: passed")

	buf.Reset()
	ui.BaselineCompleted(context.Background(), m.Failed)
	require.Contains(t, buf.String(), "Baseline run: failed")
}

func TestSimpleUI_MutationTestedVerdicts(t *testing.T) {
	ui, buf := newCapturedUI()

	mutation := m.Mutation{
		ID:       "CMP_3",
		FilePath: "pkg/calc.go",
		Line:     12,
		Original: "<",
		Mutated:  ">=",
	}

	ui.MutationTested(context.Background(), 3, 9, mutation, m.Failed)
	require.Equal(t, "[3/9] CMP_3 pkg/calc.go:12 < -> >= ... killed\n", buf.String())

	buf.Reset()
	ui.MutationTested(context.Background(), 4, 9, mutation, m.Passed)
	require.Contains(t, buf.String(), "survived")
}

func TestSimpleUI_SessionFinishedRendersScoreAndSummary(t *testing.T) {
	ui, buf := newCapturedUI()

	outcomes := []m.MutationOutcome{
		{Mutation: m.Mutation{ID: "BOOL_1", FilePath: "a.go"}, Outcome: m.Failed},
		{Mutation: m.Mutation{ID: "BOOL_2", FilePath: "a.go"}, Outcome: m.Passed},
		{Mutation: m.Mutation{ID: "BOOL_3", FilePath: "b.go"}, Outcome: m.Failed},
	}

	ui.SessionFinished(context.Background(), m.SessionResult{
		Baseline: m.Passed,
		Outcomes: outcomes,
		Score:    66,
		Scored:   true,
	})

	out := buf.String()
	require.Contains(t, out, "a.go")
	require.Contains(t, out, "b.go")
	require.Contains(t, out, "TOTAL")
	require.Contains(t, out, "Mutation score: 66%")
}

func TestSimpleUI_SessionFinishedWithoutScore(t *testing.T) {
	ui, buf := newCapturedUI()

	ui.SessionFinished(context.Background(), m.SessionResult{Baseline: m.Passed})
	require.Contains(t, buf.String(), "Mutation score: undefined (no mutations tested)")
}

func TestSimpleUI_DisplayEstimation(t *testing.T) {
	ui, buf := newCapturedUI()

	mutations := []m.Mutation{
		{ID: "ARITH_1", FilePath: "b.go"},
		{ID: "ARITH_2", FilePath: "a.go"},
		{ID: "BOOL_1", FilePath: "a.go"},
	}

	require.NoError(t, ui.DisplayEstimation(context.Background(), mutations))

	out := buf.String()
	require.Contains(t, out, "a.go")
	require.Contains(t, out, "b.go")
	require.Less(t, strings.Index(out, "a.go"), strings.Index(out, "b.go"))
	require.Contains(t, out, "2 FILE(S)")
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	ui, buf := newCapturedUI()

	report := m.SessionReport{
		Score:  100,
		Scored: true,
		Files:  []m.FileReport{{File: "a.go", Total: 2, Killed: 2}},
	}

	require.NoError(t, ui.DisplayReport(context.Background(), report))
	require.Contains(t, buf.String(), "a.go")
	require.Contains(t, buf.String(), "Mutation score: 100%")
}

func TestSimpleUI_CancelledContextSilencesEvents(t *testing.T) {
	ui, buf := newCapturedUI()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ui.SessionStarted(ctx, 3)
	ui.BaselineCompleted(ctx, m.Passed)
	ui.MutationTested(ctx, 1, 3, m.Mutation{ID: "BOOL_1"}, m.Failed)
	ui.SessionFinished(ctx, m.SessionResult{})
	require.Error(t, ui.DisplayEstimation(ctx, nil))
	require.Error(t, ui.DisplayReport(ctx, m.SessionReport{}))

	require.Empty(t, buf.String())
}
