// Package controller provides output adapters for displaying mutation
// testing progress and results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "github.com/agoda-com/muter/internal/model"
)

// UI is the reporting sink for mutation testing lifecycle events.
// Implementations can use different output methods (simple text, TUI, etc).
//
// The sink is purely a consumer: nothing it returns affects driver behavior,
// and it is only ever invoked from the driver's single sequential thread.
type UI interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)
	Wait(ctx context.Context)

	// SessionStarted announces how many mutants the session will test.
	SessionStarted(ctx context.Context, total int)

	// BaselineCompleted reports the test run against the unmutated tree.
	// It is distinct from per-mutation results and never scored.
	BaselineCompleted(ctx context.Context, outcome m.TestOutcome)

	// MutationTested reports one completed cycle with partial progress counts.
	MutationTested(ctx context.Context, index, total int, mutation m.Mutation, outcome m.TestOutcome)

	// SessionFinished carries the full result, score, and per-file breakdown.
	SessionFinished(ctx context.Context, result m.SessionResult)

	// DisplayEstimation shows per-file mutation counts without testing.
	DisplayEstimation(ctx context.Context, mutations []m.Mutation) error

	// DisplayReport renders a previously stored session report.
	DisplayReport(ctx context.Context, report m.SessionReport) error
}

// NewUI selects the TUI when attached to a terminal and the plain text UI
// otherwise.
func NewUI(cmd *cobra.Command, isTTY bool) UI {
	if isTTY {
		return NewTUI(os.Stdout)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
