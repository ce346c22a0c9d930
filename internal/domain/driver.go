// Package domain contains the core mutation testing workflow and logic.
package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/agoda-com/muter/internal/adapter"
	"github.com/agoda-com/muter/internal/controller"
	m "github.com/agoda-com/muter/internal/model"
)

// Driver executes the mutation test cycle for an ordered list of mutations:
// for each one it backs up the target file, applies the mutation, runs the
// test suite, restores the file, and records the outcome.
//
// Cycles run strictly one at a time. Each cycle destructively mutates a file
// in the shared, live working tree that the test command reads, so only one
// mutation may exist on disk at any instant.
type Driver interface {
	Run(ctx context.Context, mutations []m.Mutation) (m.SessionResult, error)
}

type driver struct {
	swap   adapter.FileSwapManager
	runner adapter.TestRunnerAdapter
	ui     controller.UI
}

// NewDriver constructs a Driver backed by the provided swap manager, test
// runner, and reporting sink.
func NewDriver(swap adapter.FileSwapManager, runner adapter.TestRunnerAdapter, ui controller.UI) Driver {
	return &driver{
		swap:   swap,
		runner: runner,
		ui:     ui,
	}
}

// Run performs the baseline run followed by one cycle per mutation, in input
// order, then scores the collected outcomes.
//
// On a fatal error the returned result carries the outcomes gathered so far,
// un-scored; the in-flight cycle's file has already been restored.
func (d *driver) Run(ctx context.Context, mutations []m.Mutation) (m.SessionResult, error) {
	d.ui.SessionStarted(ctx, len(mutations))

	result := m.SessionResult{}

	baseline, output, err := d.runner.RunTestSuite(ctx)
	if err != nil {
		slog.Error("baseline test run could not be launched", "error", err)
		return result, fmt.Errorf("baseline run: %w", err)
	}

	if baseline == m.Failed {
		slog.Warn("test suite already failing before any mutation", "output", output)
	}

	result.Baseline = baseline
	d.ui.BaselineCompleted(ctx, baseline)

	for i, mutation := range mutations {
		outcome, err := d.runCycle(ctx, mutation)
		if err != nil {
			return result, err
		}

		result.Outcomes = append(result.Outcomes, m.MutationOutcome{
			Mutation: mutation,
			Outcome:  outcome,
		})

		d.ui.MutationTested(ctx, i+1, len(mutations), mutation, outcome)
	}

	if score, ok := Score(outcomesOf(result.Outcomes)); ok {
		result.Score = score
		result.Scored = true
	}

	d.ui.SessionFinished(ctx, result)

	return result, nil
}

// runCycle executes one backup -> apply -> test -> restore sequence. Once the
// backup has succeeded, restoration runs on every exit path out of the cycle,
// including a fatal error partway through, so the working tree never holds a
// mutated file after the cycle ends.
func (d *driver) runCycle(ctx context.Context, mutation m.Mutation) (outcome m.TestOutcome, err error) {
	if backupErr := d.swap.Backup(mutation.FilePath); backupErr != nil {
		return 0, fmt.Errorf("backup before mutation %s: %w", mutation.ID, backupErr)
	}

	defer func() {
		if restoreErr := d.swap.Restore(mutation.FilePath); restoreErr != nil {
			// A failed restore means mutated source may be left in place;
			// escalate instead of continuing.
			err = errors.Join(err, fmt.Errorf("restore after mutation %s: %w", mutation.ID, restoreErr))
		}
	}()

	if applyErr := mutation.Apply(); applyErr != nil {
		return 0, fmt.Errorf("apply mutation %s: %w", mutation.ID, applyErr)
	}

	outcome, _, runErr := d.runner.RunTestSuite(ctx)
	if runErr != nil {
		return 0, fmt.Errorf("test run for mutation %s: %w", mutation.ID, runErr)
	}

	return outcome, nil
}

func outcomesOf(outcomes []m.MutationOutcome) []m.TestOutcome {
	flat := make([]m.TestOutcome, 0, len(outcomes))

	for _, mo := range outcomes {
		flat = append(flat, mo.Outcome)
	}

	return flat
}
