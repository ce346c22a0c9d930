package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agoda-com/muter/internal/adapter"
	m "github.com/agoda-com/muter/internal/model"
)

// callLog records every interaction across the fakes so tests can assert the
// exact backup -> apply -> run -> restore sequence per cycle.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

type fakeSwapManager struct {
	log        *callLog
	backupErr  error
	restoreErr error
}

func (f *fakeSwapManager) Backup(path m.Path) error {
	f.log.add("backup %s", path)
	return f.backupErr
}

func (f *fakeSwapManager) Restore(path m.Path) error {
	f.log.add("restore %s", path)
	return f.restoreErr
}

// fakeRunner replays a scripted sequence of outcomes; a nil entry in errs
// means the run launched fine.
type fakeRunner struct {
	log      *callLog
	outcomes []m.TestOutcome
	errs     []error
	n        int
}

func (f *fakeRunner) RunTestSuite(_ context.Context) (m.TestOutcome, string, error) {
	f.log.add("run %d", f.n)

	i := f.n
	f.n++

	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}

	outcome := m.Passed
	if i < len(f.outcomes) {
		outcome = f.outcomes[i]
	}

	return outcome, "", err
}

type fakeUI struct {
	log      *callLog
	finished *m.SessionResult
}

func (f *fakeUI) Start(_ context.Context) error { return nil }
func (f *fakeUI) Close(_ context.Context)       {}
func (f *fakeUI) Wait(_ context.Context)        {}

func (f *fakeUI) SessionStarted(_ context.Context, total int) {
	f.log.add("ui started %d", total)
}

func (f *fakeUI) BaselineCompleted(_ context.Context, outcome m.TestOutcome) {
	f.log.add("ui baseline %s", outcome)
}

func (f *fakeUI) MutationTested(_ context.Context, index, total int, mutation m.Mutation, outcome m.TestOutcome) {
	f.log.add("ui tested %d/%d %s %s", index, total, mutation.ID, outcome)
}

func (f *fakeUI) SessionFinished(_ context.Context, result m.SessionResult) {
	f.finished = &result
	f.log.add("ui finished")
}

func (f *fakeUI) DisplayEstimation(_ context.Context, _ []m.Mutation) error { return nil }
func (f *fakeUI) DisplayReport(_ context.Context, _ m.SessionReport) error  { return nil }

func testMutation(log *callLog, id string, file m.Path) m.Mutation {
	return m.Mutation{
		ID:       id,
		FilePath: file,
		Apply: func() error {
			log.add("apply %s", id)
			return nil
		},
	}
}

func TestDriver_CycleOrderPerMutation(t *testing.T) {
	log := &callLog{}
	swap := &fakeSwapManager{log: log}
	// First run is the baseline against the unmutated tree.
	runner := &fakeRunner{log: log, outcomes: []m.TestOutcome{m.Passed, m.Failed, m.Passed}}
	ui := &fakeUI{log: log}

	driver := NewDriver(swap, runner, ui)

	mutations := []m.Mutation{
		testMutation(log, "BOOL_1", "a.go"),
		testMutation(log, "BOOL_2", "b.go"),
	}

	result, err := driver.Run(context.Background(), mutations)
	require.NoError(t, err)

	require.Equal(t, []string{
		"ui started 2",
		"run 0",
		"ui baseline passed",
		"backup a.go",
		"apply BOOL_1",
		"run 1",
		"restore a.go",
		"ui tested 1/2 BOOL_1 failed",
		"backup b.go",
		"apply BOOL_2",
		"run 2",
		"restore b.go",
		"ui tested 2/2 BOOL_2 passed",
		"ui finished",
	}, log.calls)

	require.Len(t, result.Outcomes, 2)
	require.Equal(t, m.Failed, result.Outcomes[0].Outcome)
	require.Equal(t, m.Passed, result.Outcomes[1].Outcome)
	require.True(t, result.Scored)
	require.Equal(t, 50, result.Score)
}

func TestDriver_NoMutationsHasNoScore(t *testing.T) {
	log := &callLog{}
	runner := &fakeRunner{log: log, outcomes: []m.TestOutcome{m.Passed}}
	ui := &fakeUI{log: log}

	driver := NewDriver(&fakeSwapManager{log: log}, runner, ui)

	result, err := driver.Run(context.Background(), nil)
	require.NoError(t, err)
	require.False(t, result.Scored)
	require.Empty(t, result.Outcomes)
	require.NotNil(t, ui.finished)
}

func TestDriver_BaselineFailureIsReportedNotScored(t *testing.T) {
	log := &callLog{}
	runner := &fakeRunner{log: log, outcomes: []m.TestOutcome{m.Failed, m.Failed}}
	ui := &fakeUI{log: log}

	driver := NewDriver(&fakeSwapManager{log: log}, runner, ui)

	result, err := driver.Run(context.Background(), []m.Mutation{testMutation(log, "BOOL_1", "a.go")})
	require.NoError(t, err)

	require.Equal(t, m.Failed, result.Baseline)
	require.Contains(t, log.calls, "ui baseline failed")
	// The baseline outcome never appears in the scored sequence.
	require.Len(t, result.Outcomes, 1)
	require.Equal(t, 100, result.Score)
}

func TestDriver_LaunchFailureAtBaselineAbortsBeforeAnyCycle(t *testing.T) {
	log := &callLog{}
	launchErr := &adapter.LaunchError{Executable: "missing", Err: errors.New("no such file")}
	runner := &fakeRunner{log: log, errs: []error{launchErr}}
	ui := &fakeUI{log: log}

	driver := NewDriver(&fakeSwapManager{log: log}, runner, ui)

	result, err := driver.Run(context.Background(), []m.Mutation{testMutation(log, "BOOL_1", "a.go")})
	require.Error(t, err)

	var le *adapter.LaunchError
	require.ErrorAs(t, err, &le)
	require.Empty(t, result.Outcomes)
	require.NotContains(t, log.calls, "backup a.go")
}

func TestDriver_LaunchFailureMidSessionRestoresInFlightFile(t *testing.T) {
	log := &callLog{}
	launchErr := &adapter.LaunchError{Executable: "missing", Err: errors.New("no such file")}
	// Baseline and first cycle launch fine; second cycle's run fails to launch.
	runner := &fakeRunner{
		log:      log,
		outcomes: []m.TestOutcome{m.Passed, m.Failed, m.Passed},
		errs:     []error{nil, nil, launchErr},
	}
	ui := &fakeUI{log: log}

	driver := NewDriver(&fakeSwapManager{log: log}, runner, ui)

	mutations := []m.Mutation{
		testMutation(log, "BOOL_1", "a.go"),
		testMutation(log, "BOOL_2", "b.go"),
	}

	result, err := driver.Run(context.Background(), mutations)
	require.Error(t, err)

	var le *adapter.LaunchError
	require.ErrorAs(t, err, &le)

	// The in-flight file was restored before the abort surfaced.
	require.Contains(t, log.calls, "restore b.go")

	// Partial results up to the failure point are kept but not scored.
	require.Len(t, result.Outcomes, 1)
	require.False(t, result.Scored)
	require.Nil(t, ui.finished)
}

func TestDriver_ApplyFailureStillRestores(t *testing.T) {
	log := &callLog{}
	runner := &fakeRunner{log: log, outcomes: []m.TestOutcome{m.Passed}}
	ui := &fakeUI{log: log}

	driver := NewDriver(&fakeSwapManager{log: log}, runner, ui)

	broken := m.Mutation{
		ID:       "ARITH_1",
		FilePath: "a.go",
		Apply: func() error {
			log.add("apply ARITH_1")
			return errors.New("disk full")
		},
	}

	_, err := driver.Run(context.Background(), []m.Mutation{broken})
	require.Error(t, err)
	require.Contains(t, log.calls, "restore a.go")
	// The test suite never ran for the failed apply.
	require.NotContains(t, log.calls, "run 1")
}

func TestDriver_BackupFailureSkipsRestore(t *testing.T) {
	log := &callLog{}
	runner := &fakeRunner{log: log, outcomes: []m.TestOutcome{m.Passed}}
	swap := &fakeSwapManager{log: log, backupErr: errors.New("unwritable")}
	ui := &fakeUI{log: log}

	driver := NewDriver(swap, runner, ui)

	_, err := driver.Run(context.Background(), []m.Mutation{testMutation(log, "BOOL_1", "a.go")})
	require.Error(t, err)

	// The file was never touched, so there is nothing to restore.
	require.NotContains(t, log.calls, "restore a.go")
	require.NotContains(t, log.calls, "apply BOOL_1")
}

func TestDriver_RestoreFailureEscalates(t *testing.T) {
	log := &callLog{}
	runner := &fakeRunner{log: log, outcomes: []m.TestOutcome{m.Passed, m.Failed}}
	swap := &fakeSwapManager{log: log, restoreErr: errors.New("read-only fs")}
	ui := &fakeUI{log: log}

	driver := NewDriver(swap, runner, ui)

	result, err := driver.Run(context.Background(), []m.Mutation{testMutation(log, "BOOL_1", "a.go")})
	require.Error(t, err)
	require.ErrorContains(t, err, "restore")
	require.False(t, result.Scored)
}
