package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/agoda-com/muter/internal/adapter"
	"github.com/agoda-com/muter/internal/controller"
	m "github.com/agoda-com/muter/internal/model"
	"github.com/agoda-com/muter/pkg/journal"
)

// journalFileName is the session journal inside the swap directory.
const journalFileName = "session.journal"

// RunnerFactory builds a test runner rooted at the project directory the
// session resolves at runtime.
type RunnerFactory func(projectRoot m.Path) adapter.TestRunnerAdapter

// TestArgs contains the arguments for running a mutation testing session.
type TestArgs struct {
	Paths   []m.Path
	Exclude []string
	Reports m.Path
	SwapDir m.Path
	Threads int
}

// EstimateArgs contains the arguments for estimating mutation counts.
type EstimateArgs struct {
	Paths   []m.Path
	Exclude []string
}

// ViewArgs contains the arguments for viewing a stored report.
type ViewArgs struct {
	Reports m.Path
}

// CleanArgs contains the arguments for recovering an interrupted session.
type CleanArgs struct {
	SwapDir m.Path
}

// Workflow ties discovery, generation, the cycle driver, and persistence
// together behind the CLI commands.
type Workflow interface {
	Test(ctx context.Context, args TestArgs) (m.SessionResult, error)
	Estimate(ctx context.Context, args EstimateArgs) error
	View(ctx context.Context, args ViewArgs) error
	Clean(ctx context.Context, args CleanArgs) error
}

type workflow struct {
	fs            adapter.SourceFSAdapter
	store         adapter.ReportStore
	ui            controller.UI
	mutagen       Mutagen
	runnerFactory RunnerFactory
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	mutagen Mutagen,
	runnerFactory RunnerFactory,
) Workflow {
	return &workflow{
		fs:            fsAdapter,
		store:         reportStore,
		ui:            ui,
		mutagen:       mutagen,
		runnerFactory: runnerFactory,
	}
}

// SwapEntry is one journaled (original, swap) pair. The journal makes an
// interrupted session recoverable by the clean command.
type SwapEntry struct {
	Original string
	Swap     string
}

// Test runs a full mutation testing session and persists the report.
func (w *workflow) Test(ctx context.Context, args TestArgs) (m.SessionResult, error) {
	startedAt := time.Now()

	sources, err := DiscoverSources(w.fs, args.Paths, args.Exclude)
	if err != nil {
		return m.SessionResult{}, fmt.Errorf("discover sources: %w", err)
	}

	mutations, err := w.mutagen.GenerateAll(ctx, sources, args.Threads)
	if err != nil {
		return m.SessionResult{}, fmt.Errorf("generate mutations: %w", err)
	}

	projectRoot, err := w.projectRoot(sources)
	if err != nil {
		return m.SessionResult{}, err
	}

	swapDir := w.resolveSwapDir(args.SwapDir, projectRoot)
	if err := w.fs.MkdirAll(swapDir, 0o750); err != nil {
		return m.SessionResult{}, fmt.Errorf("create swap directory %s: %w", swapDir, err)
	}

	record, err := adapter.BuildSwapRecord(mutatedFiles(mutations), swapDir)
	if err != nil {
		return m.SessionResult{}, fmt.Errorf("build swap record: %w", err)
	}

	if err := w.writeJournal(swapDir, record); err != nil {
		return m.SessionResult{}, err
	}

	if err := w.ui.Start(ctx); err != nil {
		return m.SessionResult{}, fmt.Errorf("start ui: %w", err)
	}
	defer w.ui.Close(ctx)

	driver := NewDriver(adapter.NewLocalFileSwapManager(record), w.runnerFactory(projectRoot), w.ui)

	result, err := driver.Run(ctx, mutations)
	if err != nil {
		// The swap directory is kept so `muter clean` can verify and
		// recover; every completed cycle has already been restored.
		slog.Error("mutation session aborted", "error", err)
		return result, err
	}

	w.ui.Wait(ctx)

	report := m.NewSessionReport(result, startedAt, time.Now())
	if err := w.store.SaveReport(args.Reports, report); err != nil {
		return result, fmt.Errorf("save report: %w", err)
	}

	if err := w.fs.RemoveAll(swapDir); err != nil {
		slog.Error("failed to remove swap directory", "dir", swapDir, "error", err)
	}

	return result, nil
}

// Estimate discovers sources and displays mutation counts without testing.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	sources, err := DiscoverSources(w.fs, args.Paths, args.Exclude)
	if err != nil {
		return fmt.Errorf("discover sources: %w", err)
	}

	mutations, err := w.mutagen.GenerateAll(ctx, sources, 1)
	if err != nil {
		return fmt.Errorf("generate mutations: %w", err)
	}

	return w.ui.DisplayEstimation(ctx, mutations)
}

// View renders a previously stored session report.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	report, err := w.store.LoadReport(args.Reports)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	return w.ui.DisplayReport(ctx, report)
}

// Clean replays the session journal of an interrupted run, restoring every
// file whose swap copy still exists, then removes the swap directory.
func (w *workflow) Clean(_ context.Context, args CleanArgs) error {
	projectRoot, err := w.fs.FindProjectRoot(".")
	if err != nil {
		return fmt.Errorf("find project root: %w", err)
	}

	swapDir := w.resolveSwapDir(args.SwapDir, projectRoot)

	journalPath := string(w.fs.JoinPath(string(swapDir), journalFileName))
	if _, err := w.fs.FileInfo(m.Path(journalPath)); err != nil {
		if os.IsNotExist(err) {
			slog.Info("no session journal found, nothing to clean", "dir", swapDir)
			return nil
		}

		return fmt.Errorf("stat journal: %w", err)
	}

	err = journal.Replay(journalPath, func(_ uint64, entry SwapEntry) error {
		if _, err := w.fs.FileInfo(m.Path(entry.Swap)); err != nil {
			if os.IsNotExist(err) {
				return nil
			}

			return err
		}

		content, err := w.fs.ReadFile(m.Path(entry.Swap))
		if err != nil {
			return fmt.Errorf("read swap %s: %w", entry.Swap, err)
		}

		info, err := w.fs.FileInfo(m.Path(entry.Original))
		if err != nil {
			return fmt.Errorf("stat %s: %w", entry.Original, err)
		}

		if err := w.fs.WriteFile(m.Path(entry.Original), content, info.Mode()); err != nil {
			return fmt.Errorf("restore %s: %w", entry.Original, err)
		}

		slog.Info("restored file from swap", "path", entry.Original)

		return nil
	})
	if err != nil {
		return fmt.Errorf("replay journal: %w", err)
	}

	if err := w.fs.RemoveAll(swapDir); err != nil {
		return fmt.Errorf("remove swap directory %s: %w", swapDir, err)
	}

	return nil
}

func (w *workflow) projectRoot(sources []m.Source) (m.Path, error) {
	start := m.Path(".")
	if len(sources) > 0 {
		start = sources[0].Origin.Path
	}

	root, err := w.fs.FindProjectRoot(start)
	if err != nil {
		return "", fmt.Errorf("find project root: %w", err)
	}

	return root, nil
}

func (w *workflow) resolveSwapDir(swapDir m.Path, projectRoot m.Path) m.Path {
	if filepath.IsAbs(string(swapDir)) {
		return swapDir
	}

	return w.fs.JoinPath(string(projectRoot), string(swapDir))
}

func (w *workflow) writeJournal(swapDir m.Path, record m.SwapRecord) error {
	j, err := journal.New[SwapEntry](string(w.fs.JoinPath(string(swapDir), journalFileName)))
	if err != nil {
		return fmt.Errorf("open session journal: %w", err)
	}

	defer func() {
		_ = j.Close()
	}()

	for original, swap := range record {
		if err := j.Append(SwapEntry{Original: string(original), Swap: string(swap)}); err != nil {
			return fmt.Errorf("journal %s: %w", original, err)
		}
	}

	return nil
}

func mutatedFiles(mutations []m.Mutation) []m.Path {
	files := make([]m.Path, 0, len(mutations))

	for _, mutation := range mutations {
		files = append(files, mutation.FilePath)
	}

	return files
}
