package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/agoda-com/muter/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	killedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	survivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive progress display.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{
		output: output,
		done:   make(chan struct{}),
	}
}

// Start launches the Bubble Tea program in the background. Lifecycle events
// are delivered to it through Program.Send.
func (t *TUI) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.program = tea.NewProgram(newSessionModel(), tea.WithOutput(t.output))

	go func() {
		defer close(t.done)

		if _, err := t.program.Run(); err != nil {
			fmt.Fprintf(t.output, "ui error: %v\n", err)
		}
	}()

	return nil
}

// Close stops the program and waits for it to exit.
func (t *TUI) Close(_ context.Context) {
	if t.program == nil {
		return
	}

	t.program.Quit()
	<-t.done
}

// Wait blocks until the program exits (after the session summary is shown).
func (t *TUI) Wait(_ context.Context) {
	if t.program == nil {
		return
	}

	<-t.done
}

// SessionStarted announces the number of mutants about to be tested.
func (t *TUI) SessionStarted(_ context.Context, total int) {
	t.send(sessionStartedMsg{total: total})
}

// BaselineCompleted reports the unmutated baseline run.
func (t *TUI) BaselineCompleted(_ context.Context, outcome m.TestOutcome) {
	t.send(baselineMsg{outcome: outcome})
}

// MutationTested reports one completed mutation cycle.
func (t *TUI) MutationTested(_ context.Context, index, total int, mutation m.Mutation, outcome m.TestOutcome) {
	t.send(mutationTestedMsg{index: index, total: total, mutation: mutation, outcome: outcome})
}

// SessionFinished shows the final summary and quits the program.
func (t *TUI) SessionFinished(_ context.Context, result m.SessionResult) {
	t.send(sessionFinishedMsg{result: result})
}

// DisplayEstimation prints per-file mutation counts. Estimation output is
// short and non-interactive, so it bypasses the program loop.
func (t *TUI) DisplayEstimation(ctx context.Context, mutations []m.Mutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := fmt.Fprint(t.output, renderEstimationTable(mutations))

	return err
}

// DisplayReport prints a stored session report.
func (t *TUI) DisplayReport(ctx context.Context, report m.SessionReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := fmt.Fprint(t.output, renderReportTable(report)); err != nil {
		return err
	}

	if !report.Scored {
		_, err := fmt.Fprintln(t.output, "Mutation score: undefined (no mutations tested)")
		return err
	}

	_, err := fmt.Fprintf(t.output, "Mutation score: %d%%\n", report.Score)

	return err
}

func (t *TUI) send(msg tea.Msg) {
	if t.program == nil {
		return
	}

	t.program.Send(msg)
}

type sessionStartedMsg struct{ total int }

type baselineMsg struct{ outcome m.TestOutcome }

type mutationTestedMsg struct {
	index    int
	total    int
	mutation m.Mutation
	outcome  m.TestOutcome
}

type sessionFinishedMsg struct{ result m.SessionResult }

// sessionModel is the Bubble Tea model for a running mutation session.
type sessionModel struct {
	total    int
	tested   int
	killed   int
	survived int
	baseline string
	lastLine string
	bar      progress.Model
	result   *m.SessionResult
}

func newSessionModel() sessionModel {
	bar := progress.New(progress.WithDefaultGradient())

	return sessionModel{bar: bar}
}

// Init implements tea.Model.
func (sm sessionModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (sm sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		sm.bar.Width = msg.Width - 4
		return sm, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return sm, tea.Quit
		}

		return sm, nil

	case sessionStartedMsg:
		sm.total = msg.total
		return sm, nil

	case baselineMsg:
		sm.baseline = msg.outcome.String()
		return sm, nil

	case mutationTestedMsg:
		sm.tested = msg.index
		sm.total = msg.total

		if msg.outcome == m.Failed {
			sm.killed++
		} else {
			sm.survived++
		}

		sm.lastLine = fmt.Sprintf("%s %s:%d %s -> %s",
			msg.mutation.ID, msg.mutation.FilePath, msg.mutation.Line,
			msg.mutation.Original, msg.mutation.Mutated)

		return sm, nil

	case sessionFinishedMsg:
		sm.result = &msg.result
		return sm, tea.Quit
	}

	return sm, nil
}

// View implements tea.Model.
func (sm sessionModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("muter mutation testing"))
	b.WriteString("\n\n")

	if sm.baseline != "" {
		fmt.Fprintf(&b, "baseline: %s\n", sm.baseline)
	}

	if sm.result != nil {
		b.WriteString("\n")
		b.WriteString(renderSummaryTable(m.SummarizeByFile(sm.result.Outcomes)))

		if sm.result.Scored {
			fmt.Fprintf(&b, "Mutation score: %d%%\n", sm.result.Score)
		} else {
			b.WriteString("Mutation score: undefined (no mutations tested)\n")
		}

		return b.String()
	}

	percent := 0.0
	if sm.total > 0 {
		percent = float64(sm.tested) / float64(sm.total)
	}

	b.WriteString(sm.bar.ViewAs(percent))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%d/%d tested  %s  %s\n",
		sm.tested, sm.total,
		killedStyle.Render(fmt.Sprintf("%d killed", sm.killed)),
		survivedStyle.Render(fmt.Sprintf("%d survived", sm.survived)),
	)

	if sm.lastLine != "" {
		b.WriteString(faintStyle.Render(sm.lastLine))
		b.WriteString("\n")
	}

	return b.String()
}
