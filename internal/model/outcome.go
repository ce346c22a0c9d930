package model

import "sort"

// TestOutcome classifies a test suite run by its exit status.
type TestOutcome int

const (
	// Passed indicates the test command exited zero. Against a mutated tree
	// this means the mutant survived (a test gap).
	Passed TestOutcome = iota
	// Failed indicates the test command exited nonzero. Against a mutated
	// tree this means the mutant was killed.
	Failed
)

// String returns a human readable name for the outcome.
func (o TestOutcome) String() string {
	if o == Failed {
		return "failed"
	}

	return "passed"
}

// MutationOutcome pairs a mutation with the outcome of its test cycle.
type MutationOutcome struct {
	Mutation Mutation
	Outcome  TestOutcome
}

// SessionResult aggregates a full mutation testing session.
//
// Score is only meaningful when Scored is true; a session with no mutations
// tested, or one aborted by a fatal error, carries no score.
type SessionResult struct {
	Baseline TestOutcome
	Outcomes []MutationOutcome
	Score    int
	Scored   bool
}

// FileSummary is the per-file breakdown of a session.
type FileSummary struct {
	Path     Path
	Total    int
	Killed   int
	Survived int
}

// SummarizeByFile folds per-mutation outcomes into per-file counts, ordered
// by path.
func SummarizeByFile(outcomes []MutationOutcome) []FileSummary {
	index := make(map[Path]int)

	var summaries []FileSummary

	for _, mo := range outcomes {
		i, ok := index[mo.Mutation.FilePath]
		if !ok {
			i = len(summaries)
			index[mo.Mutation.FilePath] = i

			summaries = append(summaries, FileSummary{Path: mo.Mutation.FilePath})
		}

		summaries[i].Total++

		if mo.Outcome == Failed {
			summaries[i].Killed++
		} else {
			summaries[i].Survived++
		}
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Path < summaries[j].Path
	})

	return summaries
}
