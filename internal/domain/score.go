package domain

import (
	m "github.com/agoda-com/muter/internal/model"
)

// Score computes the mutation score for a set of outcomes: the percentage of
// mutants killed (test suite failed) out of mutants tested, rounded down.
//
// The second return value reports whether a score exists at all; an empty
// outcome set has no meaningful score.
func Score(outcomes []m.TestOutcome) (int, bool) {
	if len(outcomes) == 0 {
		return 0, false
	}

	killed := 0

	for _, outcome := range outcomes {
		if outcome == m.Failed {
			killed++
		}
	}

	return 100 * killed / len(outcomes), true
}
