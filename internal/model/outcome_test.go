package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTestOutcomeString(t *testing.T) {
	require.Equal(t, "passed", Passed.String())
	require.Equal(t, "failed", Failed.String())
}

func TestSummarizeByFile_CountsAndSortsByPath(t *testing.T) {
	outcomes := []MutationOutcome{
		{Mutation: Mutation{ID: "BOOL_1", FilePath: "z.go"}, Outcome: Failed},
		{Mutation: Mutation{ID: "CMP_1", FilePath: "a.go"}, Outcome: Passed},
		{Mutation: Mutation{ID: "CMP_2", FilePath: "a.go"}, Outcome: Failed},
		{Mutation: Mutation{ID: "BOOL_2", FilePath: "z.go"}, Outcome: Failed},
	}

	summaries := SummarizeByFile(outcomes)

	require.Equal(t, []FileSummary{
		{Path: "a.go", Total: 2, Killed: 1, Survived: 1},
		{Path: "z.go", Total: 2, Killed: 2, Survived: 0},
	}, summaries)
}

func TestSummarizeByFile_Empty(t *testing.T) {
	require.Empty(t, SummarizeByFile(nil))
}
