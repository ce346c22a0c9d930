package mutagens

import (
	"testing"

	"github.com/stretchr/testify/require"

	m "github.com/agoda-com/muter/internal/model"
)

const arithmeticSrc = `package sample

func Add(a, b int) int {
	return a + b
}
`

func TestGenerateArithmeticMutations_OnePerAlternative(t *testing.T) {
	mutations := generate(t, arithmeticSrc, GenerateArithmeticMutations)

	// + mutates to -, *, /, %
	require.Len(t, mutations, 4)

	for _, mutation := range mutations {
		require.Equal(t, m.MutationArithmetic, mutation.Type)
		require.Equal(t, "+", mutation.Original)
		require.Equal(t, 4, mutation.Line)
		require.NotEmpty(t, mutation.MutatedCode)
	}

	require.Contains(t, mutatedStrings(mutations), "package sample\n\nfunc Add(a, b int) int {\n\treturn a - b\n}\n")
}

func TestGenerateArithmeticMutations_IgnoresNonArithmeticNodes(t *testing.T) {
	src := `package sample

func Same(a bool) bool {
	return a
}
`

	mutations := generate(t, src, GenerateArithmeticMutations)
	require.Empty(t, mutations)
}

func TestGenerateArithmeticMutations_EveryOperatorCovered(t *testing.T) {
	src := `package sample

func All(a, b int) int {
	return a + b - a*b/(b%a)
}
`

	mutations := generate(t, src, GenerateArithmeticMutations)

	// Five operators, four alternatives each.
	require.Len(t, mutations, 20)
}
