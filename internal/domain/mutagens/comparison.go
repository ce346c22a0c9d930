package mutagens

import (
	"fmt"
	"go/ast"
	"go/token"

	m "github.com/agoda-com/muter/internal/model"
)

// GenerateComparisonMutations generates comparison operator mutations for the
// given AST node, one per alternative operator.
func GenerateComparisonMutations(n ast.Node, fset *token.FileSet, content []byte, source m.Source, mutationID *int) []m.Mutation {
	binExpr, ok := n.(*ast.BinaryExpr)
	if !ok {
		return nil
	}

	if !isComparisonOp(binExpr.Op) {
		return nil
	}

	start, ok := offsetForPos(fset, binExpr.OpPos)
	if !ok {
		return nil
	}

	original := binExpr.Op.String()
	end := start + len(original)
	pos := fset.Position(binExpr.OpPos)

	var mutations []m.Mutation

	for _, mutatedOp := range getComparisonAlternatives(binExpr.Op) {
		*mutationID++
		mutations = append(mutations, m.Mutation{
			ID:          fmt.Sprintf("CMP_%d", *mutationID),
			Type:        m.MutationComparison,
			FilePath:    source.Origin.Path,
			Line:        pos.Line,
			Column:      pos.Column,
			Original:    original,
			Mutated:     mutatedOp.String(),
			MutatedCode: replaceRange(content, start, end, mutatedOp.String()),
		})
	}

	return mutations
}

func isComparisonOp(op token.Token) bool {
	return op == token.LSS || op == token.GTR || op == token.LEQ ||
		op == token.GEQ || op == token.EQL || op == token.NEQ
}

func getComparisonAlternatives(original token.Token) []token.Token {
	return alternativesOf(original, []token.Token{
		token.LSS, token.GTR, token.LEQ, token.GEQ, token.EQL, token.NEQ,
	})
}
