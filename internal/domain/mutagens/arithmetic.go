package mutagens

import (
	"fmt"
	"go/ast"
	"go/token"

	m "github.com/agoda-com/muter/internal/model"
)

// GenerateArithmeticMutations generates arithmetic operator mutations for the
// given AST node, one per alternative operator.
func GenerateArithmeticMutations(n ast.Node, fset *token.FileSet, content []byte, source m.Source, mutationID *int) []m.Mutation {
	binExpr, ok := n.(*ast.BinaryExpr)
	if !ok {
		return nil
	}

	if !isArithmeticOp(binExpr.Op) {
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

	for _, mutatedOp := range getArithmeticAlternatives(binExpr.Op) {
		*mutationID++
		mutations = append(mutations, m.Mutation{
			ID:          fmt.Sprintf("ARITH_%d", *mutationID),
			Type:        m.MutationArithmetic,
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

// isArithmeticOp checks if a token is an arithmetic operator.
func isArithmeticOp(op token.Token) bool {
	return op == token.ADD || op == token.SUB || op == token.MUL || op == token.QUO || op == token.REM
}

// getArithmeticAlternatives returns all alternative operators for mutation.
func getArithmeticAlternatives(original token.Token) []token.Token {
	return alternativesOf(original, []token.Token{token.ADD, token.SUB, token.MUL, token.QUO, token.REM})
}
