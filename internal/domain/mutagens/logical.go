package mutagens

import (
	"fmt"
	"go/ast"
	"go/token"

	m "github.com/agoda-com/muter/internal/model"
)

// GenerateLogicalMutations swaps logical operators (&& <-> ||).
func GenerateLogicalMutations(n ast.Node, fset *token.FileSet, content []byte, source m.Source, mutationID *int) []m.Mutation {
	binExpr, ok := n.(*ast.BinaryExpr)
	if !ok {
		return nil
	}

	if binExpr.Op != token.LAND && binExpr.Op != token.LOR {
		return nil
	}

	start, ok := offsetForPos(fset, binExpr.OpPos)
	if !ok {
		return nil
	}

	original := binExpr.Op.String()
	mutatedOp := token.LOR

	if binExpr.Op == token.LOR {
		mutatedOp = token.LAND
	}

	end := start + len(original)
	pos := fset.Position(binExpr.OpPos)

	*mutationID++

	return []m.Mutation{{
		ID:          fmt.Sprintf("LOGIC_%d", *mutationID),
		Type:        m.MutationLogical,
		FilePath:    source.Origin.Path,
		Line:        pos.Line,
		Column:      pos.Column,
		Original:    original,
		Mutated:     mutatedOp.String(),
		MutatedCode: replaceRange(content, start, end, mutatedOp.String()),
	}}
}
