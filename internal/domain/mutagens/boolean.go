package mutagens

import (
	"fmt"
	"go/ast"
	"go/token"

	m "github.com/agoda-com/muter/internal/model"
)

const (
	trueStr  = "true"
	falseStr = "false"
)

// GenerateBooleanMutations flips boolean literals (true <-> false).
func GenerateBooleanMutations(n ast.Node, fset *token.FileSet, content []byte, source m.Source, mutationID *int) []m.Mutation {
	ident, ok := n.(*ast.Ident)
	if !ok {
		return nil
	}

	if !isBooleanLiteral(ident.Name) {
		return nil
	}

	start, ok := offsetForPos(fset, ident.Pos())
	if !ok {
		return nil
	}

	original := ident.Name
	mutated := flipBoolean(original)
	end := start + len(original)
	pos := fset.Position(ident.Pos())

	*mutationID++

	return []m.Mutation{{
		ID:          fmt.Sprintf("BOOL_%d", *mutationID),
		Type:        m.MutationBoolean,
		FilePath:    source.Origin.Path,
		Line:        pos.Line,
		Column:      pos.Column,
		Original:    original,
		Mutated:     mutated,
		MutatedCode: replaceRange(content, start, end, mutated),
	}}
}

// isBooleanLiteral checks if a string is a boolean literal.
func isBooleanLiteral(name string) bool {
	return name == trueStr || name == falseStr
}

// flipBoolean returns the opposite boolean literal.
func flipBoolean(original string) string {
	if original == trueStr {
		return falseStr
	}

	return trueStr
}
