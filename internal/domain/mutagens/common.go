// Package mutagens provides the individual mutation operators.
package mutagens

import (
	"go/token"
)

// offsetForPos translates a token position into a byte offset within the
// file content, guarding against positions outside the file.
func offsetForPos(fset *token.FileSet, pos token.Pos) (int, bool) {
	file := fset.File(pos)
	if file == nil {
		return 0, false
	}

	return file.Offset(pos), true
}

// replaceRange returns a copy of content with [start, end) replaced.
func replaceRange(content []byte, start, end int, replacement string) []byte {
	mutated := make([]byte, 0, len(content)-(end-start)+len(replacement))
	mutated = append(mutated, content[:start]...)
	mutated = append(mutated, replacement...)
	mutated = append(mutated, content[end:]...)

	return mutated
}

// alternativesOf returns every operator from all except the original.
func alternativesOf(original token.Token, all []token.Token) []token.Token {
	var alternatives []token.Token

	for _, op := range all {
		if op != original {
			alternatives = append(alternatives, op)
		}
	}

	return alternatives
}
