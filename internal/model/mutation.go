// Package model defines the data structures for mutation testing.
package model

// MutationType represents the category of mutation.
type MutationType string

const (
	// MutationArithmetic represents arithmetic operator mutations (+, -, *, /, %).
	MutationArithmetic MutationType = "arithmetic"
	// MutationBoolean represents boolean literal mutations (true <-> false).
	MutationBoolean MutationType = "boolean"
	// MutationComparison represents comparison operator mutations (==, !=, <, <=, >, >=).
	MutationComparison MutationType = "comparison"
	// MutationLogical represents logical operator mutations (&& <-> ||).
	MutationLogical MutationType = "logical"
)

// Mutation describes one candidate alteration of a source file.
//
// Apply rewrites the file's on-disk content with this mutation. It performs
// exactly one rewrite and must not be invoked twice in one session; the
// driver only reads FilePath and calls Apply once per cycle.
type Mutation struct {
	ID          string
	Type        MutationType
	FilePath    Path
	Line        int
	Column      int
	Original    string
	Mutated     string
	MutatedCode []byte
	Apply       func() error
}
