package engine

import (
	"github.com/mrhapile/stateforge/pkg/ruleast"
	"github.com/mrhapile/stateforge/pkg/statevector"
)

// Rule is one declared rule: its source text, parsed AST, and converted
// StateVector, tagged with a diagnostic ID. The ID and Source are never
// consulted by compilation — they exist purely so verbose output and
// error messages can name which rule is at fault.
type Rule struct {
	ID     string
	Source string
	AST    ruleast.Node
	Vector *statevector.StateVector
}

// Evidence is one add_evidence call's result: the positions it pinned and
// the single-TObject StateVector built from them.
type Evidence struct {
	ID     string
	Values map[string]bool
	Vector *statevector.StateVector
}
