package engine

import (
	"iter"

	"github.com/mrhapile/stateforge/pkg/statevector"
	"github.com/mrhapile/stateforge/pkg/ternary"
)

// InferenceResult wraps the StateVector produced by Predict,
// resolving variable names against the engine's declared order. A result
// whose vector is empty represents a contradiction; callers test that
// with IsContradiction rather than inspecting the vector directly.
type InferenceResult struct {
	vector    *statevector.StateVector
	variables []string
	index     map[string]int
}

func newResult(vector *statevector.StateVector, variables []string, index map[string]int) InferenceResult {
	return InferenceResult{vector: vector, variables: variables, index: index}
}

// IsContradiction reports whether no assignment satisfies the rules and
// evidence this result was derived from.
func (r InferenceResult) IsContradiction() bool {
	return r.vector.IsEmpty()
}

// GetValue returns the consolidated ternary value of name: T if every
// covered assignment pins it true, F if every one pins it false, X
// otherwise. GetValue on a contradiction always returns X.
func (r InferenceResult) GetValue(name string) ternary.Value {
	pos, ok := r.index[name]
	if !ok || r.vector.IsEmpty() {
		return ternary.X
	}
	return r.vector.GetValue(pos)
}

// IterDicts returns a lazy, finite, restartable sequence over every
// concrete assignment the result covers.
func (r InferenceResult) IterDicts() iter.Seq[map[string]bool] {
	return r.vector.IterDicts(r.nameOf)
}

// Dicts eagerly collects IterDicts.
func (r InferenceResult) Dicts() []map[string]bool {
	return r.vector.Dicts(r.nameOf)
}

func (r InferenceResult) nameOf(i int) string {
	return r.variables[i]
}
