// Package statevector implements StateVector: a disjunction of TObjects
// and its algebra (multiplication, simplification, consolidated value
// queries, and finite expansion).
package statevector

import (
	"iter"

	"github.com/mrhapile/stateforge/pkg/ternary"
)

// StateVector is an unordered collection of TObjects over the same number
// of variables, representing the union of the assignments its members
// cover. An empty StateVector is the contradiction ⊥; a StateVector
// holding the all-X TObject is the tautology ⊤.
type StateVector struct {
	n       int
	members []*ternary.TObject
}

// New returns an empty StateVector (⊥) over n variables.
func New(n int) *StateVector {
	return &StateVector{n: n}
}

// Tautology returns a StateVector over n variables containing only the
// all-X TObject (⊤).
func Tautology(n int) *StateVector {
	sv := New(n)
	sv.Push(ternary.New(n))
	return sv
}

// Push adds a TObject. Intended for construction only, before the vector
// is shared or simplified.
func (sv *StateVector) Push(t *ternary.TObject) {
	sv.members = append(sv.members, t)
}

// Len returns the number of member TObjects.
func (sv *StateVector) Len() int {
	return len(sv.members)
}

// IsEmpty reports whether sv represents the contradiction ⊥.
func (sv *StateVector) IsEmpty() bool {
	return len(sv.members) == 0
}

// At returns the member TObject at index i.
func (sv *StateVector) At(i int) *ternary.TObject {
	return sv.members[i]
}

// Members returns the member TObjects. Callers must not mutate them.
func (sv *StateVector) Members() []*ternary.TObject {
	return sv.members
}

// NumVars returns the number of declared variables sv is over.
func (sv *StateVector) NumVars() int {
	return sv.n
}

// Clone returns a shallow copy (TObjects are treated as immutable, so
// sharing them between the clone and sv is safe).
func (sv *StateVector) Clone() *StateVector {
	c := &StateVector{n: sv.n, members: make([]*ternary.TObject, len(sv.members))}
	copy(c.members, sv.members)
	return c
}

// Multiply computes the ternary Cartesian product of sv and other: every
// pairwise TObject product that isn't a contradiction, gathered and
// simplified. Commutative and associative up to semantic equality.
func (sv *StateVector) Multiply(other *StateVector) *StateVector {
	result := New(sv.n)
	for _, a := range sv.members {
		for _, b := range other.members {
			if r, ok := a.Multiply(b); ok {
				result.Push(r)
			}
		}
	}
	result.Simplify()
	return result
}

// GetValue returns the consolidated ternary value of a position across
// every member: T if every member pins it to T, F if every member pins it
// to F, X otherwise (including when some members leave it X). The caller
// must first check IsEmpty — GetValue on an empty StateVector is
// undefined.
func (sv *StateVector) GetValue(i int) ternary.Value {
	if len(sv.members) == 0 {
		return ternary.X
	}
	first := sv.members[0].At(i)
	if first == ternary.X {
		return ternary.X
	}
	for _, m := range sv.members[1:] {
		if m.At(i) != first {
			return ternary.X
		}
	}
	return first
}

// IterDicts returns a finite, restartable sequence over every concrete
// boolean assignment covered by any member, expanding X positions into
// both branches and deduplicating across members. Each call to range over
// the returned iter.Seq walks the members afresh, so two iterations yield
// identical sequences.
func (sv *StateVector) IterDicts(nameOf func(int) string) iter.Seq[map[string]bool] {
	return func(yield func(map[string]bool) bool) {
		seen := make(map[string]bool)
		for _, m := range sv.members {
			stop := false
			expandMember(m, sv.n, nameOf, func(d map[string]bool) {
				if stop {
					return
				}
				key := dictKey(d, nameOf, sv.n)
				if seen[key] {
					return
				}
				seen[key] = true
				if !yield(d) {
					stop = true
				}
			})
			if stop {
				return
			}
		}
	}
}

// Dicts eagerly collects IterDicts into a slice, for callers that want a
// plain restartable value rather than ranging over the iterator.
func (sv *StateVector) Dicts(nameOf func(int) string) []map[string]bool {
	var out []map[string]bool
	for d := range sv.IterDicts(nameOf) {
		out = append(out, d)
	}
	return out
}

func dictKey(d map[string]bool, nameOf func(int) string, n int) string {
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		name := nameOf(i)
		if d[name] {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// expandMember enumerates every concrete assignment a single TObject
// covers, calling emit once per assignment.
func expandMember(t *ternary.TObject, n int, nameOf func(int) string, emit func(map[string]bool)) {
	var free []int
	base := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		switch t.At(i) {
		case ternary.T:
			base[nameOf(i)] = true
		case ternary.F:
			base[nameOf(i)] = false
		default:
			free = append(free, i)
		}
	}
	total := 1 << len(free)
	for mask := 0; mask < total; mask++ {
		d := make(map[string]bool, n)
		for k, v := range base {
			d[k] = v
		}
		for bit, pos := range free {
			d[nameOf(pos)] = mask&(1<<bit) != 0
		}
		emit(d)
	}
}
