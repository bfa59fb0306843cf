package statevector

import (
	"sort"
	"testing"

	"github.com/mrhapile/stateforge/pkg/ternary"
)

func names(n int) func(int) string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = string(rune('a' + i))
	}
	return func(i int) string { return labels[i] }
}

func lit(n, pos int, v ternary.Value) *ternary.TObject {
	t := ternary.New(n)
	t.Set(pos, v)
	return t
}

func TestSimplifyMergesAdjacentPair(t *testing.T) {
	sv := New(2)
	a := ternary.New(2)
	a.Set(0, ternary.T)
	a.Set(1, ternary.T)
	b := ternary.New(2)
	b.Set(0, ternary.T)
	b.Set(1, ternary.F)
	sv.Push(a)
	sv.Push(b)
	sv.Simplify()
	if sv.Len() != 1 {
		t.Fatalf("expected merge down to 1 member, got %d", sv.Len())
	}
	if sv.At(0).At(0) != ternary.T || sv.At(0).At(1) != ternary.X {
		t.Fatalf("unexpected merged result: %v", sv.At(0))
	}
}

func TestSimplifyRemovesCovered(t *testing.T) {
	sv := New(2)
	general := lit(2, 0, ternary.T)
	specific := ternary.New(2)
	specific.Set(0, ternary.T)
	specific.Set(1, ternary.F)
	sv.Push(general)
	sv.Push(specific)
	sv.Simplify()
	if sv.Len() != 1 {
		t.Fatalf("expected covering elimination to 1 member, got %d", sv.Len())
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	sv := New(3)
	for _, vals := range [][2]ternary.Value{{ternary.T, ternary.T}, {ternary.T, ternary.F}} {
		o := ternary.New(3)
		o.Set(0, vals[0])
		o.Set(1, vals[1])
		sv.Push(o)
	}
	sv.Simplify()
	before := sv.Len()
	sv.Simplify()
	if sv.Len() != before {
		t.Fatalf("simplify not idempotent: %d then %d", before, sv.Len())
	}
}

func TestMultiplyByTautologyIsIdentity(t *testing.T) {
	sv := New(2)
	sv.Push(lit(2, 0, ternary.T))
	sv.Simplify()
	taut := Tautology(2)
	product := sv.Multiply(taut)
	if product.Len() != sv.Len() || product.At(0).At(0) != ternary.T {
		t.Fatalf("expected identity, got %v", product)
	}
}

func TestMultiplyByEmptyIsEmpty(t *testing.T) {
	sv := New(2)
	sv.Push(lit(2, 0, ternary.T))
	empty := New(2)
	product := sv.Multiply(empty)
	if !product.IsEmpty() {
		t.Fatal("expected empty product")
	}
}

func TestMultiplyCommutative(t *testing.T) {
	a := New(2)
	a.Push(lit(2, 0, ternary.T))
	b := New(2)
	b.Push(lit(2, 1, ternary.F))
	ab := a.Multiply(b)
	ba := b.Multiply(a)
	if ab.Len() != ba.Len() {
		t.Fatalf("commutativity violated: %d vs %d", ab.Len(), ba.Len())
	}
	if ab.At(0).Key() != ba.At(0).Key() {
		t.Fatal("commutativity violated: different member")
	}
}

func TestGetValueConsolidated(t *testing.T) {
	sv := New(2)
	a := ternary.New(2)
	a.Set(0, ternary.T)
	a.Set(1, ternary.T)
	b := ternary.New(2)
	b.Set(0, ternary.T)
	b.Set(1, ternary.F)
	sv.Push(a)
	sv.Push(b)
	if sv.GetValue(0) != ternary.T {
		t.Fatalf("expected consolidated T at position 0, got %v", sv.GetValue(0))
	}
	if sv.GetValue(1) != ternary.X {
		t.Fatalf("expected consolidated X at position 1, got %v", sv.GetValue(1))
	}
}

func TestIterDictsRestartable(t *testing.T) {
	sv := New(2)
	sv.Push(lit(2, 0, ternary.T))
	sv.Simplify()
	nameOf := names(2)
	first := collectKeys(sv, nameOf)
	second := collectKeys(sv, nameOf)
	sort.Strings(first)
	sort.Strings(second)
	if len(first) != len(second) {
		t.Fatalf("restart produced different lengths: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("restart produced different sequence at %d: %s vs %s", i, first[i], second[i])
		}
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 expansions for a single don't-care position, got %d", len(first))
	}
}

func collectKeys(sv *StateVector, nameOf func(int) string) []string {
	var keys []string
	for d := range sv.IterDicts(nameOf) {
		keys = append(keys, dictKey(d, nameOf, sv.NumVars()))
	}
	return keys
}
