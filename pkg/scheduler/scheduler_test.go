package scheduler

import (
	"testing"

	"github.com/mrhapile/stateforge/pkg/statevector"
	"github.com/mrhapile/stateforge/pkg/ternary"
)

func lit(n, pos int, v ternary.Value) *ternary.TObject {
	t := ternary.New(n)
	t.Set(pos, v)
	return t
}

func single(n, pos int, v ternary.Value) *statevector.StateVector {
	sv := statevector.New(n)
	sv.Push(lit(n, pos, v))
	return sv
}

func TestCompileEmptyInputIsTautology(t *testing.T) {
	result := Compile(nil, DefaultConfig(), nil)
	if result.Len() != 1 || !result.At(0).IsAllX() {
		t.Fatalf("expected tautology, got %v", result)
	}
}

func TestCompileConjoinsAllVectors(t *testing.T) {
	// x1=T, x2=T, x3=F over 3 variables: expect the single consolidated
	// assignment.
	vecs := []*statevector.StateVector{
		single(3, 0, ternary.T),
		single(3, 1, ternary.T),
		single(3, 2, ternary.F),
	}
	result := Compile(vecs, DefaultConfig(), nil)
	if result.Len() != 1 {
		t.Fatalf("expected exactly one consolidated assignment, got %d", result.Len())
	}
	if result.GetValue(0) != ternary.T || result.GetValue(1) != ternary.T || result.GetValue(2) != ternary.F {
		t.Fatalf("unexpected consolidated values: %v %v %v", result.GetValue(0), result.GetValue(1), result.GetValue(2))
	}
}

func TestCompileDetectsContradiction(t *testing.T) {
	vecs := []*statevector.StateVector{
		single(1, 0, ternary.T),
		single(1, 0, ternary.F),
	}
	result := Compile(vecs, DefaultConfig(), nil)
	if !result.IsEmpty() {
		t.Fatalf("expected contradiction, got %d members", result.Len())
	}
}

func TestCompileSingleVectorReturnsItUnchanged(t *testing.T) {
	vecs := []*statevector.StateVector{single(2, 0, ternary.T)}
	result := Compile(vecs, DefaultConfig(), nil)
	if result.Len() != 1 || result.GetValue(0) != ternary.T {
		t.Fatalf("unexpected result for single-vector input: %v", result)
	}
}

func TestPredatorPreyFoldsSmallVectorsIntoLarger(t *testing.T) {
	// A tiny predator (size 1) and a larger prey sharing no variable
	// conflict: after folding, the set should have shrunk to one vector
	// via the subsequent scheduling, with no contradiction.
	n := 4
	predator := single(n, 0, ternary.T)

	prey := statevector.New(n)
	prey.Push(lit(n, 1, ternary.T))
	prey.Push(lit(n, 2, ternary.T))

	working := predatorPrey([]*statevector.StateVector{predator, prey}, DefaultConfig(), nil)
	if len(working) != 1 {
		t.Fatalf("expected predator folded away, got %d vectors", len(working))
	}
	if working[0].GetValue(0) != ternary.T {
		t.Fatalf("expected folded vector to carry predator's constraint, got %v", working[0].GetValue(0))
	}
}

func TestPredatorPreyStopsWhenNothingSmallEnough(t *testing.T) {
	cfg := Config{MaxPredatorSize: 0, MaxClusterSize: 1024}
	vecs := []*statevector.StateVector{
		single(2, 0, ternary.T),
		single(2, 1, ternary.T),
	}
	working := predatorPrey(vecs, cfg, nil)
	if len(working) != 2 {
		t.Fatalf("expected no folding with MaxPredatorSize=0, got %d vectors", len(working))
	}
}

func TestJaccardClusterReducesToOneVector(t *testing.T) {
	n := 3
	vecs := []*statevector.StateVector{
		single(n, 0, ternary.T),
		single(n, 1, ternary.T),
		single(n, 2, ternary.F),
	}
	working := jaccardCluster(vecs, DefaultConfig(), nil)
	if len(working) != 1 {
		t.Fatalf("expected clustering down to one vector, got %d", len(working))
	}
}

func TestJaccardPrefersHigherOverlapPair(t *testing.T) {
	// Vectors 0 and 1 share variable support {0,1}; vector 2 has disjoint
	// support {2,3}. The highest-similarity pair should be (0,1), even
	// though pairs with vector 2 have the smaller combined size.
	n := 4
	a := statevector.New(n)
	a.Push(lit(n, 0, ternary.T))
	a.Push(lit(n, 1, ternary.T))
	b := statevector.New(n)
	b.Push(lit(n, 0, ternary.F))
	b.Push(lit(n, 1, ternary.F))
	c := statevector.New(n)
	cObj := lit(n, 2, ternary.T)
	cObj.Set(3, ternary.F)
	c.Push(cObj)

	pairs := rankedPairs([]*statevector.StateVector{a, b, c})
	if len(pairs) == 0 {
		t.Fatal("expected at least one ranked pair")
	}
	best := pairs[0]
	if !(best.i == 0 && best.j == 1) && !(best.i == 1 && best.j == 0) {
		t.Fatalf("expected pair (0,1) to rank first, got (%d,%d)", best.i, best.j)
	}
}

func TestJaccardRespectsMaxClusterSize(t *testing.T) {
	n := 2
	wide1 := statevector.New(n)
	wide1.Push(ternary.New(n))
	wide1.Push(lit(n, 0, ternary.T))
	wide2 := statevector.New(n)
	wide2.Push(ternary.New(n))
	wide2.Push(lit(n, 1, ternary.T))

	cfg := Config{MaxPredatorSize: 4, MaxClusterSize: 1}
	working := jaccardCluster([]*statevector.StateVector{wide1, wide2}, cfg, nil)
	if len(working) != 2 {
		t.Fatalf("expected clustering to be skipped under a tight cap, got %d vectors", len(working))
	}
}

func TestReportCallsProgressWithMaxSize(t *testing.T) {
	var got Progress
	progress := func(p Progress) { got = p }
	vecs := []*statevector.StateVector{
		single(2, 0, ternary.T),
		single(2, 1, ternary.T),
	}
	report(progress, vecs)
	if got.RemainingCount != 2 || got.MaxVectorSize != 1 {
		t.Fatalf("unexpected progress report: %+v", got)
	}
}
