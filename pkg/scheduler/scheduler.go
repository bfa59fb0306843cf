// Package scheduler implements the Compilation Scheduler (§4.4): ordering
// pairwise StateVector multiplications to bound intermediate size, via
// predator-prey reduction followed by Jaccard-similarity clustering.
package scheduler

import "github.com/mrhapile/stateforge/pkg/statevector"

// Config holds the tunable heuristic knobs.
type Config struct {
	// MaxPredatorSize is the size threshold at or below which a vector is
	// a predator (default 4).
	MaxPredatorSize int
	// MaxClusterSize caps the size of a merged vector during Jaccard
	// clustering (default 1024).
	MaxClusterSize int
}

// DefaultConfig returns the defaults named in §4.4.
func DefaultConfig() Config {
	return Config{MaxPredatorSize: 4, MaxClusterSize: 1024}
}

// Progress is one verbosity-hook record: how many vectors remain, and the
// largest vector's size, after a scheduler step.
type Progress struct {
	RemainingCount int
	MaxVectorSize  int
}

// Compile multiplies every vector in vectors into one, applying
// predator-prey reduction then Jaccard clustering. progress, if non-nil, is
// called after every step (§4.4's verbosity hook). Returns the empty
// StateVector immediately once any intermediate becomes empty.
func Compile(vectors []*statevector.StateVector, cfg Config, progress func(Progress)) *statevector.StateVector {
	working := make([]*statevector.StateVector, len(vectors))
	copy(working, vectors)

	if len(working) == 0 {
		return statevector.Tautology(0)
	}

	working = predatorPrey(working, cfg, progress)
	if isContradiction(working) {
		return emptyLike(vectors)
	}

	working = jaccardCluster(working, cfg, progress)
	if isContradiction(working) {
		return emptyLike(vectors)
	}

	if len(working) == 0 {
		return statevector.Tautology(vectors[0].NumVars())
	}
	result := working[0]
	for _, w := range working[1:] {
		result = result.Multiply(w)
		if result.IsEmpty() {
			return result
		}
	}
	return result
}

func isContradiction(working []*statevector.StateVector) bool {
	for _, w := range working {
		if w.IsEmpty() {
			return true
		}
	}
	return false
}

func emptyLike(vectors []*statevector.StateVector) *statevector.StateVector {
	n := 0
	if len(vectors) > 0 {
		n = vectors[0].NumVars()
	}
	return statevector.New(n)
}

func report(progress func(Progress), working []*statevector.StateVector) {
	if progress == nil {
		return
	}
	max := 0
	for _, w := range working {
		if w.Len() > max {
			max = w.Len()
		}
	}
	progress(Progress{RemainingCount: len(working), MaxVectorSize: max})
}

// predatorPrey repeatedly picks the smallest vector as predator and folds
// it into every other vector, then removes it, until the smallest vector is
// larger than cfg.MaxPredatorSize, the working set has one element, or a
// full pass makes no reduction.
//
// The predator is folded into every remaining vector, not only the
// strictly larger ones the heuristic targets — a vector merely tied in
// size with the predator still gets it multiplied in. Skipping ties would
// drop the predator's constraint outright once it's removed from the
// working set at the end of the pass, which is a correctness bug (a
// tied-size rule's content would vanish from the compiled product), not
// just a missed optimization. reducedAny still tracks only the strictly
// larger prey shrinking, since that's what step 4's "no reductions
// occurred" stop condition is measuring.
func predatorPrey(working []*statevector.StateVector, cfg Config, progress func(Progress)) []*statevector.StateVector {
	for {
		if len(working) <= 1 {
			return working
		}
		predIdx := smallestIndex(working)
		predator := working[predIdx]
		if predator.Len() > cfg.MaxPredatorSize {
			return working
		}

		reducedAny := false
		next := make([]*statevector.StateVector, 0, len(working)-1)
		for i, q := range working {
			if i == predIdx {
				continue
			}
			before := q.Len()
			merged := q.Multiply(predator)
			if merged.IsEmpty() {
				report(progress, []*statevector.StateVector{merged})
				return []*statevector.StateVector{merged}
			}
			if before > predator.Len() && merged.Len() < before {
				reducedAny = true
			}
			next = append(next, merged)
		}
		working = next
		report(progress, working)
		if !reducedAny {
			return working
		}
	}
}

func smallestIndex(working []*statevector.StateVector) int {
	best := 0
	for i := 1; i < len(working); i++ {
		if working[i].Len() < working[best].Len() {
			best = i
		}
	}
	return best
}
