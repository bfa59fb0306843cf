package scheduler

import (
	"github.com/mrhapile/stateforge/pkg/statevector"
	"github.com/mrhapile/stateforge/pkg/ternary"
)

// jaccardCluster repeatedly multiplies the pair of vectors with the
// highest variable-support Jaccard similarity, skipping a pair if the
// product of the two sizes (the unsimplified merge) or the simplified
// merge exceeds cfg.MaxClusterSize and trying the next-best pair, until
// one vector remains or no pair can be merged.
func jaccardCluster(working []*statevector.StateVector, cfg Config, progress func(Progress)) []*statevector.StateVector {
	for {
		if len(working) <= 1 {
			return working
		}

		pairs := rankedPairs(working)
		merged := false
		for _, p := range pairs {
			i, j := p.i, p.j
			candidateSize := working[i].Len() * working[j].Len()
			if cfg.MaxClusterSize > 0 && candidateSize > cfg.MaxClusterSize {
				continue
			}
			result := working[i].Multiply(working[j])
			if cfg.MaxClusterSize > 0 && result.Len() > cfg.MaxClusterSize {
				continue
			}
			if result.IsEmpty() {
				report(progress, []*statevector.StateVector{result})
				return []*statevector.StateVector{result}
			}
			next := make([]*statevector.StateVector, 0, len(working)-1)
			for k, v := range working {
				if k == i || k == j {
					continue
				}
				next = append(next, v)
			}
			next = append(next, result)
			working = next
			merged = true
			break
		}
		report(progress, working)
		if !merged {
			return working
		}
	}
}

type pairScore struct {
	i, j       int
	similarity float64
	combined   int
	support    []int
}

// rankedPairs scores every pair by variable-support Jaccard similarity and
// sorts them best-first, tie-breaking by smaller combined size then
// lexicographic support (lowest variable index first).
func rankedPairs(working []*statevector.StateVector) []pairScore {
	supports := make([][]int, len(working))
	for i, v := range working {
		supports[i] = support(v)
	}

	var pairs []pairScore
	for i := 0; i < len(working); i++ {
		for j := i + 1; j < len(working); j++ {
			sim := jaccard(supports[i], supports[j])
			pairs = append(pairs, pairScore{
				i: i, j: j,
				similarity: sim,
				combined:   working[i].Len() + working[j].Len(),
				support:    unionSorted(supports[i], supports[j]),
			})
		}
	}

	sortPairs(pairs)
	return pairs
}

func sortPairs(pairs []pairScore) {
	for a := 1; a < len(pairs); a++ {
		for b := a; b > 0 && less(pairs[b], pairs[b-1]); b-- {
			pairs[b], pairs[b-1] = pairs[b-1], pairs[b]
		}
	}
}

func less(a, b pairScore) bool {
	if a.similarity != b.similarity {
		return a.similarity > b.similarity
	}
	if a.combined != b.combined {
		return a.combined < b.combined
	}
	return lexLess(a.support, b.support)
}

func lexLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// support returns the sorted set of positions at least one member of v
// defines.
func support(v *statevector.StateVector) []int {
	seen := make(map[int]bool)
	for _, m := range v.Members() {
		for i := 0; i < v.NumVars(); i++ {
			if m.At(i) != ternary.X {
				seen[i] = true
			}
		}
	}
	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sortInts(out)
	return out
}

func sortInts(a []int) {
	for i := 1; i < len(a); i++ {
		for j := i; j > 0 && a[j] < a[j-1]; j-- {
			a[j], a[j-1] = a[j-1], a[j]
		}
	}
}

func jaccard(a, b []int) float64 {
	inter := 0
	bi, bj := 0, 0
	for bi < len(a) && bj < len(b) {
		switch {
		case a[bi] == b[bj]:
			inter++
			bi++
			bj++
		case a[bi] < b[bj]:
			bi++
		default:
			bj++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func unionSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
