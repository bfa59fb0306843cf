package statevector

import "github.com/mrhapile/stateforge/pkg/ternary"

// Simplify reduces sv to canonical reduced form in place: no member is
// covered by another, and no two members with the same defined mask differ
// in exactly one position (such pairs are merged, replacing that position
// with X). Idempotent.
//
// Implemented as the two-pass loop from the design: covering elimination,
// then adjacency-merge grouped by defined mask and bucketed by the values
// at every other defined position (so a bucket of size > 1 is exactly the
// mergeable set for that position — no O(k^2) pairwise scan). Repeats to a
// fixpoint.
func (sv *StateVector) Simplify() {
	for {
		changed := sv.eliminateCovered()
		merged := sv.mergeAdjacent()
		changed = changed || merged
		if !changed {
			return
		}
	}
}

// eliminateCovered drops any member covered by another (ties broken by
// keeping the first encountered). Candidates are grouped by defined mask
// first since a covering candidate's mask must be a subset of the
// covered member's — in practice this means most candidate masks can be
// skipped before Covers is even called, though nothing here enforces the
// subset check ahead of time beyond what Covers itself does.
func (sv *StateVector) eliminateCovered() bool {
	// Identical members cover each other; drop later copies first so the
	// first-encountered one survives the covering scan below.
	deduped := dedupeByKey(sv.members)
	dropped := len(deduped) != len(sv.members)
	sv.members = deduped
	if len(sv.members) < 2 {
		return dropped
	}
	byMask := make(map[string][]*ternary.TObject)
	order := make([]string, 0)
	for _, m := range sv.members {
		k := m.DefinedKey()
		if _, ok := byMask[k]; !ok {
			order = append(order, k)
		}
		byMask[k] = append(byMask[k], m)
	}

	kept := make([]*ternary.TObject, 0, len(sv.members))
	removed := false
	for _, m := range sv.members {
		coveredByOther := false
		for _, k := range order {
			for _, cand := range byMask[k] {
				if cand == m {
					continue
				}
				if cand.Covers(m) {
					// Break ties deterministically: a member covering m but
					// appearing later in insertion order with an identical
					// mask and the exact same object is itself — skip self,
					// otherwise the first-encountered covering member wins.
					coveredByOther = true
					break
				}
			}
			if coveredByOther {
				break
			}
		}
		if !coveredByOther {
			kept = append(kept, m)
		} else {
			removed = true
		}
	}
	if removed {
		sv.members = dedupeByKey(kept)
	}
	return removed || dropped
}

func dedupeByKey(members []*ternary.TObject) []*ternary.TObject {
	seen := make(map[string]bool, len(members))
	out := make([]*ternary.TObject, 0, len(members))
	for _, m := range members {
		k := m.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}

// mergeAdjacent groups members by defined mask; within each group, for each
// position defined by the mask, buckets members by the values at every
// other defined position. Any bucket of size > 1 pairs up (in order) into
// merges that replace the position with X, moving the merged result into
// the group with that position removed from the mask for the next pass.
func (sv *StateVector) mergeAdjacent() bool {
	if len(sv.members) < 2 {
		return false
	}
	byMask := make(map[string][]*ternary.TObject)
	var maskOrder []string
	for _, m := range sv.members {
		k := m.DefinedKey()
		if _, ok := byMask[k]; !ok {
			maskOrder = append(maskOrder, k)
		}
		byMask[k] = append(byMask[k], m)
	}

	changed := false
	result := make([]*ternary.TObject, 0, len(sv.members))
	for _, k := range maskOrder {
		group := byMask[k]
		merged, groupChanged := mergeGroup(group)
		if groupChanged {
			changed = true
		}
		result = append(result, merged...)
	}
	if changed {
		sv.members = dedupeByKey(result)
	}
	return changed
}

// mergeGroup merges adjacent pairs within a single defined-mask group,
// positionally: for each defined position, bucket by the values at every
// other defined position; a bucket of size > 1 has at most one pair that
// can merge on that position (position's value differs, everything else
// agrees) — pair them off in order and recurse the merged objects into
// later positions within the same pass.
func mergeGroup(group []*ternary.TObject) (out []*ternary.TObject, changed bool) {
	if len(group) < 2 {
		return group, false
	}
	n := group[0].Len()
	remaining := append([]*ternary.TObject(nil), group...)

	for pos := 0; pos < n; pos++ {
		if len(remaining) < 2 {
			break
		}
		if !isDefinedAt(remaining[0], pos) {
			continue
		}
		buckets := make(map[string][]*ternary.TObject)
		var order []string
		for _, m := range remaining {
			k := m.OtherDefinedKey(pos)
			if _, ok := buckets[k]; !ok {
				order = append(order, k)
			}
			buckets[k] = append(buckets[k], m)
		}

		var next []*ternary.TObject
		mergedAny := false
		for _, k := range order {
			bucket := buckets[k]
			next = append(next, mergeBucketOnPosition(bucket, pos, &mergedAny)...)
		}
		if mergedAny {
			changed = true
			remaining = next
		}
	}
	return remaining, changed
}

func isDefinedAt(t *ternary.TObject, pos int) bool {
	return t.At(pos) != ternary.X
}

// mergeBucketOnPosition pairs up members within a bucket that differ only
// at pos (one T, one F), merging each pair into a single TObject with pos
// set to X. Leftover unpaired members (odd count, or members that don't
// actually disagree at pos because the bucket held duplicates) pass
// through unchanged.
func mergeBucketOnPosition(bucket []*ternary.TObject, pos int, mergedAny *bool) []*ternary.TObject {
	if len(bucket) < 2 {
		return bucket
	}
	var tVals, fVals []*ternary.TObject
	for _, m := range bucket {
		if m.At(pos) == ternary.T {
			tVals = append(tVals, m)
		} else {
			fVals = append(fVals, m)
		}
	}
	out := make([]*ternary.TObject, 0, len(bucket))
	i := 0
	for i < len(tVals) && i < len(fVals) {
		merged := tVals[i].Clone()
		merged.Set(pos, ternary.X)
		out = append(out, merged)
		*mergedAny = true
		i++
	}
	for ; i < len(tVals); i++ {
		out = append(out, tVals[i])
	}
	for ; i < len(fVals); i++ {
		out = append(out, fVals[i])
	}
	return out
}
