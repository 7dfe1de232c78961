package tree

import (
	"errors"
	"fmt"
)

// ErrTaxaMismatch is returned when a metric is asked to compare trees whose
// taxon orderings differ. Descendant bitsets are compared by raw value, so
// the comparison is only meaningful over an identical taxon-to-id mapping.
var ErrTaxaMismatch = errors.New("tree: trees have different taxon orderings")

// A Metric computes a distance between two trees.
type Metric interface {
	Compute(t1, t2 *Tree) (float64, error)
}

// RobinsonFoulds counts the splits present in exactly one of the two trees.
// A split is the descendant bitset of a node that is neither a leaf nor the
// root.
type RobinsonFoulds struct{}

// Compute returns the Robinson-Foulds distance between the two trees. The
// trees must share the same taxon ordering; descendant bitsets are
// recomputed here, so the trees' current topologies are what is compared.
func (RobinsonFoulds) Compute(t1, t2 *Tree) (float64, error) {
	if len(t1.taxonNames) != len(t2.taxonNames) {
		return 0, fmt.Errorf("%w: %d vs %d taxa", ErrTaxaMismatch,
			len(t1.taxonNames), len(t2.taxonNames))
	}
	for i, name := range t1.taxonNames {
		if t2.taxonNames[i] != name {
			return 0, fmt.Errorf("%w: %q vs %q at index %d", ErrTaxaMismatch,
				name, t2.taxonNames[i], i)
		}
	}

	t1.ComputeDescendantBitsets()
	t2.ComputeDescendantBitsets()
	return FromSplitSets(splitSet(t1), splitSet(t2)), nil
}

// FromSplitSets returns the Robinson-Foulds distance between two sets of
// split fingerprints: the size of their symmetric difference.
func FromSplitSets(set1, set2 map[string]struct{}) float64 {
	shared := 0
	for key := range set1 {
		if _, ok := set2[key]; ok {
			shared++
		}
	}
	total := len(set1) + len(set2)
	return float64(total - 2*shared)
}

// splitSet collects the non-trivial splits of a tree: the descendant bitset
// keys of every node that is neither a leaf nor the root.
func splitSet(t *Tree) map[string]struct{} {
	set := make(map[string]struct{}, t.internalCount)
	for _, node := range t.nodes {
		if node.IsLeaf() || node.IsRoot() {
			continue
		}
		set[node.DescendantBitset().Key()] = struct{}{}
	}
	return set
}
