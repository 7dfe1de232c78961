package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Metric = RobinsonFoulds{}

func splits(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

func TestFromSplitSets(t *testing.T) {
	tests := []struct {
		name string
		set1 map[string]struct{}
		set2 map[string]struct{}
		want float64
	}{
		{"identical", splits("1", "2", "3"), splits("1", "2", "3"), 0},
		{"disjoint", splits("1", "2"), splits("3", "4"), 4},
		{"partial overlap", splits("1", "2", "3"), splits("3", "4"), 3},
		{"both empty", splits(), splits(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromSplitSets(tt.set1, tt.set2))
			assert.Equal(t, tt.want, FromSplitSets(tt.set2, tt.set1))
		})
	}
}

// cherryPair builds ((x1,x2),(x3,x4)) over the leaves in the given order of
// taxa names.
func cherryPair(names [4]string, taxa []string) *Tree {
	left := NewNode("")
	left.AddChild(NewNode(names[0]))
	left.AddChild(NewNode(names[1]))
	right := NewNode("")
	right.AddChild(NewNode(names[2]))
	right.AddChild(NewNode(names[3]))
	root := NewNode("")
	root.AddChild(left)
	root.AddChild(right)
	t, err := NewWithTaxa(root, taxa)
	if err != nil {
		panic(err)
	}
	return t
}

func TestRobinsonFouldsIdenticalTrees(t *testing.T) {
	taxa := []string{"A", "B", "C", "D"}
	t1 := cherryPair([4]string{"A", "B", "C", "D"}, taxa)
	t2 := cherryPair([4]string{"A", "B", "C", "D"}, taxa)

	d, err := RobinsonFoulds{}.Compute(t1, t2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestRobinsonFouldsDisjointSplits(t *testing.T) {
	taxa := []string{"A", "B", "C", "D"}
	t1 := cherryPair([4]string{"A", "B", "C", "D"}, taxa) // splits {A,B}, {C,D}
	t2 := cherryPair([4]string{"A", "C", "B", "D"}, taxa) // splits {A,C}, {B,D}

	d, err := RobinsonFoulds{}.Compute(t1, t2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, d)
}

func TestRobinsonFouldsPartialOverlap(t *testing.T) {
	taxa := []string{"A", "B", "C", "D"}
	t1 := cherryPair([4]string{"A", "B", "C", "D"}, taxa) // splits {A,B}, {C,D}

	// (((A,B),C),D): splits {A,B}, {A,B,C}
	inner := NewNode("")
	inner.AddChild(NewNode("A"))
	inner.AddChild(NewNode("B"))
	mid := NewNode("")
	mid.AddChild(inner)
	mid.AddChild(NewNode("C"))
	root := NewNode("")
	root.AddChild(mid)
	root.AddChild(NewNode("D"))
	t2, err := NewWithTaxa(root, taxa)
	require.NoError(t, err)

	d, err := RobinsonFoulds{}.Compute(t1, t2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d, "one shared split out of two per tree")
}

func TestRobinsonFouldsStarTrees(t *testing.T) {
	// star trees have no non-trivial splits at all
	mk := func() *Tree {
		root := NewNode("")
		for _, name := range []string{"A", "B", "C", "D"} {
			root.AddChild(NewNode(name))
		}
		return New(root)
	}
	d, err := RobinsonFoulds{}.Compute(mk(), mk())
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestRobinsonFouldsTaxaGuard(t *testing.T) {
	t1 := cherryPair([4]string{"A", "B", "C", "D"}, []string{"A", "B", "C", "D"})
	t2 := cherryPair([4]string{"A", "B", "C", "D"}, []string{"B", "A", "C", "D"})

	_, err := RobinsonFoulds{}.Compute(t1, t2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTaxaMismatch)

	t3 := cherryPair([4]string{"A", "B", "C", "D"}, []string{"A", "B", "C", "D"})
	shorter := NewNode("")
	shorter.AddChild(NewNode("A"))
	shorter.AddChild(NewNode("B"))
	t4 := New(shorter)

	_, err = RobinsonFoulds{}.Compute(t3, t4)
	assert.ErrorIs(t, err, ErrTaxaMismatch)
}
