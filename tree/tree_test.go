package tree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Trees in this package's tests are built from nodes directly, so they do
// not depend on the newick parser.
func chain(names ...string) []*Node {
	nodes := make([]*Node, len(names))
	for i, name := range names {
		nodes[i] = NewNode(name)
	}
	return nodes
}

func withDistance(n *Node, d float64) *Node {
	n.Distance = &d
	return n
}

// ((A:1,B:1):1,C:1) with an unnamed root.
func smallTree(t *testing.T) *Tree {
	leaves := chain("A", "B", "C")
	inner := NewNode("")
	inner.AddChild(withDistance(leaves[0], 1))
	inner.AddChild(withDistance(leaves[1], 1))
	root := NewNode("")
	root.AddChild(withDistance(inner, 1))
	root.AddChild(withDistance(leaves[2], 1))
	return New(root)
}

func checkIDInvariant(t *testing.T, tr *Tree) {
	t.Helper()
	require.Equal(t, tr.NodeCount(), len(tr.Nodes()))
	require.Equal(t, tr.NodeCount(), tr.LeafCount()+tr.InternalCount())
	for i, node := range tr.Nodes() {
		require.Equal(t, i, node.ID)
		if i < tr.LeafCount() {
			require.True(t, node.IsLeaf())
			require.Equal(t, tr.TaxonNames()[i], node.Name)
		} else {
			require.False(t, node.IsLeaf())
		}
	}
	require.True(t, tr.Root().IsRoot())
}

func TestNewDerivesTaxa(t *testing.T) {
	tr := smallTree(t)
	assert.Equal(t, []string{"A", "B", "C"}, tr.TaxonNames())
	assert.Equal(t, 3, tr.LeafCount())
	assert.Equal(t, 2, tr.InternalCount())
	checkIDInvariant(t, tr)
}

func TestNewWithTaxaReordersIDs(t *testing.T) {
	leaves := chain("A", "B")
	root := NewNode("")
	root.AddChild(leaves[0])
	root.AddChild(leaves[1])

	tr, err := NewWithTaxa(root, []string{"B", "A"})
	require.NoError(t, err)
	assert.Equal(t, 1, leaves[0].ID)
	assert.Equal(t, 0, leaves[1].ID)
	checkIDInvariant(t, tr)
}

func TestNewWithTaxaUnknown(t *testing.T) {
	root := NewNode("")
	root.AddChild(NewNode("A"))
	root.AddChild(NewNode("B"))

	_, err := NewWithTaxa(root, []string{"A", "X"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTaxon)
}

func TestSetTaxonNames(t *testing.T) {
	tr := smallTree(t)
	require.NoError(t, tr.SetTaxonNames([]string{"C", "B", "A"}))
	checkIDInvariant(t, tr)

	a, err := tr.LeafFromName("A")
	require.NoError(t, err)
	assert.Equal(t, 2, a.ID)

	// a bad list leaves the tree on its previous mapping
	err = tr.SetTaxonNames([]string{"C", "B"})
	require.Error(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, tr.TaxonNames())
}

func TestLeafFromName(t *testing.T) {
	tr := smallTree(t)
	b, err := tr.LeafFromName("B")
	require.NoError(t, err)
	assert.Equal(t, "B", b.Name)

	_, err = tr.LeafFromName("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTaxon)
}

func TestNodeFromID(t *testing.T) {
	tr := smallTree(t)
	for i := 0; i < tr.NodeCount(); i++ {
		assert.Equal(t, i, tr.NodeFromID(i).ID)
	}
}

func TestComputeDescendantBitsets(t *testing.T) {
	tr := smallTree(t)
	tr.ComputeDescendantBitsets()

	a, _ := tr.LeafFromName("A")
	assert.Equal(t, "100", a.DescendantBitset().String())
	assert.Equal(t, "111", tr.Root().DescendantBitset().String())

	inner := a.Parent()
	assert.Equal(t, "110", inner.DescendantBitset().String())
}

func TestRerootAboveRootIsNoop(t *testing.T) {
	tr := smallTree(t)
	before := tr.Newick(nil)
	require.NoError(t, tr.RerootAbove(tr.Root()))
	assert.Equal(t, before, tr.Newick(nil))
}

func TestRerootBelowBinaryRoot(t *testing.T) {
	// (A:2,B:4) — the sibling absorbs the midpoint, no new node
	root := NewNode("")
	a := withDistance(NewNode("A"), 2)
	b := withDistance(NewNode("B"), 4)
	root.AddChild(a)
	root.AddChild(b)
	tr := New(root)

	nodesBefore := tr.NodeCount()
	require.NoError(t, tr.RerootAbove(a))

	assert.Equal(t, "(A:1,B:5);", tr.Newick(nil))
	assert.Equal(t, nodesBefore, tr.NodeCount())
	assert.InDelta(t, 6, total(tr), 1e-12)
	checkIDInvariant(t, tr)
}

func TestRerootBelowMultifurcatingRoot(t *testing.T) {
	// (A:2,B:1,C:1) — siblings are regrouped under a fresh node
	root := NewNode("")
	a := withDistance(NewNode("A"), 2)
	root.AddChild(a)
	root.AddChild(withDistance(NewNode("B"), 1))
	root.AddChild(withDistance(NewNode("C"), 1))
	tr := New(root)

	require.NoError(t, tr.RerootAbove(a))

	assert.Equal(t, "(A:1,(B:1,C:1):1);", tr.Newick(nil))
	assert.True(t, tr.IsRooted())
	assert.InDelta(t, 4, total(tr), 1e-12)
	checkIDInvariant(t, tr)
}

func TestRerootGeneralCase(t *testing.T) {
	// (((A:1,B:1):1,C:1):1,D:1) rerooted above A: every branch length on
	// the old root path shifts one hop, D absorbs the displaced length.
	p2 := NewNode("")
	p2.AddChild(withDistance(NewNode("A"), 1))
	p2.AddChild(withDistance(NewNode("B"), 1))
	p1 := NewNode("")
	p1.AddChild(withDistance(p2, 1))
	p1.AddChild(withDistance(NewNode("C"), 1))
	root := NewNode("")
	root.AddChild(withDistance(p1, 1))
	root.AddChild(withDistance(NewNode("D"), 1))
	tr := New(root)

	a, err := tr.LeafFromName("A")
	require.NoError(t, err)
	require.NoError(t, tr.RerootAbove(a))

	assert.Equal(t, "(A:0.5,(B:1,(C:1,D:2):1):0.5);", tr.Newick(nil))
	assert.InDelta(t, 6, total(tr), 1e-12)
	checkIDInvariant(t, tr)

	// no node lost, no node gained
	assert.Equal(t, 4, tr.LeafCount())
	assert.Equal(t, 3, tr.InternalCount())
}

func TestRerootConservesLengthRepeatedly(t *testing.T) {
	tr := smallTree(t)
	want := total(tr)

	for _, name := range []string{"C", "A", "B", "C"} {
		leaf, err := tr.LeafFromName(name)
		require.NoError(t, err)
		require.NoError(t, tr.RerootAbove(leaf))
		assert.InDelta(t, want, total(tr), 1e-9, "after rerooting above %s", name)
		checkIDInvariant(t, tr)
	}
}

func TestRerootNeverOrphans(t *testing.T) {
	p2 := NewNode("")
	p2.AddChild(withDistance(NewNode("A"), 1))
	p2.AddChild(withDistance(NewNode("B"), 1))
	p1 := NewNode("")
	p1.AddChild(withDistance(p2, 1))
	p1.AddChild(withDistance(NewNode("C"), 1))
	root := NewNode("")
	root.AddChild(withDistance(p1, 1))
	root.AddChild(withDistance(NewNode("D"), 1))
	tr := New(root)

	a, err := tr.LeafFromName("A")
	require.NoError(t, err)
	require.NoError(t, tr.RerootAbove(a))

	// every node is reachable from the new root and every parent link
	// points back into the tree
	seen := map[*Node]bool{}
	for _, node := range tr.Root().Postorder() {
		seen[node] = true
	}
	assert.Len(t, seen, tr.NodeCount())
	for _, node := range tr.Nodes() {
		if node.IsRoot() {
			assert.Same(t, tr.Root(), node)
			continue
		}
		assert.True(t, seen[node.Parent()], "parent of %s dangles", node.Name)
		assert.Contains(t, node.Parent().Children(), node)
	}
}

func TestMakeRooted(t *testing.T) {
	root := NewNode("")
	root.AddChild(withDistance(NewNode("A"), 2))
	root.AddChild(withDistance(NewNode("B"), 1))
	root.AddChild(withDistance(NewNode("C"), 1))
	tr := New(root)
	require.False(t, tr.IsRooted())

	changed, err := tr.MakeRooted()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, tr.IsRooted())
	checkIDInvariant(t, tr)

	changed, err = tr.MakeRooted()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestTreeMakeBinary(t *testing.T) {
	root := NewNode("")
	for _, name := range []string{"A", "B", "C", "D"} {
		root.AddChild(NewNode(name))
	}
	tr := New(root)

	changed, err := tr.MakeBinary()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "(((A,B):0,C):0,D);", tr.Newick(nil))
	checkIDInvariant(t, tr)

	changed, err = tr.MakeBinary()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRandom(t *testing.T) {
	taxa := []string{"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7"}
	rng := rand.New(rand.NewSource(42))

	tr := Random(taxa, rng)
	assert.Equal(t, taxa, tr.TaxonNames())
	assert.Equal(t, len(taxa), tr.LeafCount())
	assert.Equal(t, len(taxa)-1, tr.InternalCount(), "random trees are binary")
	checkIDInvariant(t, tr)

	for _, node := range tr.Nodes() {
		if !node.IsLeaf() {
			assert.True(t, node.IsBinary())
		}
	}
}

func total(tr *Tree) float64 {
	sum := 0.0
	for _, node := range tr.Nodes() {
		if node.Distance != nil {
			sum += *node.Distance
		}
	}
	return sum
}
