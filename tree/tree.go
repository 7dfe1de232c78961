// Package tree holds the phylogenetic tree data model: nodes with branch
// lengths and comments, trees with a stable taxon-to-id mapping, rerooting
// and binarization edits, descendant bitsets and the Robinson-Foulds
// distance built on them.
package tree

import (
	"errors"
	"fmt"
)

// ErrUnknownTaxon is returned when a leaf name is looked up that is not in
// the tree's taxon list.
var ErrUnknownTaxon = errors.New("tree: unknown taxon")

// A Tree owns a root node and keeps the id bookkeeping over it: taxon k of
// TaxonNames is the leaf with id k, internal nodes are numbered from
// LeafCount upward in postorder. Every topology edit goes through a method
// that restores this invariant via UpdateIDs.
type Tree struct {
	root          *Node
	taxonNames    []string
	taxonIndex    map[string]int
	nodes         []*Node
	leafCount     int
	internalCount int
}

// New builds a Tree around root, taking the taxon order from the leaves as
// they appear in postorder.
func New(root *Node) *Tree {
	var names []string
	for _, node := range root.Postorder() {
		if node.IsLeaf() {
			names = append(names, node.Name)
		}
	}
	t := &Tree{root: root, taxonNames: names}
	t.rebuildIndex()
	// Every leaf name is in the index by construction.
	if err := t.UpdateIDs(); err != nil {
		panic(err)
	}
	return t
}

// NewWithTaxa builds a Tree around root using the supplied taxon order for
// leaf ids. An empty list behaves like New. Leaves whose name is not in the
// list make construction fail with ErrUnknownTaxon.
func NewWithTaxa(root *Node, taxonNames []string) (*Tree, error) {
	if len(taxonNames) == 0 {
		return New(root), nil
	}
	t := &Tree{root: root, taxonNames: taxonNames}
	t.rebuildIndex()
	if err := t.UpdateIDs(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tree) rebuildIndex() {
	t.taxonIndex = make(map[string]int, len(t.taxonNames))
	for i, name := range t.taxonNames {
		t.taxonIndex[name] = i
	}
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// TaxonNames returns the taxon list defining the leaf id mapping.
func (t *Tree) TaxonNames() []string {
	return t.taxonNames
}

// SetTaxonNames replaces the taxon order and renumbers the tree. The new
// list must cover every leaf name.
func (t *Tree) SetTaxonNames(names []string) error {
	old, oldIndex := t.taxonNames, t.taxonIndex
	t.taxonNames = names
	t.rebuildIndex()
	if err := t.UpdateIDs(); err != nil {
		t.taxonNames, t.taxonIndex = old, oldIndex
		return err
	}
	return nil
}

// Nodes returns all nodes indexed by id, leaves first.
func (t *Tree) Nodes() []*Node {
	return t.nodes
}

// NodeCount returns the total number of nodes.
func (t *Tree) NodeCount() int {
	return t.leafCount + t.internalCount
}

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int {
	return t.leafCount
}

// InternalCount returns the number of internal nodes.
func (t *Tree) InternalCount() int {
	return t.internalCount
}

// NodeFromID returns the node with the given id.
func (t *Tree) NodeFromID(id int) *Node {
	return t.nodes[id]
}

// LeafFromName returns the leaf with the given taxon name.
func (t *Tree) LeafFromName(name string) (*Node, error) {
	i, ok := t.taxonIndex[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTaxon, name)
	}
	return t.nodes[i], nil
}

// UpdateIDs renumbers every node: each leaf gets the index of its name in
// the taxon list, each internal node the next id from LeafCount upward in
// postorder. It must be called after any edit that changes the topology,
// before ids or descendant bitsets are trusted again.
func (t *Tree) UpdateIDs() error {
	t.leafCount = len(t.taxonNames)
	t.internalCount = 0
	t.nodes = make([]*Node, t.leafCount)

	for _, node := range t.root.Postorder() {
		if node.IsLeaf() {
			id, ok := t.taxonIndex[node.Name]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownTaxon, node.Name)
			}
			node.ID = id
			t.nodes[id] = node
		} else {
			node.ID = t.leafCount + t.internalCount
			t.internalCount++
			t.nodes = append(t.nodes, node)
		}
	}
	return nil
}

// ComputeDescendantBitsets computes the descendant bitset of every node in
// postorder, sized by the number of taxa.
func (t *Tree) ComputeDescendantBitsets() {
	for _, node := range t.root.Postorder() {
		node.ComputeDescendantBitset(t.leafCount)
	}
}

// IsRooted reports whether the root has exactly two children.
func (t *Tree) IsRooted() bool {
	return len(t.root.children) == 2
}

// MakeRooted reroots multifurcating-root trees above the root's first child
// so that the root becomes binary. It reports whether anything changed.
func (t *Tree) MakeRooted() (bool, error) {
	degree := len(t.root.children)
	if degree <= 2 {
		return false, nil
	}
	if err := t.RerootAbove(t.root.children[0]); err != nil {
		return false, err
	}
	return true, nil
}

// MakeBinary splits every multifurcation in the tree into nested binary
// nodes and renumbers. It reports whether anything changed.
func (t *Tree) MakeBinary() (bool, error) {
	made := false
	for i := len(t.nodes) - 1; i >= 0; i-- {
		node := t.nodes[i]
		if node.IsLeaf() {
			continue
		}
		if len(node.children) > 2 && node.MakeBinary() {
			made = true
		}
	}
	if made {
		if err := t.UpdateIDs(); err != nil {
			return made, err
		}
	}
	return made, nil
}

// RerootAbove moves the root onto the midpoint of the edge between node and
// its parent. The unrooted topology and the total branch length are
// preserved; only lengths along the old root path are shifted, plus the two
// halves of the split edge. Rerooting above the current root is a no-op.
func (t *Tree) RerootAbove(node *Node) error {
	if node.IsRoot() {
		return nil
	}

	parent := node.parent

	if parent.IsRoot() {
		midpoint := distanceOf(node) / 2
		setDistance(node, distanceOf(node)-midpoint)
		siblings := node.Siblings()

		if len(parent.children) > 2 {
			// Group the siblings under a fresh node so the root pivot
			// becomes binary.
			group := NewNode("")
			for _, sibling := range siblings {
				parent.RemoveChild(sibling)
				group.AddChild(sibling)
			}
			parent.AddChild(group)
			setDistance(group, midpoint)
			return t.UpdateIDs()
		}
		setDistance(siblings[0], distanceOf(siblings[0])+midpoint)
		return nil
	}

	// General case: split the node-parent edge at its midpoint under a new
	// root, then walk the old ancestor chain reversing each edge. The
	// branch lengths along the path are not changed, only shifted one hop,
	// carried forward in branchLength.
	newRoot := NewNode("")
	grandparent := parent.parent

	newRoot.AddChild(node)
	newRoot.AddChild(parent)

	branchLength := distanceOf(parent)
	midpoint := distanceOf(node) / 2
	setDistance(node, midpoint)
	setDistance(parent, midpoint)

	n := parent
	nParent := grandparent

	grandparent.RemoveChild(parent)
	parent.RemoveChild(node)
	node.parent = newRoot
	parent.parent = newRoot

	for !nParent.IsRoot() {
		next := nParent.parent
		n.AddChild(nParent)

		bl := distanceOf(nParent)
		setDistance(nParent, branchLength)
		branchLength = bl

		n = nParent
		nParent = next

		// Detach n from the ancestor it is about to adopt, keeping the
		// parent link AddChild just gave it.
		keep := n.parent
		nParent.RemoveChild(n)
		n.parent = keep
	}

	// nParent is the old root, already stripped of the path child.
	if len(nParent.children) == 1 {
		unaffected := nParent.children[0]
		setDistance(unaffected, distanceOf(unaffected)+branchLength)
		nParent.RemoveChild(unaffected)
		n.AddChild(unaffected)
	} else if len(nParent.children) > 1 {
		// The old root was multifurcating, so it stays a real vertex of
		// the unrooted topology; keep it, carrying the displaced length.
		setDistance(nParent, branchLength)
		n.AddChild(nParent)
	}

	t.root = newRoot
	return t.UpdateIDs()
}

// Newick renders the whole tree in Newick notation, always terminated by a
// semicolon. A nil opts means DefaultNewickOptions.
func (t *Tree) Newick(opts *NewickOptions) string {
	return t.root.Newick(opts) + ";"
}

// String renders the tree with default Newick options.
func (t *Tree) String() string {
	return t.Newick(nil)
}

// Postorder returns all nodes, children before parents.
func (t *Tree) Postorder() []*Node {
	return t.root.Postorder()
}

// Preorder returns all nodes, parents before children.
func (t *Tree) Preorder() []*Node {
	return t.root.Preorder()
}

// Levelorder returns all nodes, breadth first.
func (t *Tree) Levelorder() []*Node {
	return t.root.Levelorder()
}
