package tree

import (
	"strconv"
	"strings"

	"github.com/4ment/treezy/bitset"
)

// A Node is a single vertex of a rooted tree. Leaves carry a name; internal
// nodes may be unnamed. A node owns its children, while the parent link is a
// plain back-reference maintained by AddChild and RemoveChild.
//
// The ID is only meaningful inside an owning Tree: leaves are numbered by
// their position in the tree's taxon list, internal nodes follow in
// postorder. Standalone nodes have ID -1.
type Node struct {
	// Name of the node. Empty means unnamed, which is only valid for
	// internal nodes.
	Name string

	// ID assigned by the owning Tree, or -1 for standalone nodes.
	ID int

	// Distance is the branch length to the parent. Nil means the tree is
	// topology only.
	Distance *float64

	// Comment is the raw bracketed text attached to the node itself,
	// BranchComment the one attached between the colon and the branch
	// length. Neither is parsed until ParseComment/ParseBranchComment.
	Comment       string
	BranchComment string

	// Annotations hold the key/value pairs extracted from the comments on
	// demand.
	Annotations       map[string]interface{}
	BranchAnnotations map[string]interface{}

	parent      *Node
	children    []*Node
	descendants *bitset.BitSet
}

// NewNode returns a standalone node. The name may be empty for internal
// nodes.
func NewNode(name string) *Node {
	return &Node{Name: name, ID: -1}
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node {
	return n.parent
}

// IsRoot reports whether the node has no parent.
func (n *Node) IsRoot() bool {
	return n.parent == nil
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.children) == 0
}

// IsBinary reports whether the node has exactly two children.
func (n *Node) IsBinary() bool {
	return len(n.children) == 2
}

// Children returns the node's child list. The slice is owned by the node;
// use AddChild and RemoveChild to modify it.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// AddChild appends child to the node's children and points its parent link
// here. It reports false if child is already present.
func (n *Node) AddChild(child *Node) bool {
	for _, c := range n.children {
		if c == child {
			return false
		}
	}
	n.children = append(n.children, child)
	child.parent = n
	return true
}

// RemoveChild detaches child from the node and clears its parent link. It
// reports false if child was not present.
func (n *Node) RemoveChild(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Siblings returns the other children of this node's parent, or nil for the
// root.
func (n *Node) Siblings() []*Node {
	if n.parent == nil {
		return nil
	}
	sibs := make([]*Node, 0, len(n.parent.children)-1)
	for _, c := range n.parent.children {
		if c != n {
			sibs = append(sibs, c)
		}
	}
	return sibs
}

// Collapse removes this node from its parent and attaches its children
// directly to the parent. The node keeps no children afterwards.
func (n *Node) Collapse() {
	parent := n.parent
	if parent == nil {
		return
	}
	parent.RemoveChild(n)
	for _, child := range n.children {
		parent.AddChild(child)
	}
	n.children = nil
}

// MakeBinary splits this node's children into nested pairs until the node
// has at most two children. Inserted nodes are unnamed and carry a branch
// length of zero. It reports whether any change was made.
func (n *Node) MakeBinary() bool {
	made := false
	for len(n.children) > 2 {
		child0 := n.children[0]
		child1 := n.children[1]
		n.RemoveChild(child0)
		n.RemoveChild(child1)

		group := NewNode("")
		group.AddChild(child0)
		group.AddChild(child1)
		zero := 0.0
		group.Distance = &zero

		n.children = append([]*Node{group}, n.children...)
		group.parent = n
		made = true
	}
	return made
}

// ComputeDescendantBitset fills in the node's descendant bitset. A leaf sets
// only its own id; an internal node takes the union of its children's
// bitsets, which must have been computed already (compute in postorder).
// Size must be the number of taxa in the tree.
func (n *Node) ComputeDescendantBitset(size int) {
	bs := bitset.New(size)
	if n.IsLeaf() {
		bs.Set(n.ID)
	} else {
		for _, child := range n.children {
			bs.InPlaceUnion(child.DescendantBitset())
		}
	}
	n.descendants = bs
}

// DescendantBitset returns the bitset of leaf ids below this node. It panics
// if ComputeDescendantBitset has not been called since the node was created;
// the bitset is not invalidated automatically, so after any topology change
// the caller must recompute before trusting it.
func (n *Node) DescendantBitset() *bitset.BitSet {
	if n.descendants == nil {
		panic("tree: descendant bitset not computed; call ComputeDescendantBitset first")
	}
	return n.descendants
}

// Postorder returns the nodes of this subtree, children before parents,
// leftmost subtree first. The traversal uses an explicit stack, so arbitrary
// depths are fine.
func (n *Node) Postorder() []*Node {
	out := make([]*Node, 0)
	stack := []*Node{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, node)
		stack = append(stack, node.children...)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Preorder returns the nodes of this subtree, parents before children.
func (n *Node) Preorder() []*Node {
	out := make([]*Node, 0)
	stack := []*Node{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, node)
		for i := len(node.children) - 1; i >= 0; i-- {
			stack = append(stack, node.children[i])
		}
	}
	return out
}

// Levelorder returns the nodes of this subtree, breadth first.
func (n *Node) Levelorder() []*Node {
	out := make([]*Node, 0)
	queue := []*Node{n}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		out = append(out, node)
		queue = append(queue, node.children...)
	}
	return out
}

// ParseComment parses the node comment into Annotations. See ParseComment
// for the format and converter semantics.
func (n *Node) ParseComment(converters map[string]Converter) error {
	if n.Comment == "" {
		return nil
	}
	annotations, err := ParseComment(n.Comment, converters)
	if err != nil {
		return err
	}
	if len(annotations) > 0 {
		if n.Annotations == nil {
			n.Annotations = make(map[string]interface{}, len(annotations))
		}
		for k, v := range annotations {
			n.Annotations[k] = v
		}
	}
	return nil
}

// ParseBranchComment parses the branch comment into BranchAnnotations.
func (n *Node) ParseBranchComment(converters map[string]Converter) error {
	if n.BranchComment == "" {
		return nil
	}
	annotations, err := ParseComment(n.BranchComment, converters)
	if err != nil {
		return err
	}
	if len(annotations) > 0 {
		if n.BranchAnnotations == nil {
			n.BranchAnnotations = make(map[string]interface{}, len(annotations))
		}
		for k, v := range annotations {
			n.BranchAnnotations[k] = v
		}
	}
	return nil
}

// Newick renders this subtree in Newick notation, without the terminating
// semicolon. A nil opts means DefaultNewickOptions.
func (n *Node) Newick(opts *NewickOptions) string {
	if opts == nil {
		opts = DefaultNewickOptions()
	}
	var sb strings.Builder
	n.writeNewick(&sb, opts)
	return sb.String()
}

func (n *Node) writeNewick(sb *strings.Builder, opts *NewickOptions) {
	if n.IsLeaf() {
		name := n.Name
		if opts.Translator != nil {
			if translated, ok := opts.Translator[n.Name]; ok {
				name = translated
			}
		}
		sb.WriteString(name)
	} else {
		sb.WriteByte('(')
		for i, child := range n.children {
			if i > 0 {
				sb.WriteByte(',')
			}
			child.writeNewick(sb, opts)
		}
		sb.WriteByte(')')
		if opts.IncludeInternalNodeName && n.Name != "" {
			sb.WriteString(n.Name)
		}
	}

	comment := buildComment(n.Comment, n.Annotations, opts.IncludeComment, opts.AnnotationKeys)
	if opts.IncludeBranchLengths && n.Distance != nil {
		sb.WriteString(comment)
		sb.WriteByte(':')
		sb.WriteString(buildComment(n.BranchComment, n.BranchAnnotations,
			opts.IncludeBranchComment, opts.BranchAnnotationKeys))
		sb.WriteString(formatDistance(*n.Distance, opts.DecimalPrecision))
	} else {
		sb.WriteString(comment)
	}
}

func formatDistance(d float64, precision int) string {
	if precision > 0 {
		return strconv.FormatFloat(d, 'f', precision, 64)
	}
	return strconv.FormatFloat(d, 'g', -1, 64)
}

// distanceOf treats a missing branch length as zero for arithmetic during
// rerooting.
func distanceOf(n *Node) float64 {
	if n.Distance == nil {
		return 0
	}
	return *n.Distance
}

func setDistance(n *Node, d float64) {
	n.Distance = &d
}
