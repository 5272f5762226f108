// Package cluster models hierarchical clustering results as read-only trees.
//
// Trees are stored as an arena of nodes addressed by index, with children
// stored as indices into the arena. This keeps the structure flat, makes
// iterative traversal cheap, and lets validation reason about node identity
// without pointer comparison.
//
// A tree can be built three ways:
//   - [New] from an explicit node slice
//   - [FromLinkage] from scipy-style merge records
//   - [ParseNewick] from Newick text
//
// All constructors validate structure: a tree must have a single root from
// which every node is reachable exactly once. Monotonicity of merge heights
// is a separate, optional check ([Tree.NonMonotonic]) because downstream
// consumers may opt in to laying out inconsistent trees.
package cluster

import (
	"github.com/t0mdavid-m/seqviz/pkg/errors"
)

// Node is a single entry in the tree arena. A node with no children is a
// leaf and carries a label; an internal node carries a merge height and at
// least two child indices.
type Node struct {
	Label    string  // display label; meaningful for leaves, optional for internal nodes
	Height   float64 // merge height on the distance axis; 0 for leaves
	Children []int   // arena indices; empty for leaves
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is a validated, read-only hierarchical clustering tree.
// It is safe for concurrent use: no method mutates the arena.
type Tree struct {
	nodes []Node
	root  int
	leafN int
}

// New builds a tree from an arena of nodes and a root index.
// The node slice is copied; callers may reuse their slice afterwards.
//
// New fails with a STRUCTURAL_* error if:
//   - the arena is empty or root is out of range
//   - a child index is out of range
//   - a node is reachable twice (cycle or shared subtree)
//   - a node is unreachable from the root
//   - an internal node has fewer than two children
func New(nodes []Node, root int) (*Tree, error) {
	if len(nodes) == 0 {
		return nil, errors.New(errors.ErrCodeStructural, "empty tree")
	}
	if root < 0 || root >= len(nodes) {
		return nil, errors.New(errors.ErrCodeStructural, "root index %d out of range [0,%d)", root, len(nodes))
	}

	arena := make([]Node, len(nodes))
	copy(arena, nodes)
	for i := range arena {
		arena[i].Children = append([]int(nil), nodes[i].Children...)
	}

	t := &Tree{nodes: arena, root: root}
	if err := t.validate(); err != nil {
		return nil, err
	}
	for _, n := range arena {
		if n.IsLeaf() {
			t.leafN++
		}
	}
	return t, nil
}

// Root returns the arena index of the root node.
func (t *Tree) Root() int { return t.root }

// Len returns the total number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int { return t.leafN }

// Node returns the node at arena index i.
func (t *Tree) Node(i int) Node { return t.nodes[i] }

// Children returns the child indices of node i. The returned slice is owned
// by the tree and must not be modified.
func (t *Tree) Children(i int) []int { return t.nodes[i].Children }

// Labels returns the leaf labels in arena order.
func (t *Tree) Labels() []string {
	labels := make([]string, 0, t.leafN)
	for _, n := range t.nodes {
		if n.IsLeaf() {
			labels = append(labels, n.Label)
		}
	}
	return labels
}

// NonMonotonic returns the indices of internal nodes whose height is below
// the height of one of their children, in ascending index order. A valid
// clustering returns nil.
func (t *Tree) NonMonotonic() []int {
	var bad []int
	for i, n := range t.nodes {
		for _, c := range n.Children {
			if t.nodes[c].Height > n.Height {
				bad = append(bad, i)
				break
			}
		}
	}
	return bad
}

// validate walks the arena from the root with an explicit stack and checks
// that every node is visited exactly once. Visit states follow the classic
// white/gray/black coloring: gray means on the current path, so reaching a
// gray node is a cycle, while reaching a black node is a shared subtree.
func (t *Tree) validate() error {
	const (
		white = iota // unvisited
		gray         // on the current root-to-node path
		black        // fully explored
	)
	state := make([]int, len(t.nodes))

	type frame struct {
		node int
		next int // index into Children of the next child to descend into
	}
	stack := []frame{{node: t.root}}
	state[t.root] = gray

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		n := t.nodes[f.node]

		if len(n.Children) == 1 {
			return errors.New(errors.ErrCodeStructural, "internal node %d has a single child", f.node)
		}

		if f.next == len(n.Children) {
			state[f.node] = black
			stack = stack[:len(stack)-1]
			continue
		}

		c := n.Children[f.next]
		f.next++

		if c < 0 || c >= len(t.nodes) {
			return errors.New(errors.ErrCodeStructural, "node %d references child %d out of range [0,%d)", f.node, c, len(t.nodes))
		}
		switch state[c] {
		case gray:
			return errors.New(errors.ErrCodeStructuralCycle, "node %d is its own ancestor via node %d", c, f.node)
		case black:
			return errors.New(errors.ErrCodeStructuralShared, "node %d is shared by multiple parents", c)
		}
		state[c] = gray
		stack = append(stack, frame{node: c})
	}

	for i, s := range state {
		if s == white {
			return errors.New(errors.ErrCodeStructuralOrphan, "node %d is not reachable from root %d", i, t.root)
		}
	}
	return nil
}
