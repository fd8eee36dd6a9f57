package octree

import (
	"github.com/cpmech/gosl/chk"

	"github.com/notargets/goamr/tree"
)

// Neighbour is the result of a greater-or-equal face neighbour
// search.
type Neighbour struct {
	// Node is the neighbouring tree node, nil on a domain boundary
	Node *tree.Tree

	// DiffLevel is the neighbour's level minus the query node's
	// level; zero for an equal-size neighbour, negative when the
	// neighbour is a coarser leaf
	DiffLevel int

	// Periodic is true when the connection crosses a periodic root
	// boundary, so the two nodes share values but not position
	Periodic bool
}

// GteqFaceNeighbour finds the neighbour of t across face whose size is
// greater than or equal to t's own. The result is either a node at
// t's level, a coarser leaf, or nothing when the face lies on the
// domain boundary. Neighbouring roots are assumed to share the same
// son-slot orientation.
func GteqFaceNeighbour(t *tree.Tree, face int) Neighbour {
	if face < L || face > F {
		chk.Panic("%d is not an octree face", face)
	}
	node, periodic := gteqSearch(t, face)
	nb := Neighbour{Node: node, Periodic: periodic}
	if node != nil {
		nb.DiffLevel = node.Level() - t.Level()
	}
	return nb
}

// gteqSearch walks up until the path to the neighbour no longer
// crosses the face, then mirrors the descent on the far side. Roots
// hand over to their neighbour table, which is where a periodic
// connection can enter.
func gteqSearch(t *tree.Tree, face int) (*tree.Tree, bool) {
	if t.Father() == nil {
		r := t.Root()
		nb := r.Neighbour(face)
		if nb == nil {
			return nil, false
		}
		return &nb.Tree, r.IsNeighbourPeriodic(face)
	}

	s := t.SonType()
	if !Adjacent(s, face) {
		// the neighbour is a sibling in the mirrored slot
		return t.Father().Son(Reflect(s, face)), false
	}

	mu, periodic := gteqSearch(t.Father(), face)
	if mu == nil || mu.IsLeaf() {
		return mu, periodic
	}
	return mu.Son(Reflect(s, face)), periodic
}
