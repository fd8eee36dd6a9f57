package quadtree

import (
	"github.com/cpmech/gosl/chk"

	"github.com/notargets/goamr/tree"
)

// Neighbour is the result of a greater-or-equal edge neighbour
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

// GteqEdgeNeighbour finds the neighbour of t across edge whose size is
// greater than or equal to t's own. The result is either a node at
// t's level, a coarser leaf, or nothing when the edge lies on the
// domain boundary. Neighbouring roots are assumed to share the same
// son-slot orientation.
func GteqEdgeNeighbour(t *tree.Tree, edge int) Neighbour {
	if edge < N || edge > W {
		chk.Panic("%d is not a quadtree edge", edge)
	}
	node, periodic := gteqSearch(t, edge)
	nb := Neighbour{Node: node, Periodic: periodic}
	if node != nil {
		nb.DiffLevel = node.Level() - t.Level()
	}
	return nb
}

// gteqSearch walks up until the path to the neighbour no longer
// crosses the edge, then mirrors the descent on the far side. Roots
// hand over to their neighbour table, which is where a periodic
// connection can enter.
func gteqSearch(t *tree.Tree, edge int) (*tree.Tree, bool) {
	if t.Father() == nil {
		r := t.Root()
		nb := r.Neighbour(edge)
		if nb == nil {
			return nil, false
		}
		return &nb.Tree, r.IsNeighbourPeriodic(edge)
	}

	s := t.SonType()
	if !Adjacent(s, edge) {
		// the neighbour is a sibling in the mirrored slot
		return t.Father().Son(Reflect(s, edge)), false
	}

	mu, periodic := gteqSearch(t.Father(), edge)
	if mu == nil || mu.IsLeaf() {
		return mu, periodic
	}
	return mu.Son(Reflect(s, edge)), periodic
}
