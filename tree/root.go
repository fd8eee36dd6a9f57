package tree

import (
	"github.com/cpmech/gosl/chk"
)

// Root anchors one tree of a forest. Beyond being a father-less node
// it records which other roots border it in each direction, whether a
// border is periodic, and the factory every split beneath it uses.
//
// Direction values are small integers owned by the dimension-specific
// layer (a quadtree edge, an octree face). The neighbour relation is
// deliberately not forced to be symmetric here: discovery establishes
// mutual links and CheckAllNeighbours audits them, but a half-set pair
// is representable.
type Root struct {
	Tree

	neighbours map[int]*Root // direction -> bordering root, nil when unset
	periodic   map[int]bool  // direction -> values shared across the border
	factory    SonFactory
}

// NewRoot wraps a payload element as the root of a fresh tree. Bare
// roots are useless, so a nil element or factory is a fatal
// configuration error.
func NewRoot(object Element, factory SonFactory) *Root {
	if object == nil {
		chk.Panic("a root needs a payload element")
	}
	if factory == nil {
		chk.Panic("a root needs a son factory")
	}
	r := &Root{
		neighbours: make(map[int]*Root),
		periodic:   make(map[int]bool),
		factory:    factory,
	}
	r.Tree.object = object
	r.Tree.sonType = Omega
	r.Tree.root = r
	return r
}

// Neighbour returns the bordering root in the given direction, nil
// when none was set.
func (r *Root) Neighbour(direction int) *Root {
	return r.neighbours[direction]
}

// SetNeighbour records nb as the bordering root in the given
// direction. It does not touch nb's own tables.
func (r *Root) SetNeighbour(direction int, nb *Root) {
	r.neighbours[direction] = nb
}

// NNeighbour counts the directions holding a non-nil neighbour.
func (r *Root) NNeighbour() int {
	n := 0
	for _, nb := range r.neighbours {
		if nb != nil {
			n++
		}
	}
	return n
}

// IsNeighbourPeriodic reports whether the border in the given
// direction is periodic. Directions never marked default to false.
func (r *Root) IsNeighbourPeriodic(direction int) bool {
	return r.periodic[direction]
}

// SetNeighbourPeriodic marks the border in the given direction as
// periodic: field values are shared across it, positions are not.
func (r *Root) SetNeighbourPeriodic(direction int) {
	r.periodic[direction] = true
}

// SetNeighbourNonperiodic clears the periodic mark for a direction.
func (r *Root) SetNeighbourNonperiodic(direction int) {
	r.periodic[direction] = false
}

// Factory returns the son factory splits beneath this root use.
func (r *Root) Factory() SonFactory {
	return r.factory
}
