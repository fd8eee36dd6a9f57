package tree

import (
	"github.com/cpmech/gosl/chk"
)

// Omega marks undefined slot and direction values, e.g. the son type
// of a root, which occupies no slot among siblings.
const Omega = 26

// MaxNeighbourFindingTolerance bounds the coordinate mismatch accepted
// when neighbours are identified geometrically. Process-wide: adjust
// it before a discovery or checking pass, not per forest.
var MaxNeighbourFindingTolerance = 1.0e-14

// Tree is one node of a recursive spatial partition. Nodes are created
// through NewRoot or by splitting a leaf, never bare; the zero value
// is unusable.
type Tree struct {
	object  Element // payload, owned by the external mesh
	sons    []*Tree // empty means leaf
	father  *Tree   // nil at a root
	root    *Root   // anchor of this tree, equal for the whole subtree
	level   int     // root is 0
	sonType int     // slot among siblings, Omega at a root
}

// Son returns the son in slot i, or nil if the node is a leaf. For
// non-leaves the index is unchecked unless paranoid checking is
// compiled in; the traversal paths rely on it being cheap.
func (t *Tree) Son(i int) *Tree {
	if len(t.sons) == 0 {
		return nil
	}
	if ParanoidChecks {
		if i < 0 || i >= len(t.sons) {
			chk.Panic("son index %d out of range, node has %d sons", i, len(t.sons))
		}
	}
	return t.sons[i]
}

// NSons returns the number of sons, 0 for a leaf.
func (t *Tree) NSons() int {
	return len(t.sons)
}

// IsLeaf reports whether the node has no sons.
func (t *Tree) IsLeaf() bool {
	return len(t.sons) == 0
}

// Level returns the refinement level; a root sits at level 0.
func (t *Tree) Level() int {
	return t.level
}

// Father returns the parent node, nil at a root.
func (t *Tree) Father() *Tree {
	return t.father
}

// Root returns the root anchoring this node's tree.
func (t *Tree) Root() *Root {
	return t.root
}

// SonType returns the slot this node occupies among its siblings,
// Omega at a root.
func (t *Tree) SonType() int {
	return t.sonType
}

// SetSons replaces the entire son slice. The length must be zero or
// exactly the branching factor; partial splits are forbidden.
func (t *Tree) SetSons(sons []*Tree) {
	if n := len(sons); n != 0 && n != t.root.factory.NSons() {
		chk.Panic("son sequence has length %d, branching factor is %d", n, t.root.factory.NSons())
	}
	t.sons = sons
}

// Object returns the payload element, nil after a flush.
func (t *Tree) Object() Element {
	return t.object
}

// FlushObject detaches the payload without destroying it; ownership
// stays with the mesh.
func (t *Tree) FlushObject() {
	t.object = nil
}

// DeactivateObject tells the payload it left the active mesh. A
// no-op on a node whose payload was already flushed.
func (t *Tree) DeactivateObject() {
	if t.object != nil {
		t.object.DeactivateElement()
	}
}

// Destroy releases the whole subtree below t and detaches every
// payload in it. Payloads are owned by the mesh and are never freed
// here.
func (t *Tree) Destroy() {
	for _, s := range t.sons {
		s.Destroy()
	}
	t.sons = nil
	t.object = nil
}
