package tree

import (
	"github.com/cpmech/gosl/chk"
)

// SplitIfRequired turns a leaf whose payload wants refinement into an
// internal node with exactly branching-factor sons. The root's factory
// creates each son's payload; the father keeps its own payload, which
// is never handed down. Non-leaves and flushed nodes are left alone.
func (t *Tree) SplitIfRequired() {
	if !t.IsLeaf() || t.object == nil || !t.object.ToBeRefined() {
		return
	}
	factory := t.root.factory
	n := factory.NSons()
	sons := make([]*Tree, n)
	for i := 0; i < n; i++ {
		sons[i] = &Tree{
			object:  factory.ConstructSon(t, i),
			father:  t,
			root:    t.root,
			level:   t.level + 1,
			sonType: i,
		}
	}
	t.sons = sons
}

// PRefineIfRequired changes the payload's polynomial order when it
// asks for it, leaving the tree topology untouched. The mesh is handed
// through for degree bookkeeping. An element requesting an order
// change without the PRefineable capability is a configuration error.
func (t *Tree) PRefineIfRequired(m Mesh) {
	if t.object == nil {
		return
	}
	var inc int
	switch {
	case t.object.ToBePRefined():
		inc = 1
	case t.object.ToBePUnrefined():
		inc = -1
	default:
		return
	}
	p, ok := t.object.(PRefineable)
	if !ok {
		chk.Panic("element %T requests a p-refinement but does not implement PRefineable", t.object)
	}
	p.PRefine(inc, m)
}

// MergeSonsIfRequired undoes a split when every son is a leaf and
// every son's payload independently agrees to go. All-or-nothing: if
// any son disagrees (or has sons of its own) nothing changes. On a
// merge, each son payload is deactivated exactly once, detached, and
// reported to the mesh; the node becomes a leaf again and its own
// payload gets a chance to rebuild itself from the departed sons. A
// nil mesh skips the removal notifications.
func (t *Tree) MergeSonsIfRequired(m Mesh) {
	if t.IsLeaf() {
		return
	}
	for _, s := range t.sons {
		if !s.IsLeaf() || s.object == nil || !s.object.SonsToBeUnrefined() {
			return
		}
	}
	for _, s := range t.sons {
		removed := s.object
		s.DeactivateObject()
		s.FlushObject()
		if m != nil {
			m.ElementRemoved(removed)
		}
	}
	t.sons = nil
	if t.object != nil {
		if rb, ok := t.object.(SonRebuildable); ok {
			rb.RebuildFromSons(m)
		}
	}
}
