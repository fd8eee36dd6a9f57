package tree

// Element is the refineable payload attached to a tree node. The tree
// never owns it: elements live in an external mesh and the tree only
// queries them for adaptation decisions and notifies them when they
// drop out of the active set.
type Element interface {
	// ToBeRefined reports whether the element wants a geometric split.
	ToBeRefined() bool

	// ToBePRefined reports whether the element wants its polynomial
	// order raised. Order changes never touch the tree topology.
	ToBePRefined() bool

	// ToBePUnrefined reports whether the element wants its polynomial
	// order lowered.
	ToBePUnrefined() bool

	// SonsToBeUnrefined reports whether this element agrees to merge
	// away with its siblings. A merge happens only when every son of a
	// node reports true.
	SonsToBeUnrefined() bool

	// DeactivateElement tells the element it is no longer part of the
	// active mesh. Called exactly once per element during a merge.
	DeactivateElement()
}

// Mesh receives structural notifications during adaptation. It is the
// external owner of the elements; the tree only reports what happened.
type Mesh interface {
	// ElementRemoved is called once for every son payload detached by
	// a merge.
	ElementRemoved(e Element)
}

// SonFactory builds the payloads of new sons during a split. The
// generic split logic owns all node wiring (level, son type, father,
// root); the factory owns payload creation and with it the branching
// factor of the tree.
type SonFactory interface {
	// NSons returns the branching factor, 4 for quad splits and 8 for
	// oct splits.
	NSons() int

	// ConstructSon creates the payload for the son occupying slot
	// sonType beneath father. The father's payload is never handed
	// down automatically.
	ConstructSon(father *Tree, sonType int) Element
}

// PRefineable is the optional order-refinement capability of an
// element. Requesting a p-refinement without implementing it is a
// fatal configuration error.
type PRefineable interface {
	// PRefine changes the polynomial order by inc (+1 or -1), using m
	// for degree bookkeeping.
	PRefine(inc int, m Mesh)
}

// SonRebuildable lets a father payload reassemble its state after its
// sons merge away.
type SonRebuildable interface {
	RebuildFromSons(m Mesh)
}
