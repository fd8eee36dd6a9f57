package tree

// TraverseAll walks the subtree depth-first, sons in slot order, and
// calls fn once per node, this one included. fn must not mutate the
// topology being walked; split and merge passes collect their targets
// first.
func (t *Tree) TraverseAll(fn func(*Tree)) {
	fn(t)
	for _, s := range t.sons {
		s.TraverseAll(fn)
	}
}

// TraverseAllButLeaves calls fn once per non-leaf node of the subtree.
func (t *Tree) TraverseAllButLeaves(fn func(*Tree)) {
	if t.IsLeaf() {
		return
	}
	fn(t)
	for _, s := range t.sons {
		s.TraverseAllButLeaves(fn)
	}
}

// TraverseLeaves calls fn once per leaf of the subtree.
func (t *Tree) TraverseLeaves(fn func(*Tree)) {
	if t.IsLeaf() {
		fn(t)
		return
	}
	for _, s := range t.sons {
		s.TraverseLeaves(fn)
	}
}

// AppendLeaves appends the subtree's leaves to dst in traversal order
// and returns the grown slice.
func (t *Tree) AppendLeaves(dst []*Tree) []*Tree {
	t.TraverseLeaves(func(n *Tree) {
		dst = append(dst, n)
	})
	return dst
}

// AppendAllNodes appends every node of the subtree to dst in traversal
// order and returns the grown slice.
func (t *Tree) AppendAllNodes(dst []*Tree) []*Tree {
	t.TraverseAll(func(n *Tree) {
		dst = append(dst, n)
	})
	return dst
}
