package quadtree

import (
	"github.com/cpmech/gosl/chk"

	"github.com/notargets/goamr/tree"
)

// Decision tells the adaptation driver what a leaf wants.
type Decision uint8

const (
	// Neither keeps the leaf as it is
	Neither Decision = iota
	// Split refines the leaf into four sons
	Split
	// Combine offers the leaf for merging with its siblings
	Combine
)

// AdaptFunc examines a leaf and its payload and returns the desired
// action. The function must not change the forest topology itself.
type AdaptFunc func(leaf *tree.Tree, c *Cell) Decision

// Adapt runs one adaptation sweep driven by fn: a flagging pass over
// the current leaves, a split pass, then a merge pass visiting sons
// before fathers. Merging stays all or nothing, so a father merges
// only when fn offered every one of its sons. Stale flags from
// earlier sweeps are cleared before flagging. Returns the number of
// splits and merges performed.
func (f *Forest) Adapt(fn AdaptFunc, m tree.Mesh) (nSplit, nMerge int) {
	var leaves []*tree.Tree
	leaves = f.AppendLeaves(leaves)
	for _, leaf := range leaves {
		c, _ := leaf.Object().(*Cell)
		if c == nil {
			continue
		}
		c.clearRequests()
		dec := fn(leaf, c)
		switch dec {
		case Split:
			c.RequestRefinement()
		case Combine:
			c.RequestUnrefinement()
		case Neither:
		default:
			chk.Panic("unknown adaptation decision %d", dec)
		}
	}

	for _, leaf := range leaves {
		leaf.SplitIfRequired()
		if !leaf.IsLeaf() {
			nSplit++
		}
	}

	// reversed pre-order puts sons before fathers
	var nodes []*tree.Tree
	nodes = f.AppendAllNodes(nodes)
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.IsLeaf() {
			continue
		}
		n.MergeSonsIfRequired(m)
		if n.IsLeaf() {
			nMerge++
		}
	}

	if nSplit > 0 || nMerge > 0 {
		log.Debugf("adaptation sweep: %d splits, %d merges, %d leaves",
			nSplit, nMerge, f.NLeaf())
	}
	return
}

// PRefineAll applies pending polynomial order changes on every leaf
// payload, leaving the topology untouched.
func (f *Forest) PRefineAll(m tree.Mesh) {
	var leaves []*tree.Tree
	leaves = f.AppendLeaves(leaves)
	for _, leaf := range leaves {
		leaf.PRefineIfRequired(m)
	}
}
