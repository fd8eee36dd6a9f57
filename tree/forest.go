package tree

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/sirupsen/logrus"

	"github.com/notargets/goamr/doc"
)

var log = logrus.WithField("component", "tree.Forest")

// Forest owns an ordered set of roots forming one logical mesh. Roots
// belong to the forest until Destroy tears them down or FlushTrees
// hands ownership back to the caller.
type Forest struct {
	trees []*Root
}

// Forester is the dimension-specific face of a forest: auditing the
// neighbour topology and documenting hanging nodes both need geometry
// this package does not have.
type Forester interface {
	// CheckAllNeighbours verifies that every claimed neighbour
	// relation is geometrically and topologically consistent,
	// documenting its findings through info. Inconsistency is reported
	// as an error, never as a panic.
	CheckAllNeighbours(info *doc.Info) error

	// OpenHangingNodeFiles opens the diagnostic files hanging-node
	// reports go to. On a mid-way failure the files opened so far are
	// still returned so CloseHangingNodeFiles can release them.
	OpenHangingNodeFiles(info *doc.Info) ([]*os.File, error)
}

// NewForest adopts the given roots. An empty forest can never become
// useful, so constructing one is a fatal configuration error.
func NewForest(roots []*Root) *Forest {
	if len(roots) == 0 {
		chk.Panic("a forest needs at least one tree root")
	}
	return &Forest{trees: roots}
}

// NTree returns the number of trees in the forest.
func (f *Forest) NTree() int {
	return len(f.trees)
}

// Tree returns the i-th root.
func (f *Forest) Tree(i int) *Root {
	return f.trees[i]
}

// AppendLeaves appends every leaf of the forest to dst, root order
// first, depth-first within each root, and returns the grown slice.
func (f *Forest) AppendLeaves(dst []*Tree) []*Tree {
	for _, r := range f.trees {
		dst = r.AppendLeaves(dst)
	}
	return dst
}

// AppendAllNodes appends every node of the forest to dst, root order
// first, depth-first within each root, and returns the grown slice.
func (f *Forest) AppendAllNodes(dst []*Tree) []*Tree {
	for _, r := range f.trees {
		dst = r.AppendAllNodes(dst)
	}
	return dst
}

// NLeaf returns the number of leaves across the whole forest.
func (f *Forest) NLeaf() int {
	n := 0
	for _, r := range f.trees {
		r.TraverseLeaves(func(*Tree) { n++ })
	}
	return n
}

// MaxLevel returns the deepest refinement level present in the
// forest.
func (f *Forest) MaxLevel() int {
	max := 0
	for _, r := range f.trees {
		r.TraverseAll(func(t *Tree) {
			if t.Level() > max {
				max = t.Level()
			}
		})
	}
	return max
}

// FlushTrees abandons the roots without destroying them. Escape hatch
// for callers that manage root lifetime elsewhere.
func (f *Forest) FlushTrees() {
	f.trees = nil
}

// Destroy tears down every owned root and empties the forest.
func (f *Forest) Destroy() {
	for _, r := range f.trees {
		r.Destroy()
	}
	f.trees = nil
}

// CloseHangingNodeFiles closes every non-nil handle in files. Safe to
// defer right after OpenHangingNodeFiles, including on its error path.
// The first close error is returned after all handles were attempted.
func (f *Forest) CloseHangingNodeFiles(files []*os.File) error {
	var firstErr error
	for _, fp := range files {
		if fp == nil {
			continue
		}
		if err := fp.Close(); err != nil {
			log.Warnf("closing hanging node file %s: %v", fp.Name(), err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
