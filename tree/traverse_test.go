package tree

import (
	"testing"
)

// twoLevelTree builds a root with four sons and splits the first son
// again: 9 nodes, 7 leaves, 2 internal.
func twoLevelTree(t *testing.T) *Root {
	t.Helper()
	root, father := newTestRoot(4)
	father.refine = true
	root.SplitIfRequired()
	son := root.Son(0)
	son.Object().(*mockElement).refine = true
	son.SplitIfRequired()
	return root
}

func TestTraverseCounts(t *testing.T) {
	root := twoLevelTree(t)

	countAll := 0
	root.TraverseAll(func(*Tree) { countAll++ })
	countLeaves := 0
	root.TraverseLeaves(func(*Tree) { countLeaves++ })
	countInternal := 0
	root.TraverseAllButLeaves(func(*Tree) { countInternal++ })

	if countAll != 9 {
		t.Errorf("TraverseAll visited %d nodes, want 9", countAll)
	}
	if countLeaves != 7 {
		t.Errorf("TraverseLeaves visited %d nodes, want 7", countLeaves)
	}
	if countInternal != 2 {
		t.Errorf("TraverseAllButLeaves visited %d nodes, want 2", countInternal)
	}
	if countAll != countLeaves+countInternal {
		t.Error("leaf and internal visits do not add up to all visits")
	}
}

func TestTraverseVisitsEachNodeOnce(t *testing.T) {
	root := twoLevelTree(t)

	visits := make(map[*Tree]int)
	root.TraverseAll(func(n *Tree) { visits[n]++ })
	for n, c := range visits {
		if c != 1 {
			t.Errorf("node at level %d visited %d times", n.Level(), c)
		}
	}
	if len(visits) != 9 {
		t.Errorf("visited %d distinct nodes, want 9", len(visits))
	}
}

func TestTraverseDeterministicOrder(t *testing.T) {
	root := twoLevelTree(t)

	var first, second []*Tree
	root.TraverseAll(func(n *Tree) { first = append(first, n) })
	root.TraverseAll(func(n *Tree) { second = append(second, n) })

	if len(first) != len(second) {
		t.Fatalf("walk lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("walk order differs at position %d", i)
		}
	}
}

func TestAppendLeaves(t *testing.T) {
	root := twoLevelTree(t)

	marker := &Tree{}
	dst := []*Tree{marker}
	dst = root.AppendLeaves(dst)

	if len(dst) != 8 {
		t.Fatalf("len(dst) = %d, want 8", len(dst))
	}
	if dst[0] != marker {
		t.Error("append overwrote the caller's prefix")
	}
	for i, n := range dst[1:] {
		if !n.IsLeaf() {
			t.Errorf("entry %d is not a leaf", i+1)
		}
	}
}

func TestAppendAllNodes(t *testing.T) {
	root := twoLevelTree(t)

	dst := root.AppendAllNodes(nil)
	if len(dst) != 9 {
		t.Fatalf("len(dst) = %d, want 9", len(dst))
	}
	if dst[0] != &root.Tree {
		t.Error("walk must start at the subtree root")
	}
}

func TestStructuralInvariants(t *testing.T) {
	root := twoLevelTree(t)

	root.TraverseAll(func(n *Tree) {
		if n.IsLeaf() != (n.NSons() == 0) {
			t.Errorf("leaf flag and son count disagree at level %d", n.Level())
		}
		if f := n.Father(); f != nil {
			if n.Level() != f.Level()+1 {
				t.Errorf("level %d under father level %d", n.Level(), f.Level())
			}
			if n.Root() != f.Root() {
				t.Error("root reference differs from father's")
			}
		} else if n.Root() != root {
			t.Error("father-less node must be the root itself")
		}
	})
}
