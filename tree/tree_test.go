package tree

import (
	"testing"
)

// mockElement is a payload with scriptable adaptation flags.
type mockElement struct {
	refine    bool
	pRefine   bool
	pUnrefine bool
	unrefine  bool

	order       int // polynomial order, moved by PRefine
	deactivated int // times DeactivateElement ran
	rebuilt     int // times RebuildFromSons ran
}

func (e *mockElement) ToBeRefined() bool       { return e.refine }
func (e *mockElement) ToBePRefined() bool      { return e.pRefine }
func (e *mockElement) ToBePUnrefined() bool    { return e.pUnrefine }
func (e *mockElement) SonsToBeUnrefined() bool { return e.unrefine }
func (e *mockElement) DeactivateElement()      { e.deactivated++ }
func (e *mockElement) PRefine(inc int, m Mesh) { e.order += inc }
func (e *mockElement) RebuildFromSons(m Mesh)  { e.rebuilt++ }

// plainElement has no optional capabilities.
type plainElement struct {
	pRefine bool
}

func (e *plainElement) ToBeRefined() bool       { return false }
func (e *plainElement) ToBePRefined() bool      { return e.pRefine }
func (e *plainElement) ToBePUnrefined() bool    { return false }
func (e *plainElement) SonsToBeUnrefined() bool { return false }
func (e *plainElement) DeactivateElement()      {}

// mockFactory builds fresh mockElements for every son slot.
type mockFactory struct {
	nsons int
}

func (f *mockFactory) NSons() int { return f.nsons }

func (f *mockFactory) ConstructSon(father *Tree, sonType int) Element {
	return &mockElement{}
}

// mockMesh records removal notifications.
type mockMesh struct {
	removed []Element
}

func (m *mockMesh) ElementRemoved(e Element) {
	m.removed = append(m.removed, e)
}

func newTestRoot(nsons int) (*Root, *mockElement) {
	e := &mockElement{}
	return NewRoot(e, &mockFactory{nsons: nsons}), e
}

func TestNewRoot(t *testing.T) {
	t.Run("NilElement", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic for nil payload element")
			}
		}()
		NewRoot(nil, &mockFactory{nsons: 4})
	})

	t.Run("NilFactory", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic for nil son factory")
			}
		}()
		NewRoot(&mockElement{}, nil)
	})

	t.Run("FreshRoot", func(t *testing.T) {
		root, e := newTestRoot(4)
		if root.Level() != 0 {
			t.Errorf("Expected level 0, got %d", root.Level())
		}
		if root.SonType() != Omega {
			t.Errorf("Expected son type Omega (%d), got %d", Omega, root.SonType())
		}
		if root.Father() != nil {
			t.Error("Root must have no father")
		}
		if root.Root() != root {
			t.Error("Root must anchor itself")
		}
		if !root.IsLeaf() || root.NSons() != 0 {
			t.Error("Fresh root must be a leaf")
		}
		if root.Son(0) != nil {
			t.Error("Son of a leaf must be nil")
		}
		if root.Object() != Element(e) {
			t.Error("Object() must return the payload handed to NewRoot")
		}
		if root.Factory().NSons() != 4 {
			t.Errorf("Factory branching factor = %d, want 4", root.Factory().NSons())
		}
	})
}

func TestSetSons(t *testing.T) {
	root, _ := newTestRoot(4)

	t.Run("WrongLength", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic for partial son sequence")
			}
		}()
		root.SetSons([]*Tree{{}, {}})
	})

	t.Run("FullLength", func(t *testing.T) {
		sons := []*Tree{{}, {}, {}, {}}
		root.SetSons(sons)
		if root.NSons() != 4 {
			t.Errorf("NSons = %d, want 4", root.NSons())
		}
	})

	t.Run("Clear", func(t *testing.T) {
		root.SetSons(nil)
		if !root.IsLeaf() {
			t.Error("SetSons(nil) must leave a leaf")
		}
	})
}

func TestFlushObject(t *testing.T) {
	root, e := newTestRoot(4)
	root.FlushObject()
	if root.Object() != nil {
		t.Error("FlushObject must detach the payload")
	}
	// Detaching never notifies the element.
	if e.deactivated != 0 {
		t.Errorf("flush deactivated the element %d times, want 0", e.deactivated)
	}
	// Deactivating a flushed node is a no-op.
	root.DeactivateObject()
	if e.deactivated != 0 {
		t.Error("DeactivateObject reached a detached payload")
	}
}

func TestDeactivateObject(t *testing.T) {
	root, e := newTestRoot(4)
	root.DeactivateObject()
	root.DeactivateObject()
	if e.deactivated != 2 {
		t.Errorf("deactivation count = %d, want 2", e.deactivated)
	}
}

func TestDestroy(t *testing.T) {
	root, _ := newTestRoot(4)
	root.Object().(*mockElement).refine = true
	root.SplitIfRequired()
	son := root.Son(0)
	son.object.(*mockElement).refine = true
	son.SplitIfRequired()

	root.Destroy()

	if !root.IsLeaf() {
		t.Error("Destroy must remove all sons")
	}
	if root.Object() != nil {
		t.Error("Destroy must detach the payload")
	}
	if !son.IsLeaf() || son.Object() != nil {
		t.Error("Destroy must cascade through the whole subtree")
	}
}
