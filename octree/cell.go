package octree

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/notargets/goamr/tree"
)

// Cell is the refineable payload of an octree node: a trilinear
// hexahedron described by its eight corner coordinates. Cells carry
// the adaptation request flags the tree queries and the polynomial
// order the p-refinement pass moves.
type Cell struct {
	// Id labels the cell in diagnostics; son cells get -1
	Id int

	// X holds the corner coordinates indexed by son slot
	X [8][3]float64

	// P is the polynomial order of the attached discretization
	P int

	refine    bool
	unrefine  bool
	pRefine   bool
	pUnrefine bool
	active    bool
}

var (
	_ tree.Element        = (*Cell)(nil)
	_ tree.PRefineable    = (*Cell)(nil)
	_ tree.SonRebuildable = (*Cell)(nil)
	_ tree.SonFactory     = CellFactory{}
)

// NewCell returns an active cell with the given corners and order.
func NewCell(id int, x [8][3]float64, p int) *Cell {
	return &Cell{Id: id, X: x, P: p, active: true}
}

// NewBoxCell returns an active axis-aligned cell spanning
// [x0,x1] x [y0,y1] x [z0,z1].
func NewBoxCell(id int, x0, y0, z0, x1, y1, z1 float64, p int) *Cell {
	lo := [3]float64{x0, y0, z0}
	hi := [3]float64{x1, y1, z1}
	var x [8][3]float64
	for s := 0; s < 8; s++ {
		for d := 0; d < 3; d++ {
			if s>>d&1 == 1 {
				x[s][d] = hi[d]
			} else {
				x[s][d] = lo[d]
			}
		}
	}
	return NewCell(id, x, p)
}

// ToBeRefined reports a pending geometric refinement request.
func (c *Cell) ToBeRefined() bool { return c.refine }

// ToBePRefined reports a pending order-raise request.
func (c *Cell) ToBePRefined() bool { return c.pRefine }

// ToBePUnrefined reports a pending order-lower request; order 1 cells
// never lower further.
func (c *Cell) ToBePUnrefined() bool { return c.pUnrefine && c.P > 1 }

// SonsToBeUnrefined reports this cell's agreement to merge away with
// its siblings.
func (c *Cell) SonsToBeUnrefined() bool { return c.unrefine }

// DeactivateElement drops the cell from the active set and clears any
// pending requests.
func (c *Cell) DeactivateElement() {
	c.active = false
	c.clearRequests()
}

// PRefine moves the polynomial order by inc and clears the order
// request flags.
func (c *Cell) PRefine(inc int, m tree.Mesh) {
	c.P += inc
	c.pRefine = false
	c.pUnrefine = false
}

// RebuildFromSons reactivates the cell after its sons merged away.
func (c *Cell) RebuildFromSons(m tree.Mesh) {
	c.active = true
}

// Active reports whether the cell is part of the active mesh.
func (c *Cell) Active() bool { return c.active }

// RequestRefinement flags the cell for a geometric split.
func (c *Cell) RequestRefinement() { c.refine = true }

// RequestUnrefinement flags the cell's agreement to merge away.
func (c *Cell) RequestUnrefinement() { c.unrefine = true }

// RequestPRefinement flags the cell for an order raise.
func (c *Cell) RequestPRefinement() { c.pRefine = true }

// RequestPUnrefinement flags the cell for an order lowering.
func (c *Cell) RequestPUnrefinement() { c.pUnrefine = true }

func (c *Cell) clearRequests() {
	c.refine = false
	c.unrefine = false
	c.pRefine = false
	c.pUnrefine = false
}

// refPoint evaluates the trilinear map at reference coordinates r in
// [0,1]^3. Corners of the reference cube land exactly on the stored
// corners.
func (c *Cell) refPoint(r [3]float64) (p [3]float64) {
	for k := 0; k < 8; k++ {
		w := 1.0
		for d := 0; d < 3; d++ {
			if k>>d&1 == 1 {
				w *= r[d]
			} else {
				w *= 1 - r[d]
			}
		}
		for d := 0; d < 3; d++ {
			p[d] += w * c.X[k][d]
		}
	}
	return
}

// Centre returns the trilinear centre.
func (c *Cell) Centre() [3]float64 {
	return c.refPoint([3]float64{0.5, 0.5, 0.5})
}

// Size returns the longest space diagonal, a scale for refinement
// indicators.
func (c *Cell) Size() float64 {
	sz := 0.0
	for s := LDB; s <= RUB; s++ {
		if d := dist(c.X[s], c.X[s^7]); d > sz {
			sz = d
		}
	}
	return sz
}

// Contains reports whether p lies in the cell's bounding box.
func (c *Cell) Contains(x, y, z float64) bool {
	lo, hi := c.X[0], c.X[0]
	for _, q := range c.X[1:] {
		for d := 0; d < 3; d++ {
			lo[d] = math.Min(lo[d], q[d])
			hi[d] = math.Max(hi[d], q[d])
		}
	}
	p := [3]float64{x, y, z}
	for d := 0; d < 3; d++ {
		if p[d] < lo[d] || p[d] > hi[d] {
			return false
		}
	}
	return true
}

// FaceCorners returns the four corners of a face. The ordering is
// aligned across an interface: corner i of a face coincides with
// corner i of the facing cell's opposite face.
func (c *Cell) FaceCorners(face int) (x [4][3]float64) {
	axis, high := faceAxis(face)
	d1, d2 := otherDims(axis)
	for i := 0; i < 4; i++ {
		s := 0
		if high {
			s |= 1 << axis
		}
		if i&1 == 1 {
			s |= 1 << d1
		}
		if i>>1 == 1 {
			s |= 1 << d2
		}
		x[i] = c.X[s]
	}
	return
}

// FaceCentre returns the trilinear centre of a face.
func (c *Cell) FaceCentre(face int) [3]float64 {
	axis, high := faceAxis(face)
	r := [3]float64{0.5, 0.5, 0.5}
	if high {
		r[axis] = 1
	} else {
		r[axis] = 0
	}
	return c.refPoint(r)
}

// sonCell builds the corner geometry of the son in slot s: the
// trilinear image of the father's octant, which tiles the father
// exactly.
func (c *Cell) sonCell(s int) *Cell {
	if s < LDB || s > RUF {
		chk.Panic("%d is not an octree son slot", s)
	}
	son := &Cell{Id: -1, P: c.P, active: true}
	for j := 0; j < 8; j++ {
		var r [3]float64
		for d := 0; d < 3; d++ {
			r[d] = (float64(s>>d&1) + float64(j>>d&1)) / 2
		}
		son.X[j] = c.refPoint(r)
	}
	return son
}

// CellFactory builds son cells by bisecting the father's corner
// geometry.
type CellFactory struct{}

// NSons returns the octree branching factor.
func (CellFactory) NSons() int { return 8 }

// ConstructSon creates the payload for the son in slot sonType.
func (CellFactory) ConstructSon(father *tree.Tree, sonType int) tree.Element {
	return father.Object().(*Cell).sonCell(sonType)
}

func otherDims(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	}
	return 0, 1
}

func dist(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
