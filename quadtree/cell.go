package quadtree

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/notargets/goamr/tree"
)

// Cell is the refineable payload of a quadtree node: a bilinear
// quadrilateral described by its four corner coordinates. Cells carry
// the adaptation request flags the tree queries and the polynomial
// order the p-refinement pass moves.
type Cell struct {
	// Id labels the cell in input files and diagnostics; son cells get -1
	Id int

	// X holds the corner coordinates indexed by son slot
	X [4][2]float64

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
func NewCell(id int, x [4][2]float64, p int) *Cell {
	return &Cell{Id: id, X: x, P: p, active: true}
}

// NewBoxCell returns an active axis-aligned cell spanning
// [x0,x1] x [y0,y1].
func NewBoxCell(id int, x0, y0, x1, y1 float64, p int) *Cell {
	return NewCell(id, [4][2]float64{
		SW: {x0, y0},
		SE: {x1, y0},
		NW: {x0, y1},
		NE: {x1, y1},
	}, p)
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

// Centre returns the bilinear centre, the plain average of the
// corners.
func (c *Cell) Centre() (x, y float64) {
	for _, p := range c.X {
		x += p[0]
		y += p[1]
	}
	return x / 4, y / 4
}

// Size returns the longer diagonal, a scale for refinement
// indicators.
func (c *Cell) Size() float64 {
	return math.Max(dist(c.X[SW], c.X[NE]), dist(c.X[SE], c.X[NW]))
}

// Contains reports whether (x,y) lies in the cell's bounding box.
func (c *Cell) Contains(x, y float64) bool {
	xmin, ymin := c.X[SW][0], c.X[SW][1]
	xmax, ymax := xmin, ymin
	for _, p := range c.X[1:] {
		xmin = math.Min(xmin, p[0])
		xmax = math.Max(xmax, p[0])
		ymin = math.Min(ymin, p[1])
		ymax = math.Max(ymax, p[1])
	}
	return x >= xmin && x <= xmax && y >= ymin && y <= ymax
}

// EdgeEndpoints returns the two corners of an edge. The ordering is
// aligned across an interface: endpoint i of an edge coincides with
// endpoint i of the facing cell's opposite edge.
func (c *Cell) EdgeEndpoints(edge int) (a, b [2]float64) {
	switch edge {
	case S:
		return c.X[SW], c.X[SE]
	case N:
		return c.X[NW], c.X[NE]
	case W:
		return c.X[SW], c.X[NW]
	case E:
		return c.X[SE], c.X[NE]
	}
	chk.Panic("%d is not a quadtree edge", edge)
	return
}

// EdgeMidpoint returns the midpoint of an edge.
func (c *Cell) EdgeMidpoint(edge int) [2]float64 {
	a, b := c.EdgeEndpoints(edge)
	return [2]float64{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}

// sonCell builds the corner geometry of the son in slot s: the
// bilinear image of the father's quadrant, which tiles the father
// exactly.
func (c *Cell) sonCell(s int) *Cell {
	centre := [2]float64{}
	centre[0], centre[1] = c.Centre()
	sMid := mid(c.X[SW], c.X[SE])
	eMid := mid(c.X[SE], c.X[NE])
	nMid := mid(c.X[NW], c.X[NE])
	wMid := mid(c.X[SW], c.X[NW])

	var x [4][2]float64
	switch s {
	case SW:
		x = [4][2]float64{SW: c.X[SW], SE: sMid, NW: wMid, NE: centre}
	case SE:
		x = [4][2]float64{SW: sMid, SE: c.X[SE], NW: centre, NE: eMid}
	case NW:
		x = [4][2]float64{SW: wMid, SE: centre, NW: c.X[NW], NE: nMid}
	case NE:
		x = [4][2]float64{SW: centre, SE: eMid, NW: nMid, NE: c.X[NE]}
	default:
		chk.Panic("%d is not a quadtree son slot", s)
	}
	return &Cell{Id: -1, X: x, P: c.P, active: true}
}

// CellFactory builds son cells by bisecting the father's corner
// geometry.
type CellFactory struct{}

// NSons returns the quadtree branching factor.
func (CellFactory) NSons() int { return 4 }

// ConstructSon creates the payload for the son in slot sonType.
func (CellFactory) ConstructSon(father *tree.Tree, sonType int) tree.Element {
	return father.Object().(*Cell).sonCell(sonType)
}

func mid(a, b [2]float64) [2]float64 {
	return [2]float64{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}

func dist(a, b [2]float64) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}
