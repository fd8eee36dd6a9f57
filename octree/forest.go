package octree

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/sirupsen/logrus"

	"github.com/notargets/goamr/doc"
	"github.com/notargets/goamr/inp"
	"github.com/notargets/goamr/tree"
)

var log = logrus.WithField("component", "octree.Forest")

// Forest is a collection of octrees whose roots tile a
// three-dimensional domain. It adds face-neighbour topology, the
// neighbour audit and hanging node documentation to the generic
// forest.
type Forest struct {
	*tree.Forest
}

var _ tree.Forester = (*Forest)(nil)

// NewForest builds a forest with one root per cell and discovers the
// root neighbour topology geometrically. Periodic connections are
// wired afterwards through the root neighbour tables.
func NewForest(cells []*Cell) *Forest {
	if len(cells) == 0 {
		chk.Panic("forest needs at least one cell")
	}
	roots := make([]*tree.Root, len(cells))
	for i, c := range cells {
		if c == nil {
			chk.Panic("cell %d is nil", i)
		}
		roots[i] = tree.NewRoot(c, CellFactory{})
	}
	f := &Forest{Forest: tree.NewForest(roots)}
	f.findNeighbours(cells, roots)
	return f
}

// ForestFromMesh builds a forest from an input mesh. Neighbour hints
// in the mesh are applied as given, including periodic connections;
// directions without a hint fall back to geometric discovery.
func ForestFromMesh(m *inp.Mesh) (*Forest, error) {
	if m == nil || len(m.Cells) == 0 {
		return nil, chk.Err("mesh has no cells")
	}
	if m.Ndim != 3 {
		return nil, chk.Err("mesh is %d-dimensional, oct forests need 3", m.Ndim)
	}
	cells := make([]*Cell, len(m.Cells))
	roots := make([]*tree.Root, len(m.Cells))
	id2idx := make(map[int]int, len(m.Cells))
	for i, mc := range m.Cells {
		cells[i] = NewCell(mc.Id, m.HexCorners(mc), mc.P)
		roots[i] = tree.NewRoot(cells[i], CellFactory{})
		id2idx[mc.Id] = i
	}
	f := &Forest{Forest: tree.NewForest(roots)}
	for i, mc := range m.Cells {
		if len(mc.Neighs) != 6 {
			continue
		}
		periodic := make(map[int]bool, len(mc.Periodic))
		for _, pos := range mc.Periodic {
			periodic[pos] = true
		}
		for pos, nid := range mc.Neighs {
			if nid < 0 {
				continue
			}
			j, ok := id2idx[nid]
			if !ok {
				return nil, chk.Err("cell %d references unknown neighbour %d", mc.Id, nid)
			}
			d := L + pos
			roots[i].SetNeighbour(d, roots[j])
			if periodic[pos] {
				roots[i].SetNeighbourPeriodic(d)
			}
		}
	}
	f.findNeighbours(cells, roots)
	return f, nil
}

// findNeighbours fills the root neighbour tables from geometry: two
// roots face each other when their facing face corners coincide
// pairwise within MaxNeighbourFindingTolerance. Entries already set
// are left alone.
func (f *Forest) findNeighbours(cells []*Cell, roots []*tree.Root) {
	tol := tree.MaxNeighbourFindingTolerance
	for i, ci := range cells {
		for d := L; d <= F; d++ {
			if roots[i].Neighbour(d) != nil {
				continue
			}
			qi := ci.FaceCorners(d)
			for j, cj := range cells {
				if j == i {
					continue
				}
				if facesCoincide(qi, cj.FaceCorners(Opposite(d)), tol) {
					roots[i].SetNeighbour(d, roots[j])
					roots[j].SetNeighbour(Opposite(d), roots[i])
					break
				}
			}
		}
	}
}

func facesCoincide(a, b [4][3]float64, tol float64) bool {
	for i := range a {
		if dist(a[i], b[i]) > tol {
			return false
		}
	}
	return true
}

// Cell returns the root payload of tree i.
func (f *Forest) Cell(i int) *Cell {
	return f.Tree(i).Object().(*Cell)
}

// CheckAllNeighbours audits the neighbour topology of the whole
// forest. For every node and every face it runs the greater-or-equal
// search and measures how far the node's face corners lie from the
// neighbour's facing face. Periodic connections are skipped since
// their positions are independent. When info is enabled, each
// connection goes to neighbours<n>.dat and each boundary face to
// no_neighbours<n>.dat. A deviation beyond
// MaxNeighbourFindingTolerance yields an error.
func (f *Forest) CheckAllNeighbours(info *doc.Info) error {
	var nbFile, noNbFile *os.File
	if info != nil && info.Enabled() {
		var err error
		nbFile, err = os.Create(info.Filename("neighbours", "dat"))
		if err != nil {
			return chk.Err("cannot open neighbour doc file: %v", err)
		}
		defer nbFile.Close()
		noNbFile, err = os.Create(info.Filename("no_neighbours", "dat"))
		if err != nil {
			return chk.Err("cannot open no-neighbour doc file: %v", err)
		}
		defer noNbFile.Close()
	}

	var nodes []*tree.Tree
	nodes = f.AppendAllNodes(nodes)

	maxErr := 0.0
	nFaces, nBoundary, nPeriodic := 0, 0, 0
	for _, node := range nodes {
		c, _ := node.Object().(*Cell)
		if c == nil {
			continue
		}
		for d := L; d <= F; d++ {
			nFaces++
			nb := GteqFaceNeighbour(node, d)
			if nb.Node == nil {
				nBoundary++
				if noNbFile != nil {
					fc := c.FaceCentre(d)
					fmt.Fprintf(noNbFile, "%d %d %s %g %g %g\n",
						c.Id, node.Level(), FaceName(d), fc[0], fc[1], fc[2])
				}
				continue
			}
			if nb.Periodic {
				nPeriodic++
				continue
			}
			nc, _ := nb.Node.Object().(*Cell)
			if nc == nil {
				continue
			}
			q := nc.FaceCorners(Opposite(d))
			dev := 0.0
			for _, p := range c.FaceCorners(d) {
				if e := distToFace(p, q); e > dev {
					dev = e
				}
			}
			if dev > maxErr {
				maxErr = dev
			}
			if nbFile != nil {
				fmt.Fprintf(nbFile, "%d %d %s %d %g\n",
					c.Id, node.Level(), FaceName(d), nb.DiffLevel, dev)
			}
		}
	}

	log.WithFields(logrus.Fields{
		"faces":    nFaces,
		"boundary": nBoundary,
		"periodic": nPeriodic,
	}).Infof("neighbour check: max deviation %.3e", maxErr)

	if maxErr > tree.MaxNeighbourFindingTolerance {
		return chk.Err("neighbour check failed: max deviation %g exceeds tolerance %g",
			maxErr, tree.MaxNeighbourFindingTolerance)
	}
	return nil
}

// OpenHangingNodeFiles opens one documentation file per face
// direction, ordered L, R, D, U, B, F. A nil or disabled info yields
// no files. On failure the files opened so far are returned along
// with the error so the caller can release them.
func (f *Forest) OpenHangingNodeFiles(info *doc.Info) ([]*os.File, error) {
	if info == nil || !info.Enabled() {
		return nil, nil
	}
	files := make([]*os.File, 0, 6)
	for d := L; d <= F; d++ {
		fh, err := os.Create(info.Filename("hang_nodes_"+strings.ToLower(FaceName(d)), "dat"))
		if err != nil {
			return files, chk.Err("cannot open hanging node file for face %s: %v", FaceName(d), err)
		}
		files = append(files, fh)
	}
	return files, nil
}

// DocHangingNodes finds the hanging nodes of the forest: fine-side
// face corners landing on a coarser leaf neighbour's facing face
// away from its corners. Face centres and edge midpoints of the
// coarse face both qualify. The count is of distinct positions. When
// info is enabled the positions go to one file per direction.
func (f *Forest) DocHangingNodes(info *doc.Info) (int, error) {
	files, err := f.OpenHangingNodeFiles(info)
	if err != nil {
		f.CloseHangingNodeFiles(files)
		return 0, err
	}
	defer f.CloseHangingNodeFiles(files)

	var leaves []*tree.Tree
	leaves = f.AppendLeaves(leaves)

	tol := tree.MaxNeighbourFindingTolerance
	var pts [][3]float64
	isNew := func(p [3]float64) bool {
		for _, q := range pts {
			if dist(p, q) <= tol {
				return false
			}
		}
		pts = append(pts, p)
		return true
	}

	for _, leaf := range leaves {
		c, _ := leaf.Object().(*Cell)
		if c == nil {
			continue
		}
		for d := L; d <= F; d++ {
			nb := GteqFaceNeighbour(leaf, d)
			if nb.Node == nil || nb.DiffLevel >= 0 || nb.Periodic {
				continue
			}
			nc, _ := nb.Node.Object().(*Cell)
			if nc == nil {
				continue
			}
			q := nc.FaceCorners(Opposite(d))
			for _, p := range c.FaceCorners(d) {
				if distToFace(p, q) > tol {
					continue
				}
				atCorner := false
				for _, qc := range q {
					if dist(p, qc) <= tol {
						atCorner = true
						break
					}
				}
				if atCorner {
					continue
				}
				if isNew(p) && files != nil {
					fmt.Fprintf(files[d-L], "%g %g %g\n", p[0], p[1], p[2])
				}
			}
		}
	}

	log.Infof("hanging nodes: %d", len(pts))
	return len(pts), nil
}

// distToFace returns the distance from p to the face quad q, split
// into two triangles along the diagonal. Exact for planar faces.
func distToFace(p [3]float64, q [4][3]float64) float64 {
	return math.Min(
		distToTriangle(p, q[0], q[1], q[3]),
		distToTriangle(p, q[0], q[3], q[2]))
}

// distToTriangle returns the distance from p to triangle abc via the
// closest-point region walk.
func distToTriangle(p, a, b, c [3]float64) float64 {
	ab := sub(b, a)
	ac := sub(c, a)
	ap := sub(p, a)
	d1 := dot(ab, ap)
	d2 := dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return dist(p, a)
	}

	bp := sub(p, b)
	d3 := dot(ab, bp)
	d4 := dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return dist(p, b)
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return dist(p, add(a, scale(ab, v)))
	}

	cp := sub(p, c)
	d5 := dot(ab, cp)
	d6 := dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return dist(p, c)
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return dist(p, add(a, scale(ac, w)))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return dist(p, add(b, scale(sub(c, b), w)))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return dist(p, add(a, add(scale(ab, v), scale(ac, w))))
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func add(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func scale(a [3]float64, s float64) [3]float64 {
	return [3]float64{a[0] * s, a[1] * s, a[2] * s}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
