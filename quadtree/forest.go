package quadtree

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

var log = logrus.WithField("component", "quadtree.Forest")

// Forest is a collection of quadtrees whose roots tile a
// two-dimensional domain. It adds edge-neighbour topology, the
// neighbour audit and hanging node documentation to the generic
// forest.
type Forest struct {
	*tree.Forest
}

var _ tree.Forester = (*Forest)(nil)

// NewForest builds a forest with one root per cell and discovers the
// root neighbour topology geometrically.
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
	if m.Ndim != 2 {
		return nil, chk.Err("mesh is %d-dimensional, quad forests need 2", m.Ndim)
	}
	cells := make([]*Cell, len(m.Cells))
	roots := make([]*tree.Root, len(m.Cells))
	id2idx := make(map[int]int, len(m.Cells))
	for i, mc := range m.Cells {
		cells[i] = NewCell(mc.Id, m.QuadCorners(mc), mc.P)
		roots[i] = tree.NewRoot(cells[i], CellFactory{})
		id2idx[mc.Id] = i
	}
	f := &Forest{Forest: tree.NewForest(roots)}
	for i, mc := range m.Cells {
		if len(mc.Neighs) != 4 {
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
			d := N + pos
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
// roots face each other across an edge when the edge endpoints
// coincide pairwise within MaxNeighbourFindingTolerance. Entries
// already set, by a mesh hint for instance, are left alone.
func (f *Forest) findNeighbours(cells []*Cell, roots []*tree.Root) {
	tol := tree.MaxNeighbourFindingTolerance
	for i, ci := range cells {
		for d := N; d <= W; d++ {
			if roots[i].Neighbour(d) != nil {
				continue
			}
			a, b := ci.EdgeEndpoints(d)
			for j, cj := range cells {
				if j == i {
					continue
				}
				oa, ob := cj.EdgeEndpoints(Opposite(d))
				if dist(a, oa) <= tol && dist(b, ob) <= tol {
					roots[i].SetNeighbour(d, roots[j])
					roots[j].SetNeighbour(Opposite(d), roots[i])
					break
				}
			}
		}
	}
}

// Cell returns the root payload of tree i.
func (f *Forest) Cell(i int) *Cell {
	return f.Tree(i).Object().(*Cell)
}

// CheckAllNeighbours audits the neighbour topology of the whole
// forest. For every node and every edge it runs the greater-or-equal
// search and measures how far the node's edge lies from the
// neighbour's facing edge. Periodic connections are skipped since
// their positions are independent. When info is enabled, each
// connection goes to neighbours<n>.dat and each boundary edge to
// no_neighbours<n>.dat. A deviation beyond
// MaxNeighbourFindingTolerance yields an error; the forest is left
// untouched either way.
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
	nEdges, nBoundary, nPeriodic := 0, 0, 0
	for _, node := range nodes {
		c, _ := node.Object().(*Cell)
		if c == nil {
			continue
		}
		for d := N; d <= W; d++ {
			nEdges++
			nb := GteqEdgeNeighbour(node, d)
			if nb.Node == nil {
				nBoundary++
				if noNbFile != nil {
					a, b := c.EdgeEndpoints(d)
					fmt.Fprintf(noNbFile, "%d %d %s %g %g %g %g\n",
						c.Id, node.Level(), EdgeName(d), a[0], a[1], b[0], b[1])
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
			a, b := c.EdgeEndpoints(d)
			oa, ob := nc.EdgeEndpoints(Opposite(d))
			dev := math.Max(distToSegment(a, oa, ob), distToSegment(b, oa, ob))
			if dev > maxErr {
				maxErr = dev
			}
			if nbFile != nil {
				fmt.Fprintf(nbFile, "%d %d %s %d %g\n",
					c.Id, node.Level(), EdgeName(d), nb.DiffLevel, dev)
			}
		}
	}

	log.WithFields(logrus.Fields{
		"edges":    nEdges,
		"boundary": nBoundary,
		"periodic": nPeriodic,
	}).Infof("neighbour check: max deviation %.3e", maxErr)

	if maxErr > tree.MaxNeighbourFindingTolerance {
		return chk.Err("neighbour check failed: max deviation %g exceeds tolerance %g",
			maxErr, tree.MaxNeighbourFindingTolerance)
	}
	return nil
}

// OpenHangingNodeFiles opens one documentation file per edge
// direction, ordered N, E, S, W. A nil or disabled info yields no
// files. On failure the files opened so far are returned along with
// the error so the caller can release them.
func (f *Forest) OpenHangingNodeFiles(info *doc.Info) ([]*os.File, error) {
	if info == nil || !info.Enabled() {
		return nil, nil
	}
	files := make([]*os.File, 0, 4)
	for d := N; d <= W; d++ {
		fh, err := os.Create(info.Filename("hang_nodes_"+strings.ToLower(EdgeName(d)), "dat"))
		if err != nil {
			return files, chk.Err("cannot open hanging node file for edge %s: %v", EdgeName(d), err)
		}
		files = append(files, fh)
	}
	return files, nil
}

// DocHangingNodes finds the hanging nodes of the forest: fine-side
// edge endpoints landing strictly inside a coarser leaf neighbour's
// facing edge. The count is of distinct positions; the two fine cells
// sharing a coarse edge see the same point. When info is enabled the
// positions go to one file per direction.
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
	var pts [][2]float64
	isNew := func(p [2]float64) bool {
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
		for d := N; d <= W; d++ {
			nb := GteqEdgeNeighbour(leaf, d)
			if nb.Node == nil || nb.DiffLevel >= 0 || nb.Periodic {
				continue
			}
			nc, _ := nb.Node.Object().(*Cell)
			if nc == nil {
				continue
			}
			a, b := c.EdgeEndpoints(d)
			oa, ob := nc.EdgeEndpoints(Opposite(d))
			for _, p := range [2][2]float64{a, b} {
				if distToSegment(p, oa, ob) > tol {
					continue
				}
				if dist(p, oa) <= tol || dist(p, ob) <= tol {
					// the endpoint is a corner of the coarse cell
					continue
				}
				if isNew(p) && files != nil {
					fmt.Fprintf(files[d-N], "%g %g\n", p[0], p[1])
				}
			}
		}
	}

	log.Infof("hanging nodes: %d", len(pts))
	return len(pts), nil
}

// distToSegment returns the distance from p to the segment [a,b].
func distToSegment(p, a, b [2]float64) float64 {
	abx, aby := b[0]-a[0], b[1]-a[1]
	apx, apy := p[0]-a[0], p[1]-a[1]
	den := abx*abx + aby*aby
	if den == 0 {
		return math.Hypot(apx, apy)
	}
	s := (apx*abx + apy*aby) / den
	if s < 0 {
		s = 0
	} else if s > 1 {
		s = 1
	}
	return math.Hypot(p[0]-(a[0]+s*abx), p[1]-(a[1]+s*aby))
}
