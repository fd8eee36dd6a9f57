// Package inp implements the input data reader for quadrilateral and
// hexahedral forest meshes. A mesh file is a JSON document with a
// "verts" list and a "cells" list; field names match the struct
// fields below, case-insensitively. The vertex dimension selects the
// cell kind: 2D meshes hold 4-vertex quadrilaterals, 3D meshes hold
// 8-vertex hexahedra. Neighbour hints are optional: when absent, the
// forest builder discovers adjacency geometrically.
package inp

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gonum.org/v1/gonum/mat"
)

// Vert holds vertex data
type Vert struct {
	Id  int       // id
	Tag int       // grouping tag for boundary marking (0 when absent)
	C   []float64 // coordinates, uniform length 2 or 3 across the mesh
}

// Cell holds cell data. Verts lists the corner vertex ids in son-slot
// order: SW, SE, NW, NE for quadrilaterals, LDB through RUF for
// hexahedra. Neighs optionally gives the neighbouring cell id per
// direction, ordered N, E, S, W or L, R, D, U, B, F, with -1 meaning
// none. Periodic lists the positions in Neighs that cross a periodic
// boundary. Part is an optional partition hint.
type Cell struct {
	Id       int   // id
	Tag      int   // grouping tag (0 when absent)
	P        int   // polynomial order (1 when absent)
	Part     int   // partition hint (0 when absent)
	Verts    []int // corner vertex ids in son-slot order
	Neighs   []int // neighbour cell ids per direction (optional)
	Periodic []int // positions in Neighs crossing a periodic boundary
}

// Mesh holds input mesh data and the lookup tables derived from it
type Mesh struct {
	Verts []*Vert // vertices
	Cells []*Cell // cells

	// derived
	Ndim        int           // spatial dimension, 2 or 3
	VertId2vert map[int]*Vert // vertex id => vertex
	CellId2cell map[int]*Cell // cell id => cell
	Xmin, Xmax  float64       // bounding box
	Ymin, Ymax  float64       // bounding box
	Zmin, Zmax  float64       // bounding box (zero in two dimensions)
}

// ReadMesh reads a mesh file, checks its consistency and computes the
// derived maps and the bounding box.
func ReadMesh(dir, fn string) (*Mesh, error) {
	path := filepath.Join(dir, fn)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("cannot read mesh file %q: %v", path, err)
	}
	var m Mesh
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, chk.Err("cannot parse mesh file %q: %v", path, err)
	}
	if err := m.init(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Mesh) init() error {
	if len(m.Verts) == 0 {
		return chk.Err("mesh has no vertices")
	}
	if len(m.Cells) == 0 {
		return chk.Err("mesh has no cells")
	}
	m.Ndim = len(m.Verts[0].C)
	if m.Ndim != 2 && m.Ndim != 3 {
		return chk.Err("vertex %d has %d coordinates, need 2 or 3", m.Verts[0].Id, m.Ndim)
	}
	m.VertId2vert = make(map[int]*Vert, len(m.Verts))
	m.Xmin, m.Ymin, m.Zmin = math.Inf(1), math.Inf(1), math.Inf(1)
	m.Xmax, m.Ymax, m.Zmax = math.Inf(-1), math.Inf(-1), math.Inf(-1)
	for _, v := range m.Verts {
		if len(v.C) != m.Ndim {
			return chk.Err("vertex %d has %d coordinates, need %d", v.Id, len(v.C), m.Ndim)
		}
		if _, ok := m.VertId2vert[v.Id]; ok {
			return chk.Err("duplicate vertex id %d", v.Id)
		}
		m.VertId2vert[v.Id] = v
		m.Xmin = math.Min(m.Xmin, v.C[0])
		m.Xmax = math.Max(m.Xmax, v.C[0])
		m.Ymin = math.Min(m.Ymin, v.C[1])
		m.Ymax = math.Max(m.Ymax, v.C[1])
		if m.Ndim == 3 {
			m.Zmin = math.Min(m.Zmin, v.C[2])
			m.Zmax = math.Max(m.Zmax, v.C[2])
		}
	}
	if m.Ndim == 2 {
		m.Zmin, m.Zmax = 0, 0
	}
	ncorn, ndir := 4, 4
	if m.Ndim == 3 {
		ncorn, ndir = 8, 6
	}
	m.CellId2cell = make(map[int]*Cell, len(m.Cells))
	for _, c := range m.Cells {
		if _, ok := m.CellId2cell[c.Id]; ok {
			return chk.Err("duplicate cell id %d", c.Id)
		}
		m.CellId2cell[c.Id] = c
	}
	for _, c := range m.Cells {
		if len(c.Verts) != ncorn {
			return chk.Err("cell %d has %d vertices, need %d", c.Id, len(c.Verts), ncorn)
		}
		for _, vid := range c.Verts {
			if _, ok := m.VertId2vert[vid]; !ok {
				return chk.Err("cell %d references unknown vertex %d", c.Id, vid)
			}
		}
		if c.P == 0 {
			c.P = 1
		}
		if c.P < 0 {
			return chk.Err("cell %d has negative polynomial order %d", c.Id, c.P)
		}
		if c.Part < 0 {
			return chk.Err("cell %d has negative partition hint %d", c.Id, c.Part)
		}
		if len(c.Neighs) > 0 && len(c.Neighs) != ndir {
			return chk.Err("cell %d has %d neighbour entries, need %d", c.Id, len(c.Neighs), ndir)
		}
		for _, nid := range c.Neighs {
			if nid < 0 {
				continue
			}
			if nid == c.Id {
				return chk.Err("cell %d lists itself as neighbour", c.Id)
			}
			if _, ok := m.CellId2cell[nid]; !ok {
				return chk.Err("cell %d references unknown neighbour %d", c.Id, nid)
			}
		}
		for _, pos := range c.Periodic {
			if pos < 0 || pos >= ndir {
				return chk.Err("cell %d has periodic position %d out of range", c.Id, pos)
			}
			if len(c.Neighs) != ndir || c.Neighs[pos] < 0 {
				return chk.Err("cell %d marks direction %d periodic without a neighbour", c.Id, pos)
			}
		}
	}
	return nil
}

// String returns a compact description for log lines.
func (m *Mesh) String() string {
	if m.Ndim == 3 {
		return io.Sf("mesh: %d verts, %d cells, box [%g,%g]x[%g,%g]x[%g,%g]",
			len(m.Verts), len(m.Cells), m.Xmin, m.Xmax, m.Ymin, m.Ymax, m.Zmin, m.Zmax)
	}
	return io.Sf("mesh: %d verts, %d cells, box [%g,%g]x[%g,%g]",
		len(m.Verts), len(m.Cells), m.Xmin, m.Xmax, m.Ymin, m.Ymax)
}

// Coords returns the vertex coordinates as an nverts-by-ndim matrix
// in file order.
func (m *Mesh) Coords() *mat.Dense {
	d := mat.NewDense(len(m.Verts), m.Ndim, nil)
	for i, v := range m.Verts {
		for j := 0; j < m.Ndim; j++ {
			d.Set(i, j, v.C[j])
		}
	}
	return d
}

// Centroids returns the cell centroids as an ncells-by-ndim matrix in
// file order.
func (m *Mesh) Centroids() *mat.Dense {
	d := mat.NewDense(len(m.Cells), m.Ndim, nil)
	for i, c := range m.Cells {
		for _, vid := range c.Verts {
			v := m.VertId2vert[vid]
			for j := 0; j < m.Ndim; j++ {
				d.Set(i, j, d.At(i, j)+v.C[j])
			}
		}
		for j := 0; j < m.Ndim; j++ {
			d.Set(i, j, d.At(i, j)/float64(len(c.Verts)))
		}
	}
	return d
}

// Parts returns the per-cell partition hints in file order.
func (m *Mesh) Parts() []int {
	p := make([]int, len(m.Cells))
	for i, c := range m.Cells {
		p[i] = c.Part
	}
	return p
}

// QuadCorners returns the corner coordinates of a two-dimensional
// cell indexed by son slot.
func (m *Mesh) QuadCorners(c *Cell) (x [4][2]float64) {
	for i, vid := range c.Verts {
		v := m.VertId2vert[vid]
		x[i] = [2]float64{v.C[0], v.C[1]}
	}
	return
}

// HexCorners returns the corner coordinates of a three-dimensional
// cell indexed by son slot.
func (m *Mesh) HexCorners(c *Cell) (x [8][3]float64) {
	for i, vid := range c.Verts {
		v := m.VertId2vert[vid]
		x[i] = [3]float64{v.C[0], v.C[1], v.C[2]}
	}
	return
}
