package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTwoQuads(t *testing.T) {
	chk.PrintTitle("inp. read two-cell mesh")

	m, err := ReadMesh("testdata", "two_quads.msh")
	require.NoError(t, err)

	assert.Len(t, m.Verts, 6)
	assert.Len(t, m.Cells, 2)
	assert.Equal(t, 2, m.Ndim)
	chk.Ints(t, "cell 0 verts", m.Cells[0].Verts, []int{0, 1, 3, 4})
	chk.Ints(t, "cell 1 verts", m.Cells[1].Verts, []int{1, 2, 4, 5})
	chk.Ints(t, "cell 0 neighs", m.Cells[0].Neighs, []int{-1, 1, -1, -1})

	// order defaults to 1 when the file omits it
	assert.Equal(t, 2, m.Cells[0].P)
	assert.Equal(t, 1, m.Cells[1].P)

	assert.Equal(t, 0.0, m.Xmin)
	assert.Equal(t, 2.0, m.Xmax)
	assert.Equal(t, 0.0, m.Ymin)
	assert.Equal(t, 1.0, m.Ymax)
	assert.Equal(t, 0.0, m.Zmin)
	assert.Equal(t, 0.0, m.Zmax)

	require.Contains(t, m.VertId2vert, 4)
	assert.Equal(t, []float64{1, 1}, m.VertId2vert[4].C)
	require.Contains(t, m.CellId2cell, 1)
	assert.Same(t, m.Cells[1], m.CellId2cell[1])

	assert.Equal(t, "mesh: 6 verts, 2 cells, box [0,2]x[0,1]", m.String())
}

func TestReadTwoHexes(t *testing.T) {
	chk.PrintTitle("inp. read two-cell hexahedral mesh")

	m, err := ReadMesh("testdata", "two_hexes.msh")
	require.NoError(t, err)

	assert.Len(t, m.Verts, 12)
	assert.Len(t, m.Cells, 2)
	assert.Equal(t, 3, m.Ndim)
	chk.Ints(t, "cell 0 verts", m.Cells[0].Verts, []int{0, 1, 3, 4, 6, 7, 9, 10})
	chk.Ints(t, "cell 0 neighs", m.Cells[0].Neighs, []int{-1, 1, -1, -1, -1, -1})

	assert.Equal(t, 0.0, m.Xmin)
	assert.Equal(t, 2.0, m.Xmax)
	assert.Equal(t, 1.0, m.Zmax)

	// tags, orders and partition hints ride along
	assert.Equal(t, -10, m.VertId2vert[9].Tag)
	assert.Equal(t, -1, m.Cells[1].Tag)
	assert.Equal(t, 2, m.Cells[1].P)
	chk.Ints(t, "parts", m.Parts(), []int{0, 1})

	x := m.HexCorners(m.Cells[1])
	assert.Equal(t, [3]float64{1, 0, 0}, x[0]) // LDB
	assert.Equal(t, [3]float64{2, 1, 1}, x[7]) // RUF

	coords := m.Coords()
	nr, nc := coords.Dims()
	assert.Equal(t, 12, nr)
	assert.Equal(t, 3, nc)

	cent := m.Centroids()
	assert.Equal(t, 0.5, cent.At(0, 0))
	assert.Equal(t, 1.5, cent.At(1, 0))
	assert.Equal(t, 0.5, cent.At(1, 2))
}

func TestReadPeriodicStrip(t *testing.T) {
	chk.PrintTitle("inp. read periodic strip mesh")

	m, err := ReadMesh("testdata", "periodic_strip.msh")
	require.NoError(t, err)

	chk.Ints(t, "cell 0 periodic", m.Cells[0].Periodic, []int{3})
	chk.Ints(t, "cell 1 periodic", m.Cells[1].Periodic, []int{1})
	// the periodic west neighbour of cell 0 is cell 1
	assert.Equal(t, 1, m.Cells[0].Neighs[3])
}

func TestCoordsAndCentroids(t *testing.T) {
	chk.PrintTitle("inp. coordinate matrices")

	m, err := ReadMesh("testdata", "two_quads.msh")
	require.NoError(t, err)

	coords := m.Coords()
	nr, nc := coords.Dims()
	assert.Equal(t, 6, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, 1.0, coords.At(4, 0))
	assert.Equal(t, 1.0, coords.At(4, 1))

	cent := m.Centroids()
	nr, nc = cent.Dims()
	assert.Equal(t, 2, nr)
	assert.Equal(t, 2, nc)
	assert.Equal(t, 0.5, cent.At(0, 0))
	assert.Equal(t, 1.5, cent.At(1, 0))
	assert.Equal(t, 0.5, cent.At(1, 1))

	x := m.QuadCorners(m.Cells[1])
	assert.Equal(t, [2]float64{1, 0}, x[0]) // SW
	assert.Equal(t, [2]float64{2, 0}, x[1]) // SE
	assert.Equal(t, [2]float64{1, 1}, x[2]) // NW
	assert.Equal(t, [2]float64{2, 1}, x[3]) // NE
}

func TestReadMeshErrors(t *testing.T) {
	chk.PrintTitle("inp. malformed meshes are rejected")

	dir := t.TempDir()
	write := func(fn, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fn), []byte(body), 0644))
	}

	verts := `"verts": [
		{ "id": 0, "c": [0.0, 0.0] },
		{ "id": 1, "c": [1.0, 0.0] },
		{ "id": 2, "c": [0.0, 1.0] },
		{ "id": 3, "c": [1.0, 1.0] }
	]`
	write("bad_json.msh", `{`)
	write("no_cells.msh", `{ `+verts+`, "cells": [] }`)
	write("bad_vert.msh", `{
		"verts": [ { "id": 0, "c": [0.0] } ],
		"cells": [ { "id": 0, "verts": [0, 0, 0, 0] } ]
	}`)
	write("dup_vert.msh", `{
		"verts": [ { "id": 0, "c": [0.0, 0.0] }, { "id": 0, "c": [1.0, 0.0] } ],
		"cells": [ { "id": 0, "verts": [0, 0, 0, 0] } ]
	}`)
	write("unknown_vert.msh", `{ `+verts+`, "cells": [ { "id": 0, "verts": [0, 1, 2, 9] } ] }`)
	write("wrong_neighs.msh", `{ `+verts+`, "cells": [ { "id": 0, "verts": [0, 1, 2, 3], "neighs": [-1] } ] }`)
	write("self_neigh.msh", `{ `+verts+`, "cells": [ { "id": 0, "verts": [0, 1, 2, 3], "neighs": [0, -1, -1, -1] } ] }`)
	write("bad_periodic.msh", `{ `+verts+`, "cells": [ { "id": 0, "verts": [0, 1, 2, 3], "periodic": [1] } ] }`)
	write("mixed_dim.msh", `{
		"verts": [ { "id": 0, "c": [0.0, 0.0] }, { "id": 1, "c": [1.0, 0.0, 0.0] } ],
		"cells": [ { "id": 0, "verts": [0, 1, 0, 1] } ]
	}`)
	write("quad_in_3d.msh", `{
		"verts": [ { "id": 0, "c": [0.0, 0.0, 0.0] } ],
		"cells": [ { "id": 0, "verts": [0, 0, 0, 0] } ]
	}`)
	write("bad_part.msh", `{ `+verts+`, "cells": [ { "id": 0, "verts": [0, 1, 2, 3], "part": -2 } ] }`)

	for _, fn := range []string{
		"missing.msh",
		"bad_json.msh",
		"no_cells.msh",
		"bad_vert.msh",
		"dup_vert.msh",
		"unknown_vert.msh",
		"wrong_neighs.msh",
		"self_neigh.msh",
		"bad_periodic.msh",
		"mixed_dim.msh",
		"quad_in_3d.msh",
		"bad_part.msh",
	} {
		t.Run(fn, func(t *testing.T) {
			_, err := ReadMesh(dir, fn)
			assert.Error(t, err)
		})
	}
}
