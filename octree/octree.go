// Package octree concretizes the generic refinement tree in three
// dimensions: eight son slots, six face directions, trilinear cell
// geometry, the gteq face-neighbour search, and forests with geometric
// root-neighbour discovery, neighbour auditing and hanging-node
// diagnostics.
//
// Neighbouring roots must share the same son-slot orientation; the
// rotation bookkeeping of general unstructured hexahedral meshes is
// not handled.
package octree

import (
	"github.com/cpmech/gosl/chk"
)

// Son slots and face directions share one value space, so both can key
// a root's neighbour table. The son encoding is positional: bit 0 set
// means the right half, bit 1 the upper half, bit 2 the front half.
const (
	LDB = iota // son slots: left/right, down/up, back/front
	RDB
	LUB
	RUB
	LDF
	RDF
	LUF
	RUF
	L // face directions
	R
	D
	U
	B
	F
)

// Adjacent reports whether son slot s touches the given face of its
// father.
func Adjacent(s, face int) bool {
	switch face {
	case L:
		return s&1 == 0
	case R:
		return s&1 != 0
	case D:
		return s&2 == 0
	case U:
		return s&2 != 0
	case B:
		return s&4 == 0
	case F:
		return s&4 != 0
	}
	chk.Panic("%d is not an octree face", face)
	return false
}

// Reflect mirrors son slot s across the given face: the slot a
// neighbour on that side assigns to the cell facing s.
func Reflect(s, face int) int {
	switch face {
	case L, R:
		return s ^ 1
	case D, U:
		return s ^ 2
	case B, F:
		return s ^ 4
	}
	chk.Panic("%d is not an octree face", face)
	return 0
}

// Opposite returns the face seen from the other side.
func Opposite(face int) int {
	switch face {
	case L:
		return R
	case R:
		return L
	case D:
		return U
	case U:
		return D
	case B:
		return F
	case F:
		return B
	}
	chk.Panic("%d is not an octree face", face)
	return 0
}

// faceAxis returns the coordinate axis a face is normal to and
// whether it sits on the high side.
func faceAxis(face int) (axis int, high bool) {
	switch face {
	case L:
		return 0, false
	case R:
		return 0, true
	case D:
		return 1, false
	case U:
		return 1, true
	case B:
		return 2, false
	case F:
		return 2, true
	}
	chk.Panic("%d is not an octree face", face)
	return 0, false
}

// SonName returns the conventional name of a son slot, built from
// left/right, down/up and back/front.
func SonName(s int) string {
	if s < LDB || s > RUF {
		return "?"
	}
	name := [3]byte{'L', 'D', 'B'}
	if s&1 != 0 {
		name[0] = 'R'
	}
	if s&2 != 0 {
		name[1] = 'U'
	}
	if s&4 != 0 {
		name[2] = 'F'
	}
	return string(name[:])
}

// FaceName returns the conventional name of a face.
func FaceName(face int) string {
	switch face {
	case L:
		return "L"
	case R:
		return "R"
	case D:
		return "D"
	case U:
		return "U"
	case B:
		return "B"
	case F:
		return "F"
	}
	return "?"
}
