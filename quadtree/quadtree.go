// Package quadtree concretizes the generic refinement tree in two
// dimensions: four son slots, four edge directions, bilinear cell
// geometry, the gteq edge-neighbour search, and forests with geometric
// root-neighbour discovery, neighbour auditing and hanging-node
// diagnostics.
package quadtree

import (
	"github.com/cpmech/gosl/chk"
)

// Son slots and edge directions share one value space, so both can key
// a root's neighbour table. The son encoding is positional: bit 0 set
// means the eastern half, bit 1 set the northern half.
const (
	SW = iota // son slots
	SE
	NW
	NE
	N // edge directions
	E
	S
	W
)

// Adjacent reports whether son slot s touches the given edge of its
// father.
func Adjacent(s, edge int) bool {
	switch edge {
	case N:
		return s&2 != 0
	case S:
		return s&2 == 0
	case E:
		return s&1 != 0
	case W:
		return s&1 == 0
	}
	chk.Panic("%d is not a quadtree edge", edge)
	return false
}

// Reflect mirrors son slot s across the given edge: the slot a
// neighbour on that side assigns to the cell facing s.
func Reflect(s, edge int) int {
	switch edge {
	case N, S:
		return s ^ 2
	case E, W:
		return s ^ 1
	}
	chk.Panic("%d is not a quadtree edge", edge)
	return 0
}

// Opposite returns the edge seen from the other side.
func Opposite(edge int) int {
	switch edge {
	case N:
		return S
	case S:
		return N
	case E:
		return W
	case W:
		return E
	}
	chk.Panic("%d is not a quadtree edge", edge)
	return 0
}

// SonName returns the conventional compass name of a son slot.
func SonName(s int) string {
	switch s {
	case SW:
		return "SW"
	case SE:
		return "SE"
	case NW:
		return "NW"
	case NE:
		return "NE"
	}
	return "?"
}

// EdgeName returns the conventional compass name of an edge.
func EdgeName(edge int) string {
	switch edge {
	case N:
		return "N"
	case E:
		return "E"
	case S:
		return "S"
	case W:
		return "W"
	}
	return "?"
}
