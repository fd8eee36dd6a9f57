// Package tree implements the generic core of an adaptive mesh
// refinement forest: recursive N-ary trees whose leaves carry the
// active elements of a mesh.
//
// A Tree node owns up to branching-factor sons (4 for quadtrees, 8 for
// octrees), keeps non-owning back references to its father and to the
// Root anchoring its tree, and references exactly one externally-owned
// refineable element. A Root is a Tree without a father that
// additionally records, per direction, which other roots border it and
// whether that border is periodic. A Forest owns an ordered set of
// roots forming one logical mesh:
//
//	Forest
//	 ├── Root 0 ── sons ── sons ── ...      leaves carry elements
//	 ├── Root 1 ── sons ── ...
//	 └── Root 2
//
// Splitting a leaf asks the root's SonFactory for the son payloads and
// wires the new nodes; merging is all-or-nothing and hands the removed
// payloads back to the mesh. Traversals take closures, so callers
// capture whatever state (mesh handles, counters, output files) the
// walk needs.
//
// Dimension-specific layers supply the son/direction topology, the
// neighbour search and the consistency audits; this package is
// deliberately ignorant of geometry except for the process-wide
// MaxNeighbourFindingTolerance those layers share.
package tree
