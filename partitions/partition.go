// Package partitions assigns the roots of a forest to load-balanced
// work partitions. Roots are the distribution unit: a root moves with
// its whole subtree, so ownership never cuts through a refinement
// hierarchy and balance is measured in leaves rather than roots.
package partitions

import (
	"math"
	"sort"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/mat"
)

// Strategy selects how roots are grouped into partitions.
type Strategy int

const (
	// BlockPartition assigns consecutive root indices to the same
	// partition.
	BlockPartition Strategy = iota

	// RoundRobin distributes roots cyclically.
	RoundRobin

	// GraphPartition would cut the root adjacency graph; no graph
	// partitioner is linked, so it degrades to block partitioning.
	GraphPartition

	// SpaceFillingCurve orders roots along a Morton curve through
	// their centres before block-cutting, keeping each partition
	// spatially compact.
	SpaceFillingCurve
)

// Builder constructs partition layouts for a fixed partition count.
type Builder struct {
	NPart    int      // number of partitions to produce
	Strategy Strategy // how roots are grouped
}

// Layout is the result of a partitioning pass: the roots each
// partition owns and how many leaves that currently amounts to.
type Layout struct {
	NPart      int     // number of partitions
	RootsOf    [][]int // root indices owned by each partition
	LeafCounts []int   // leaves per partition, the balance measure
}

// Stats summarises the leaf balance of a layout.
type Stats struct {
	NPart     int
	MinLeaf   int
	MaxLeaf   int
	AvgLeaf   float64
	Imbalance float64 // MaxLeaf over AvgLeaf
}

// Partition distributes the roots described by centres and leafCounts.
// There is one row of centres and one leaf count per root; centres may
// be nil for strategies that never look at geometry. Every partition
// receives at least one root.
func (b *Builder) Partition(centres *mat.Dense, leafCounts []int) (*Layout, error) {
	nroots := len(leafCounts)
	if b.NPart < 1 {
		return nil, chk.Err("number of partitions must be positive, got %d", b.NPart)
	}
	if nroots == 0 {
		return nil, chk.Err("cannot partition an empty forest")
	}
	if b.NPart > nroots {
		return nil, chk.Err("cannot cut %d roots into %d partitions", nroots, b.NPart)
	}

	order := make([]int, nroots)
	for i := range order {
		order[i] = i
	}

	layout := &Layout{
		NPart:      b.NPart,
		RootsOf:    make([][]int, b.NPart),
		LeafCounts: make([]int, b.NPart),
	}

	switch b.Strategy {
	case BlockPartition, GraphPartition:
		layout.fillBlocks(order, leafCounts)

	case RoundRobin:
		for i, r := range order {
			p := i % b.NPart
			layout.RootsOf[p] = append(layout.RootsOf[p], r)
			layout.LeafCounts[p] += leafCounts[r]
		}

	case SpaceFillingCurve:
		if centres == nil {
			return nil, chk.Err("space-filling-curve partitioning needs root centres")
		}
		if rows, _ := centres.Dims(); rows != nroots {
			return nil, chk.Err("centres has %d rows for %d roots", rows, nroots)
		}
		sortMorton(order, centres)
		layout.fillBlocks(order, leafCounts)

	default:
		return nil, chk.Err("unknown partitioning strategy %d", b.Strategy)
	}
	return layout, nil
}

// NewLayoutFromOwner builds a layout from an explicit root-to-
// partition map, as carried by mesh partition hints. The map must use
// every partition at least once; the result passes Validate.
func NewLayoutFromOwner(owner []int, nPart int, leafCounts []int) (*Layout, error) {
	if nPart < 1 {
		return nil, chk.Err("number of partitions must be positive, got %d", nPart)
	}
	if len(owner) == 0 {
		return nil, chk.Err("owner table is empty")
	}
	if len(leafCounts) != len(owner) {
		return nil, chk.Err("leaf count table has %d entries for %d roots",
			len(leafCounts), len(owner))
	}
	layout := &Layout{
		NPart:      nPart,
		RootsOf:    make([][]int, nPart),
		LeafCounts: make([]int, nPart),
	}
	for r, p := range owner {
		if p < 0 || p >= nPart {
			return nil, chk.Err("root %d is assigned to partition %d, want 0..%d",
				r, p, nPart-1)
		}
		layout.RootsOf[p] = append(layout.RootsOf[p], r)
		layout.LeafCounts[p] += leafCounts[r]
	}
	if err := layout.Validate(len(owner)); err != nil {
		return nil, err
	}
	return layout, nil
}

// fillBlocks cuts the ordered roots into NPart consecutive chunks,
// spreading the remainder over the leading partitions so that none
// comes up empty.
func (l *Layout) fillBlocks(order, leafCounts []int) {
	base := len(order) / l.NPart
	extra := len(order) % l.NPart
	i := 0
	for p := 0; p < l.NPart; p++ {
		size := base
		if p < extra {
			size++
		}
		for j := 0; j < size; j++ {
			r := order[i]
			l.RootsOf[p] = append(l.RootsOf[p], r)
			l.LeafCounts[p] += leafCounts[r]
			i++
		}
	}
}

// Owner returns the inverse of RootsOf: the partition owning each
// root.
func (l *Layout) Owner() []int {
	n := 0
	for _, roots := range l.RootsOf {
		n += len(roots)
	}
	owner := make([]int, n)
	for i := range owner {
		owner[i] = -1
	}
	for p, roots := range l.RootsOf {
		for _, r := range roots {
			if r >= 0 && r < n {
				owner[r] = p
			}
		}
	}
	return owner
}

// Validate checks layout consistency against a forest of nroots roots:
// table sizes match NPart, every root is owned exactly once and no
// partition is empty.
func (l *Layout) Validate(nroots int) error {
	if len(l.RootsOf) != l.NPart || len(l.LeafCounts) != l.NPart {
		return chk.Err("layout tables have %d/%d entries for %d partitions",
			len(l.RootsOf), len(l.LeafCounts), l.NPart)
	}
	seen := make([]int, nroots)
	for p, roots := range l.RootsOf {
		if len(roots) == 0 {
			return chk.Err("partition %d owns no roots", p)
		}
		for _, r := range roots {
			if r < 0 || r >= nroots {
				return chk.Err("partition %d claims root %d, forest has %d roots", p, r, nroots)
			}
			seen[r]++
		}
	}
	for r, n := range seen {
		if n != 1 {
			return chk.Err("root %d is assigned %d times, want exactly once", r, n)
		}
	}
	return nil
}

// Statistics computes the leaf balance summary of the layout.
func (l *Layout) Statistics() Stats {
	total := 0
	stats := Stats{
		NPart:   l.NPart,
		MinLeaf: math.MaxInt32,
	}
	for _, c := range l.LeafCounts {
		total += c
		if c < stats.MinLeaf {
			stats.MinLeaf = c
		}
		if c > stats.MaxLeaf {
			stats.MaxLeaf = c
		}
	}
	stats.AvgLeaf = float64(total) / float64(l.NPart)
	if stats.AvgLeaf > 0 {
		stats.Imbalance = float64(stats.MaxLeaf) / stats.AvgLeaf
	}
	return stats
}

// Imbalance returns the ratio of the heaviest partition's leaf count
// to the mean, 1.0 for perfect balance.
func (l *Layout) Imbalance() float64 {
	return l.Statistics().Imbalance
}

// sortMorton orders roots by the Morton index of their centre. Each
// coordinate is quantised to 16 bits over the bounding box of all
// centres and the bit streams are interleaved.
func sortMorton(order []int, centres *mat.Dense) {
	n, dim := centres.Dims()
	lo := make([]float64, dim)
	hi := make([]float64, dim)
	for d := 0; d < dim; d++ {
		lo[d] = math.Inf(1)
		hi[d] = math.Inf(-1)
	}
	for i := 0; i < n; i++ {
		for d := 0; d < dim; d++ {
			c := centres.At(i, d)
			lo[d] = math.Min(lo[d], c)
			hi[d] = math.Max(hi[d], c)
		}
	}
	keys := make([]uint64, n)
	for i := 0; i < n; i++ {
		keys[i] = mortonKey(centres, i, lo, hi)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]] < keys[order[b]]
	})
}

func mortonKey(centres *mat.Dense, i int, lo, hi []float64) uint64 {
	dim := len(lo)
	var key uint64
	for d := 0; d < dim; d++ {
		var q uint64
		if span := hi[d] - lo[d]; span > 0 {
			q = uint64((centres.At(i, d) - lo[d]) / span * 65535.0)
		}
		for b := 0; b < 16; b++ {
			key |= (q >> b & 1) << (b*dim + d)
		}
	}
	return key
}
