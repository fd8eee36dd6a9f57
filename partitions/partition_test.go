package partitions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestBlockPartition(t *testing.T) {
	b := &Builder{NPart: 3, Strategy: BlockPartition}
	leaves := []int{4, 1, 1, 7, 1, 1, 1}

	layout, err := b.Partition(nil, leaves)
	assert.NoError(t, err)
	assert.NoError(t, layout.Validate(7))

	// remainder goes to the leading partitions
	assert.Equal(t, []int{0, 1, 2}, layout.RootsOf[0])
	assert.Equal(t, []int{3, 4}, layout.RootsOf[1])
	assert.Equal(t, []int{5, 6}, layout.RootsOf[2])
	assert.Equal(t, []int{6, 8, 2}, layout.LeafCounts)
}

func TestRoundRobin(t *testing.T) {
	b := &Builder{NPart: 2, Strategy: RoundRobin}
	leaves := []int{1, 2, 3, 4, 5}

	layout, err := b.Partition(nil, leaves)
	assert.NoError(t, err)
	assert.NoError(t, layout.Validate(5))
	assert.Equal(t, []int{0, 2, 4}, layout.RootsOf[0])
	assert.Equal(t, []int{1, 3}, layout.RootsOf[1])
	assert.Equal(t, []int{9, 6}, layout.LeafCounts)
}

func TestGraphFallsBackToBlock(t *testing.T) {
	leaves := []int{1, 1, 1, 1}
	graph, err := (&Builder{NPart: 2, Strategy: GraphPartition}).Partition(nil, leaves)
	assert.NoError(t, err)
	block, err := (&Builder{NPart: 2, Strategy: BlockPartition}).Partition(nil, leaves)
	assert.NoError(t, err)
	assert.Equal(t, block.RootsOf, graph.RootsOf)
}

func TestSpaceFillingCurve(t *testing.T) {
	// four unit cells given in scrambled order: NE, SW, SE, NW
	centres := mat.NewDense(4, 2, []float64{
		1.5, 1.5,
		0.5, 0.5,
		1.5, 0.5,
		0.5, 1.5,
	})
	leaves := []int{10, 1, 2, 3}

	b := &Builder{NPart: 2, Strategy: SpaceFillingCurve}
	layout, err := b.Partition(centres, leaves)
	assert.NoError(t, err)
	assert.NoError(t, layout.Validate(4))

	// Morton order is SW, SE, NW, NE regardless of input order
	assert.Equal(t, []int{1, 2}, layout.RootsOf[0])
	assert.Equal(t, []int{3, 0}, layout.RootsOf[1])
	assert.Equal(t, []int{3, 13}, layout.LeafCounts)
}

func TestSpaceFillingCurveKeepsNeighboursTogether(t *testing.T) {
	// a 4x4 grid of unit cells, x fastest
	centres := mat.NewDense(16, 2, nil)
	for i := 0; i < 16; i++ {
		centres.Set(i, 0, float64(i%4)+0.5)
		centres.Set(i, 1, float64(i/4)+0.5)
	}
	leaves := make([]int, 16)
	for i := range leaves {
		leaves[i] = 1
	}

	layout, err := (&Builder{NPart: 4, Strategy: SpaceFillingCurve}).Partition(centres, leaves)
	assert.NoError(t, err)
	assert.NoError(t, layout.Validate(16))

	// the curve cuts the grid into its four compact quadrants, where a
	// plain block cut would slice it into rows
	assert.Equal(t, []int{0, 1, 4, 5}, layout.RootsOf[0])
	assert.Equal(t, []int{2, 3, 6, 7}, layout.RootsOf[1])
	assert.Equal(t, []int{8, 9, 12, 13}, layout.RootsOf[2])
	assert.Equal(t, []int{10, 11, 14, 15}, layout.RootsOf[3])
}

func TestPartitionErrors(t *testing.T) {
	leaves := []int{1, 1, 1}
	tests := []struct {
		name    string
		builder Builder
		centres *mat.Dense
		leaves  []int
	}{
		{"zero partitions", Builder{NPart: 0}, nil, leaves},
		{"no roots", Builder{NPart: 1}, nil, nil},
		{"more partitions than roots", Builder{NPart: 4}, nil, leaves},
		{"sfc without centres", Builder{NPart: 2, Strategy: SpaceFillingCurve}, nil, leaves},
		{"sfc with wrong rows", Builder{NPart: 2, Strategy: SpaceFillingCurve},
			mat.NewDense(2, 2, nil), leaves},
		{"unknown strategy", Builder{NPart: 2, Strategy: Strategy(99)}, nil, leaves},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			layout, err := tc.builder.Partition(tc.centres, tc.leaves)
			assert.Error(t, err)
			assert.Nil(t, layout)
		})
	}
}

func TestValidate(t *testing.T) {
	good := &Layout{
		NPart:      2,
		RootsOf:    [][]int{{0, 2}, {1}},
		LeafCounts: []int{2, 1},
	}
	assert.NoError(t, good.Validate(3))

	duplicated := &Layout{
		NPart:      2,
		RootsOf:    [][]int{{0, 1}, {1}},
		LeafCounts: []int{2, 1},
	}
	assert.Error(t, duplicated.Validate(3))

	outOfRange := &Layout{
		NPart:      2,
		RootsOf:    [][]int{{0, 5}, {1}},
		LeafCounts: []int{2, 1},
	}
	assert.Error(t, outOfRange.Validate(3))

	empty := &Layout{
		NPart:      2,
		RootsOf:    [][]int{{0, 1, 2}, {}},
		LeafCounts: []int{3, 0},
	}
	assert.Error(t, empty.Validate(3))

	missing := &Layout{
		NPart:      2,
		RootsOf:    [][]int{{0}, {1}},
		LeafCounts: []int{1, 1},
	}
	assert.Error(t, missing.Validate(3))
}

func TestStatistics(t *testing.T) {
	layout := &Layout{
		NPart:      3,
		RootsOf:    [][]int{{0}, {1}, {2}},
		LeafCounts: []int{4, 2, 6},
	}
	stats := layout.Statistics()
	assert.Equal(t, 3, stats.NPart)
	assert.Equal(t, 2, stats.MinLeaf)
	assert.Equal(t, 6, stats.MaxLeaf)
	assert.InDelta(t, 4.0, stats.AvgLeaf, 1e-15)
	assert.InDelta(t, 1.5, stats.Imbalance, 1e-15)
	assert.InDelta(t, 1.5, layout.Imbalance(), 1e-15)
}

func TestOwner(t *testing.T) {
	layout := &Layout{
		NPart:      2,
		RootsOf:    [][]int{{0, 2}, {1, 3}},
		LeafCounts: []int{2, 2},
	}
	assert.Equal(t, []int{0, 1, 0, 1}, layout.Owner())
}

func TestNewLayoutFromOwner(t *testing.T) {
	layout, err := NewLayoutFromOwner([]int{0, 1, 0, 1}, 2, []int{1, 2, 3, 4})
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 2}, layout.RootsOf[0])
	assert.Equal(t, []int{1, 3}, layout.RootsOf[1])
	assert.Equal(t, []int{4, 6}, layout.LeafCounts)
	assert.Equal(t, []int{0, 1, 0, 1}, layout.Owner())

	tests := []struct {
		name   string
		owner  []int
		nPart  int
		leaves []int
	}{
		{"zero partitions", []int{0}, 0, []int{1}},
		{"empty owner", nil, 1, nil},
		{"length mismatch", []int{0, 0}, 1, []int{1}},
		{"owner out of range", []int{0, 2}, 2, []int{1, 1}},
		{"unused partition", []int{0, 0}, 2, []int{1, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			layout, err := NewLayoutFromOwner(tc.owner, tc.nPart, tc.leaves)
			assert.Error(t, err)
			assert.Nil(t, layout)
		})
	}
}
