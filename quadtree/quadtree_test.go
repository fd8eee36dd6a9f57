package quadtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdjacent(t *testing.T) {
	// bit 0 selects the eastern half, bit 1 the northern half
	cases := []struct {
		son, edge int
		want      bool
	}{
		{SW, N, false}, {SW, S, true}, {SW, E, false}, {SW, W, true},
		{SE, N, false}, {SE, S, true}, {SE, E, true}, {SE, W, false},
		{NW, N, true}, {NW, S, false}, {NW, E, false}, {NW, W, true},
		{NE, N, true}, {NE, S, false}, {NE, E, true}, {NE, W, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Adjacent(c.son, c.edge),
			"son %s edge %s", SonName(c.son), EdgeName(c.edge))
	}
}

func TestEachEdgeTouchesTwoSons(t *testing.T) {
	for e := N; e <= W; e++ {
		n := 0
		for s := SW; s <= NE; s++ {
			if Adjacent(s, e) {
				n++
			}
		}
		assert.Equal(t, 2, n, "edge %s", EdgeName(e))
	}
}

func TestReflect(t *testing.T) {
	cases := []struct{ son, edge, want int }{
		{SW, N, NW}, {SE, N, NE}, {NW, S, SW}, {NE, S, SE},
		{SW, E, SE}, {NW, E, NE}, {SE, W, SW}, {NE, W, NW},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Reflect(c.son, c.edge),
			"son %s edge %s", SonName(c.son), EdgeName(c.edge))
	}

	// reflecting twice returns the original slot
	for s := SW; s <= NE; s++ {
		for e := N; e <= W; e++ {
			assert.Equal(t, s, Reflect(Reflect(s, e), e))
		}
	}

	// a reflected slot sits on the other side of the edge
	for s := SW; s <= NE; s++ {
		for e := N; e <= W; e++ {
			assert.NotEqual(t, Adjacent(s, e), Adjacent(Reflect(s, e), e))
		}
	}
}

func TestOpposite(t *testing.T) {
	assert.Equal(t, S, Opposite(N))
	assert.Equal(t, N, Opposite(S))
	assert.Equal(t, W, Opposite(E))
	assert.Equal(t, E, Opposite(W))
	for e := N; e <= W; e++ {
		assert.Equal(t, e, Opposite(Opposite(e)))
	}
}

func TestEdgeValidation(t *testing.T) {
	t.Run("Adjacent", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Expected panic for son slot passed as edge")
			}
		}()
		Adjacent(SW, SE)
	})
	t.Run("Reflect", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Expected panic for son slot passed as edge")
			}
		}()
		Reflect(SW, NE)
	})
	t.Run("Opposite", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Expected panic for son slot passed as edge")
			}
		}()
		Opposite(SW)
	})
}

func TestNames(t *testing.T) {
	assert.Equal(t, "SW", SonName(SW))
	assert.Equal(t, "NE", SonName(NE))
	assert.Equal(t, "?", SonName(N))
	assert.Equal(t, "N", EdgeName(N))
	assert.Equal(t, "W", EdgeName(W))
	assert.Equal(t, "?", EdgeName(NE))
}
