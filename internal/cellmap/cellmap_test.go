package cellmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"github.com/tehsmeely/rogue-haddock/internal/domain"
)

func pos(x, y int) domain.Position {
	return domain.Position{X: x, Y: y}
}

// line builds a straight horizontal corridor y=0, x in [0, n).
func line(n int) CellMap {
	cells := make(map[domain.Position]int)
	for x := 0; x < n; x++ {
		cells[pos(x, 0)] = 0
	}
	return New(cells)
}

func TestOffset(t *testing.T) {
	m := New(map[domain.Position]int{pos(1, 2): 5, pos(3, 4): 7})
	shifted := m.Offset(-1, 10)

	assert.Equal(t, 2, shifted.CellCount())
	assert.True(t, shifted.Contains(pos(0, 12)))
	assert.True(t, shifted.Contains(pos(2, 14)))
	c, ok := shifted.Cost(pos(0, 12))
	require.True(t, ok)
	assert.Equal(t, 5, c)

	// Offset is pure: the original is untouched.
	assert.True(t, m.Contains(pos(1, 2)))
}

func TestNormalize(t *testing.T) {
	m := New(map[domain.Position]int{pos(3, 5): 1, pos(4, 7): 2})
	norm := m.Normalize()

	assert.True(t, norm.Contains(pos(0, 0)))
	assert.True(t, norm.Contains(pos(1, 2)))
}

func TestNormalizeSingleAxis(t *testing.T) {
	// One axis already at zero: the other must still be pulled to zero.
	m := New(map[domain.Position]int{pos(0, 5): 1, pos(2, 9): 2})
	norm := m.Normalize()

	assert.True(t, norm.Contains(pos(0, 0)))
	assert.True(t, norm.Contains(pos(2, 4)))
}

func TestRectSize(t *testing.T) {
	assert.Equal(t, 0, New(nil).CellCount())
	w, h := New(nil).RectSize()
	assert.Equal(t, 0, w)
	assert.Equal(t, 0, h)

	m := New(map[domain.Position]int{pos(-1, 2): 0, pos(3, 10): 0})
	w, h = m.RectSize()
	assert.Equal(t, 4, w)
	assert.Equal(t, 8, h)
}

func TestStartAndEndPoint(t *testing.T) {
	m := New(map[domain.Position]int{pos(0, 0): 0, pos(1, 0): 1, pos(2, 0): 2})

	start, ok := m.StartPoint()
	require.True(t, ok)
	assert.Equal(t, pos(0, 0), start)

	end, ok := m.EndPoint()
	require.True(t, ok)
	assert.Equal(t, pos(2, 0), end)

	_, ok = New(nil).StartPoint()
	assert.False(t, ok)
}

func TestRecalculateAssignsShortestPathCosts(t *testing.T) {
	// A 3x3 block with the centre missing: costs must follow the detour.
	cells := make(map[domain.Position]int)
	for x := 0; x < 3; x++ {
		for y := 0; y < 3; y++ {
			if x == 1 && y == 1 {
				continue
			}
			cells[pos(x, y)] = 99
		}
	}
	m := New(cells).Recalculate(pos(0, 0))

	c, ok := m.Cost(pos(0, 0))
	require.True(t, ok)
	assert.Equal(t, 0, c)

	c, _ = m.Cost(pos(2, 0))
	assert.Equal(t, 2, c)

	// Opposite corner: around the missing centre, 4 steps.
	c, _ = m.Cost(pos(2, 2))
	assert.Equal(t, 4, c)
}

func TestRecalculateDropsUnreachable(t *testing.T) {
	cells := map[domain.Position]int{
		pos(0, 0): 0, pos(1, 0): 0,
		// Separate island
		pos(5, 5): 0, pos(6, 5): 0,
	}
	m := New(cells).Recalculate(pos(0, 0))

	assert.Equal(t, 2, m.CellCount())
	assert.False(t, m.Contains(pos(5, 5)))
	assert.False(t, m.Contains(pos(6, 5)))
}

func TestRecalculateIsIdempotent(t *testing.T) {
	m := line(10).Recalculate(pos(3, 0))
	again := m.Recalculate(pos(3, 0))

	assert.Equal(t, m.CellCount(), again.CellCount())
	for _, p := range m.Cells() {
		want, _ := m.Cost(p)
		got, ok := again.Cost(p)
		require.True(t, ok, "cell %v missing after second recalculation", p)
		assert.Equal(t, want, got, "cost changed for %v", p)
	}
}

func TestDistributePointsByCostBounds(t *testing.T) {
	m := line(21).Recalculate(pos(0, 0)) // costs 0..20
	rng := rand.New(rand.NewSource(7))

	points := m.DistributePointsByCost(rng, 5, mapset.New[domain.Position]())
	assert.Len(t, points, 5)
	seen := mapset.New[domain.Position]()
	for _, p := range points {
		c, ok := m.Cost(p)
		require.True(t, ok)
		assert.Greater(t, c, 0, "min-cost cell must never be returned")
		assert.Less(t, c, 20, "max-cost cell must never be returned")
		assert.False(t, seen.Has(p), "sampling is without replacement")
		seen.Put(p)
	}
}

func TestDistributePointsByCostShortResult(t *testing.T) {
	// Only three interior cells exist; asking for ten returns three.
	m := line(5).Recalculate(pos(0, 0))
	rng := rand.New(rand.NewSource(1))

	points := m.DistributePointsByCost(rng, 10, mapset.New[domain.Position]())
	assert.Len(t, points, 3)
}

func TestDistributePointsByCostExclusion(t *testing.T) {
	m := line(5).Recalculate(pos(0, 0))
	rng := rand.New(rand.NewSource(1))

	exclude := mapset.New[domain.Position]()
	exclude.Put(pos(2, 0))
	points := m.DistributePointsByCost(rng, 10, exclude)

	assert.Len(t, points, 2)
	for _, p := range points {
		assert.NotEqual(t, pos(2, 0), p)
	}
}

func TestDistributePointsByCostDeterministic(t *testing.T) {
	m := line(30).Recalculate(pos(0, 0))

	a := m.DistributePointsByCost(rand.New(rand.NewSource(42)), 6, mapset.New[domain.Position]())
	b := m.DistributePointsByCost(rand.New(rand.NewSource(42)), 6, mapset.New[domain.Position]())
	assert.Equal(t, a, b)
}
