// Package cellmap holds the sparse walkable-cell map a generated level is
// reduced to. Keys are grid coordinates; values are BFS step costs from the
// last recalculation origin. A coordinate is walkable iff it is present.
package cellmap

import (
	"math/rand"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/tehsmeely/rogue-haddock/internal/domain"
)

// orthogonalSteps is the expansion order for BFS neighbours.
var orthogonalSteps = [4][2]int{{0, 1}, {1, 0}, {-1, 0}, {0, -1}}

// CellMap maps grid coordinates to costs. The zero value is an empty map;
// all transforming operations are pure and return a new CellMap.
type CellMap struct {
	cells map[domain.Position]int
}

// New wraps an existing coordinate->cost mapping. The map is owned by the
// CellMap afterwards; callers must not keep mutating it.
func New(cells map[domain.Position]int) CellMap {
	if cells == nil {
		cells = make(map[domain.Position]int)
	}
	return CellMap{cells: cells}
}

// CellCount returns the number of cells present.
func (m CellMap) CellCount() int {
	return len(m.cells)
}

// Contains reports whether the coordinate is in the map.
func (m CellMap) Contains(p domain.Position) bool {
	_, ok := m.cells[p]
	return ok
}

// Cost returns the cost stored for a coordinate.
func (m CellMap) Cost(p domain.Position) (int, bool) {
	c, ok := m.cells[p]
	return c, ok
}

// Cells returns all coordinates present, in no particular order.
func (m CellMap) Cells() []domain.Position {
	out := make([]domain.Position, 0, len(m.cells))
	for p := range m.cells {
		out = append(out, p)
	}
	return out
}

// Offset translates every coordinate by (dx, dy).
func (m CellMap) Offset(dx, dy int) CellMap {
	out := make(map[domain.Position]int, len(m.cells))
	for p, c := range m.cells {
		out[p.Shift(dx, dy)] = c
	}
	return New(out)
}

// Normalize translates the map so the minimum x and minimum y become zero.
func (m CellMap) Normalize() CellMap {
	xOffset, yOffset := m.minCorner()
	if xOffset == 0 && yOffset == 0 {
		return m
	}
	return m.Offset(-xOffset, -yOffset)
}

func (m CellMap) minCorner() (int, int) {
	first := true
	var minX, minY int
	for p := range m.cells {
		if first {
			minX, minY = p.X, p.Y
			first = false
			continue
		}
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
	}
	return minX, minY
}

// RectSize returns (maxX-minX, maxY-minY) over the present coordinates, or
// (0, 0) for an empty map.
func (m CellMap) RectSize() (int, int) {
	if len(m.cells) == 0 {
		return 0, 0
	}
	first := true
	var minX, minY, maxX, maxY int
	for p := range m.cells {
		if first {
			minX, maxX = p.X, p.X
			minY, maxY = p.Y, p.Y
			first = false
			continue
		}
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return maxX - minX, maxY - minY
}

// StartPoint returns a coordinate holding the minimum cost.
func (m CellMap) StartPoint() (domain.Position, bool) {
	return m.extremePoint(func(a, b int) bool { return a < b })
}

// EndPoint returns a coordinate holding the maximum cost.
func (m CellMap) EndPoint() (domain.Position, bool) {
	return m.extremePoint(func(a, b int) bool { return a > b })
}

func (m CellMap) extremePoint(better func(a, b int) bool) (domain.Position, bool) {
	var best domain.Position
	bestCost := 0
	found := false
	for p, c := range m.cells {
		if !found || better(c, bestCost) {
			best, bestCost = p, c
			found = true
		}
	}
	return best, found
}

type bfsItem struct {
	pos  domain.Position
	cost int
}

// Recalculate runs a breadth-first walk from origin, expanding only into
// coordinates present in the map, and returns a new CellMap whose key set is
// exactly the reachable set, each cell costed with its BFS depth. Cells the
// walk cannot reach are dropped. A cell is requeued only when a strictly
// cheaper path to it is found, so every cell is enqueued O(1) times and the
// whole walk is O(n).
func (m CellMap) Recalculate(origin domain.Position) CellMap {
	out := make(map[domain.Position]int)
	queue := []bfsItem{{pos: origin, cost: 0}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		out[item.pos] = item.cost
		for _, step := range orthogonalSteps {
			n := item.pos.Shift(step[0], step[1])
			if !m.Contains(n) {
				continue
			}
			newCost := item.cost + 1
			if prev, seen := out[n]; !seen || newCost < prev {
				queue = append(queue, bfsItem{pos: n, cost: newCost})
			}
		}
	}
	return New(out)
}

// DistributePointsByCost samples up to n distinct coordinates, weighted
// toward the median-cost ring: with mid = min + (max-min)/2, a cell of cost c
// is weighted mid - |mid - c| (clamped at zero). Cells holding the extremal
// min or max cost are never candidates, nor are excluded coordinates. Used to
// place spawns neither on top of the reference point nor at the far end of
// the map. May return fewer than n points when the candidate pool is small;
// callers must tolerate short results.
func (m CellMap) DistributePointsByCost(rng *rand.Rand, n int, exclude mapset.Set[domain.Position]) []domain.Position {
	if n <= 0 || len(m.cells) == 0 {
		return nil
	}

	first := true
	var minCost, maxCost int
	for _, c := range m.cells {
		if first {
			minCost, maxCost = c, c
			first = false
			continue
		}
		if c < minCost {
			minCost = c
		}
		if c > maxCost {
			maxCost = c
		}
	}
	midCost := minCost + (maxCost-minCost)/2

	type candidate struct {
		pos    domain.Position
		weight int
	}
	var candidates []candidate
	for p, c := range m.cells {
		if c <= minCost || c >= maxCost || exclude.Has(p) {
			continue
		}
		w := midCost - abs(midCost-c)
		if w < 0 {
			w = 0
		}
		candidates = append(candidates, candidate{pos: p, weight: w})
	}
	// Map iteration order is randomized independently of the injected RNG;
	// sort so a seeded run is reproducible.
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].pos.X != candidates[j].pos.X {
			return candidates[i].pos.X < candidates[j].pos.X
		}
		return candidates[i].pos.Y < candidates[j].pos.Y
	})

	picked := make([]domain.Position, 0, n)
	for len(picked) < n && len(candidates) > 0 {
		total := 0
		for _, c := range candidates {
			total += c.weight
		}
		idx := 0
		if total > 0 {
			r := rng.Intn(total)
			for i, c := range candidates {
				if r < c.weight {
					idx = i
					break
				}
				r -= c.weight
			}
		} else {
			idx = rng.Intn(len(candidates))
		}
		picked = append(picked, candidates[idx].pos)
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}
	return picked
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
