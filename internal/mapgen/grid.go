package mapgen

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/tehsmeely/rogue-haddock/internal/cellmap"
	"github.com/tehsmeely/rogue-haddock/internal/domain"
)

// mooreNeighbourhood includes the cell itself: the smoothing rule counts the
// centre along with its eight neighbours.
var mooreNeighbourhood = [9][2]int{
	{1, 1}, {0, 1}, {-1, 1},
	{1, 0}, {0, 0}, {-1, 0},
	{1, -1}, {0, -1}, {-1, -1},
}

// Grid is the dense working grid for cellular-automata smoothing. Two
// buffers are kept so each pass reads the previous generation while writing
// the next; current indexes the buffer being read.
type Grid struct {
	width, height int
	tiles         [2][]domain.TileType
	current       int
}

// NewGrid seeds a width x height grid, each cell independently rock with
// probability wallChance, open water otherwise.
func NewGrid(width, height int, wallChance float64, rng randSource) *Grid {
	g := &Grid{width: width, height: height}
	size := width * height
	g.tiles[0] = make([]domain.TileType, size)
	g.tiles[1] = make([]domain.TileType, size)
	for i := 0; i < size; i++ {
		if rng.Float64() < wallChance {
			g.tiles[0][i] = domain.TileWall
		} else {
			g.tiles[0][i] = domain.TileWater
		}
	}
	return g
}

// randSource is the slice of *rand.Rand the generator needs.
type randSource interface {
	Float64() float64
}

func (g *Grid) inBounds(p domain.Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) index(p domain.Position) int {
	return p.Y*g.width + p.X
}

// TileAt returns the tile at p from the current buffer, failing closed to
// wall outside the grid.
func (g *Grid) TileAt(p domain.Position) domain.TileType {
	if !g.inBounds(p) {
		return domain.TileWall
	}
	return g.tiles[g.current][g.index(p)]
}

func (g *Grid) setTile(p domain.Position, t domain.TileType) {
	g.tiles[g.current][g.index(p)] = t
}

// Smooth runs one cellular-automata pass: a cell becomes rock when more than
// four of its nine-cell neighbourhood (off-grid counts as rock) are rock, or
// when none are; otherwise it becomes water. Buffers swap afterwards.
func (g *Grid) Smooth() {
	next := 1 - g.current
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := domain.Position{X: x, Y: y}
			wallCount := 0
			for _, d := range mooreNeighbourhood {
				n := p.Shift(d[0], d[1])
				if !g.inBounds(n) || g.tiles[g.current][g.index(n)] == domain.TileWall {
					wallCount++
				}
			}
			t := domain.TileWater
			if wallCount > 4 || wallCount == 0 {
				t = domain.TileWall
			}
			g.tiles[next][g.index(p)] = t
		}
	}
	g.current = next
}

// FindStart scans for the first open cell, walking columns outward from the
// horizontal centre (centre first, then alternating right/left offsets) and
// each column from the bottom row upward. Returns false when the grid has no
// open cell at all.
func (g *Grid) FindStart() (domain.Position, bool) {
	x0 := g.width / 2
	y0 := g.height - 1
	for i := 0; i < g.width; i++ {
		x := x0 + toHalfSigned(i)
		if x < 0 || x >= g.width {
			continue
		}
		for j := 0; j < g.height; j++ {
			p := domain.Position{X: x, Y: y0 - j}
			if g.TileAt(p) == domain.TileWater {
				return p, true
			}
		}
	}
	return domain.Position{}, false
}

// toHalfSigned turns 0,1,2,3,4,... into 0,0,1,-1,2,... giving the
// centre-out column order for FindStart.
func toHalfSigned(i int) int {
	if i%2 == 0 {
		return i / 2
	}
	return -(i / 2)
}

// MapAndCull walks the open region reachable from start, returns it as a
// costed cell map, and turns every unreachable water cell into rock so the
// dense grid agrees with the sparse map.
func (g *Grid) MapAndCull(start domain.Position) cellmap.CellMap {
	type item struct {
		pos  domain.Position
		cost int
	}
	distance := make(map[domain.Position]int)
	queue := []item{{pos: start, cost: 0}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		distance[it.pos] = it.cost
		for _, step := range [4][2]int{{0, 1}, {1, 0}, {-1, 0}, {0, -1}} {
			n := it.pos.Shift(step[0], step[1])
			if g.TileAt(n) != domain.TileWater {
				continue
			}
			newCost := it.cost + 1
			if prev, seen := distance[n]; !seen || newCost < prev {
				queue = append(queue, item{pos: n, cost: newCost})
			}
		}
	}

	reachable := mapset.New[domain.Position]()
	for p := range distance {
		reachable.Put(p)
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := domain.Position{X: x, Y: y}
			if g.TileAt(p) == domain.TileWater && !reachable.Has(p) {
				g.setTile(p, domain.TileWall)
			}
		}
	}

	return cellmap.New(distance)
}
