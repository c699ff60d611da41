package engine

import (
	"github.com/tehsmeely/rogue-haddock/internal/cellmap"
	"github.com/tehsmeely/rogue-haddock/internal/domain"
)

// TileMap adapts the generated cell map to the tile-lookup interface the
// resolvers consume: a coordinate present in the map is open water and
// everything else, including anything off the generated region, is wall.
type TileMap struct {
	cells cellmap.CellMap
}

func NewTileMap(cells cellmap.CellMap) TileMap {
	return TileMap{cells: cells}
}

// TileAt fails closed to wall for unknown coordinates.
func (t TileMap) TileAt(p domain.Position) domain.TileType {
	if t.cells.Contains(p) {
		return domain.TileWater
	}
	return domain.TileWall
}

// Cells exposes the underlying cell map (spawn placement reads costs).
func (t TileMap) Cells() cellmap.CellMap {
	return t.cells
}

var _ domain.TileLookup = TileMap{}
