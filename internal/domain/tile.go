package domain

// TileType classifies a map tile. The world is underwater: open tiles are
// water, everything else is rock.
type TileType uint8

const (
	TileWall TileType = iota
	TileWater
)

// CanEnter reports whether an actor may occupy the tile.
func (t TileType) CanEnter() bool {
	return t == TileWater
}

func (t TileType) String() string {
	switch t {
	case TileWall:
		return "wall"
	case TileWater:
		return "water"
	}
	return "unknown"
}

// TileLookup resolves a coordinate to its tile classification. Lookups for
// coordinates outside the map must fail closed to TileWall.
type TileLookup interface {
	TileAt(Position) TileType
}
