package domain

// Position is a grid coordinate. Validity is defined by map membership, not
// by any fixed array shape, so both components may be negative.
type Position struct {
	X, Y int
}

// Shift returns a new position offset by (dx, dy).
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Step returns a new position moved one tile in the given direction.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return p.Shift(dx, dy)
}

// SharesAxis reports whether the two positions share a row or a column.
func (p Position) SharesAxis(other Position) bool {
	return p.X == other.X || p.Y == other.Y
}
