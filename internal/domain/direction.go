package domain

import "math/rand"

// Direction is one of the four orthogonal map directions. Diagonals do not
// exist in this game: movement, attacks and projectiles are all axis-aligned.
type Direction uint8

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// AllDirections lists the directions in a fixed order (used for random and
// weighted choices).
var AllDirections = [4]Direction{DirUp, DirRight, DirDown, DirLeft}

// Delta returns the unit step for the direction. Y grows upward.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, 1
	case DirDown:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirLeft:
		return -1, 0
	}
	return 0, 0
}

// Vertical reports whether the direction moves along the Y axis.
func (d Direction) Vertical() bool {
	return d == DirUp || d == DirDown
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirRight:
		return "right"
	case DirLeft:
		return "left"
	}
	return "unknown"
}

// RandDirection picks a direction uniformly.
func RandDirection(rng *rand.Rand) Direction {
	return AllDirections[rng.Intn(len(AllDirections))]
}

// WeightedRandDirection picks a direction using one weight per entry of
// AllDirections. Zero total weight falls back to a uniform choice.
func WeightedRandDirection(rng *rand.Rand, weights [4]float64) Direction {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return RandDirection(rng)
	}
	r := rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if r < w {
			return AllDirections[i]
		}
		r -= w
	}
	return AllDirections[len(AllDirections)-1]
}

// DirectionTowards returns the axis-aligned direction from one position
// toward another, preferring the axis with the larger distance. The second
// return is false when the positions are equal.
func DirectionTowards(from, to Position) (Direction, bool) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	if dx == 0 && dy == 0 {
		return DirUp, false
	}
	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}
	if abs(dx) >= abs(dy) && dx != 0 {
		if dx > 0 {
			return DirRight, true
		}
		return DirLeft, true
	}
	if dy > 0 {
		return DirUp, true
	}
	return DirDown, true
}
