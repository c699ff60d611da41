// Package projectile implements the straight-line tile scan shared by the
// player's ranged power and enemy lightning: step from an origin until a wall
// or a qualifying actor is hit.
package projectile

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tehsmeely/rogue-haddock/internal/domain"
	"github.com/tehsmeely/rogue-haddock/pkg/logger"
)

// scanIterationCap bounds the scan loop. Exceeding it means a zero direction
// vector or a map with no enclosing walls; neither has a sane continuation.
const scanIterationCap = 150

// Fate is the outcome of a line scan.
type Fate struct {
	// End is the tile the effect terminates on: the struck target's tile,
	// or the last enterable tile before the wall when nothing was hit.
	End domain.Position
	// Target is the struck actor when Hit is true.
	Target domain.ActorID
	Hit    bool
}

// ScanToEndpoint steps tile-by-tile from `from` along dir. Candidates not
// sharing the origin's row or column are ignored up front: targeting is
// purely axis-aligned.
//
// With stopAtFirstHit the scan returns the moment a candidate's tile is
// reached. Otherwise a hit is remembered and the scan continues to the wall,
// so callers get both "what was struck" and "how far does the corridor
// reach" from one pass (a lightning bolt fills the whole corridor but only
// damages the first thing in it).
//
// Panics when the iteration cap is exceeded: that is an invariant violation
// (malformed direction or an unenclosed map), not a recoverable outcome.
func ScanToEndpoint(
	from domain.Position,
	dir domain.Direction,
	candidates []domain.Actor,
	tiles domain.TileLookup,
	stopAtFirstHit bool,
) Fate {
	targets := make(map[domain.Position]domain.ActorID, len(candidates))
	for _, a := range candidates {
		if a.Pos.SharesAxis(from) {
			targets[a.Pos] = a.ID
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"from":      from,
		"direction": dir,
	}).Debug("Scanning projectile line")

	var remembered Fate
	last := from
	test := from
	for i := 0; ; i++ {
		if i >= scanIterationCap {
			panic(fmt.Sprintf(
				"projectile scan from %v direction %v did not terminate within %d steps",
				from, dir, scanIterationCap))
		}
		test = test.Step(dir)
		if !tiles.TileAt(test).CanEnter() {
			if remembered.Hit {
				return remembered
			}
			return Fate{End: last}
		}
		if id, ok := targets[test]; ok {
			hit := Fate{End: test, Target: id, Hit: true}
			if stopAtFirstHit {
				return hit
			}
			if !remembered.Hit {
				remembered = hit
			}
		}
		last = test
	}
}
