package movement

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/tehsmeely/rogue-haddock/internal/domain"
)

// DecideMove walks up to maxDistance tiles from cur along dir and resolves
// what the actor does this turn:
//
//   - the walk stops at the first non-enterable or explicitly blocked tile,
//     keeping whatever was decided so far (a move to the previous tile, or
//     just facing the direction);
//   - an occupant the criteria allow attacking turns the decision into an
//     attack and ends the walk;
//   - an occupant the criteria do not allow attacking reverts the decision
//     to a turn-in-place and ends the walk.
//
// Occupants are read from the given snapshot; only player and enemy roles
// block or can be attacked. The blocked set lets the caller exclude tiles
// already claimed by earlier-processed movers this phase.
func DecideMove(
	cur domain.Position,
	dir domain.Direction,
	maxDistance int,
	crit AttackCriteria,
	occupants []domain.Actor,
	tiles domain.TileLookup,
	blocked mapset.Set[domain.Position],
) MoveDecision {
	decision := MoveDecision{Kind: DecisionTurn, Dir: dir}

	var priorFree *domain.Position
	candidate := cur
	for step := 0; step < maxDistance; step++ {
		candidate = candidate.Step(dir)
		if !tiles.TileAt(candidate).CanEnter() || blocked.Has(candidate) {
			break
		}

		decision = MoveDecision{Kind: DecisionMove, Dir: dir, Dest: candidate}

		occupant, found := occupantAt(occupants, candidate)
		if found {
			if crit.allows(occupant.Role) {
				decision = attackDecision(crit, candidate, dir, occupant.ID, priorFree)
			} else {
				// Bumped into something we cannot fight: face it and stop.
				decision = MoveDecision{Kind: DecisionTurn, Dir: dir}
			}
			break
		}

		free := candidate
		priorFree = &free
	}
	return decision
}

func occupantAt(occupants []domain.Actor, p domain.Position) (domain.Actor, bool) {
	for _, a := range occupants {
		if a.Role != domain.RolePlayer && a.Role != domain.RoleEnemy {
			continue
		}
		if a.Pos == p {
			return a, true
		}
	}
	return domain.Actor{}, false
}

func attackDecision(
	crit AttackCriteria,
	targetPos domain.Position,
	dir domain.Direction,
	target domain.ActorID,
	priorFree *domain.Position,
) MoveDecision {
	// An actor that has already advanced through free tiles this move ends
	// adjacent to its kill even when its criteria say "don't move on kill".
	if crit.MoveIntoSpaceOnKill || priorFree != nil {
		return MoveDecision{
			Kind:       DecisionAttackAndMaybeMove,
			Dir:        dir,
			Dest:       targetPos,
			Target:     target,
			PriorFree:  priorFree,
			Damage:     crit.Damage,
			MoveOnKill: crit.MoveIntoSpaceOnKill,
		}
	}
	return MoveDecision{
		Kind:   DecisionAttackAndDontMove,
		Dir:    dir,
		Target: target,
		Damage: crit.Damage,
	}
}
