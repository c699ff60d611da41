// Package movement resolves one actor's intended move for a turn. Resolution
// is split into a pure decision step, computed against a snapshot of the
// world, and an apply step that mutates the entity store. Callers compute all
// decisions for a phase before applying any of them, so no actor's movement
// affects another's decision mid-phase.
package movement

import "github.com/tehsmeely/rogue-haddock/internal/domain"

// DecisionKind discriminates the MoveDecision variants.
type DecisionKind uint8

const (
	// DecisionTurn faces the direction without moving. This is the default
	// outcome; bumping into walls or friends is normal gameplay, not an
	// error.
	DecisionTurn DecisionKind = iota
	// DecisionMove steps to Dest.
	DecisionMove
	// DecisionAttackAndMaybeMove attacks Target and advances onto its tile
	// (or to the tile just short of it) when the blow kills.
	DecisionAttackAndMaybeMove
	// DecisionAttackAndDontMove attacks Target from the current tile.
	DecisionAttackAndDontMove
)

func (k DecisionKind) String() string {
	switch k {
	case DecisionTurn:
		return "turn"
	case DecisionMove:
		return "move"
	case DecisionAttackAndMaybeMove:
		return "attack_and_maybe_move"
	case DecisionAttackAndDontMove:
		return "attack_and_dont_move"
	}
	return "unknown"
}

// MoveDecision is the resolved outcome for one actor. Produced once per
// acting actor per movement phase and consumed exactly once by the apply
// step.
type MoveDecision struct {
	Kind DecisionKind
	// Dir is always set: the actor faces its attempted direction even when
	// nothing else happens.
	Dir domain.Direction
	// Dest is the movement destination (DecisionMove) or the target's tile
	// (DecisionAttackAndMaybeMove).
	Dest domain.Position
	// Target is the actor being attacked, for the attack variants.
	Target domain.ActorID
	// PriorFree is the last free tile the actor passed before reaching the
	// target during a multi-tile move, if any. A killer that does not move
	// into the vacated space still advances here, ending adjacent to its
	// kill rather than back where it started.
	PriorFree *domain.Position
	// Damage and MoveOnKill are carried over from the criteria that
	// produced the decision so apply needs no further context.
	Damage     int
	MoveOnKill bool
}

// AttackCriteria describes what an actor may attack and how it follows up.
type AttackCriteria struct {
	Damage              int
	CanAttackEnemy      bool
	CanAttackPlayer     bool
	MoveIntoSpaceOnKill bool
}

// PlayerAttackCriteria: the player attacks enemies and takes their tile on a
// kill.
func PlayerAttackCriteria() AttackCriteria {
	return AttackCriteria{
		Damage:              1,
		CanAttackEnemy:      true,
		CanAttackPlayer:     false,
		MoveIntoSpaceOnKill: true,
	}
}

// EnemyAttackCriteria: enemies attack the player and hold position on a kill
// (unless a multi-tile move already carried them forward).
func EnemyAttackCriteria() AttackCriteria {
	return AttackCriteria{
		Damage:              1,
		CanAttackEnemy:      false,
		CanAttackPlayer:     true,
		MoveIntoSpaceOnKill: false,
	}
}

// allows reports whether the criteria permit attacking the given role.
func (c AttackCriteria) allows(role domain.Role) bool {
	switch role {
	case domain.RolePlayer:
		return c.CanAttackPlayer
	case domain.RoleEnemy:
		return c.CanAttackEnemy
	}
	return false
}
