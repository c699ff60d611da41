package movement

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/tehsmeely/rogue-haddock/internal/domain"
	"github.com/tehsmeely/rogue-haddock/pkg/logger"
)

// Animator is the external movement-interpolation collaborator. Apply calls
// StartMove whenever an actor's grid position changes so the renderer can
// glide the sprite from its old tile; the simulation itself is done the
// moment the store position is updated.
type Animator interface {
	StartMove(id domain.ActorID, from, to domain.Position)
}

// AttackResult reports one resolved attack for downstream systems (damage
// feedback, death handling). Despawning dead actors is deliberately not done
// here; a separate health watcher owns that.
type AttackResult struct {
	Attacker  domain.ActorID
	Target    domain.ActorID
	Damage    int
	Remaining int
}

// ApplyMoveSingle mutates the store according to one decision. Store errors
// (the target despawned between decide and apply) are logged and the
// decision degrades to a facing change.
func ApplyMoveSingle(
	store domain.ActorStore,
	anim Animator,
	id domain.ActorID,
	d MoveDecision,
) *AttackResult {
	applyLogger := logger.Log.WithFields(logrus.Fields{
		"component": "movement_apply",
		"actor_id":  id,
		"decision":  d.Kind,
	})

	var result *AttackResult
	var moveTo *domain.Position

	switch d.Kind {
	case DecisionTurn:
		// Facing only.
	case DecisionMove:
		dest := d.Dest
		moveTo = &dest
	case DecisionAttackAndDontMove:
		remaining, err := store.Damage(d.Target, d.Damage)
		if err != nil {
			applyLogger.WithError(err).Warn("Could not damage attack target")
			break
		}
		result = &AttackResult{Attacker: id, Target: d.Target, Damage: d.Damage, Remaining: remaining}
	case DecisionAttackAndMaybeMove:
		remaining, err := store.Damage(d.Target, d.Damage)
		if err != nil {
			applyLogger.WithError(err).Warn("Could not damage attack target")
			break
		}
		result = &AttackResult{Attacker: id, Target: d.Target, Damage: d.Damage, Remaining: remaining}
		if remaining == 0 {
			if d.MoveOnKill {
				dest := d.Dest
				moveTo = &dest
			} else if d.PriorFree != nil {
				// Multi-tile mover stops just short of the vacated tile.
				moveTo = d.PriorFree
			}
		}
	}

	if err := store.SetFacing(id, d.Dir); err != nil {
		applyLogger.WithError(err).Warn("Could not set facing")
		return result
	}
	if moveTo != nil {
		from, ok := store.Get(id)
		if err := store.SetPosition(id, *moveTo); err != nil {
			applyLogger.WithError(err).Warn("Could not set position")
			return result
		}
		if anim != nil && ok {
			anim.StartMove(id, from.Pos, *moveTo)
		}
	}
	return result
}

// ApplyMove applies a batch of decisions in ascending ActorID order. IDs are
// ULIDs, so this is creation order: stable across runs, and it makes
// simultaneous mutual attacks resolve deterministically.
func ApplyMove(
	store domain.ActorStore,
	anim Animator,
	decisions map[domain.ActorID]MoveDecision,
) []AttackResult {
	ids := make([]domain.ActorID, 0, len(decisions))
	for id := range decisions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var results []AttackResult
	for _, id := range ids {
		if r := ApplyMoveSingle(store, anim, id, decisions[id]); r != nil {
			results = append(results, *r)
		}
	}
	return results
}
