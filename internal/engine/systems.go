package engine

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/tehsmeely/rogue-haddock/internal/domain"
	"github.com/tehsmeely/rogue-haddock/internal/movement"
	"github.com/tehsmeely/rogue-haddock/internal/projectile"
	"github.com/tehsmeely/rogue-haddock/internal/turn"
	"github.com/tehsmeely/rogue-haddock/pkg/logger"
)

// jellyfishFullCharge is how many turns a jellyfish banks before it can
// discharge lightning at an aligned player.
const jellyfishFullCharge = 3

// playerMovementSystem resolves one input during the player movement phase.
// No input means the phase stalls; the rest of the cycle waits.
func (g *Game) playerMovementSystem(input *InputEvent) {
	if !g.scheduler.CanTakeTurn(&g.playerMoveLocal, turn.PhasePlayerMovement) {
		return
	}
	if input == nil {
		return
	}
	player, err := g.store.Player()
	if err != nil {
		logger.Log.WithError(err).Warn("Skipping player movement")
		return
	}

	switch input.Kind {
	case InputMove:
		before := player.Pos
		decision := movement.DecideMove(
			player.Pos, input.Dir, 1,
			movement.PlayerAttackCriteria(),
			g.store.Actors(), g.tiles,
			mapset.New[domain.Position](),
		)
		movement.ApplyMoveSingle(g.store, g.animator(), player.ID, decision)
		if after, ok := g.store.Get(player.ID); ok && after.Pos != before {
			g.info(InfoPlayerMoved)
			g.collectSnails(after.Pos)
		}
	case InputTurn:
		if err := g.store.SetFacing(player.ID, input.Dir); err != nil {
			logger.Log.WithError(err).Warn("Failed to set player facing")
		}
	case InputWait:
		// spend the phase doing nothing
	case InputPower:
		if player.Charges > 0 {
			dir := player.Facing
			g.pendingPower = &dir
		} else {
			logger.Log.Debug("Power input with no charges, treating as wait")
		}
	}

	g.playerMoveLocal.Incr()
	g.completePhase(turn.PhasePlayerMovement)
}

// collectSnails picks up any collectibles on the tile the player now occupies.
func (g *Game) collectSnails(p domain.Position) {
	for _, a := range g.store.ActorsAt(p) {
		if a.Role != domain.RoleCollectible {
			continue
		}
		g.store.Remove(a.ID)
		g.snailsCollected++
		g.info(InfoSnailCollected)
		logger.Log.WithFields(logrus.Fields{
			"pos":   p,
			"total": g.snailsCollected,
		}).Info("Snail collected")
	}
}

// playerPowerSystem fires the queued ranged power, if any, and completes the
// player power effect phase.
func (g *Game) playerPowerSystem() {
	if !g.scheduler.CanTakeTurn(&g.playerPowerLocal, effectPhases[EffectProjectile]) {
		return
	}

	if g.pendingPower != nil {
		dir := *g.pendingPower
		g.pendingPower = nil
		if player, err := g.store.Player(); err != nil {
			logger.Log.WithError(err).Warn("Dropping queued power")
		} else {
			fate := projectile.ScanToEndpoint(
				player.Pos, dir,
				g.store.ActorsByRole(domain.RoleEnemy),
				g.tiles, true,
			)
			if _, err := g.store.AddCharges(player.ID, -1); err != nil {
				logger.Log.WithError(err).Warn("Failed to spend power charge")
			}
			g.info(InfoPowerFired)
			if fate.Hit {
				if _, err := g.store.Damage(fate.Target, 1); err != nil {
					logger.Log.WithError(err).Warn("Failed to damage power target")
				}
			}
			logger.Log.WithFields(logrus.Fields{
				"direction": dir,
				"end":       fate.End,
				"hit":       fate.Hit,
			}).Debug("Power fired")
		}
	}

	g.playerPowerLocal.Incr()
	g.completePhase(effectPhases[EffectProjectile])
}

// preEnemySystem completes the pre-enemy-movement phase. Vortex-style pull
// effects would resolve here; none exist yet, so the phase passes straight
// through.
func (g *Game) preEnemySystem() {
	if !g.scheduler.CanTakeTurn(&g.preEnemyLocal, effectPhases[EffectVortex]) {
		return
	}
	g.preEnemyLocal.Incr()
	g.completePhase(effectPhases[EffectVortex])
}

// enemyPowerSystem runs jellyfish lightning. A jellyfish charges one step per
// turn; at full charge it discharges at the player if they share a row or
// column, otherwise it holds the charge.
func (g *Game) enemyPowerSystem() {
	if !g.scheduler.CanTakeTurn(&g.enemyPowerLocal, effectPhases[EffectLightning]) {
		return
	}

	player, playerErr := g.store.Player()
	for _, jelly := range g.store.ActorsByRole(domain.RoleEnemy) {
		if jelly.Kind != domain.KindJellyfish {
			continue
		}
		if jelly.Charges < jellyfishFullCharge {
			if _, err := g.store.AddCharges(jelly.ID, 1); err != nil {
				logger.Log.WithError(err).Warn("Failed to charge jellyfish")
			}
			continue
		}
		if playerErr != nil || !player.Pos.SharesAxis(jelly.Pos) {
			continue
		}
		dir, ok := domain.DirectionTowards(jelly.Pos, player.Pos)
		if !ok {
			continue
		}
		// A bolt fills the corridor to the wall but only the first actor in
		// it takes damage.
		fate := projectile.ScanToEndpoint(
			jelly.Pos, dir,
			[]domain.Actor{player},
			g.tiles, false,
		)
		g.info(InfoLightningFired)
		if _, err := g.store.AddCharges(jelly.ID, -jellyfishFullCharge); err != nil {
			logger.Log.WithError(err).Warn("Failed to discharge jellyfish")
		}
		if fate.Hit {
			if _, err := g.store.Damage(player.ID, 1); err != nil {
				logger.Log.WithError(err).Warn("Failed to damage player")
			} else {
				g.info(InfoPlayerHurt)
			}
		}
		logger.Log.WithFields(logrus.Fields{
			"jellyfish": jelly.ID,
			"direction": dir,
			"hit":       fate.Hit,
		}).Debug("Lightning fired")
	}

	g.enemyPowerLocal.Incr()
	g.completePhase(effectPhases[EffectLightning])
}

// enemyMovementSystem decides all enemy moves against a pre-phase snapshot,
// then applies them as a batch in creation order. Destinations claimed by
// earlier enemies are blocked for later ones, so two enemies never resolve
// onto the same tile.
func (g *Game) enemyMovementSystem() {
	if !g.scheduler.CanTakeTurn(&g.enemyMoveLocal, turn.PhaseEnemyMovement) {
		return
	}

	snapshot := g.store.Actors()
	blocked := mapset.New[domain.Position]()
	decisions := make(map[domain.ActorID]movement.MoveDecision)

	for _, enemy := range g.store.ActorsByRole(domain.RoleEnemy) {
		dir := domain.WeightedRandDirection(g.rng, enemy.Kind.MoveWeights())
		maxDist := enemy.Kind.MoveDistance(dir)
		if maxDist == 0 {
			continue
		}
		decision := movement.DecideMove(
			enemy.Pos, dir, maxDist,
			movement.EnemyAttackCriteria(),
			snapshot, g.tiles, blocked,
		)
		decisions[enemy.ID] = decision
		switch decision.Kind {
		case movement.DecisionMove:
			blocked.Put(decision.Dest)
		case movement.DecisionAttackAndMaybeMove:
			// the tile the attacker may advance onto is claimed too
			if decision.MoveOnKill {
				blocked.Put(decision.Dest)
			} else if decision.PriorFree != nil {
				blocked.Put(*decision.PriorFree)
			}
		}
	}

	results := movement.ApplyMove(g.store, g.animator(), decisions)
	for _, r := range results {
		if r.Target == g.playerID {
			g.info(InfoPlayerHurt)
		}
	}

	g.enemyMoveLocal.Incr()
	g.completePhase(turn.PhaseEnemyMovement)
}

// healthWatcherSystem reaps dead combatants. It runs every tick regardless of
// phase so deaths resolve in the same tick as the damage.
func (g *Game) healthWatcherSystem() {
	for _, a := range g.store.Actors() {
		if a.Health > 0 {
			continue
		}
		switch a.Role {
		case domain.RolePlayer:
			g.events = append(g.events, GameEvent{Kind: EventPlayerDied})
		case domain.RoleEnemy:
			g.store.Remove(a.ID)
			g.info(InfoEnemyKilled)
			logger.Log.WithFields(logrus.Fields{
				"id":   a.ID,
				"kind": a.Kind,
			}).Debug("Enemy died")
		}
	}
}

// animator returns the configured animator or a no-op stand-in.
func (g *Game) animator() movement.Animator {
	if g.Animator != nil {
		return g.Animator
	}
	return noopAnimator{}
}

type noopAnimator struct{}

func (noopAnimator) StartMove(domain.ActorID, domain.Position, domain.Position) {}
