package engine

import (
	"github.com/tehsmeely/rogue-haddock/internal/domain"
	"github.com/tehsmeely/rogue-haddock/internal/turn"
)

// InputKind enumerates the player intents the core understands.
type InputKind uint8

const (
	// InputMove attempts a step (or an attack) in a direction.
	InputMove InputKind = iota
	// InputTurn changes facing without spending movement.
	InputTurn
	// InputWait passes the movement phase.
	InputWait
	// InputPower queues the ranged power to fire along the current facing.
	InputPower
)

// InputEvent is one tick's worth of player input.
type InputEvent struct {
	Kind InputKind
	Dir  domain.Direction
}

// GameEventKind enumerates the events systems emit to drive the game.
type GameEventKind uint8

const (
	// EventPhaseComplete releases the scheduler to the next phase. Every
	// phase has exactly one completer; the event is how it signals.
	EventPhaseComplete GameEventKind = iota
	EventPlayerDied
)

// GameEvent carries a state-driving occurrence to the end-of-tick processor.
type GameEvent struct {
	Kind  GameEventKind
	Phase turn.GamePhase
}

// InfoEvent is informational only: feedback systems (sound, UI flashes,
// score) subscribe, nothing in the core depends on them being consumed.
type InfoEvent uint8

const (
	InfoEnemyKilled InfoEvent = iota
	InfoPlayerHurt
	InfoPlayerKilled
	InfoPlayerMoved
	InfoSnailCollected
	InfoLightningFired
	InfoPowerFired
)

func (e InfoEvent) String() string {
	switch e {
	case InfoEnemyKilled:
		return "enemy_killed"
	case InfoPlayerHurt:
		return "player_hurt"
	case InfoPlayerKilled:
		return "player_killed"
	case InfoPlayerMoved:
		return "player_moved"
	case InfoSnailCollected:
		return "snail_collected"
	case InfoLightningFired:
		return "lightning_fired"
	case InfoPowerFired:
		return "power_fired"
	}
	return "unknown"
}

// InfoSink receives informational events. Implementations must not call back
// into the game.
type InfoSink interface {
	Info(InfoEvent)
}

// EffectKind names a transient-effect family. Each family completes exactly
// one phase; the mapping is a static table rather than behaviour attached to
// the effect types themselves.
type EffectKind uint8

const (
	EffectProjectile EffectKind = iota
	EffectLightning
	EffectVortex
)

// effectPhases maps each effect family to the phase its watcher completes.
var effectPhases = map[EffectKind]turn.GamePhase{
	EffectProjectile: turn.PhasePlayerPowerEffect,
	EffectLightning:  turn.PhaseEnemyPowerEffect,
	EffectVortex:     turn.PhasePreEnemyMovement,
}
