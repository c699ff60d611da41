// Package turn implements the phase-gated scheduler. A global counter owns
// the current phase and the turn number; every consuming system keeps its own
// private TurnCounter and uses CanTakeTurn as its sole gate, so many
// independently-polled systems each act exactly once per phase instance
// without any shared owner of "who goes next".
package turn

import (
	"github.com/sirupsen/logrus"

	"github.com/tehsmeely/rogue-haddock/pkg/logger"
)

// GamePhase is one of the five ordered slots in a turn.
type GamePhase uint8

const (
	PhasePlayerMovement GamePhase = iota
	PhasePlayerPowerEffect
	PhasePreEnemyMovement
	PhaseEnemyPowerEffect
	PhaseEnemyMovement
)

// AllPhases lists the phases in cycle order.
var AllPhases = [5]GamePhase{
	PhasePlayerMovement,
	PhasePlayerPowerEffect,
	PhasePreEnemyMovement,
	PhaseEnemyPowerEffect,
	PhaseEnemyMovement,
}

// Next returns the phase that follows this one in the cycle.
func (p GamePhase) Next() GamePhase {
	switch p {
	case PhasePlayerMovement:
		return PhasePlayerPowerEffect
	case PhasePlayerPowerEffect:
		return PhasePreEnemyMovement
	case PhasePreEnemyMovement:
		return PhaseEnemyPowerEffect
	case PhaseEnemyPowerEffect:
		return PhaseEnemyMovement
	case PhaseEnemyMovement:
		return PhasePlayerMovement
	}
	return PhasePlayerMovement
}

// terminal reports whether leaving this phase completes a full turn.
func (p GamePhase) terminal() bool {
	return p == PhaseEnemyMovement
}

func (p GamePhase) String() string {
	switch p {
	case PhasePlayerMovement:
		return "player_movement"
	case PhasePlayerPowerEffect:
		return "player_power_effect"
	case PhasePreEnemyMovement:
		return "pre_enemy_movement"
	case PhaseEnemyPowerEffect:
		return "enemy_power_effect"
	case PhaseEnemyMovement:
		return "enemy_movement"
	}
	return "unknown"
}

// TurnCounter is a system-private "last turn I acted in" marker. Systems
// increment it immediately after deciding to act so they cannot act twice in
// the same phase instance.
type TurnCounter struct {
	count uint64
}

// Incr marks that the owning system has taken its action for this turn.
func (c *TurnCounter) Incr() {
	c.count++
}

// Count returns the number of turns the owning system has acted in.
func (c *TurnCounter) Count() uint64 {
	return c.count
}

// GlobalTurnCounter holds the shared phase state. It is passed explicitly to
// every system that needs it; nothing in this package is ambient.
type GlobalTurnCounter struct {
	turnCount    uint64
	currentPhase GamePhase
}

// NewGlobalTurnCounter starts at turn 1 in the player movement phase.
func NewGlobalTurnCounter() *GlobalTurnCounter {
	return &GlobalTurnCounter{turnCount: 1, currentPhase: PhasePlayerMovement}
}

// TurnCount returns the current global turn number (starts at 1).
func (g *GlobalTurnCounter) TurnCount() uint64 {
	return g.turnCount
}

// CurrentPhase returns the phase currently being resolved.
func (g *GlobalTurnCounter) CurrentPhase() GamePhase {
	return g.currentPhase
}

// Step advances to the next phase, but only when called with the phase that
// is actually current. A mismatched call is logged and ignored: reordering
// races between independently-polled completers are expected, and must never
// take the scheduler down. Leaving the terminal phase increments the turn
// count, so it rises exactly once per full cycle.
func (g *GlobalTurnCounter) Step(fromPhase GamePhase) {
	if fromPhase != g.currentPhase {
		logger.Log.WithFields(logrus.Fields{
			"current_phase": g.currentPhase,
			"step_from":     fromPhase,
		}).Warn("Attempted to step phase from non-current phase")
		return
	}
	if g.currentPhase.terminal() {
		g.turnCount++
	}
	g.currentPhase = g.currentPhase.Next()
}

// CanTakeTurn is the gate systems poll before acting: true iff the system
// has not yet acted this turn and the wanted phase is current. It is pure;
// a caller that acts on a true result must Incr its local counter itself.
func (g *GlobalTurnCounter) CanTakeTurn(local *TurnCounter, phase GamePhase) bool {
	return local.count < g.turnCount && phase == g.currentPhase
}

// GlobalLevelCounter numbers the levels of a run.
type GlobalLevelCounter struct {
	count uint64
}

// Increment moves to the next level and returns its number.
func (c *GlobalLevelCounter) Increment() uint64 {
	c.count++
	return c.count
}

// Level returns the current level number (0 before the first Increment).
func (c *GlobalLevelCounter) Level() uint64 {
	return c.count
}

// Reset returns the counter to the pre-game state.
func (c *GlobalLevelCounter) Reset() {
	c.count = 0
}
