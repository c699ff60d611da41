// Package engine wires the simulation together: terrain, actors, the phase
// scheduler and the per-phase systems that advance one tick at a time.
package engine

import (
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tehsmeely/rogue-haddock/internal/domain"
	"github.com/tehsmeely/rogue-haddock/internal/mapgen"
	"github.com/tehsmeely/rogue-haddock/internal/movement"
	"github.com/tehsmeely/rogue-haddock/internal/turn"
	"github.com/tehsmeely/rogue-haddock/pkg/logger"
)

// Game owns one running session: a level, its actors and the turn machinery.
// It is not safe for concurrent use; drive it from a single loop.
type Game struct {
	cfg  mapgen.Config
	spec LevelSpec
	rng  *rand.Rand
	ids  *domain.IDSource

	tiles    TileMap
	store    *Store
	playerID domain.ActorID

	scheduler *turn.GlobalTurnCounter
	levels    turn.GlobalLevelCounter

	// one local counter per phase-completing system
	playerMoveLocal  turn.TurnCounter
	playerPowerLocal turn.TurnCounter
	preEnemyLocal    turn.TurnCounter
	enemyPowerLocal  turn.TurnCounter
	enemyMoveLocal   turn.TurnCounter

	pendingPower    *domain.Direction
	snailsCollected int
	over            bool

	events []GameEvent

	// Optional observers. Nil means no-op.
	Info     InfoSink
	Animator movement.Animator
}

// NewGame builds a game on a fresh level. A zero cfg.Seed falls back to the
// wall clock, so pass an explicit seed for reproducible runs.
func NewGame(cfg mapgen.Config, spec LevelSpec) (*Game, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	g := &Game{
		cfg:  cfg,
		spec: spec,
		rng:  rng,
		ids:  domain.NewIDSource(rng),
	}
	if err := g.NewLevel(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewLevel replaces the current level with a freshly generated one and
// restarts the turn cycle. The level counter carries across.
func (g *Game) NewLevel() error {
	level, err := BuildLevel(g.cfg, g.spec, g.rng, g.ids)
	if err != nil {
		return err
	}
	g.tiles = level.Tiles
	g.store = level.Store
	g.playerID = level.Player

	g.scheduler = turn.NewGlobalTurnCounter()
	g.playerMoveLocal = turn.TurnCounter{}
	g.playerPowerLocal = turn.TurnCounter{}
	g.preEnemyLocal = turn.TurnCounter{}
	g.enemyPowerLocal = turn.TurnCounter{}
	g.enemyMoveLocal = turn.TurnCounter{}
	g.pendingPower = nil

	lvl := g.levels.Increment()
	logger.Log.WithFields(logrus.Fields{"level": lvl}).Info("Entering level")
	return nil
}

// Over reports whether the player has died.
func (g *Game) Over() bool { return g.over }

// TurnCount returns the current turn number.
func (g *Game) TurnCount() uint64 { return g.scheduler.TurnCount() }

// CurrentPhase returns the phase the scheduler is in.
func (g *Game) CurrentPhase() turn.GamePhase { return g.scheduler.CurrentPhase() }

// Level returns the 1-based level number.
func (g *Game) Level() uint64 { return g.levels.Level() }

// SnailsCollected returns the running pickup tally.
func (g *Game) SnailsCollected() int { return g.snailsCollected }

// Store exposes the actor store for read-side consumers (rendering, tests).
func (g *Game) Store() *Store { return g.store }

// Tiles exposes the level terrain.
func (g *Game) Tiles() TileMap { return g.tiles }

// Tick runs every system once, then applies the events they emitted. Each
// system gates itself on the scheduler, so at most one phase completes per
// tick and a full turn takes five ticks. The player movement phase stalls
// until input arrives; pass nil input on ticks with none.
func (g *Game) Tick(input *InputEvent) {
	if g.over {
		return
	}

	g.playerMovementSystem(input)
	g.playerPowerSystem()
	g.preEnemySystem()
	g.enemyPowerSystem()
	g.enemyMovementSystem()
	g.healthWatcherSystem()

	g.processEvents()
}

func (g *Game) processEvents() {
	events := g.events
	g.events = nil
	for _, ev := range events {
		switch ev.Kind {
		case EventPhaseComplete:
			g.scheduler.Step(ev.Phase)
			logger.Log.WithFields(logrus.Fields{
				"turn":  g.scheduler.TurnCount(),
				"phase": g.scheduler.CurrentPhase(),
			}).Debug("Scheduler advanced")
		case EventPlayerDied:
			g.over = true
			g.info(InfoPlayerKilled)
			logger.Log.Info("Player died, game over")
		}
	}
}

func (g *Game) completePhase(p turn.GamePhase) {
	g.events = append(g.events, GameEvent{Kind: EventPhaseComplete, Phase: p})
}

func (g *Game) info(e InfoEvent) {
	if g.Info != nil {
		g.Info.Info(e)
	}
}
