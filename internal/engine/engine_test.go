package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tehsmeely/rogue-haddock/internal/cellmap"
	"github.com/tehsmeely/rogue-haddock/internal/domain"
	"github.com/tehsmeely/rogue-haddock/internal/mapgen"
	"github.com/tehsmeely/rogue-haddock/internal/turn"
)

func pos(x, y int) domain.Position { return domain.Position{X: x, Y: y} }

// waterRect opens a w by h rectangle of water with its corner at the origin.
func waterRect(w, h int) map[domain.Position]int {
	cells := make(map[domain.Position]int)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			cells[pos(x, y)] = x + y
		}
	}
	return cells
}

type infoRecorder struct {
	events []InfoEvent
}

func (r *infoRecorder) Info(e InfoEvent) { r.events = append(r.events, e) }

func (r *infoRecorder) count(e InfoEvent) int {
	n := 0
	for _, got := range r.events {
		if got == e {
			n++
		}
	}
	return n
}

// gameOnCells builds a game directly on hand-laid terrain and actors,
// bypassing generation. Actors are spawned in slice order.
func gameOnCells(cells map[domain.Position]int, actors ...domain.Actor) (*Game, []domain.ActorID, *infoRecorder) {
	rng := rand.New(rand.NewSource(1))
	ids := domain.NewIDSource(rng)
	store := NewStore(ids)
	spawned := make([]domain.ActorID, 0, len(actors))
	for _, a := range actors {
		spawned = append(spawned, store.Spawn(a))
	}
	sink := &infoRecorder{}
	g := &Game{
		rng:       rng,
		ids:       ids,
		tiles:     NewTileMap(cellmap.New(cells)),
		store:     store,
		scheduler: turn.NewGlobalTurnCounter(),
		Info:      sink,
	}
	if p, err := store.Player(); err == nil {
		g.playerID = p.ID
	}
	return g, spawned, sink
}

// runTurn feeds one input and ticks until the turn counter advances.
func runTurn(t *testing.T, g *Game, input *InputEvent) {
	t.Helper()
	start := g.TurnCount()
	g.Tick(input)
	for i := 0; g.TurnCount() == start && !g.Over(); i++ {
		require.Less(t, i, 10, "turn did not complete")
		g.Tick(nil)
	}
}

func player(p domain.Position, health, charges int) domain.Actor {
	return domain.Actor{Pos: p, Facing: domain.DirRight, Role: domain.RolePlayer, Health: health, Charges: charges}
}

func TestFullTurnTakesFiveTicks(t *testing.T) {
	g, _, _ := gameOnCells(waterRect(10, 10), player(pos(5, 5), 3, 0))

	g.Tick(&InputEvent{Kind: InputWait})
	for i := 0; i < 4; i++ {
		g.Tick(nil)
	}

	assert.Equal(t, uint64(2), g.TurnCount())
	assert.Equal(t, turn.PhasePlayerMovement, g.CurrentPhase())
}

func TestTickStallsWithoutInput(t *testing.T) {
	g, _, _ := gameOnCells(waterRect(10, 10), player(pos(5, 5), 3, 0))

	for i := 0; i < 3; i++ {
		g.Tick(nil)
	}

	assert.Equal(t, uint64(1), g.TurnCount())
	assert.Equal(t, turn.PhasePlayerMovement, g.CurrentPhase())
}

func TestPlayerMoveCollectsSnail(t *testing.T) {
	g, ids, sink := gameOnCells(waterRect(10, 10),
		player(pos(5, 5), 3, 0),
		domain.Actor{Pos: pos(6, 5), Role: domain.RoleCollectible, Health: 1},
	)

	runTurn(t, g, &InputEvent{Kind: InputMove, Dir: domain.DirRight})

	got, ok := g.store.Get(ids[0])
	require.True(t, ok)
	assert.Equal(t, pos(6, 5), got.Pos)
	_, snailAlive := g.store.Get(ids[1])
	assert.False(t, snailAlive, "snail should be collected")
	assert.Equal(t, 1, g.SnailsCollected())
	assert.Equal(t, 1, sink.count(InfoSnailCollected))
	assert.Equal(t, 1, sink.count(InfoPlayerMoved))
}

func TestPlayerAttackKillsAndAdvances(t *testing.T) {
	g, ids, sink := gameOnCells(waterRect(10, 10),
		player(pos(5, 5), 3, 0),
		domain.Actor{Pos: pos(6, 5), Role: domain.RoleEnemy, Kind: domain.KindShark, Health: 1},
	)

	runTurn(t, g, &InputEvent{Kind: InputMove, Dir: domain.DirRight})

	_, sharkAlive := g.store.Get(ids[1])
	assert.False(t, sharkAlive)
	got, ok := g.store.Get(ids[0])
	require.True(t, ok)
	assert.Equal(t, pos(6, 5), got.Pos, "player advances onto the killed enemy's tile")
	assert.Equal(t, 1, sink.count(InfoEnemyKilled))
}

func TestPowerFiresAlongFacingAndSpendsCharge(t *testing.T) {
	g, ids, sink := gameOnCells(waterRect(10, 10),
		player(pos(2, 5), 3, 2),
		domain.Actor{Pos: pos(7, 5), Role: domain.RoleEnemy, Kind: domain.KindShark, Health: 1},
	)

	runTurn(t, g, &InputEvent{Kind: InputPower})

	_, sharkAlive := g.store.Get(ids[1])
	assert.False(t, sharkAlive, "power bolt should kill the shark down the row")
	got, ok := g.store.Get(ids[0])
	require.True(t, ok)
	assert.Equal(t, 1, got.Charges)
	assert.Equal(t, 1, sink.count(InfoPowerFired))
	assert.Equal(t, 1, sink.count(InfoEnemyKilled))
}

func TestPowerWithNoChargesDoesNothing(t *testing.T) {
	g, ids, sink := gameOnCells(waterRect(10, 10),
		player(pos(2, 5), 3, 0),
		domain.Actor{Pos: pos(7, 5), Role: domain.RoleEnemy, Kind: domain.KindShark, Health: 1},
	)

	runTurn(t, g, &InputEvent{Kind: InputPower})

	_, sharkAlive := g.store.Get(ids[1])
	assert.True(t, sharkAlive)
	assert.Equal(t, 0, sink.count(InfoPowerFired))
}

func TestJellyfishFiresAtAlignedPlayer(t *testing.T) {
	// A single column of water keeps the jellyfish stationary and aligned.
	cells := make(map[domain.Position]int)
	for y := 0; y < 11; y++ {
		cells[pos(5, y)] = y
	}
	g, ids, sink := gameOnCells(cells,
		player(pos(5, 8), 3, 0),
		domain.Actor{Pos: pos(5, 2), Role: domain.RoleEnemy, Kind: domain.KindJellyfish, Health: 1, Charges: jellyfishFullCharge},
	)

	runTurn(t, g, &InputEvent{Kind: InputWait})

	got, ok := g.store.Get(ids[0])
	require.True(t, ok)
	assert.Equal(t, 2, got.Health, "lightning takes one health")
	jelly, ok := g.store.Get(ids[1])
	require.True(t, ok)
	assert.Equal(t, 0, jelly.Charges, "discharge resets the charge bank")
	assert.Equal(t, 1, sink.count(InfoLightningFired))
	assert.Equal(t, 1, sink.count(InfoPlayerHurt))
}

func TestJellyfishHoldsChargeWhenUnaligned(t *testing.T) {
	g, ids, sink := gameOnCells(waterRect(10, 10),
		player(pos(2, 7), 3, 0),
		domain.Actor{Pos: pos(5, 2), Role: domain.RoleEnemy, Kind: domain.KindJellyfish, Health: 1, Charges: jellyfishFullCharge},
	)

	runTurn(t, g, &InputEvent{Kind: InputWait})

	jelly, ok := g.store.Get(ids[1])
	require.True(t, ok)
	assert.Equal(t, jellyfishFullCharge, jelly.Charges, "a full charge is held until the player lines up")
	assert.Equal(t, 0, sink.count(InfoLightningFired))
}

func TestJellyfishChargesOneStepPerTurn(t *testing.T) {
	g, ids, _ := gameOnCells(waterRect(10, 10),
		player(pos(2, 7), 3, 0),
		domain.Actor{Pos: pos(5, 2), Role: domain.RoleEnemy, Kind: domain.KindJellyfish, Health: 1, Charges: 0},
	)

	runTurn(t, g, &InputEvent{Kind: InputWait})
	runTurn(t, g, &InputEvent{Kind: InputWait})

	jelly, ok := g.store.Get(ids[1])
	require.True(t, ok)
	assert.Equal(t, 2, jelly.Charges)
}

func TestGameOverWhenLightningKillsPlayer(t *testing.T) {
	cells := make(map[domain.Position]int)
	for y := 0; y < 11; y++ {
		cells[pos(5, y)] = y
	}
	g, _, sink := gameOnCells(cells,
		player(pos(5, 8), 1, 0),
		domain.Actor{Pos: pos(5, 2), Role: domain.RoleEnemy, Kind: domain.KindJellyfish, Health: 1, Charges: jellyfishFullCharge},
	)

	runTurn(t, g, &InputEvent{Kind: InputWait})

	assert.True(t, g.Over())
	assert.Equal(t, 1, sink.count(InfoPlayerKilled))

	turnAtDeath := g.TurnCount()
	g.Tick(&InputEvent{Kind: InputWait})
	assert.Equal(t, turnAtDeath, g.TurnCount(), "ticks after game over are no-ops")
}

func TestEnemyEventuallyAttacksCorneredPlayer(t *testing.T) {
	// Two-tile corridor: the shark's only legal move is into the player.
	cells := map[domain.Position]int{pos(0, 0): 0, pos(1, 0): 1}
	g, ids, sink := gameOnCells(cells,
		player(pos(0, 0), 100, 0),
		domain.Actor{Pos: pos(1, 0), Role: domain.RoleEnemy, Kind: domain.KindShark, Health: 1},
	)

	for i := 0; i < 50 && sink.count(InfoPlayerHurt) == 0; i++ {
		runTurn(t, g, &InputEvent{Kind: InputWait})
		shark, ok := g.store.Get(ids[1])
		require.True(t, ok)
		assert.Equal(t, pos(1, 0), shark.Pos, "attacker holds position against a surviving player")
	}

	assert.Greater(t, sink.count(InfoPlayerHurt), 0)
	got, ok := g.store.Get(ids[0])
	require.True(t, ok)
	assert.Less(t, got.Health, 100)
}

func TestEnemiesNeverShareATile(t *testing.T) {
	actors := []domain.Actor{
		player(pos(0, 0), 1000, 0),
		{Pos: pos(3, 3), Role: domain.RoleEnemy, Kind: domain.KindShark, Health: 1},
		{Pos: pos(4, 3), Role: domain.RoleEnemy, Kind: domain.KindShark, Health: 1},
		{Pos: pos(3, 4), Role: domain.RoleEnemy, Kind: domain.KindCrab, Health: 2},
		{Pos: pos(4, 4), Role: domain.RoleEnemy, Kind: domain.KindCrab, Health: 2},
	}
	g, _, _ := gameOnCells(waterRect(6, 6), actors...)

	for i := 0; i < 30; i++ {
		runTurn(t, g, &InputEvent{Kind: InputWait})
		seen := make(map[domain.Position]domain.ActorID)
		for _, a := range g.store.Actors() {
			if prev, dup := seen[a.Pos]; dup {
				t.Fatalf("turn %d: actors %s and %s share tile %v", i, prev, a.ID, a.Pos)
			}
			seen[a.Pos] = a.ID
		}
	}
}

func TestBuildLevelPlacesEveryoneOnDistinctWater(t *testing.T) {
	cfg := mapgen.DefaultConfig()
	spec := DefaultLevelSpec()

	var level Level
	built := false
	for seed := int64(1); seed <= 50 && !built; seed++ {
		rng := rand.New(rand.NewSource(seed))
		ids := domain.NewIDSource(rng)
		if got, err := BuildLevel(cfg, spec, rng, ids); err == nil {
			level = got
			built = true
		}
	}
	require.True(t, built, "no seed in 1..50 produced a level")

	p, err := level.Store.Player()
	require.NoError(t, err)
	start, ok := level.Tiles.Cells().StartPoint()
	require.True(t, ok)
	assert.Equal(t, start, p.Pos, "player spawns on the generation start point")

	seen := make(map[domain.Position]bool)
	for _, a := range level.Store.Actors() {
		assert.True(t, level.Tiles.TileAt(a.Pos).CanEnter(), "actor %s spawned in a wall at %v", a.ID, a.Pos)
		assert.False(t, seen[a.Pos], "two actors share spawn tile %v", a.Pos)
		seen[a.Pos] = true
	}

	enemies := level.Store.ActorsByRole(domain.RoleEnemy)
	assert.LessOrEqual(t, len(enemies), spec.Sharks+spec.Crabs+spec.Jellyfish)
	assert.LessOrEqual(t, len(level.Store.ActorsByRole(domain.RoleCollectible)), spec.Snails)
}

func TestNewGameStartsAtTurnOneLevelOne(t *testing.T) {
	cfg := mapgen.DefaultConfig()

	var g *Game
	for seed := int64(1); seed <= 50 && g == nil; seed++ {
		cfg.Seed = seed
		if got, err := NewGame(cfg, DefaultLevelSpec()); err == nil {
			g = got
		}
	}
	require.NotNil(t, g, "no seed in 1..50 produced a game")

	assert.Equal(t, uint64(1), g.TurnCount())
	assert.Equal(t, uint64(1), g.Level())
	assert.Equal(t, turn.PhasePlayerMovement, g.CurrentPhase())
	assert.False(t, g.Over())
}
