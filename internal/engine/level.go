package engine

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"github.com/tehsmeely/rogue-haddock/internal/domain"
	"github.com/tehsmeely/rogue-haddock/internal/mapgen"
	"github.com/tehsmeely/rogue-haddock/pkg/logger"
)

// LevelSpec is the population of a freshly generated level.
type LevelSpec struct {
	Sharks    int `yaml:"sharks"`
	Crabs     int `yaml:"crabs"`
	Jellyfish int `yaml:"jellyfish"`
	Snails    int `yaml:"snails"`

	PlayerHealth  int `yaml:"player_health"`
	PlayerCharges int `yaml:"player_charges"`
}

func DefaultLevelSpec() LevelSpec {
	return LevelSpec{
		Sharks:        3,
		Crabs:         3,
		Jellyfish:     2,
		Snails:        4,
		PlayerHealth:  3,
		PlayerCharges: 2,
	}
}

// Level is a generated map plus its populated actor store.
type Level struct {
	Tiles  TileMap
	Store  *Store
	Player domain.ActorID
}

// BuildLevel generates terrain and populates it: the player goes on the
// generation start point, everything else is placed by cost-weighted
// sampling. Each placement round excludes every previously claimed tile, so
// no two actors ever spawn on the same cell.
func BuildLevel(cfg mapgen.Config, spec LevelSpec, rng *rand.Rand, ids *domain.IDSource) (Level, error) {
	cells, err := mapgen.GetCellMap(cfg, rng)
	if err != nil {
		return Level{}, err
	}
	start, ok := cells.StartPoint()
	if !ok {
		return Level{}, fmt.Errorf("generated map has no start point")
	}

	store := NewStore(ids)
	playerID := store.Spawn(domain.Actor{
		Pos:     start,
		Facing:  domain.DirLeft,
		Role:    domain.RolePlayer,
		Health:  spec.PlayerHealth,
		Charges: spec.PlayerCharges,
	})

	claimed := mapset.New[domain.Position]()
	claimed.Put(start)

	place := func(n int, template domain.Actor) {
		points := cells.DistributePointsByCost(rng, n, claimed)
		for _, p := range points {
			claimed.Put(p)
			a := template
			a.Pos = p
			a.Facing = domain.RandDirection(rng)
			store.Spawn(a)
		}
		if len(points) < n {
			logger.Log.WithFields(logrus.Fields{
				"kind":      template.Kind,
				"requested": n,
				"placed":    len(points),
			}).Warn("Not enough free cells for requested spawns")
		}
	}

	place(spec.Sharks, domain.Actor{Role: domain.RoleEnemy, Kind: domain.KindShark, Health: 1})
	place(spec.Crabs, domain.Actor{Role: domain.RoleEnemy, Kind: domain.KindCrab, Health: 2})
	place(spec.Jellyfish, domain.Actor{Role: domain.RoleEnemy, Kind: domain.KindJellyfish, Health: 1})
	place(spec.Snails, domain.Actor{Role: domain.RoleCollectible, Health: 1})

	logger.Log.WithFields(logrus.Fields{
		"cells":  cells.CellCount(),
		"start":  start,
		"actors": len(store.Actors()),
	}).Info("Level built")

	return Level{Tiles: NewTileMap(cells), Store: store, Player: playerID}, nil
}
