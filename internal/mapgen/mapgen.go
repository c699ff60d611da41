// Package mapgen synthesizes playable levels: a cellular-automata pass over
// random noise, a deterministic start-cell search, and a reachability cull
// that throws away disconnected pockets. Generation retries with fresh
// randomness until the reachable region is big enough to play in.
package mapgen

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tehsmeely/rogue-haddock/internal/cellmap"
	"github.com/tehsmeely/rogue-haddock/pkg/logger"
)

// GetCellMap generates maps until one has at least cfg.MinSize reachable
// cells, up to cfg.MaxTries attempts. Failure to produce a big enough map is
// a broken-configuration condition the caller should treat as fatal; a level
// cannot be played without a valid map.
func GetCellMap(cfg Config, rng *rand.Rand) (cellmap.CellMap, error) {
	for attempt := 0; attempt < cfg.MaxTries; attempt++ {
		start := time.Now()
		m, ok := runSingle(cfg, rng)
		logger.Log.WithFields(logrus.Fields{
			"attempt":  attempt,
			"duration": time.Since(start),
			"valid":    ok,
		}).Debug("Map generation attempt finished")
		if ok {
			return m, nil
		}
	}
	return cellmap.CellMap{}, fmt.Errorf(
		"unable to generate a cell map of at least %d cells within %d tries",
		cfg.MinSize, cfg.MaxTries)
}

// runSingle is one full generation attempt: seed, smooth, find a start,
// cull to the reachable region, and normalize to the origin.
func runSingle(cfg Config, rng *rand.Rand) (cellmap.CellMap, bool) {
	grid := NewGrid(cfg.Width, cfg.Height, cfg.WallChance, rng)
	for i := 0; i < cfg.SmoothPasses; i++ {
		grid.Smooth()
	}
	start, ok := grid.FindStart()
	if !ok {
		logger.Log.Debug("Generated grid has no open start cell")
		return cellmap.CellMap{}, false
	}
	m := grid.MapAndCull(start)
	if m.CellCount() < cfg.MinSize {
		return cellmap.CellMap{}, false
	}
	return m.Normalize(), true
}
