// Command mapgen generates a level map from a config file, draws it to the
// terminal and lists the spawn points the population pass would use. Handy
// for eyeballing generation parameters without booting the game.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"

	"github.com/tehsmeely/rogue-haddock/internal/cellmap"
	"github.com/tehsmeely/rogue-haddock/internal/domain"
	"github.com/tehsmeely/rogue-haddock/internal/engine"
	"github.com/tehsmeely/rogue-haddock/internal/mapgen"
	"github.com/tehsmeely/rogue-haddock/pkg/logger"
)

var (
	colorWall  = color.Style{color.FgGray}
	colorWater = color.Style{color.FgBlue}
	colorStart = color.Style{color.FgGreen, color.OpBold}
	colorEnd   = color.Style{color.FgRed, color.OpBold}
	colorSpawn = color.Style{color.FgYellow, color.OpBold}
)

type fileConfig struct {
	Map   mapgen.Config    `yaml:"map"`
	Level engine.LevelSpec `yaml:"level"`
}

func loadConfig(path string) (fileConfig, error) {
	cfg := fileConfig{
		Map:   mapgen.DefaultConfig(),
		Level: engine.DefaultLevelSpec(),
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "path to a yaml config file")
	seed := flag.Int64("seed", 0, "override the config seed (0 keeps it)")
	flag.Parse()

	logger.Init()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	if *seed != 0 {
		cfg.Map.Seed = *seed
	}
	if cfg.Map.Seed == 0 {
		cfg.Map.Seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(cfg.Map.Seed))
	cells, err := mapgen.GetCellMap(cfg.Map, rng)
	if err != nil {
		logger.Log.WithError(err).WithFields(logrus.Fields{
			"seed": cfg.Map.Seed,
		}).Fatal("Map generation failed")
	}

	spawns := spawnPoints(cells, cfg.Level, rng)
	draw(cells, spawns)

	fmt.Printf("seed %d, %d cells, %d spawn points\n", cfg.Map.Seed, cells.CellCount(), spawns.Size())
}

// spawnPoints runs the same cost-weighted placement the level builder uses
// and returns every claimed tile except the player start.
func spawnPoints(cells cellmap.CellMap, spec engine.LevelSpec, rng *rand.Rand) mapset.Set[domain.Position] {
	claimed := mapset.New[domain.Position]()
	if start, ok := cells.StartPoint(); ok {
		claimed.Put(start)
	}
	spawns := mapset.New[domain.Position]()
	for _, n := range []int{spec.Sharks, spec.Crabs, spec.Jellyfish, spec.Snails} {
		for _, p := range cells.DistributePointsByCost(rng, n, claimed) {
			claimed.Put(p)
			spawns.Put(p)
		}
	}
	return spawns
}

func draw(cells cellmap.CellMap, spawns mapset.Set[domain.Position]) {
	start, _ := cells.StartPoint()
	end, _ := cells.EndPoint()
	// RectSize is max minus min, so both bounds are inclusive on a
	// normalized map.
	width, height := cells.RectSize()

	// y grows upward, so the top row prints first
	for y := height; y >= 0; y-- {
		for x := 0; x <= width; x++ {
			p := domain.Position{X: x, Y: y}
			switch {
			case !cells.Contains(p):
				colorWall.Print("#")
			case p == start:
				colorStart.Print("S")
			case p == end:
				colorEnd.Print("E")
			case spawns.Has(p):
				colorSpawn.Print("*")
			default:
				colorWater.Print(".")
			}
		}
		fmt.Println()
	}
}
