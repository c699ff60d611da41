package mapgen

// Config holds the terrain generation parameters. Zero Seed means "derive
// from the clock" and is resolved by the caller that builds the RNG.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// WallChance is the probability a cell starts as rock before smoothing.
	WallChance   float64 `yaml:"wall_chance"`
	SmoothPasses int     `yaml:"smooth_passes"`
	// MinSize is the minimum reachable cell count for a map to be playable.
	MinSize  int   `yaml:"min_size"`
	MaxTries int   `yaml:"max_tries"`
	Seed     int64 `yaml:"seed"`
}

// DefaultConfig returns the parameters the game ships with.
func DefaultConfig() Config {
	return Config{
		Width:        20,
		Height:       20,
		WallChance:   0.55,
		SmoothPasses: 6,
		MinSize:      50,
		MaxTries:     10,
	}
}
