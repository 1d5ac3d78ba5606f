package loader

import (
	"fmt"

	"Aven/internal/config"
	"Aven/internal/world"
)

// FromConfig builds the chunk loader named by cfg.Kind and installs the
// configured palette colours.
func FromConfig(cfg config.GeneratorConfig) (world.ChunkLoader, error) {
	if err := ApplyColors(cfg.Colors); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case "terrain", "":
		return NewTerrainGenerator(TerrainOptions{
			Seed:       cfg.Seed,
			Alpha:      cfg.Alpha,
			Beta:       cfg.Beta,
			Octaves:    cfg.Octaves,
			Scale:      cfg.Scale,
			Amplitude:  cfg.Amplitude,
			BaseHeight: cfg.BaseHeight,
			WaterLevel: cfg.WaterLevel,
		}), nil
	case "flat":
		return NewFlatGenerator(cfg.GroundLevel), nil
	case "empty":
		return EmptyLoader{}, nil
	default:
		return nil, fmt.Errorf("unknown generator %q: %w", cfg.Kind, world.ErrInvalidArgument)
	}
}
