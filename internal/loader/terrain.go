package loader

import (
	"math"

	"Aven/internal/world"

	perlin "github.com/aquilax/go-perlin"
)

type TerrainOptions struct {
	Seed       int64
	Alpha      float64 // weight when the sum is formed
	Beta       float64 // harmonic scaling/spacing
	Octaves    int32
	Scale      float64 // world units to noise units
	Amplitude  float64 // peak height above or below BaseHeight, in blocks
	BaseHeight int
	WaterLevel int
}

func DefaultTerrainOptions() TerrainOptions {
	return TerrainOptions{
		Seed:       1337,
		Alpha:      2,
		Beta:       2,
		Octaves:    3,
		Scale:      0.05,
		Amplitude:  20,
		BaseHeight: 0,
		WaterLevel: -6,
	}
}

// TerrainGenerator fills chunks from a perlin heightmap: grass (or sand near
// water) on the surface, a few blocks of dirt, stone below and water up to
// WaterLevel.
type TerrainGenerator struct {
	opts  TerrainOptions
	noise *perlin.Perlin
}

var _ world.ChunkLoader = (*TerrainGenerator)(nil)

func NewTerrainGenerator(opts TerrainOptions) *TerrainGenerator {
	return &TerrainGenerator{
		opts:  opts,
		noise: perlin.NewPerlin(opts.Alpha, opts.Beta, opts.Octaves, opts.Seed),
	}
}

// Height returns the surface height of the column at block (x, z).
func (g *TerrainGenerator) Height(x, z int) int {
	s := g.opts.Scale
	fx, fz := float64(x), float64(z)

	baseY := g.noise.Noise2D(fx*s, fz*s)       // large features
	detailY := g.noise.Noise2D(fx*s*3, fz*s*3) // medium details
	fineY := g.noise.Noise2D(fx*s*6, fz*s*6)   // fine details
	combined := baseY*0.6 + detailY*0.3 + fineY*0.1

	h := combined * g.opts.Amplitude
	h = math.Max(-g.opts.Amplitude, math.Min(g.opts.Amplitude, h))
	return g.opts.BaseHeight + int(math.Floor(h))
}

func (g *TerrainGenerator) LoadChunk(cx, cy, cz int) (*world.Chunk, error) {
	c := world.NewChunk(cx, cy, cz)
	for lz := 0; lz < world.ChunkSize; lz++ {
		for lx := 0; lx < world.ChunkSize; lx++ {
			h := g.Height(cx*world.ChunkSize+lx, cz*world.ChunkSize+lz)
			for ly := 0; ly < world.ChunkSize; ly++ {
				id := g.blockAt(cy*world.ChunkSize+ly, h)
				if id == AIR {
					continue
				}
				if err := c.SetBlock(lx, ly, lz, id); err != nil {
					return nil, err
				}
			}
		}
	}
	return c, nil
}

func (g *TerrainGenerator) blockAt(y, surface int) VoxelID {
	switch {
	case y > surface:
		if y <= g.opts.WaterLevel {
			return WATER
		}
		return AIR
	case y == surface:
		if surface <= g.opts.WaterLevel+1 {
			return SAND
		}
		return GRASS
	case y > surface-3:
		return DIRT
	default:
		return STONE
	}
}
