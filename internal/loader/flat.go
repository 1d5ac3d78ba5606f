package loader

import "Aven/internal/world"

// FlatGenerator builds a level ground: Top at GroundLevel, Fill below it.
type FlatGenerator struct {
	GroundLevel int
	Top         VoxelID
	Fill        VoxelID
}

var _ world.ChunkLoader = FlatGenerator{}

func NewFlatGenerator(groundLevel int) FlatGenerator {
	return FlatGenerator{GroundLevel: groundLevel, Top: GRASS, Fill: DIRT}
}

func (g FlatGenerator) LoadChunk(cx, cy, cz int) (*world.Chunk, error) {
	c := world.NewChunk(cx, cy, cz)
	base := cy * world.ChunkSize
	if base > g.GroundLevel {
		return c, nil
	}
	if base+world.ChunkSize-1 < g.GroundLevel {
		c.Fill(g.Fill)
		return c, nil
	}
	for ly := 0; ly < world.ChunkSize; ly++ {
		y := base + ly
		id := g.Fill
		switch {
		case y > g.GroundLevel:
			continue
		case y == g.GroundLevel:
			id = g.Top
		}
		for lz := 0; lz < world.ChunkSize; lz++ {
			for lx := 0; lx < world.ChunkSize; lx++ {
				if err := c.SetBlock(lx, ly, lz, id); err != nil {
					return nil, err
				}
			}
		}
	}
	return c, nil
}

// EmptyLoader hands out chunks of air.
type EmptyLoader struct{}

func (EmptyLoader) LoadChunk(cx, cy, cz int) (*world.Chunk, error) {
	return world.NewChunk(cx, cy, cz), nil
}
