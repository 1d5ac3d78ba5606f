package world

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	ChunkSize   = 16
	ChunkArea   = ChunkSize * ChunkSize
	ChunkVolume = ChunkArea * ChunkSize
)

// BlockID identifies a block type. Zero is air.
type BlockID uint16

const Air BlockID = 0

// Chunk is a 16x16x16 cube of blocks at a fixed absolute chunk coordinate.
type Chunk struct {
	cx, cy, cz int
	blocks     []BlockID // len = ChunkVolume, x fastest then y then z

	// NeedsUpdate is raised by any block write so the mesh can be rebuilt.
	NeedsUpdate bool
}

func NewChunk(cx, cy, cz int) *Chunk {
	return &Chunk{
		cx:          cx,
		cy:          cy,
		cz:          cz,
		blocks:      make([]BlockID, ChunkVolume),
		NeedsUpdate: true,
	}
}

func (c *Chunk) Coords() (cx, cy, cz int) {
	return c.cx, c.cy, c.cz
}

// coord returns the chunk coordinate along axis 0 (x), 1 (y) or 2 (z).
func (c *Chunk) coord(axis int) int {
	switch axis {
	case axisX:
		return c.cx
	case axisY:
		return c.cy
	default:
		return c.cz
	}
}

// Origin is the world-space position of the chunk's minimum corner.
func (c *Chunk) Origin() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(c.cx * ChunkSize),
		float32(c.cy * ChunkSize),
		float32(c.cz * ChunkSize),
	}
}

func blockIndex(lx, ly, lz int) (int, error) {
	if lx < 0 || lx >= ChunkSize || ly < 0 || ly >= ChunkSize || lz < 0 || lz >= ChunkSize {
		return 0, fmt.Errorf("local block (%d, %d, %d): %w", lx, ly, lz, ErrIndexOutOfRange)
	}
	return lx + ChunkSize*ly + ChunkArea*lz, nil
}

func (c *Chunk) SetBlock(lx, ly, lz int, id BlockID) error {
	i, err := blockIndex(lx, ly, lz)
	if err != nil {
		return err
	}
	c.blocks[i] = id
	c.NeedsUpdate = true
	return nil
}

func (c *Chunk) GetBlock(lx, ly, lz int) (BlockID, error) {
	i, err := blockIndex(lx, ly, lz)
	if err != nil {
		return Air, err
	}
	return c.blocks[i], nil
}

// Fill overwrites every block with id.
func (c *Chunk) Fill(id BlockID) {
	for i := range c.blocks {
		c.blocks[i] = id
	}
	c.NeedsUpdate = true
}

// ActiveBlocks counts the non-air blocks.
func (c *Chunk) ActiveBlocks() int {
	n := 0
	for _, b := range c.blocks {
		if b != Air {
			n++
		}
	}
	return n
}
