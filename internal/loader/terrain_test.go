package loader

import (
	"testing"

	"Aven/internal/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerrainGeneratorIsDeterministic(t *testing.T) {
	a := NewTerrainGenerator(DefaultTerrainOptions())
	b := NewTerrainGenerator(DefaultTerrainOptions())

	ca, err := a.LoadChunk(-2, 0, 3)
	require.NoError(t, err)
	cb, err := b.LoadChunk(-2, 0, 3)
	require.NoError(t, err)

	for z := 0; z < world.ChunkSize; z++ {
		for y := 0; y < world.ChunkSize; y++ {
			for x := 0; x < world.ChunkSize; x++ {
				va, _ := ca.GetBlock(x, y, z)
				vb, _ := cb.GetBlock(x, y, z)
				require.Equal(t, va, vb)
			}
		}
	}
}

func TestTerrainHeightStaysInRange(t *testing.T) {
	opts := DefaultTerrainOptions()
	g := NewTerrainGenerator(opts)
	for x := -64; x < 64; x += 7 {
		for z := -64; z < 64; z += 5 {
			h := g.Height(x, z)
			assert.GreaterOrEqual(t, h, opts.BaseHeight-int(opts.Amplitude))
			assert.LessOrEqual(t, h, opts.BaseHeight+int(opts.Amplitude))
		}
	}
}

func TestTerrainColumnLayers(t *testing.T) {
	opts := DefaultTerrainOptions()
	opts.Amplitude = 0 // flat surface at BaseHeight
	opts.BaseHeight = 8
	opts.WaterLevel = -100
	g := NewTerrainGenerator(opts)

	c, err := g.LoadChunk(0, 0, 0)
	require.NoError(t, err)

	want := map[int]VoxelID{15: AIR, 9: AIR, 8: GRASS, 7: DIRT, 6: DIRT, 5: STONE, 0: STONE}
	for y, id := range want {
		got, err := c.GetBlock(4, y, 11)
		require.NoError(t, err)
		assert.Equal(t, id, got, "y=%d", y)
	}
}

func TestTerrainWaterFillsBelowLevel(t *testing.T) {
	opts := DefaultTerrainOptions()
	opts.Amplitude = 0
	opts.BaseHeight = -10
	opts.WaterLevel = -4
	g := NewTerrainGenerator(opts)

	c, err := g.LoadChunk(0, -1, 0)
	require.NoError(t, err)

	// chunk y=-1 covers blocks -16..-1
	got, _ := c.GetBlock(0, 16-4, 0) // y=-4
	assert.Equal(t, WATER, got)
	got, _ = c.GetBlock(0, 16-3, 0) // y=-3
	assert.Equal(t, AIR, got)
	got, _ = c.GetBlock(0, 16-10, 0) // y=-10, surface under water
	assert.Equal(t, SAND, got)
}

func TestTerrainChunkCoordinates(t *testing.T) {
	g := NewTerrainGenerator(DefaultTerrainOptions())
	c, err := g.LoadChunk(5, -3, 9)
	require.NoError(t, err)
	cx, cy, cz := c.Coords()
	assert.Equal(t, [3]int{5, -3, 9}, [3]int{cx, cy, cz})
}

func TestFlatGenerator(t *testing.T) {
	g := NewFlatGenerator(0)

	above, err := g.LoadChunk(0, 1, 0)
	require.NoError(t, err)
	assert.Zero(t, above.ActiveBlocks())

	below, err := g.LoadChunk(0, -1, 0)
	require.NoError(t, err)
	assert.Equal(t, world.ChunkVolume, below.ActiveBlocks())

	ground, err := g.LoadChunk(3, 0, -2)
	require.NoError(t, err)
	assert.Equal(t, world.ChunkArea, ground.ActiveBlocks())
	top, _ := ground.GetBlock(7, 0, 7)
	assert.Equal(t, GRASS, top)
}

func TestEmptyLoader(t *testing.T) {
	c, err := EmptyLoader{}.LoadChunk(1, 2, 3)
	require.NoError(t, err)
	assert.Zero(t, c.ActiveBlocks())
}

func TestGeneratorsFillWorld(t *testing.T) {
	w, err := world.NewWorld(3, 2, 3, NewFlatGenerator(0))
	require.NoError(t, err)
	require.NoError(t, w.Recenter(0, 0, 0))

	got, err := w.BlockAt(5, 0, -7)
	require.NoError(t, err)
	assert.Equal(t, GRASS, got)
	got, err = w.BlockAt(5, -1, -7)
	require.NoError(t, err)
	assert.Equal(t, DIRT, got)
}
