package world

import (
	"errors"
	"testing"

	"Aven/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// countingLoader builds empty chunks and remembers what it was asked for.
type countingLoader struct {
	calls [][3]int
	fail  map[[3]int]bool
}

func (l *countingLoader) LoadChunk(cx, cy, cz int) (*Chunk, error) {
	key := [3]int{cx, cy, cz}
	l.calls = append(l.calls, key)
	if l.fail[key] {
		return nil, errors.New("disk on fire")
	}
	return NewChunk(cx, cy, cz), nil
}

type recordingEvicter struct{ evicted []*Chunk }

func (e *recordingEvicter) EvictChunk(c *Chunk) { e.evicted = append(e.evicted, c) }

func TestNewWorldRejectsBadDimensions(t *testing.T) {
	for _, d := range [][3]int{{0, 1, 1}, {1, 0, 1}, {1, 1, 0}, {-2, 4, 4}} {
		_, err := NewWorld(d[0], d[1], d[2], nil)
		require.ErrorIs(t, err, ErrInvalidArgument, "dims %v", d)
	}
}

func TestNewWorldIsEmpty(t *testing.T) {
	w, err := NewWorld(4, 2, 3, nil)
	require.NoError(t, err)

	width, height, depth := w.Dimensions()
	assert.Equal(t, [3]int{4, 2, 3}, [3]int{width, height, depth})
	assert.Len(t, w.chunks, 24)
	assert.Zero(t, w.LoadedCount())

	c, err := w.GetChunkAt(3, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestGetChunkAtOutOfRange(t *testing.T) {
	w, err := NewWorld(16, 4, 16, nil)
	require.NoError(t, err)

	_, err = w.GetChunkAt(16, 0, 0)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	for _, p := range [][3]int{{-1, 0, 0}, {0, 4, 0}, {0, -1, 0}, {0, 0, 16}, {0, 0, -1}} {
		_, err = w.GetChunkAt(p[0], p[1], p[2])
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "slot %v", p)
	}
}

func TestSlotIndexIsBijective(t *testing.T) {
	w, err := NewWorld(5, 3, 4, nil)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for k := 0; k < 4; k++ {
		for j := 0; j < 3; j++ {
			for i := 0; i < 5; i++ {
				idx, err := w.SlotIndex(i, j, k)
				require.NoError(t, err)
				assert.Equal(t, i+j*5+k*15, idx)
				assert.GreaterOrEqual(t, idx, 0)
				assert.Less(t, idx, 60)
				assert.False(t, seen[idx])
				seen[idx] = true

				gi, gj, gk := w.SlotCoords(idx)
				assert.Equal(t, [3]int{i, j, k}, [3]int{gi, gj, gk})
			}
		}
	}
	assert.Len(t, seen, 60)
}

func TestAxisHooksFireOncePerSlot(t *testing.T) {
	w, err := NewWorld(4, 2, 3, nil)
	require.NoError(t, err)

	w.Axis(axisX).IndexPosition(10)
	w.Axis(axisY).IndexPosition(-1)
	w.Axis(axisZ).IndexPosition(0)

	for slot := 0; slot < 4; slot++ {
		v, ok := w.slots[axisX].value(slot)
		require.True(t, ok)
		assert.Equal(t, slot, w.ix.Wrap(v))
		assert.GreaterOrEqual(t, v, 8)
		assert.LessOrEqual(t, v, 11)
	}
	v, ok := w.slots[axisY].value(w.iy.Wrap(-2))
	require.True(t, ok)
	assert.Equal(t, -2, v)
}

func TestRecenterFillsBuffer(t *testing.T) {
	loader := &countingLoader{}
	w, err := NewWorld(4, 2, 3, loader)
	require.NoError(t, err)

	require.NoError(t, w.Recenter(0, 0, 0))
	assert.Equal(t, 24, w.LoadedCount())
	assert.Zero(t, w.Pending())
	assert.Len(t, loader.calls, 24)

	// every chunk sits in the slot its absolute coordinate wraps to
	w.ForEachChunk(func(i, j, k int, c *Chunk) {
		cx, cy, cz := c.Coords()
		assert.Equal(t, i, w.ix.Wrap(cx))
		assert.Equal(t, j, w.iy.Wrap(cy))
		assert.Equal(t, k, w.iz.Wrap(cz))
		assert.GreaterOrEqual(t, cx, -2)
		assert.LessOrEqual(t, cx, 1)
		assert.GreaterOrEqual(t, cy, -1)
		assert.LessOrEqual(t, cy, 0)
		assert.GreaterOrEqual(t, cz, -1)
		assert.LessOrEqual(t, cz, 1)
	})
}

func TestRecenterOneStepReloadsOnePlane(t *testing.T) {
	loader := &countingLoader{}
	evicter := &recordingEvicter{}
	w, err := NewWorld(4, 2, 3, loader)
	require.NoError(t, err)
	w.Evicter = evicter
	require.NoError(t, w.Recenter(0, 0, 0))

	loader.calls = nil
	require.NoError(t, w.Recenter(1, 0, 0))

	// x window moved from [-2,1] to [-1,2]: only the x=-2 plane is replaced
	assert.Len(t, loader.calls, 2*3)
	for _, call := range loader.calls {
		assert.Equal(t, 2, call[0])
	}
	require.Len(t, evicter.evicted, 2*3)
	for _, c := range evicter.evicted {
		cx, _, _ := c.Coords()
		assert.Equal(t, -2, cx)
	}
	assert.Equal(t, 24, w.LoadedCount())

	_, ok := w.ChunkAtAbsolute(-2, 0, 0)
	assert.False(t, ok)
	c, ok := w.ChunkAtAbsolute(2, 0, 0)
	require.True(t, ok)
	cx, cy, cz := c.Coords()
	assert.Equal(t, [3]int{2, 0, 0}, [3]int{cx, cy, cz})
}

func TestRecenterSamePositionLoadsNothing(t *testing.T) {
	loader := &countingLoader{}
	w, err := NewWorld(3, 3, 3, loader)
	require.NoError(t, err)
	require.NoError(t, w.Recenter(5, 5, 5))

	loader.calls = nil
	require.NoError(t, w.Recenter(5, 5, 5))
	assert.Empty(t, loader.calls)
}

func TestRecenterFarJumpReplacesEverything(t *testing.T) {
	loader := &countingLoader{}
	evicter := &recordingEvicter{}
	w, err := NewWorld(3, 2, 3, loader)
	require.NoError(t, err)
	w.Evicter = evicter
	require.NoError(t, w.Recenter(0, 0, 0))

	loader.calls = nil
	require.NoError(t, w.Recenter(100, -50, 7))
	assert.Len(t, loader.calls, 18)
	assert.Len(t, evicter.evicted, 18)
	assert.Equal(t, 18, w.LoadedCount())
}

func TestTrackOnlyReindexesChangedAxes(t *testing.T) {
	loader := &countingLoader{}
	w, err := NewWorld(4, 4, 4, loader)
	require.NoError(t, err)

	moved, err := w.Track(0, 0, 0)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 64, w.LoadedCount())

	loader.calls = nil
	moved, err = w.Track(0, 0, 0)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Empty(t, loader.calls)

	moved, err = w.Track(0, 1, 0)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Len(t, loader.calls, 16)
	for _, call := range loader.calls {
		assert.Equal(t, 2, call[1])
	}
	pos, _ := w.Axis(axisX).RealPosition()
	assert.Equal(t, 0, pos)
	pos, _ = w.Axis(axisY).RealPosition()
	assert.Equal(t, 1, pos)
}

func TestReconcileRetriesFailedLoads(t *testing.T) {
	loader := &countingLoader{fail: map[[3]int]bool{{0, 0, 0}: true}}
	w, err := NewWorld(2, 2, 2, loader)
	require.NoError(t, err)

	err = w.Recenter(0, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load chunk (0, 0, 0)")
	assert.Equal(t, 1, w.Pending())
	assert.Equal(t, 7, w.LoadedCount())

	delete(loader.fail, [3]int{0, 0, 0})
	moved, err := w.Track(0, 0, 0)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Zero(t, w.Pending())
	assert.Equal(t, 8, w.LoadedCount())
}

func TestReconcileRejectsMisplacedChunk(t *testing.T) {
	w, err := NewWorld(1, 1, 1, ChunkLoaderFunc(func(cx, cy, cz int) (*Chunk, error) {
		return NewChunk(cx+1, cy, cz), nil
	}))
	require.NoError(t, err)

	err = w.Recenter(0, 0, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, w.LoadedCount())
	assert.Equal(t, 1, w.Pending())
}

func TestReconcileWithoutLoader(t *testing.T) {
	w, err := NewWorld(2, 2, 2, nil)
	require.NoError(t, err)
	require.NoError(t, w.Recenter(0, 0, 0))
	assert.Zero(t, w.Pending())
	assert.Zero(t, w.LoadedCount())
}

func TestPartialIndexingDefersLoads(t *testing.T) {
	loader := &countingLoader{}
	w, err := NewWorld(2, 2, 2, loader)
	require.NoError(t, err)

	w.Axis(axisX).IndexPosition(0)
	w.Axis(axisY).IndexPosition(0)
	require.NoError(t, w.Reconcile())
	assert.Empty(t, loader.calls)
	assert.Equal(t, 8, w.Pending())
}

func TestBlockAtAbsolute(t *testing.T) {
	w, err := NewWorld(3, 3, 3, ChunkLoaderFunc(func(cx, cy, cz int) (*Chunk, error) {
		return NewChunk(cx, cy, cz), nil
	}))
	require.NoError(t, err)
	require.NoError(t, w.Recenter(0, 0, 0))

	require.NoError(t, w.SetBlockAt(-1, -1, 31, 7))
	got, err := w.BlockAt(-1, -1, 31)
	require.NoError(t, err)
	assert.Equal(t, BlockID(7), got)

	c, ok := w.ChunkAtAbsolute(-1, -1, 1)
	require.True(t, ok)
	local, err := c.GetBlock(15, 15, 15)
	require.NoError(t, err)
	assert.Equal(t, BlockID(7), local)

	_, err = w.BlockAt(1000, 0, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, w.SetBlockAt(0, 0, -1000, 1), ErrIndexOutOfRange)
}

func TestReconcileLogsRepeatedFailureOnce(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	defer func() { logger.Log = prev }()

	loader := &countingLoader{fail: map[[3]int]bool{{0, 0, 0}: true}}
	w, err := NewWorld(2, 2, 2, loader)
	require.NoError(t, err)

	require.Error(t, w.Recenter(0, 0, 0))
	for i := 0; i < 5; i++ {
		_, err = w.Track(0, 0, 0)
		require.Error(t, err)
	}
	assert.Equal(t, 1, logs.FilterMessage("Chunk loads failed").Len())

	delete(loader.fail, [3]int{0, 0, 0})
	_, err = w.Track(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Chunk loads recovered").Len())

	loader.fail[[3]int{1, 0, 0}] = true
	_, err = w.Track(2, 0, 0)
	require.Error(t, err)
	assert.Equal(t, 2, logs.FilterMessage("Chunk loads failed").Len())
}
