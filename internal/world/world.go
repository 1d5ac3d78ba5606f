package world

import (
	"fmt"

	"Aven/internal/logger"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	axisX = iota
	axisY
	axisZ
)

// ChunkLoader produces the chunk for an absolute chunk coordinate. A nil chunk
// with a nil error leaves the slot empty.
type ChunkLoader interface {
	LoadChunk(cx, cy, cz int) (*Chunk, error)
}

// ChunkLoaderFunc adapts a function to ChunkLoader.
type ChunkLoaderFunc func(cx, cy, cz int) (*Chunk, error)

func (f ChunkLoaderFunc) LoadChunk(cx, cy, cz int) (*Chunk, error) {
	return f(cx, cy, cz)
}

// ChunkEvicter is told about every chunk dropped from the buffer.
type ChunkEvicter interface {
	EvictChunk(c *Chunk)
}

// axisSlots remembers which absolute coordinate each slot of one axis stands for.
type axisSlots struct {
	values   []int
	assigned []bool
}

func newAxisSlots(n int) axisSlots {
	return axisSlots{values: make([]int, n), assigned: make([]bool, n)}
}

// assign records value for slot and reports whether it differs from before.
func (a *axisSlots) assign(slot, value int) bool {
	if a.assigned[slot] && a.values[slot] == value {
		return false
	}
	a.values[slot] = value
	a.assigned[slot] = true
	return true
}

func (a *axisSlots) value(slot int) (int, bool) {
	return a.values[slot], a.assigned[slot]
}

// World is a fixed width x height x depth buffer of chunk slots that slides
// over the infinite chunk grid as the viewer moves. Slot (i, j, k) lives at
// i + j*width + k*width*height. World is not safe for concurrent use; it
// belongs to the frame loop.
type World struct {
	width, height, depth int

	chunks  []*Chunk
	pending []bool
	waiting int

	ix, iy, iz *WrappedIndex
	slots      [3]axisSlots

	// lastFailure is the text of the last logged load failure.
	lastFailure string

	Loader  ChunkLoader
	Evicter ChunkEvicter
}

// NewWorld allocates an empty buffer. loader may be nil.
func NewWorld(width, height, depth int, loader ChunkLoader) (*World, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("world dimensions %dx%dx%d: %w", width, height, depth, ErrInvalidArgument)
	}

	w := &World{
		width:   width,
		height:  height,
		depth:   depth,
		chunks:  make([]*Chunk, width*height*depth),
		pending: make([]bool, width*height*depth),
		slots:   [3]axisSlots{newAxisSlots(width), newAxisSlots(height), newAxisSlots(depth)},
		Loader:  loader,
	}

	// Widths were validated above, so these cannot fail.
	w.ix, _ = NewWrappedIndex(width, w.onAxisXChanged)
	w.iy, _ = NewWrappedIndex(height, w.onAxisYChanged)
	w.iz, _ = NewWrappedIndex(depth, w.onAxisZChanged)
	return w, nil
}

func (w *World) Dimensions() (width, height, depth int) {
	return w.width, w.height, w.depth
}

// Axis returns the index driving axis 0 (x), 1 (y) or 2 (z).
func (w *World) Axis(axis int) *WrappedIndex {
	switch axis {
	case axisX:
		return w.ix
	case axisY:
		return w.iy
	default:
		return w.iz
	}
}

func (w *World) onAxisXChanged(key, value int) { w.onAxisChanged(axisX, key, value) }
func (w *World) onAxisYChanged(key, value int) { w.onAxisChanged(axisY, key, value) }
func (w *World) onAxisZChanged(key, value int) { w.onAxisChanged(axisZ, key, value) }

// onAxisChanged reconciles the plane of slots sharing key on the given axis.
// Chunks whose coordinate on that axis no longer equals value are evicted and
// their slots wait for a load.
func (w *World) onAxisChanged(axis, key, value int) {
	if !w.slots[axis].assign(key, value) {
		return
	}
	w.forEachInPlane(axis, key, func(idx int) {
		if c := w.chunks[idx]; c != nil {
			if c.coord(axis) == value {
				return
			}
			w.evict(idx)
		}
		w.markPending(idx)
	})
}

func (w *World) forEachInPlane(axis, key int, fn func(idx int)) {
	switch axis {
	case axisX:
		for k := 0; k < w.depth; k++ {
			for j := 0; j < w.height; j++ {
				fn(w.index(key, j, k))
			}
		}
	case axisY:
		for k := 0; k < w.depth; k++ {
			for i := 0; i < w.width; i++ {
				fn(w.index(i, key, k))
			}
		}
	default:
		for j := 0; j < w.height; j++ {
			for i := 0; i < w.width; i++ {
				fn(w.index(i, j, key))
			}
		}
	}
}

func (w *World) index(i, j, k int) int {
	return i + j*w.width + k*w.width*w.height
}

// SlotIndex linearises a finite slot coordinate, x fastest then y then z.
func (w *World) SlotIndex(i, j, k int) (int, error) {
	if i < 0 || i >= w.width || j < 0 || j >= w.height || k < 0 || k >= w.depth {
		return 0, fmt.Errorf("slot (%d, %d, %d) outside %dx%dx%d: %w",
			i, j, k, w.width, w.height, w.depth, ErrIndexOutOfRange)
	}
	return w.index(i, j, k), nil
}

// SlotCoords is the inverse of SlotIndex for idx in [0, width*height*depth).
func (w *World) SlotCoords(idx int) (i, j, k int) {
	i = idx % w.width
	j = (idx / w.width) % w.height
	k = idx / (w.width * w.height)
	return i, j, k
}

// GetChunkAt returns the chunk held by slot (i, j, k), or nil if it is empty.
func (w *World) GetChunkAt(i, j, k int) (*Chunk, error) {
	idx, err := w.SlotIndex(i, j, k)
	if err != nil {
		return nil, err
	}
	return w.chunks[idx], nil
}

func (w *World) markPending(idx int) {
	if !w.pending[idx] {
		w.pending[idx] = true
		w.waiting++
	}
}

func (w *World) clearPending(idx int) {
	if w.pending[idx] {
		w.pending[idx] = false
		w.waiting--
	}
}

func (w *World) evict(idx int) {
	c := w.chunks[idx]
	w.chunks[idx] = nil
	if w.Evicter != nil {
		w.Evicter.EvictChunk(c)
	}
	logger.Log.Debug("Chunk evicted",
		zap.Int("slot", idx),
		zap.Int("cx", c.cx), zap.Int("cy", c.cy), zap.Int("cz", c.cz))
}

// Pending reports how many slots are waiting for a chunk.
func (w *World) Pending() int {
	return w.waiting
}

// Reconcile loads a chunk into every pending slot whose three axes have been
// indexed. Failed loads stay pending and are retried by the next call; all
// failures are returned together.
func (w *World) Reconcile() error {
	if w.waiting == 0 {
		return nil
	}

	var errs error
	loaded := 0
	for idx, p := range w.pending {
		if !p {
			continue
		}
		i, j, k := w.SlotCoords(idx)
		cx, okx := w.slots[axisX].value(i)
		cy, oky := w.slots[axisY].value(j)
		cz, okz := w.slots[axisZ].value(k)
		if !okx || !oky || !okz {
			continue
		}
		if w.Loader == nil {
			w.clearPending(idx)
			continue
		}

		c, err := w.Loader.LoadChunk(cx, cy, cz)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("load chunk (%d, %d, %d): %w", cx, cy, cz, err))
			continue
		}
		if c != nil && (c.cx != cx || c.cy != cy || c.cz != cz) {
			errs = multierr.Append(errs, fmt.Errorf("loader returned chunk (%d, %d, %d) for (%d, %d, %d): %w",
				c.cx, c.cy, c.cz, cx, cy, cz, ErrInvalidArgument))
			continue
		}
		w.chunks[idx] = c
		w.clearPending(idx)
		loaded++
	}

	if loaded > 0 {
		logger.Log.Debug("Chunks loaded",
			zap.Int("loaded", loaded),
			zap.Int("pending", w.waiting))
	}
	w.reportFailure(errs)
	return errs
}

// reportFailure logs load failures once until they change or clear.
func (w *World) reportFailure(errs error) {
	if errs == nil {
		if w.lastFailure != "" {
			logger.Log.Info("Chunk loads recovered")
		}
		w.lastFailure = ""
		return
	}
	if msg := errs.Error(); msg != w.lastFailure {
		w.lastFailure = msg
		logger.Log.Warn("Chunk loads failed", zap.Error(errs))
	}
}

// Recenter indexes all three axes on the absolute chunk coordinate and loads
// whatever the buffer is now missing.
func (w *World) Recenter(cx, cy, cz int) error {
	w.ix.IndexPosition(cx)
	w.iy.IndexPosition(cy)
	w.iz.IndexPosition(cz)
	logger.Log.Debug("World recentered",
		zap.Int("cx", cx), zap.Int("cy", cy), zap.Int("cz", cz),
		zap.Int("pending", w.waiting))
	return w.Reconcile()
}

// Track recentres only the axes whose coordinate differs from the last one
// indexed and reports whether any did. Slots left pending by earlier failures
// are retried even when nothing moved.
func (w *World) Track(cx, cy, cz int) (bool, error) {
	moved := false
	for axis, pos := range [3]int{cx, cy, cz} {
		idx := w.Axis(axis)
		if last, ok := idx.RealPosition(); ok && last == pos {
			continue
		}
		idx.IndexPosition(pos)
		moved = true
	}
	if moved {
		logger.Log.Debug("Viewer crossed chunk boundary",
			zap.Int("cx", cx), zap.Int("cy", cy), zap.Int("cz", cz))
	}
	return moved, w.Reconcile()
}

// ChunkAtAbsolute returns the loaded chunk for an absolute chunk coordinate,
// if the buffer currently covers it.
func (w *World) ChunkAtAbsolute(cx, cy, cz int) (*Chunk, bool) {
	i, j, k := w.ix.Wrap(cx), w.iy.Wrap(cy), w.iz.Wrap(cz)
	c := w.chunks[w.index(i, j, k)]
	if c == nil || c.cx != cx || c.cy != cy || c.cz != cz {
		return nil, false
	}
	return c, true
}

// BlockAt reads the block at an absolute block coordinate.
func (w *World) BlockAt(x, y, z int) (BlockID, error) {
	c, err := w.chunkForBlock(x, y, z)
	if err != nil {
		return Air, err
	}
	return c.GetBlock(mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize))
}

// SetBlockAt writes the block at an absolute block coordinate.
func (w *World) SetBlockAt(x, y, z int, id BlockID) error {
	c, err := w.chunkForBlock(x, y, z)
	if err != nil {
		return err
	}
	return c.SetBlock(mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize), id)
}

func (w *World) chunkForBlock(x, y, z int) (*Chunk, error) {
	cx, cy, cz := floorDiv(x, ChunkSize), floorDiv(y, ChunkSize), floorDiv(z, ChunkSize)
	c, ok := w.ChunkAtAbsolute(cx, cy, cz)
	if !ok {
		return nil, fmt.Errorf("block (%d, %d, %d) in unloaded chunk (%d, %d, %d): %w",
			x, y, z, cx, cy, cz, ErrIndexOutOfRange)
	}
	return c, nil
}

// ForEachChunk visits every occupied slot in linear order.
func (w *World) ForEachChunk(fn func(i, j, k int, c *Chunk)) {
	for idx, c := range w.chunks {
		if c == nil {
			continue
		}
		i, j, k := w.SlotCoords(idx)
		fn(i, j, k, c)
	}
}

// LoadedCount reports how many slots hold a chunk.
func (w *World) LoadedCount() int {
	n := 0
	for _, c := range w.chunks {
		if c != nil {
			n++
		}
	}
	return n
}
