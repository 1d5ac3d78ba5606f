package world

import (
	"fmt"

	"Aven/internal/logger"

	"go.uber.org/zap"
)

// MapFunc receives one (finite slot, absolute coordinate) pair.
type MapFunc func(key, value int)

// WrappedIndex maps one axis of an unbounded coordinate space onto a ring of
// width slots. Indexing a position reports, through the map function, which
// absolute coordinate every slot now stands for.
type WrappedIndex struct {
	width       int
	startOffset int

	realPosition int
	indexed      bool

	mapIndices MapFunc
}

// NewWrappedIndex builds an index of the given width. fn may be nil, in which
// case every mapping is written to the debug log until SetMapFunc is called.
func NewWrappedIndex(width int, fn MapFunc) (*WrappedIndex, error) {
	if width <= 0 {
		return nil, fmt.Errorf("wrapped index width %d: %w", width, ErrInvalidArgument)
	}
	return &WrappedIndex{
		width:       width,
		startOffset: width / 2,
		mapIndices:  fn,
	}, nil
}

func (w *WrappedIndex) Width() int       { return w.width }
func (w *WrappedIndex) StartOffset() int { return w.startOffset }

// RealPosition returns the last indexed absolute coordinate. ok is false until
// IndexPosition has run once.
func (w *WrappedIndex) RealPosition() (pos int, ok bool) {
	return w.realPosition, w.indexed
}

// SetMapFunc replaces the mapping callback.
func (w *WrappedIndex) SetMapFunc(fn MapFunc) {
	w.mapIndices = fn
}

// Wrap folds any integer, negative included, into [0, width).
func (w *WrappedIndex) Wrap(n int) int {
	return mod(n, w.width)
}

// IndexPosition re-centres the ring on pos. The callback is invoked width times
// with slots starting at Wrap(pos-startOffset) and absolute values
// pos-startOffset .. pos-startOffset+width-1, both increasing by one per step.
func (w *WrappedIndex) IndexPosition(pos int) {
	w.realPosition = pos
	w.indexed = true

	fn := w.mapIndices
	if fn == nil {
		fn = logMapping
	}

	val := pos - w.startOffset
	key := w.Wrap(val)
	for n := 0; n < w.width; n++ {
		fn(key, val)
		key++
		if key == w.width {
			key = 0
		}
		val++
	}
}

func logMapping(key, value int) {
	logger.Log.Debug("finite key mapped to infinite key",
		zap.Int("key", key),
		zap.Int("value", value))
}

func mod(a, b int) int {
	// b > 0
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func floorDiv(a, b int) int {
	// b > 0
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}
