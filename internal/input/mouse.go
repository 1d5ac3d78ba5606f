package input

// Mouse accumulates relative movement between frames.
type Mouse struct {
	DeltaX, DeltaY float64
	Locked         bool

	lastX, lastY float64
	hasLast      bool
}

func NewMouse() *Mouse {
	return &Mouse{}
}

// OnMove records a relative movement.
func (m *Mouse) OnMove(dx, dy float64) {
	m.DeltaX += dx
	m.DeltaY += dy
}

// OnCursor turns absolute cursor positions into relative movement. The first
// position after a lock change only primes the tracker.
func (m *Mouse) OnCursor(x, y float64) {
	if !m.Locked {
		m.hasLast = false
		return
	}
	if m.hasLast {
		m.OnMove(x-m.lastX, y-m.lastY)
	}
	m.lastX, m.lastY = x, y
	m.hasLast = true
}

func (m *Mouse) SetLocked(locked bool) {
	if m.Locked != locked {
		m.hasLast = false
	}
	m.Locked = locked
}

func (m *Mouse) Deltas() (dx, dy float64) {
	return m.DeltaX, m.DeltaY
}

func (m *Mouse) ClearDeltas() {
	m.DeltaX = 0
	m.DeltaY = 0
}
