package input

// Key is a keyboard key code. Printable keys use their ASCII upper-case value,
// which is what glfw reports as well.
type Key int

const (
	KeySpace Key = 32
	KeyA     Key = 65
	KeyD     Key = 68
	KeyF     Key = 70
	KeyM     Key = 77
	KeyS     Key = 83
	KeyW     Key = 87

	maxKeys = 350
)

const (
	pressed uint8 = 1 << iota // key is physically down
	old                       // key was down at the last Update
	fresh                     // key went down since the previous Update
)

// Keyboard keeps per-key bit flags so callers can tell a held key from one
// that was pressed this frame.
type Keyboard struct {
	keys [maxKeys]uint8
}

func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

func valid(k Key) bool {
	return k >= 0 && int(k) < maxKeys
}

func (kb *Keyboard) OnKeyDown(k Key) {
	if valid(k) {
		kb.keys[k] |= pressed
	}
}

func (kb *Keyboard) OnKeyUp(k Key) {
	if valid(k) {
		kb.keys[k] &^= pressed
	}
}

// Update advances the edge state once per frame.
func (kb *Keyboard) Update() {
	for i := range kb.keys {
		s := kb.keys[i]
		s &^= fresh
		if s&pressed == 0 {
			s &^= old
		} else if s&old == 0 {
			s |= old | fresh
		}
		kb.keys[i] = s
	}
}

// IsPressed reports whether k is held down.
func (kb *Keyboard) IsPressed(k Key) bool {
	return valid(k) && kb.keys[k]&pressed != 0
}

// IsPressedNow reports whether k went down during the last frame.
func (kb *Keyboard) IsPressedNow(k Key) bool {
	return valid(k) && kb.keys[k]&fresh != 0
}
