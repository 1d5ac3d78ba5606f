package input

// Control key map and tuning for the first-person viewer.
const (
	DefaultMoveSpeed = 1.5 // blocks per second
	MouseSensitivity = 0.1

	KeyMoveForwards  = KeyW
	KeyMoveBackwards = KeyS
	KeyMoveLeft      = KeyA
	KeyMoveRight     = KeyD
	KeyJump          = KeySpace
	KeyDuck          = KeyF
	KeyToggleMouse   = KeyM
)

// Movement is the camera-relative displacement requested by held keys for one
// frame: X to the right, Y up, Z forwards.
type Movement struct {
	X, Y, Z float32
}

func (m Movement) IsZero() bool {
	return m == Movement{}
}

// MovementFor turns the held movement keys into a displacement of speed*dt.
func MovementFor(kb *Keyboard, speed, dt float32) Movement {
	step := speed * dt
	var mv Movement
	if kb.IsPressed(KeyMoveForwards) {
		mv.Z += step
	}
	if kb.IsPressed(KeyMoveBackwards) {
		mv.Z -= step
	}
	if kb.IsPressed(KeyMoveRight) {
		mv.X += step
	}
	if kb.IsPressed(KeyMoveLeft) {
		mv.X -= step
	}
	if kb.IsPressed(KeyJump) {
		mv.Y += step
	}
	if kb.IsPressed(KeyDuck) {
		mv.Y -= step
	}
	return mv
}
