package viewer

import (
	"Aven/internal/input"
	"Aven/internal/logger"
	"Aven/internal/renderer"
	"Aven/internal/world"

	"go.uber.org/zap"
)

// Controller is the per-frame glue between input, the camera and the chunk
// buffer. It runs as a behaviour on the frame loop.
type Controller struct {
	World    *world.World
	Camera   *renderer.Camera
	Keyboard *input.Keyboard
	Mouse    *input.Mouse

	// OnMouseLock is told when the lock toggle key flips the mouse lock.
	OnMouseLock func(locked bool)

	visible []*world.Chunk
	lastErr error
}

func NewController(w *world.World, cam *renderer.Camera, kb *input.Keyboard, mouse *input.Mouse) *Controller {
	return &Controller{World: w, Camera: cam, Keyboard: kb, Mouse: mouse}
}

// Start fills the buffer around the camera's initial position.
func (c *Controller) Start() {
	cx, cy, cz := c.Camera.ChunkCoord()
	// load failures are logged by the world
	c.lastErr = c.World.Recenter(cx, cy, cz)
	logger.Log.Info("World ready",
		zap.Int("cx", cx), zap.Int("cy", cy), zap.Int("cz", cz),
		zap.Int("loaded", c.World.LoadedCount()))
	c.refreshVisible()
}

func (c *Controller) Update(deltaTime float64) {
	c.Keyboard.Update()

	if c.Keyboard.IsPressedNow(input.KeyToggleMouse) {
		c.Mouse.SetLocked(!c.Mouse.Locked)
		if c.OnMouseLock != nil {
			c.OnMouseLock(c.Mouse.Locked)
		}
		logger.Log.Debug("Mouse lock toggled", zap.Bool("locked", c.Mouse.Locked))
	}

	if c.Mouse.Locked {
		dx, dy := c.Mouse.Deltas()
		if dx != 0 || dy != 0 {
			// screen y grows downwards
			c.Camera.ProcessMouseMovement(float32(dx), float32(-dy), true)
		}
	}

	mv := input.MovementFor(c.Keyboard, c.Camera.Speed, float32(deltaTime))
	if !mv.IsZero() {
		c.Camera.Move(mv.X, mv.Y, mv.Z)
	}

	cx, cy, cz := c.Camera.ChunkCoord()
	moved, err := c.World.Track(cx, cy, cz)
	c.lastErr = err
	if moved {
		c.refreshVisible()
	}

	c.Mouse.ClearDeltas()
}

// UpdateFixed recomputes the visible chunk set for the current view.
func (c *Controller) UpdateFixed() {
	c.refreshVisible()
}

func (c *Controller) refreshVisible() {
	c.visible = renderer.VisibleChunks(c.World, c.Camera.CalculateFrustum())
}

// Visible returns the chunks found inside the frustum at the last refresh.
func (c *Controller) Visible() []*world.Chunk {
	return c.visible
}

// Err returns the error from the most recent reconcile, if any.
func (c *Controller) Err() error {
	return c.lastErr
}
