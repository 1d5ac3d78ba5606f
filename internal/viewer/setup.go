package viewer

import (
	"fmt"

	"Aven/internal/config"
	"Aven/internal/input"
	"Aven/internal/loader"
	"Aven/internal/renderer"
	"Aven/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// NewCamera builds the first-person camera described by cfg.
func NewCamera(cfg config.Config) *renderer.Camera {
	cam := renderer.NewDefaultCamera(cfg.Window.Width, cfg.Window.Height)
	cc := cfg.Camera
	cam.Position = mgl32.Vec3{cc.Position[0], cc.Position[1], cc.Position[2]}
	cam.Speed = cc.Speed
	cam.Sensitivity = cc.Sensitivity
	cam.InvertMouse = cc.InvertMouse
	cam.SetFov(cc.Fov)
	cam.SetNear(cc.Near)
	cam.SetFar(cc.Far)
	return cam
}

// Setup builds the world, its chunk loader and the camera from cfg and ties
// them to the given input devices.
func Setup(cfg config.Config, kb *input.Keyboard, mouse *input.Mouse) (*Controller, error) {
	chunks, err := loader.FromConfig(cfg.Generator)
	if err != nil {
		return nil, err
	}
	w, err := world.NewWorld(cfg.World.Width, cfg.World.Height, cfg.World.Depth, chunks)
	if err != nil {
		return nil, fmt.Errorf("build world: %w", err)
	}
	return NewController(w, NewCamera(cfg), kb, mouse), nil
}
