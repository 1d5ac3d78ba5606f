package engine

import (
	"fmt"
	"runtime"

	"Aven/internal/behaviour"
	"Aven/internal/input"
	"Aven/internal/logger"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Viewer owns the window and runs the frame loop. Input callbacks feed
// Keyboard and Mouse; everything else happens in behaviours.
type Viewer struct {
	Width      int32
	Height     int32
	Title      string
	ClearColor mgl.Vec3
	Keyboard   *input.Keyboard
	Mouse      *input.Mouse
	Behaviours *behaviour.BehaviourManager

	// FixedStep is the number of frames between UpdateAllFixed calls.
	FixedStep int

	window           *glfw.Window
	frameTrackId     int
	onInit           func() error
	onClose          func()
	onRenderCallback func(deltaTime float64)
	onResize         func(width, height int32)
}

func NewViewer(width, height int32, title string) *Viewer {
	return &Viewer{
		Width:      width,
		Height:     height,
		Title:      title,
		ClearColor: mgl.Vec3{0.53, 0.81, 0.92},
		Keyboard:   input.NewKeyboard(),
		Mouse:      input.NewMouse(),
		Behaviours: behaviour.NewBehaviourManager(),
		FixedStep:  2,
	}
}

// Run opens the window at (x, y) and blocks until it is closed. It must be
// called from the main goroutine.
func (v *Viewer) Run(x, y int) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(int(v.Width), int(v.Height), v.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	v.window = window
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("init opengl: %w", err)
	}
	logger.Log.Info("OpenGL ready", zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))

	glfw.SwapInterval(1)
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(v.ClearColor.X(), v.ClearColor.Y(), v.ClearColor.Z(), 1.0)
	styleWindow(window)
	window.SetPos(x, y)

	fbWidth, fbHeight := window.GetFramebufferSize()
	v.resize(int32(fbWidth), int32(fbHeight))

	window.SetKeyCallback(v.keyCallback)
	window.SetCursorPosCallback(v.cursorCallback)
	window.SetFramebufferSizeCallback(v.framebufferSizeCallback)
	v.SetMouseLocked(v.Mouse.Locked)

	if v.onInit != nil {
		if err := v.onInit(); err != nil {
			return err
		}
	}
	v.RenderLoop()
	if v.onClose != nil {
		v.onClose()
	}
	return nil
}

func (v *Viewer) RenderLoop() {
	lastTime := glfw.GetTime()

	for !v.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		if v.frameTrackId >= v.FixedStep {
			v.Behaviours.UpdateAllFixed()
			v.frameTrackId = 0
		}
		v.Behaviours.UpdateAll(deltaTime)

		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		if v.onRenderCallback != nil {
			v.onRenderCallback(deltaTime)
		}

		v.window.SwapBuffers()
		v.frameTrackId++
		glfw.PollEvents()
	}
	logger.Log.Info("Window closed")
}

// SetOnInit sets a callback run once the GL context is current, before the
// first frame. An error aborts Run.
func (v *Viewer) SetOnInit(callback func() error) {
	v.onInit = callback
}

// SetOnClose sets a callback run after the last frame while the GL context
// is still alive.
func (v *Viewer) SetOnClose(callback func()) {
	v.onClose = callback
}

// SetOnRenderCallback sets a callback run each frame after the clear.
func (v *Viewer) SetOnRenderCallback(callback func(deltaTime float64)) {
	v.onRenderCallback = callback
}

// SetOnResize sets a callback run whenever the framebuffer changes size.
func (v *Viewer) SetOnResize(callback func(width, height int32)) {
	v.onResize = callback
}

// SetMouseLocked captures or releases the cursor. Safe to call before Run.
func (v *Viewer) SetMouseLocked(locked bool) {
	v.Mouse.SetLocked(locked)
	if v.window == nil {
		return
	}
	if locked {
		v.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		v.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (v *Viewer) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	switch action {
	case glfw.Press:
		if key == glfw.KeyEscape {
			w.SetShouldClose(true)
			return
		}
		v.Keyboard.OnKeyDown(input.Key(key))
	case glfw.Release:
		v.Keyboard.OnKeyUp(input.Key(key))
	}
}

func (v *Viewer) cursorCallback(w *glfw.Window, xpos, ypos float64) {
	if w.GetAttrib(glfw.Focused) != glfw.True {
		return
	}
	v.Mouse.OnCursor(xpos, ypos)
}

func (v *Viewer) framebufferSizeCallback(w *glfw.Window, width, height int) {
	v.resize(int32(width), int32(height))
}

func (v *Viewer) resize(width, height int32) {
	// minimised
	if width == 0 || height == 0 {
		return
	}
	v.Width, v.Height = width, height
	gl.Viewport(0, 0, width, height)
	if v.onResize != nil {
		v.onResize(width, height)
	}
}
