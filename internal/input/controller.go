// Package input turns window events into camera updates. All state that the
// original callbacks kept in globals lives on Controller, which is owned by
// the render thread.
package input

import (
	"FlyCam/internal/renderer"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// KeyReader is satisfied by *glfw.Window.
type KeyReader interface {
	GetKey(key glfw.Key) glfw.Action
}

// KeyBinding maps a held key to a movement direction.
type KeyBinding struct {
	Key       glfw.Key
	Direction renderer.Direction
}

// DefaultBindings is WASD.
var DefaultBindings = []KeyBinding{
	{glfw.KeyW, renderer.FORWARD},
	{glfw.KeyS, renderer.BACKWARD},
	{glfw.KeyA, renderer.LEFT},
	{glfw.KeyD, renderer.RIGHT},
}

type Controller struct {
	Camera    *renderer.Camera
	Bindings  []KeyBinding
	QuitKey   glfw.Key
	PauseKey  glfw.Key
	OnPause   func()  // called once per press of PauseKey
	DeltaTime float32 // seconds between the last two frames

	lastX, lastY float64
	firstMouse   bool
	lastFrame    float64
	started      bool
	pauseHeld    bool
}

// NewController primes the cursor reference at the window center. The first
// cursor event still only primes it.
func NewController(camera *renderer.Camera, width, height int) *Controller {
	return &Controller{
		Camera:     camera,
		Bindings:   DefaultBindings,
		QuitKey:    glfw.KeyEscape,
		PauseKey:   glfw.KeyP,
		lastX:      float64(width) / 2,
		lastY:      float64(height) / 2,
		firstMouse: true,
	}
}

// BeginFrame records the frame time and returns the delta since the previous
// frame. The first call yields zero.
func (c *Controller) BeginFrame(now float64) float32 {
	if !c.started {
		c.lastFrame = now
		c.started = true
	}
	c.DeltaTime = float32(now - c.lastFrame)
	c.lastFrame = now
	return c.DeltaTime
}

// CursorMoved takes absolute cursor coordinates.
func (c *Controller) CursorMoved(x, y float64) {
	if c.firstMouse {
		c.lastX = x
		c.lastY = y
		c.firstMouse = false
		return
	}

	xoffset := x - c.lastX
	yoffset := c.lastY - y // screen y grows downward
	c.lastX = x
	c.lastY = y

	c.Camera.ProcessMouseMovement(float32(xoffset), float32(yoffset), true)
}

func (c *Controller) Scrolled(_, yoffset float64) {
	c.Camera.ProcessMouseScroll(float32(yoffset))
}

// ResetMouse makes the next cursor event prime the reference again.
func (c *Controller) ResetMouse() {
	c.firstMouse = true
}

// PollKeys applies every held movement key for DeltaTime, fires OnPause on
// the frame PauseKey goes down, and reports whether the quit key is down.
func (c *Controller) PollKeys(keys KeyReader) (quit bool) {
	if keys.GetKey(c.QuitKey) == glfw.Press {
		quit = true
	}
	pause := keys.GetKey(c.PauseKey) == glfw.Press
	if pause && !c.pauseHeld && c.OnPause != nil {
		c.OnPause()
	}
	c.pauseHeld = pause

	for _, b := range c.Bindings {
		if keys.GetKey(b.Key) == glfw.Press {
			c.Camera.ProcessKeyboard(b.Direction, c.DeltaTime)
		}
	}
	return quit
}

// CursorPosCallback adapts CursorMoved to glfw.
func (c *Controller) CursorPosCallback(_ *glfw.Window, x, y float64) {
	c.CursorMoved(x, y)
}

// ScrollCallback adapts Scrolled to glfw.
func (c *Controller) ScrollCallback(_ *glfw.Window, xoff, yoff float64) {
	c.Scrolled(xoff, yoff)
}
