package engine

import (
	"context"
	"fmt"
	"runtime"

	"FlyCam/internal/behaviour"
	"FlyCam/internal/config"
	"FlyCam/internal/input"
	"FlyCam/internal/logger"
	"FlyCam/internal/renderer"
	"FlyCam/internal/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Engine owns the window and everything the render loop mutates. All fields
// are touched only from the goroutine running Run.
type Engine struct {
	Config     *config.Config
	Camera     *renderer.Camera
	Input      *input.Controller
	Scene      *scene.CubeField
	Clock      *scene.Clock
	Behaviours *behaviour.Manager

	rendererAPI renderer.Render
	window      *glfw.Window
	watcher     *config.Watcher
	fbWidth     int32
	fbHeight    int32
}

func New(cfg *config.Config) *Engine {
	cam := newCamera(cfg.Camera)
	e := &Engine{
		Config:     cfg,
		Camera:     cam,
		Input:      input.NewController(cam, cfg.Window.Width, cfg.Window.Height),
		Scene:      scene.NewCubeField(),
		Clock:      scene.NewClock(),
		Behaviours: behaviour.NewManager(),
		fbWidth:    int32(cfg.Window.Width),
		fbHeight:   int32(cfg.Window.Height),
	}
	e.Behaviours.Add(e.Clock)
	e.Input.OnPause = e.togglePause
	e.ApplyConfig(cfg)
	return e
}

func (e *Engine) togglePause() {
	e.Clock.Paused = !e.Clock.Paused
	logger.Log.Info("Animation paused", zap.Bool("paused", e.Clock.Paused))
}

func newCamera(c config.Camera) *renderer.Camera {
	return renderer.NewCamera(
		mgl32.Vec3{c.Position[0], c.Position[1], c.Position[2]},
		renderer.WithYawPitch(c.Yaw, c.Pitch),
		renderer.WithMovementSpeed(c.Speed),
		renderer.WithMouseSensitivity(c.Sensitivity),
		renderer.WithZoom(c.Zoom),
		renderer.WithClipPlanes(c.Near, c.Far),
	)
}

// ApplyConfig applies the settings that can change while running. Camera
// position and orientation are left alone so a reload never teleports.
func (e *Engine) ApplyConfig(cfg *config.Config) {
	e.Config = cfg
	e.Camera.MovementSpeed = cfg.Camera.Speed
	e.Camera.MouseSensitivity = cfg.Camera.Sensitivity
	e.Camera.Near = cfg.Camera.Near
	e.Camera.Far = cfg.Camera.Far

	e.Scene.ClearColor = mgl32.Vec4(cfg.Render.ClearColor)
	e.Scene.Culling = cfg.Render.FrustumCulling
	e.Clock.Scale = cfg.Render.AnimationSpeed
	renderer.Debug = cfg.Render.Wireframe
	renderer.DepthTestEnabled = cfg.Render.DepthTest
}

// WatchConfig reloads path on change. Reloads are applied between frames.
func (e *Engine) WatchConfig(path string) error {
	w, err := config.Watch(path)
	if err != nil {
		return fmt.Errorf("engine: watch config: %w", err)
	}
	e.watcher = w
	return nil
}

// AspectRatio of the framebuffer; 1 while minimized.
func (e *Engine) AspectRatio() float32 {
	if e.fbWidth <= 0 || e.fbHeight <= 0 {
		return 1
	}
	return float32(e.fbWidth) / float32(e.fbHeight)
}

// Run opens the window and blocks until it is closed or ctx is done. It must
// be called from the main goroutine.
func (e *Engine) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("engine: init glfw: %w", err)
	}
	defer glfw.Terminate()

	win := e.Config.Window
	glfw.WindowHint(glfw.ContextVersionMajor, win.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, win.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(win.Width, win.Height, win.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("engine: create window: %w", err)
	}
	defer window.Destroy()
	e.window = window

	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("engine: init OpenGL: %w", err)
	}
	if win.X >= 0 && win.Y >= 0 {
		window.SetPos(win.X, win.Y)
	}

	fbw, fbh := window.GetFramebufferSize()
	e.fbWidth, e.fbHeight = int32(fbw), int32(fbh)

	window.SetFramebufferSizeCallback(e.framebufferSizeCallback)
	window.SetCursorPosCallback(e.Input.CursorPosCallback)
	window.SetScrollCallback(e.Input.ScrollCallback)
	window.SetFocusCallback(e.focusCallback)
	if win.CaptureCursor {
		window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}

	if e.rendererAPI == nil {
		rend, err := renderer.NewOpenGLRenderer(e.Config.Render.VertexShader, e.Config.Render.FragmentShader)
		if err != nil {
			return err
		}
		e.rendererAPI = rend
	}
	if err := e.rendererAPI.Init(e.fbWidth, e.fbHeight); err != nil {
		return err
	}
	defer e.rendererAPI.Cleanup()

	logger.Log.Info("Window ready",
		zap.String("title", win.Title),
		zap.Int32("framebufferWidth", e.fbWidth),
		zap.Int32("framebufferHeight", e.fbHeight))

	e.renderLoop(ctx)
	return nil
}

func (e *Engine) renderLoop(ctx context.Context) {
	for !e.window.ShouldClose() {
		if ctx.Err() != nil {
			logger.Log.Info("Render loop cancelled", zap.Error(context.Cause(ctx)))
			return
		}

		deltaTime := e.Input.BeginFrame(glfw.GetTime())

		e.drainConfig()

		if e.Input.PollKeys(e.window) {
			e.window.SetShouldClose(true)
		}

		e.Behaviours.UpdateAll(float64(deltaTime))

		e.rendererAPI.Render(e.Scene.Frame(e.Camera, e.AspectRatio(), e.Clock.Elapsed))

		e.window.SwapBuffers()
		glfw.PollEvents()
	}
}

// drainConfig applies pending reloads on the render thread.
func (e *Engine) drainConfig() {
	if e.watcher == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-e.watcher.Reloads:
			if !ok {
				return
			}
			e.ApplyConfig(cfg)
			logger.Log.Info("Applied config",
				zap.Float32("speed", cfg.Camera.Speed),
				zap.Float32("sensitivity", cfg.Camera.Sensitivity))
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Warn("Config watcher error", zap.Error(err))
		default:
			return
		}
	}
}

// Close releases resources that outlive Run.
func (e *Engine) Close() error {
	if e.watcher == nil {
		return nil
	}
	err := e.watcher.Close()
	e.watcher = nil
	return err
}

func (e *Engine) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	e.fbWidth, e.fbHeight = int32(width), int32(height)
	e.rendererAPI.UpdateViewport(e.fbWidth, e.fbHeight)
}

// Refocusing with a captured cursor would otherwise produce one huge delta.
func (e *Engine) focusCallback(_ *glfw.Window, focused bool) {
	if focused {
		e.Input.ResetMouse()
	}
}
