package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Window struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Title         string `yaml:"title"`
	GLMajor       int    `yaml:"gl_major"`
	GLMinor       int    `yaml:"gl_minor"`
	CaptureCursor bool   `yaml:"capture_cursor"`
	X             int    `yaml:"x"`
	Y             int    `yaml:"y"`
}

type Camera struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`       // world units per second
	Sensitivity float32    `yaml:"sensitivity"` // degrees per pixel
	Zoom        float32    `yaml:"zoom"`        // degrees
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

type Render struct {
	ClearColor     [4]float32 `yaml:"clear_color"`
	Wireframe      bool       `yaml:"wireframe"`
	FrustumCulling bool       `yaml:"frustum_culling"`
	DepthTest      bool       `yaml:"depth_test"`
	AnimationSpeed float64    `yaml:"animation_speed"` // scene seconds per real second

	// Both set replaces the built-in cube shader. Read once at startup.
	VertexShader   string `yaml:"vertex_shader"`
	FragmentShader string `yaml:"fragment_shader"`
}

type Config struct {
	Window Window `yaml:"window"`
	Camera Camera `yaml:"camera"`
	Render Render `yaml:"render"`
	Debug  bool   `yaml:"debug"`
}

// Default matches the original demo scene.
func Default() *Config {
	return &Config{
		Window: Window{
			Width:   1600,
			Height:  1600,
			Title:   "LearnOpenGL",
			GLMajor: 3,
			GLMinor: 3,
			X:       -1,
			Y:       -1,
		},
		Camera: Camera{
			Position:    [3]float32{0, 0, 3},
			Yaw:         -90,
			Pitch:       0,
			Speed:       2.5,
			Sensitivity: 0.1,
			Zoom:        45,
			Near:        0.1,
			Far:         100,
		},
		Render: Render{
			ClearColor:     [4]float32{0.2, 0.3, 0.3, 1.0},
			DepthTest:      true,
			AnimationSpeed: 1,
		},
	}
}

// Load overlays the file at path on Default. Fields absent from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Save writes c as YAML, e.g. to produce a starting point for editing.
func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("config: save %s: %w", path, err)
	}
	return nil
}

var ErrInvalid = errors.New("invalid config")

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height))
	}
	if c.Window.GLMajor < 3 || (c.Window.GLMajor == 3 && c.Window.GLMinor < 3) {
		errs = append(errs, fmt.Errorf("%w: OpenGL %d.%d is below 3.3", ErrInvalid, c.Window.GLMajor, c.Window.GLMinor))
	}
	if c.Camera.Zoom < 1 || c.Camera.Zoom > 45 {
		errs = append(errs, fmt.Errorf("%w: zoom %v outside [1, 45]", ErrInvalid, c.Camera.Zoom))
	}
	if c.Camera.Pitch <= -89 || c.Camera.Pitch >= 89 {
		errs = append(errs, fmt.Errorf("%w: pitch %v outside (-89, 89)", ErrInvalid, c.Camera.Pitch))
	}
	if c.Camera.Near <= 0 || c.Camera.Near >= c.Camera.Far {
		errs = append(errs, fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Speed < 0 || c.Camera.Sensitivity < 0 {
		errs = append(errs, fmt.Errorf("%w: negative speed or sensitivity", ErrInvalid))
	}
	if c.Render.AnimationSpeed < 0 {
		errs = append(errs, fmt.Errorf("%w: negative animation speed %v", ErrInvalid, c.Render.AnimationSpeed))
	}
	if (c.Render.VertexShader == "") != (c.Render.FragmentShader == "") {
		errs = append(errs, fmt.Errorf("%w: vertex_shader and fragment_shader must be set together", ErrInvalid))
	}
	return errors.Join(errs...)
}
