package renderer

import (
	"fmt"

	"FlyCam/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// OpenGLRenderer draws a Frame with one shader and one mesh.
type OpenGLRenderer struct {
	Shader *Shader
	Mesh   *Mesh
}

// NewOpenGLRenderer pairs a shader with the cube mesh. With both paths empty
// the built-in cube shader is used; otherwise both files are loaded.
func NewOpenGLRenderer(vertexPath, fragmentPath string) (*OpenGLRenderer, error) {
	mesh, err := NewCubeMesh()
	if err != nil {
		return nil, err
	}
	if vertexPath == "" && fragmentPath == "" {
		return &OpenGLRenderer{Shader: InitCubeShader(), Mesh: mesh}, nil
	}
	shader, err := LoadShader(vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("Using custom shaders",
		zap.String("vertex", vertexPath),
		zap.String("fragment", fragmentPath))
	return &OpenGLRenderer{Shader: shader, Mesh: mesh}, nil
}

// Init needs a current GL context.
func (rend *OpenGLRenderer) Init(width, height int32) error {
	var cleanup Unwind
	defer cleanup.Unwind()

	if !rend.Shader.IsCompiled() {
		if err := rend.Shader.Compile(); err != nil {
			return fmt.Errorf("renderer: init: %w", err)
		}
		cleanup.Add(rend.Shader.Delete)
	}

	if err := rend.Mesh.Upload(); err != nil {
		return fmt.Errorf("renderer: init: %w", err)
	}
	cleanup.Add(rend.Mesh.Delete)

	gl.Viewport(0, 0, width, height)

	cleanup.Discard()
	logger.Log.Info("OpenGL renderer initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.Uint32("program", rend.Shader.Program()),
		zap.Int32("width", width),
		zap.Int32("height", height))
	return nil
}

func (rend *OpenGLRenderer) Render(frame Frame) {
	c := frame.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	if DepthTestEnabled {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	if !rend.Shader.IsCompiled() {
		return
	}
	rend.Shader.Use()
	rend.Shader.SetVec4("ourColor2", frame.Tint)
	rend.Shader.SetFloat("time", frame.Time)
	rend.Shader.SetVec3("viewPos", frame.ViewPos)

	rend.Mesh.Bind()
	for i := range frame.Draws {
		rend.Shader.SetMat4("mvp", frame.Draws[i].MVP)
		rend.Mesh.Draw()
	}
	gl.BindVertexArray(0)
}

// UpdateViewport updates the OpenGL viewport to match the framebuffer size
func (rend *OpenGLRenderer) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (rend *OpenGLRenderer) Cleanup() {
	rend.Mesh.Delete()
	rend.Shader.Delete()
}
