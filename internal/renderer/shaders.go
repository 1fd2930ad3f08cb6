package renderer

import (
	"fmt"
	"os"
	"strings"

	"FlyCam/internal/logger"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	vertexSource   string
	fragmentSource string
	program        uint32
	isCompiled     bool
	uniforms       *UniformCache
}

// NewShader keeps the sources; nothing touches GL until Compile.
func NewShader(vertexSource, fragmentSource string) *Shader {
	return &Shader{
		vertexSource:   terminate(vertexSource),
		fragmentSource: terminate(fragmentSource),
	}
}

// LoadShader reads a vertex and fragment shader from disk.
func LoadShader(vertexPath, fragmentPath string) (*Shader, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("renderer: read vertex shader %s: %w", vertexPath, err)
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("renderer: read fragment shader %s: %w", fragmentPath, err)
	}
	return NewShader(string(vs), string(fs)), nil
}

// InitCubeShader returns the built-in shader for the colored cube field.
func InitCubeShader() *Shader {
	return NewShader(cubeVertexShaderSource, cubeFragmentShaderSource)
}

// GL needs NUL terminated source strings.
func terminate(src string) string {
	if strings.HasSuffix(src, "\x00") {
		return src
	}
	return src + "\x00"
}

func (shader *Shader) IsCompiled() bool {
	return shader.isCompiled
}

func (shader *Shader) Program() uint32 {
	return shader.program
}

func (shader *Shader) Compile() error {
	vertexShader, err := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	fragmentShader, err := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return err
	}
	program, err := GenShaderProgram(vertexShader, fragmentShader)
	if err != nil {
		return err
	}

	shader.program = program
	shader.isCompiled = true
	if shader.uniforms == nil {
		shader.uniforms = NewUniformCache(program)
	} else {
		shader.uniforms.Reset(program)
	}
	return nil
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) Delete() {
	if shader.isCompiled {
		gl.DeleteProgram(shader.program)
		shader.isCompiled = false
	}
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value)
}

func (shader *Shader) SetVec4(name string, value mgl32.Vec4) {
	shader.uniforms.SetVec4(name, value)
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func shaderTypeName(shaderType uint32) string {
	if shaderType == gl.FRAGMENT_SHADER {
		return "fragment"
	}
	return "vertex"
}

func GenShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)

		logger.Log.Error("Failed to compile shader",
			zap.String("type", shaderTypeName(shaderType)),
			zap.String("log", log))
		return 0, fmt.Errorf("renderer: compile %s shader: %s", shaderTypeName(shaderType), strings.TrimRight(log, "\x00"))
	}

	logger.Log.Debug("Shader compiled", zap.String("type", shaderTypeName(shaderType)))
	return shader, nil
}

func GenShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DeleteShader(vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)

		logger.Log.Error("Failed to link program", zap.String("log", log))
		return 0, fmt.Errorf("renderer: link program: %s", strings.TrimRight(log, "\x00"))
	}

	logger.Log.Debug("Shader program linked", zap.Uint32("program", program))
	return program, nil
}

var cubeVertexShaderSource = `#version 330 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 mvp;

out vec3 vertexColor;

void main() {
    gl_Position = mvp * vec4(aPos, 1.0);
    vertexColor = aColor;
}
`

var cubeFragmentShaderSource = `#version 330 core
in vec3 vertexColor;

uniform vec4 ourColor2;

out vec4 FragColor;

void main() {
    FragColor = vec4(vertexColor, 1.0) * ourColor2;
}
`
