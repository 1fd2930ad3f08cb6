package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformCache caches uniform locations to avoid repeated gl.GetUniformLocation calls
type UniformCache struct {
	locations map[string]int32
	program   uint32
	lookup    func(program uint32, name string) int32
}

func glUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// NewUniformCache creates a new uniform cache for a shader program
func NewUniformCache(program uint32) *UniformCache {
	return &UniformCache{
		locations: make(map[string]int32),
		program:   program,
		lookup:    glUniformLocation,
	}
}

// GetLocation returns the cached uniform location or fetches and caches it.
// Missing uniforms are cached as -1 too.
func (uc *UniformCache) GetLocation(name string) int32 {
	if loc, exists := uc.locations[name]; exists {
		return loc
	}

	loc := uc.lookup(uc.program, name)
	uc.locations[name] = loc
	return loc
}

func (uc *UniformCache) SetFloat(name string, value float32) {
	if loc := uc.GetLocation(name); loc != -1 {
		gl.Uniform1f(loc, value)
	}
}

func (uc *UniformCache) SetVec3(name string, value mgl32.Vec3) {
	if loc := uc.GetLocation(name); loc != -1 {
		gl.Uniform3f(loc, value[0], value[1], value[2])
	}
}

func (uc *UniformCache) SetVec4(name string, value mgl32.Vec4) {
	if loc := uc.GetLocation(name); loc != -1 {
		gl.Uniform4f(loc, value[0], value[1], value[2], value[3])
	}
}

func (uc *UniformCache) SetMat4(name string, value mgl32.Mat4) {
	if loc := uc.GetLocation(name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &value[0])
	}
}

// Reset points the cache at a new program and drops every cached location.
func (uc *UniformCache) Reset(program uint32) {
	uc.program = program
	uc.Clear()
}

// Clear clears the cache (call when shader program changes)
func (uc *UniformCache) Clear() {
	uc.locations = make(map[string]int32)
}
