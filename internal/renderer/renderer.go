package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

var Debug bool = false           // Wireframe rendering
var DepthTestEnabled bool = true // Depth testing for opaque geometry

// DrawCall is one instance of the frame's mesh.
type DrawCall struct {
	MVP mgl32.Mat4
}

// Frame is everything the renderer needs to draw one frame.
type Frame struct {
	ClearColor mgl32.Vec4
	Tint       mgl32.Vec4 // ourColor2
	Time       float32    // animation seconds, "time" in custom shaders
	ViewPos    mgl32.Vec3 // camera position, "viewPos" in custom shaders
	Draws      []DrawCall
}

type Render interface {
	Init(width, height int32) error
	Render(frame Frame)
	UpdateViewport(width, height int32)
	Cleanup()
}
