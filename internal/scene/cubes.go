package scene

import (
	"math"

	"FlyCam/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

var spinAxis = mgl32.Vec3{1.0, 0.3, 0.5}.Normalize()

// CubeField is the demo's set of spinning cubes.
type CubeField struct {
	Positions  []mgl32.Vec3
	Radius     float32 // bounding sphere radius per cube
	Culling    bool
	ClearColor mgl32.Vec4
}

func NewCubeField() *CubeField {
	return &CubeField{
		Positions:  renderer.CubePositions,
		Radius:     renderer.CubeRadius,
		ClearColor: mgl32.Vec4{0.2, 0.3, 0.3, 1.0},
	}
}

// Model is cube i's model matrix at scene time t (seconds). Each cube starts
// 20 degrees further round than the previous one.
func (f *CubeField) Model(i int, t float64) mgl32.Mat4 {
	p := f.Positions[i]
	angle := mgl32.DegToRad(20*float32(i)) + float32(t)
	return mgl32.Translate3D(p[0], p[1], p[2]).Mul4(mgl32.HomogRotate3D(angle, spinAxis))
}

// Frame builds the draw list for one frame. It touches no GL state.
func (f *CubeField) Frame(cam *renderer.Camera, aspect float32, t float64) renderer.Frame {
	vp := cam.GetViewProjection(aspect)

	var frustum renderer.Frustum
	if f.Culling {
		frustum = cam.CalculateFrustum(aspect)
	}

	draws := make([]renderer.DrawCall, 0, len(f.Positions))
	for i, p := range f.Positions {
		if f.Culling && !frustum.IntersectsSphere(p, f.Radius) {
			continue
		}
		draws = append(draws, renderer.DrawCall{MVP: vp.Mul4(f.Model(i, t))})
	}

	return renderer.Frame{
		ClearColor: f.ClearColor,
		Tint:       Pulse(t),
		Time:       float32(t),
		ViewPos:    cam.Position,
		Draws:      draws,
	}
}

// Pulse is the animated RGBA tint, each channel a phase-shifted sine in [0,1].
func Pulse(t float64) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(math.Sin((t+1.57)*2)/2 + 0.5),
		float32(math.Sin(t)/2 + 0.5),
		float32(math.Sin((t+3.14)*3)/2 + 0.5),
		float32(math.Sin(t+5)/2 + 0.5),
	}
}
