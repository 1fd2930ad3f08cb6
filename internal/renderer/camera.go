// camera.go
package renderer

import (
	"math"

	"FlyCam/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Direction is a keyboard movement direction.
type Direction int

const (
	FORWARD Direction = iota
	BACKWARD
	LEFT
	RIGHT
)

func (d Direction) String() string {
	switch d {
	case FORWARD:
		return "forward"
	case BACKWARD:
		return "backward"
	case LEFT:
		return "left"
	case RIGHT:
		return "right"
	}
	return "unknown"
}

// Camera defaults
const (
	DefaultYaw         float32 = -90.0
	DefaultPitch       float32 = 0.0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45.0
	DefaultNear        float32 = 0.1
	DefaultFar         float32 = 100.0

	MinZoom float32 = 1.0
	MaxZoom float32 = 45.0
)

// pitchLimit is the largest float32 below 89 degrees. Pitch must never reach
// ±89, so up = right x front stays well defined.
var pitchLimit = math.Nextafter32(89, 0)

// basisTolerance bounds the drift accepted by checkBasis.
const basisTolerance = 1e-4

type Camera struct {
	// HOT DATA - read every frame for view/projection
	Position mgl32.Vec3 // Eye position in world space
	Front    mgl32.Vec3 // Forward direction vector
	Up       mgl32.Vec3 // Up direction vector
	Right    mgl32.Vec3 // Right direction vector
	Zoom     float32    // Vertical field of view in degrees
	Yaw      float32    // Horizontal rotation in degrees
	Pitch    float32    // Vertical rotation in degrees

	// COLD DATA - configuration
	WorldUp          mgl32.Vec3 // World up vector, usually (0,1,0)
	MovementSpeed    float32    // World units per second
	MouseSensitivity float32    // Degrees per pixel of mouse delta
	Near             float32    // Near clipping plane
	Far              float32    // Far clipping plane
}

type CameraOption func(*Camera)

func WithWorldUp(up mgl32.Vec3) CameraOption {
	return func(c *Camera) { c.WorldUp = up.Normalize() }
}

func WithYawPitch(yaw, pitch float32) CameraOption {
	return func(c *Camera) {
		c.Yaw = yaw
		c.Pitch = mgl32.Clamp(pitch, -pitchLimit, pitchLimit)
	}
}

func WithMovementSpeed(speed float32) CameraOption {
	return func(c *Camera) { c.MovementSpeed = speed }
}

func WithMouseSensitivity(sensitivity float32) CameraOption {
	return func(c *Camera) { c.MouseSensitivity = sensitivity }
}

func WithZoom(zoom float32) CameraOption {
	return func(c *Camera) { c.Zoom = mgl32.Clamp(zoom, MinZoom, MaxZoom) }
}

func WithClipPlanes(near, far float32) CameraOption {
	return func(c *Camera) {
		c.Near = near
		c.Far = far
	}
}

// NewCamera returns a camera at position with a basis that is already valid.
func NewCamera(position mgl32.Vec3, opts ...CameraOption) *Camera {
	camera := Camera{
		Position:         position,
		WorldUp:          mgl32.Vec3{0, 1, 0},
		Yaw:              DefaultYaw,
		Pitch:            DefaultPitch,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		Zoom:             DefaultZoom,
		Near:             DefaultNear,
		Far:              DefaultFar,
	}
	for _, opt := range opts {
		opt(&camera)
	}
	camera.updateCameraVectors(true)
	return &camera
}

// NewDefaultCamera places the camera three units back from the origin, facing -Z.
func NewDefaultCamera() *Camera {
	return NewCamera(mgl32.Vec3{0, 0, 3})
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

// GetProjectionMatrix uses Zoom as the vertical field of view.
func (c *Camera) GetProjectionMatrix(aspectRatio float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspectRatio, c.Near, c.Far)
}

func (c *Camera) GetViewProjection(aspectRatio float32) mgl32.Mat4 {
	return c.GetProjectionMatrix(aspectRatio).Mul4(c.GetViewMatrix())
}

// ProcessKeyboard moves the camera along its basis. direction must be one of
// FORWARD, BACKWARD, LEFT or RIGHT; deltaTime is in seconds and is not clamped.
func (c *Camera) ProcessKeyboard(direction Direction, deltaTime float32) {
	velocity := c.MovementSpeed * deltaTime
	switch direction {
	case FORWARD:
		c.Position = c.Position.Add(c.Front.Mul(velocity))
	case BACKWARD:
		c.Position = c.Position.Sub(c.Front.Mul(velocity))
	case LEFT:
		c.Position = c.Position.Sub(c.Right.Mul(velocity))
	case RIGHT:
		c.Position = c.Position.Add(c.Right.Mul(velocity))
	}
}

// ProcessMouseMovement takes raw pixel deltas. yoffset is expected to be
// positive when the cursor moves up the screen.
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	c.Yaw += xoffset * c.MouseSensitivity
	c.Pitch += yoffset * c.MouseSensitivity

	if constrainPitch {
		c.Pitch = mgl32.Clamp(c.Pitch, -pitchLimit, pitchLimit)
	}
	c.updateCameraVectors(constrainPitch)
}

// ProcessMouseScroll narrows the field of view for positive offsets.
func (c *Camera) ProcessMouseScroll(yoffset float32) {
	c.Zoom = mgl32.Clamp(c.Zoom-yoffset, MinZoom, MaxZoom)
}

func (c *Camera) updateCameraVectors(constrained bool) {
	yawRad := float64(mgl32.DegToRad(c.Yaw))
	pitchRad := float64(mgl32.DegToRad(c.Pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}

	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()

	c.checkBasis(constrained)
}

// checkBasis reports a degenerate basis, and a constrained pitch that reached
// ±89. Either is a bug in the clamping, not an input error, so it is logged
// and never returned.
func (c *Camera) checkBasis(constrained bool) {
	if constrained && !(math.Abs(float64(c.Pitch)) < 89) {
		logger.Log.Warn("camera pitch escaped its clamp",
			zap.Float32("pitch", c.Pitch),
			zap.Float32("limit", pitchLimit))
	}

	ok := true
	for _, v := range [3]mgl32.Vec3{c.Front, c.Right, c.Up} {
		ok = ok && withinBasisTolerance(float64(v.Len())-1)
	}
	for _, d := range [3]float32{c.Front.Dot(c.Right), c.Front.Dot(c.Up), c.Right.Dot(c.Up)} {
		ok = ok && withinBasisTolerance(float64(d))
	}
	if ok {
		return
	}
	logger.Log.Warn("camera basis is not orthonormal",
		zap.Float32("yaw", c.Yaw),
		zap.Float32("pitch", c.Pitch),
		zap.Float32s("front", c.Front[:]),
		zap.Float32s("right", c.Right[:]),
		zap.Float32s("up", c.Up[:]))
}

// NaN compares false against everything, so this asks "inside" rather than
// "outside" the tolerance.
func withinBasisTolerance(x float64) bool {
	return math.Abs(x) <= basisTolerance
}

type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

type Frustum struct {
	Planes [6]Plane
}

// CalculateFrustum extracts the six clip planes from the view-projection.
func (c *Camera) CalculateFrustum(aspectRatio float32) Frustum {
	var frustum Frustum
	vp := c.GetViewProjection(aspectRatio)

	// Left
	frustum.Planes[0] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[0], vp[7] + vp[4], vp[11] + vp[8]},
		Distance: vp[15] + vp[12],
	}
	// Right
	frustum.Planes[1] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[0], vp[7] - vp[4], vp[11] - vp[8]},
		Distance: vp[15] - vp[12],
	}
	// Bottom
	frustum.Planes[2] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[1], vp[7] + vp[5], vp[11] + vp[9]},
		Distance: vp[15] + vp[13],
	}
	// Top
	frustum.Planes[3] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[1], vp[7] - vp[5], vp[11] - vp[9]},
		Distance: vp[15] - vp[13],
	}
	// Near
	frustum.Planes[4] = Plane{
		Normal:   mgl32.Vec3{vp[3] + vp[2], vp[7] + vp[6], vp[11] + vp[10]},
		Distance: vp[15] + vp[14],
	}
	// Far
	frustum.Planes[5] = Plane{
		Normal:   mgl32.Vec3{vp[3] - vp[2], vp[7] - vp[6], vp[11] - vp[10]},
		Distance: vp[15] - vp[14],
	}

	for i := range frustum.Planes {
		length := frustum.Planes[i].Normal.Len()
		frustum.Planes[i].Normal = frustum.Planes[i].Normal.Mul(1.0 / length)
		frustum.Planes[i].Distance /= length
	}

	return frustum
}

func (p *Plane) DistanceToPoint(point mgl32.Vec3) float32 {
	return p.Normal.Dot(point) + p.Distance
}

func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}
