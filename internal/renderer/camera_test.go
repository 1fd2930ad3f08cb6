package renderer

import (
	"math"
	"testing"

	"FlyCam/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const eps = 1e-4

func assertVec3InDelta(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d of %v", i, actual)
	}
}

func assertOrthonormal(t *testing.T, cam *Camera) {
	t.Helper()
	assert.InDelta(t, 1.0, cam.Front.Len(), 1e-5)
	assert.InDelta(t, 1.0, cam.Right.Len(), 1e-5)
	assert.InDelta(t, 1.0, cam.Up.Len(), 1e-5)
	assert.InDelta(t, 0.0, cam.Front.Dot(cam.Right), 1e-5)
	assert.InDelta(t, 0.0, cam.Front.Dot(cam.Up), 1e-5)
	assert.InDelta(t, 0.0, cam.Right.Dot(cam.Up), 1e-5)
}

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera()
	require.NotNil(t, cam)

	assert.Equal(t, mgl32.Vec3{0, 0, 3}, cam.Position)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cam.WorldUp)
	assert.Equal(t, DefaultYaw, cam.Yaw)
	assert.Equal(t, DefaultPitch, cam.Pitch)
	assert.Equal(t, DefaultZoom, cam.Zoom)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, cam.Front, eps)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, cam.Right, eps)
	assertVec3InDelta(t, mgl32.Vec3{0, 1, 0}, cam.Up, eps)
}

func TestNewCameraOptions(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{1, 2, 3},
		WithYawPitch(0, 200),
		WithMovementSpeed(7),
		WithMouseSensitivity(0.5),
		WithZoom(90),
		WithClipPlanes(1, 50),
	)

	assert.Equal(t, float32(7), cam.MovementSpeed)
	assert.Equal(t, float32(0.5), cam.MouseSensitivity)
	assert.Equal(t, MaxZoom, cam.Zoom)
	assert.Less(t, cam.Pitch, float32(89))
	assert.Equal(t, float32(1), cam.Near)
	assert.Equal(t, float32(50), cam.Far)
	assertOrthonormal(t, cam)
}

func TestCameraOrthonormalAfterMouseMovement(t *testing.T) {
	cam := NewDefaultCamera()
	moves := [][2]float32{
		{10, 5}, {-300, 40}, {1234, -987}, {0.5, 0.25}, {-45, 1e4}, {720, -1e4}, {33, 33},
	}
	for _, m := range moves {
		cam.ProcessMouseMovement(m[0], m[1], true)
		assertOrthonormal(t, cam)
	}
}

func TestCameraPitchClamp(t *testing.T) {
	cam := NewDefaultCamera()
	for i := 0; i < 10; i++ {
		cam.ProcessMouseMovement(0, 1e6, true)
		assert.Less(t, cam.Pitch, float32(89))
		assert.Greater(t, cam.Pitch, float32(-89))
		assertOrthonormal(t, cam)
	}
	for i := 0; i < 10; i++ {
		cam.ProcessMouseMovement(0, -1e6, true)
		assert.Less(t, cam.Pitch, float32(89))
		assert.Greater(t, cam.Pitch, float32(-89))
		assertOrthonormal(t, cam)
	}
}

func TestCameraPitchUnconstrained(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{}, WithMouseSensitivity(1))
	cam.ProcessMouseMovement(0, 120, false)

	assert.Equal(t, float32(120), cam.Pitch)
}

func TestCameraZoomClamp(t *testing.T) {
	cam := NewDefaultCamera()
	for i := 0; i < 5; i++ {
		cam.ProcessMouseScroll(1e6)
		assert.GreaterOrEqual(t, cam.Zoom, MinZoom)
	}
	assert.Equal(t, MinZoom, cam.Zoom)

	for i := 0; i < 5; i++ {
		cam.ProcessMouseScroll(-1e6)
		assert.LessOrEqual(t, cam.Zoom, MaxZoom)
	}
	assert.Equal(t, MaxZoom, cam.Zoom)
}

func TestCameraScrollNarrowsFov(t *testing.T) {
	cam := NewDefaultCamera()
	cam.ProcessMouseScroll(5)

	assert.Equal(t, float32(40), cam.Zoom)
}

func TestCameraKeyboardFrameIndependence(t *testing.T) {
	single := NewDefaultCamera()
	single.ProcessKeyboard(FORWARD, 1.0)

	expected := mgl32.Vec3{0, 0, 3}.Add(single.Front.Mul(single.MovementSpeed))
	assertVec3InDelta(t, expected, single.Position, eps)

	split := NewDefaultCamera()
	split.ProcessKeyboard(FORWARD, 0.5)
	split.ProcessKeyboard(FORWARD, 0.5)
	assertVec3InDelta(t, single.Position, split.Position, eps)
}

func TestCameraKeyboardDirections(t *testing.T) {
	tests := []struct {
		dir      Direction
		expected mgl32.Vec3
	}{
		{FORWARD, mgl32.Vec3{0, 0, 3 - 2.5}},
		{BACKWARD, mgl32.Vec3{0, 0, 3 + 2.5}},
		{LEFT, mgl32.Vec3{-2.5, 0, 3}},
		{RIGHT, mgl32.Vec3{2.5, 0, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			cam := NewDefaultCamera()
			cam.ProcessKeyboard(tt.dir, 1.0)
			assertVec3InDelta(t, tt.expected, cam.Position, eps)
		})
	}
}

func TestCameraTurnThenStrafe(t *testing.T) {
	cam := NewCamera(mgl32.Vec3{0, 0, 3}, WithMouseSensitivity(1.0), WithMovementSpeed(2.5))

	cam.ProcessMouseMovement(90, 0, true)
	assert.InDelta(t, 0.0, cam.Yaw, 1e-6)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, cam.Front, eps)

	// right = front x worldUp = (1,0,0) x (0,1,0) = (0,0,1)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 1}, cam.Right, eps)

	cam.ProcessKeyboard(RIGHT, 1.0)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 3 + 2.5}, cam.Position, eps)
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewDefaultCamera()

	view := cam.GetViewMatrix()
	assert.Equal(t, float32(1), view.At(3, 3))

	// The eye maps to the view-space origin.
	eye := view.Mul4x1(cam.Position.Vec4(1))
	assertVec3InDelta(t, mgl32.Vec3{}, eye.Vec3(), eps)

	// A point straight ahead lands on -Z.
	ahead := view.Mul4x1(cam.Position.Add(cam.Front).Vec4(1))
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, ahead.Vec3(), eps)

	assert.Equal(t, view, cam.GetViewMatrix(), "view matrix must be idempotent")
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewDefaultCamera()

	proj := cam.GetProjectionMatrix(1.0)
	assert.Equal(t, float32(0), proj.At(3, 3))

	expected := mgl32.Perspective(mgl32.DegToRad(45), 1.0, 0.1, 100)
	assert.Equal(t, expected, proj)

	cam.ProcessMouseScroll(20)
	narrower := cam.GetProjectionMatrix(1.0)
	assert.Greater(t, narrower.At(1, 1), proj.At(1, 1), "a smaller fov scales y up")
}

func TestCameraGetViewProjection(t *testing.T) {
	cam := NewDefaultCamera()

	vp := cam.GetViewProjection(1.0)
	assert.Equal(t, cam.GetProjectionMatrix(1.0).Mul4(cam.GetViewMatrix()), vp)
}

func TestFrustumIntersectsSphere(t *testing.T) {
	cam := NewDefaultCamera()
	frustum := cam.CalculateFrustum(1.0)

	assert.True(t, frustum.IntersectsSphere(mgl32.Vec3{0, 0, 0}, 1))
	assert.False(t, frustum.IntersectsSphere(mgl32.Vec3{0, 0, 10}, 1), "behind the camera")
	assert.False(t, frustum.IntersectsSphere(mgl32.Vec3{0, 0, -200}, 1), "past the far plane")
	assert.False(t, frustum.IntersectsSphere(mgl32.Vec3{50, 0, 0}, 1), "off to the side")

	for _, p := range frustum.Planes {
		assert.InDelta(t, 1.0, p.Normal.Len(), 1e-5)
	}
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "forward", FORWARD.String())
	assert.Equal(t, "unknown", Direction(42).String())
}

func TestPitchLimitBelowBound(t *testing.T) {
	assert.Less(t, pitchLimit, float32(89))
	assert.Greater(t, float64(pitchLimit), 88.99)
	assert.False(t, math.IsNaN(float64(pitchLimit)))
}

func observeWarnings(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestCheckBasisWarnsOnZeroWorldUp(t *testing.T) {
	logs := observeWarnings(t)

	cam := NewCamera(mgl32.Vec3{}, WithWorldUp(mgl32.Vec3{}))

	assert.True(t, math.IsNaN(float64(cam.Right[0])))
	assert.Equal(t, 1, logs.FilterMessage("camera basis is not orthonormal").Len())
}

func TestCheckBasisWarnsOnNaNYaw(t *testing.T) {
	cam := NewDefaultCamera()
	logs := observeWarnings(t)

	cam.ProcessMouseMovement(float32(math.NaN()), 0, true)

	assert.True(t, math.IsNaN(float64(cam.Front[0])))
	assert.Equal(t, 1, logs.FilterMessage("camera basis is not orthonormal").Len())
	assert.Equal(t, 0, logs.FilterMessage("camera pitch escaped its clamp").Len())
}

func TestCheckBasisWarnsOnNaNPitch(t *testing.T) {
	cam := NewDefaultCamera()
	logs := observeWarnings(t)

	cam.ProcessMouseMovement(0, float32(math.NaN()), true)

	assert.Equal(t, 1, logs.FilterMessage("camera pitch escaped its clamp").Len())
	assert.Equal(t, 1, logs.FilterMessage("camera basis is not orthonormal").Len())
}

func TestCheckBasisWarnsOnPitchAtLimit(t *testing.T) {
	cam := NewDefaultCamera()
	logs := observeWarnings(t)

	cam.Pitch = 89
	cam.updateCameraVectors(true)
	assert.Equal(t, 1, logs.FilterMessage("camera pitch escaped its clamp").Len())

	cam.Pitch = 89
	cam.updateCameraVectors(false)
	assert.Equal(t, 1, logs.FilterMessage("camera pitch escaped its clamp").Len(), "unconstrained pitch is not checked")
}

func TestCheckBasisQuietOnHealthyCamera(t *testing.T) {
	logs := observeWarnings(t)

	cam := NewDefaultCamera()
	for i := 0; i < 100; i++ {
		cam.ProcessMouseMovement(37, 1e4, true)
		cam.ProcessMouseMovement(-11, -1e4, true)
		cam.ProcessMouseMovement(5, 120, false)
		cam.ProcessMouseScroll(3)
	}

	assert.Equal(t, 0, logs.Len())
}
